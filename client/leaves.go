// client/leaves.go
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nikhilsag/hrbridge/model"
)

func (c *Client) ListLeaves(ctx context.Context, filter model.LeaveFilter) ([]model.LeaveRequest, error) {
	query := url.Values{}
	for k, v := range filter.Params() {
		query.Set(k, fmt.Sprintf("%v", v))
	}
	return fetchList[model.LeaveRequest](ctx, c, "/leaves", query)
}

func (c *Client) GetLeave(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	return fetchOne[model.LeaveRequest](ctx, c, fmt.Sprintf("/leaves/%d", id), nil)
}

func (c *Client) CreateLeave(ctx context.Context, payload model.CreateLeavePayload, idempotencyKey string) (*model.LeaveRequest, error) {
	return createOne[model.LeaveRequest](ctx, c, "/leaves", payload, idempotencyKey)
}

func (c *Client) ApproveLeave(ctx context.Context, id int64, idempotencyKey string) (*model.LeaveRequest, error) {
	return postAction[model.LeaveRequest](ctx, c, fmt.Sprintf("/leaves/%d/approve", id), nil, idempotencyKey)
}

// RejectLeave carries a reason payload; it may be the typed struct or the
// deferred map a confirmation stored.
func (c *Client) RejectLeave(ctx context.Context, id int64, payload any, idempotencyKey string) (*model.LeaveRequest, error) {
	return postAction[model.LeaveRequest](ctx, c, fmt.Sprintf("/leaves/%d/reject", id), payload, idempotencyKey)
}

func (c *Client) CancelLeave(ctx context.Context, id int64, idempotencyKey string) (*model.LeaveRequest, error) {
	return postAction[model.LeaveRequest](ctx, c, fmt.Sprintf("/leaves/%d/cancel", id), nil, idempotencyKey)
}
