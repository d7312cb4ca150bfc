// client/employees.go
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nikhilsag/hrbridge/model"
)

func (c *Client) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	query := url.Values{}
	for k, v := range filter.Params() {
		query.Set(k, fmt.Sprintf("%v", v))
	}
	return fetchList[model.Employee](ctx, c, "/employees", query)
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	return fetchOne[model.Employee](ctx, c, fmt.Sprintf("/employees/%d", id), nil)
}

func (c *Client) CreateEmployee(ctx context.Context, payload model.CreateEmployeePayload, idempotencyKey string) (*model.Employee, error) {
	return createOne[model.Employee](ctx, c, "/employees", payload, idempotencyKey)
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, payload model.UpdateEmployeePayload) (*model.Employee, error) {
	return patchOne[model.Employee](ctx, c, fmt.Sprintf("/employees/%d", id), payload)
}

// TerminateEmployee hits the upstream state-transition endpoint. payload
// may be the typed struct or the deferred map a confirmation stored.
func (c *Client) TerminateEmployee(ctx context.Context, id int64, payload any, idempotencyKey string) (*model.Employee, error) {
	return postAction[model.Employee](ctx, c, fmt.Sprintf("/employees/%d/terminate", id), payload, idempotencyKey)
}
