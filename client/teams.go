// client/teams.go
package client

import (
	"context"
	"fmt"

	"github.com/nikhilsag/hrbridge/model"
)

func (c *Client) ListTeams(ctx context.Context) ([]model.Team, error) {
	return fetchList[model.Team](ctx, c, "/teams", nil)
}

func (c *Client) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	return fetchOne[model.Team](ctx, c, fmt.Sprintf("/teams/%d", id), nil)
}

func (c *Client) CreateTeam(ctx context.Context, payload model.CreateTeamPayload, idempotencyKey string) (*model.Team, error) {
	return createOne[model.Team](ctx, c, "/teams", payload, idempotencyKey)
}

func (c *Client) UpdateTeam(ctx context.Context, id int64, payload model.UpdateTeamPayload) (*model.Team, error) {
	return patchOne[model.Team](ctx, c, fmt.Sprintf("/teams/%d", id), payload)
}

func (c *Client) DeleteTeam(ctx context.Context, id int64) error {
	return deleteOne(ctx, c, fmt.Sprintf("/teams/%d", id))
}

func (c *Client) AssignEmployee(ctx context.Context, teamID int64, payload any, idempotencyKey string) (*model.Team, error) {
	return postAction[model.Team](ctx, c, fmt.Sprintf("/teams/%d/assign", teamID), payload, idempotencyKey)
}
