// service/team_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/policy"
	"github.com/nikhilsag/hrbridge/util"
)

type ITeamService interface {
	ListTeams(ctx context.Context) ([]model.Team, error)
	GetTeam(ctx context.Context, id int64) (*model.Team, error)
	CreateTeam(ctx context.Context, payload model.CreateTeamPayload) (*model.Team, error)
	UpdateTeam(ctx context.Context, id int64, payload model.UpdateTeamPayload) (*model.Team, error)
	DeleteTeam(ctx context.Context, id int64, confirmationToken string) (*model.OperationPreview, error)
	AssignEmployee(ctx context.Context, teamID int64, payload model.AssignEmployeePayload) (*model.Team, error)
}

type TeamService struct {
	apiClient     *client.Client
	cache         *cache.Cache
	confirmations *confirm.Manager
	eventBus      *util.EventBus
}

func NewTeamService(
	apiClient *client.Client,
	store *cache.Cache,
	confirmations *confirm.Manager,
	eventBus *util.EventBus,
) *TeamService {
	return &TeamService{
		apiClient:     apiClient,
		cache:         store,
		confirmations: confirmations,
		eventBus:      eventBus,
	}
}

var _ ITeamService = &TeamService{}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	return cache.Cached(s.cache, cache.Key("teams", nil), cache.TTLFor("teams"), func() ([]model.Team, error) {
		return s.apiClient.ListTeams(ctx)
	})
}

func (s *TeamService) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	key := cache.Key("teams", map[string]any{"id": id})
	return cache.Cached(s.cache, key, cache.TTLFor("teams"), func() (*model.Team, error) {
		return s.apiClient.GetTeam(ctx, id)
	})
}

func (s *TeamService) CreateTeam(ctx context.Context, payload model.CreateTeamPayload) (*model.Team, error) {
	team, err := s.apiClient.CreateTeam(ctx, payload, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("teams")
	s.publish(ctx, "create_team", team.ID, false, map[string]any{"name": payload.Name})
	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id int64, payload model.UpdateTeamPayload) (*model.Team, error) {
	team, err := s.apiClient.UpdateTeam(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("teams")
	s.publish(ctx, "update_team", id, false, nil)
	return team, nil
}

// DeleteTeam is confirmation-gated. Without a token a preview of the team
// about to disappear is parked; with a token the stored deletion executes.
func (s *TeamService) DeleteTeam(ctx context.Context, id int64, confirmationToken string) (*model.OperationPreview, error) {
	pol := policy.Lookup("delete_team")
	if pol.RequiresConfirmation && confirmationToken == "" {
		team, err := s.GetTeam(ctx, id)
		if err != nil {
			return nil, err
		}

		warnings := []string{pol.ImpactDescription}
		if team.MemberCount > 0 {
			warnings = append(warnings,
				fmt.Sprintf("Team still has %d member(s); they will be unassigned.", team.MemberCount))
		}

		_, preview := s.confirmations.RequestConfirmation(
			"delete_team", "team", &id, team.Name, nil, nil, warnings)
		return &preview, nil
	}

	pending, err := s.confirmations.Confirm(confirmationToken)
	if err != nil {
		return nil, err
	}
	if pending.Operation != "delete_team" || pending.Preview.EntityID == nil || *pending.Preview.EntityID != id {
		return nil, apierrors.NewConfirmationExpiredError(confirmationToken)
	}

	if err := s.apiClient.DeleteTeam(ctx, id); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("teams")
	// Members carry team_id; their cached records are stale now too.
	s.cache.InvalidatePrefix("employees")
	s.publish(ctx, "delete_team", id, true, nil)
	return nil, nil
}

func (s *TeamService) AssignEmployee(ctx context.Context, teamID int64, payload model.AssignEmployeePayload) (*model.Team, error) {
	team, err := s.apiClient.AssignEmployee(ctx, teamID, payload, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("teams")
	s.cache.InvalidatePrefix("employees")
	s.publish(ctx, "assign_employee", teamID, false, map[string]any{"employee_id": payload.EmployeeID})
	return team, nil
}

func (s *TeamService) publish(ctx context.Context, operation string, entityID int64, confirmed bool, payload map[string]any) {
	s.eventBus.Publish(ctx, operation, model.OperationEvent{
		Operation:  operation,
		EntityType: "team",
		EntityID:   entityID,
		Confirmed:  confirmed,
		Payload:    payload,
		Timestamp:  time.Now(),
	})
}
