// service/employee_service_test.go
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/util"
)

// upstream is a fake HR platform recording every request it serves.
type upstream struct {
	mu       sync.Mutex
	requests []string
	handler  http.HandlerFunc
	server   *httptest.Server
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{handler: handler}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.requests = append(u.requests, r.Method+" "+r.URL.Path)
		u.mu.Unlock()
		u.handler(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func newServices(t *testing.T, u *upstream) *Services {
	t.Helper()
	apiClient, err := client.New(client.Config{
		APIKey:  "test-key",
		BaseURL: u.server.URL,
		Version: "v1",
	})
	assert.NoError(t, err)

	store := cache.New(time.Minute)
	t.Cleanup(store.Destroy)

	return NewServices(
		apiClient,
		store,
		confirm.NewManager(time.Minute),
		util.NewValidationUtil(),
		util.NewEventBus(),
	)
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func TestListEmployeesServedFromCache(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []model.Employee{{ID: 1, FirstName: "Ana", LastName: "Reyes", Active: true}})
	})
	svcs := newServices(t, u)
	ctx := context.Background()

	first, err := svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{})
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{})
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, u.count(), "second read must come from cache")
}

func TestListEmployeesDistinctFiltersMissSeparately(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []model.Employee{})
	})
	svcs := newServices(t, u)
	ctx := context.Background()

	teamID := int64(4)
	_, err := svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{})
	assert.NoError(t, err)
	_, err = svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{TeamID: &teamID})
	assert.NoError(t, err)

	assert.Equal(t, 2, u.count())
}

func TestCreateEmployeeInvalidatesListCache(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			respond(w, http.StatusCreated, model.Employee{ID: 2, FirstName: "Bo", LastName: "Lindqvist"})
			return
		}
		respond(w, http.StatusOK, []model.Employee{{ID: 1}})
	})
	svcs := newServices(t, u)
	ctx := context.Background()

	_, err := svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{})
	assert.NoError(t, err)

	created, err := svcs.Employee.CreateEmployee(ctx, model.CreateEmployeePayload{
		FirstName: "Bo", LastName: "Lindqvist", Email: "bo@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	_, err = svcs.Employee.ListEmployees(ctx, model.EmployeeFilter{})
	assert.NoError(t, err)

	// list, create, list again after invalidation
	assert.Equal(t, 3, u.count())
}

func TestCreateEmployeeRejectsBadPayloadLocally(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payload must not reach the platform")
	})
	svcs := newServices(t, u)

	_, err := svcs.Employee.CreateEmployee(context.Background(), model.CreateEmployeePayload{
		FirstName: "Bo", LastName: "Lindqvist", Email: "not-an-address",
	})

	var apiErr *apierrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindValidation, apiErr.Kind)
	assert.Equal(t, 0, u.count())
}

func TestTerminateEmployeeRequiresConfirmation(t *testing.T) {
	var terminated bool
	var receivedBody map[string]any
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			respond(w, http.StatusOK, model.Employee{
				ID: 7, FirstName: "Dana", LastName: "Okafor", Active: true,
			})
		case r.Method == http.MethodPost:
			terminated = true
			json.NewDecoder(r.Body).Decode(&receivedBody)
			respond(w, http.StatusOK, model.Employee{ID: 7, Active: false})
		}
	})
	svcs := newServices(t, u)
	ctx := context.Background()
	payload := model.TerminateEmployeePayload{TerminatedOn: "2026-09-01", TerminationReason: "role eliminated"}

	// Phase one: no token, expect a preview and no upstream mutation.
	employee, preview, err := svcs.Employee.TerminateEmployee(ctx, 7, payload, "")
	assert.NoError(t, err)
	assert.Nil(t, employee)
	assert.NotNil(t, preview)
	assert.False(t, terminated)
	assert.Equal(t, "terminate", preview.Operation)
	assert.Equal(t, "Dana Okafor", preview.EntityName)
	assert.Len(t, preview.ConfirmationToken, 32)
	assert.Equal(t, false, preview.Changes["active"].To)

	// Phase two: the stored payload executes.
	employee, preview, err = svcs.Employee.TerminateEmployee(ctx, 7, model.TerminateEmployeePayload{}, preview.ConfirmationToken)
	assert.NoError(t, err)
	assert.Nil(t, preview)
	assert.NotNil(t, employee)
	assert.True(t, terminated)
	assert.Equal(t, "2026-09-01", receivedBody["terminated_on"])
	assert.Equal(t, "role eliminated", receivedBody["termination_reason"])
}

func TestTerminateEmployeeTokenIsSingleUse(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			respond(w, http.StatusOK, model.Employee{ID: 7, Active: true})
			return
		}
		respond(w, http.StatusOK, model.Employee{ID: 7, Active: false})
	})
	svcs := newServices(t, u)
	ctx := context.Background()
	payload := model.TerminateEmployeePayload{TerminatedOn: "2026-09-01"}

	_, preview, err := svcs.Employee.TerminateEmployee(ctx, 7, payload, "")
	assert.NoError(t, err)

	_, _, err = svcs.Employee.TerminateEmployee(ctx, 7, payload, preview.ConfirmationToken)
	assert.NoError(t, err)

	_, _, err = svcs.Employee.TerminateEmployee(ctx, 7, payload, preview.ConfirmationToken)
	var apiErr *apierrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindConfirmationExpired, apiErr.Kind)
}

func TestTerminateEmployeeTokenBoundToEntity(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			respond(w, http.StatusOK, model.Employee{ID: 7, Active: true})
			return
		}
		t.Error("a token for employee 7 must not terminate employee 8")
	})
	svcs := newServices(t, u)
	ctx := context.Background()
	payload := model.TerminateEmployeePayload{TerminatedOn: "2026-09-01"}

	_, preview, err := svcs.Employee.TerminateEmployee(ctx, 7, payload, "")
	assert.NoError(t, err)

	_, _, err = svcs.Employee.TerminateEmployee(ctx, 8, payload, preview.ConfirmationToken)
	var apiErr *apierrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindConfirmationExpired, apiErr.Kind)
}

func TestTerminateEmployeeValidatesBeforeParking(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payload must not reach the platform")
	})
	svcs := newServices(t, u)

	_, preview, err := svcs.Employee.TerminateEmployee(context.Background(), 7,
		model.TerminateEmployeePayload{TerminatedOn: "not-a-date"}, "")
	assert.Nil(t, preview)
	var apiErr *apierrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindValidation, apiErr.Kind)
	assert.Equal(t, 0, svcs.Confirmation.PendingCount())
}

func TestGetEmployeeNotFoundPropagates(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	svcs := newServices(t, u)

	_, err := svcs.Employee.GetEmployee(context.Background(), 404)
	var apiErr *apierrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindNotFound, apiErr.Kind)

	// Failures are never cached.
	_, err = svcs.Employee.GetEmployee(context.Background(), 404)
	assert.Error(t, err)
	assert.Equal(t, 2, u.count())
}
