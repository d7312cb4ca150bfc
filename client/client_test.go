// client/client_test.go
package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
)

// newTestClient points a client at a fake upstream and replaces the retry
// sleep with a recorder so tests never wait for real backoff.
func newTestClient(t *testing.T, upstream *httptest.Server, maxRetries int) (*Client, *[]time.Duration) {
	t.Helper()
	c, err := New(Config{
		APIKey:     "test-key",
		BaseURL:    upstream.URL,
		Version:    "v1",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
	require.NoError(t, err)

	delays := &[]time.Duration{}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return c, delays
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{BaseURL: "https://api.hrplatform.example"})
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindConfiguration, apiErr.Kind)
}

func TestRequestHeaders(t *testing.T) {
	var gotKey, gotAccept, gotIdem, gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		gotIdem = r.Header.Get("Idempotency-Key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	_, err := c.Do(context.Background(), http.MethodPost, "/employees", RequestOptions{
		Body:           map[string]any{"first_name": "Ada"},
		IdempotencyKey: "idem-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "idem-123", gotIdem)
	assert.Equal(t, "application/json", gotContentType)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c, delays := newTestClient(t, upstream, 3)
	_, err := c.Do(context.Background(), http.MethodGet, "/employees", RequestOptions{})

	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindServer, apiErr.Kind)
	assert.EqualValues(t, 3, calls)
	assert.Len(t, *delays, 2) // sleeps between attempts only
}

func TestGetRecoversMidRetry(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":[{"id":7,"first_name":"Ada","last_name":"Park"}]}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	employees, err := c.ListEmployees(context.Background(), model.EmployeeFilter{})

	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, int64(7), employees[0].ID)
	assert.EqualValues(t, 3, calls)
}

func TestPostWithoutIdempotencyKeyDoesNotRetry(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 5)
	_, err := c.Do(context.Background(), http.MethodPost, "/employees", RequestOptions{
		Body: map[string]any{"first_name": "Ada"},
	})

	require.Error(t, err)
	assert.EqualValues(t, 1, calls)
}

func TestPostWithIdempotencyKeyRetries(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 5)
	_, err := c.Do(context.Background(), http.MethodPost, "/employees", RequestOptions{
		Body:           map[string]any{"first_name": "Ada"},
		IdempotencyKey: "idem-123",
	})

	require.Error(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestNonRetryableShortCircuits(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 5)
	_, err := c.Do(context.Background(), http.MethodGet, "/employees", RequestOptions{})

	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindAuthentication, apiErr.Kind)
	assert.EqualValues(t, 1, calls)
}

func TestRateLimitHonorsRetryAfterHint(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	c, delays := newTestClient(t, upstream, 3)
	_, err := c.Do(context.Background(), http.MethodGet, "/employees", RequestOptions{})

	require.NoError(t, err)
	require.Len(t, *delays, 1)
	assert.Equal(t, 60*time.Second, (*delays)[0])
}

func TestDeleteReturnsNoContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	err := c.DeleteTeam(context.Background(), 4)
	assert.NoError(t, err)
}

func TestListEnvelopeWithMissingDataYieldsEmptyList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	teams, err := c.ListTeams(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)
}

func TestUnprocessableEntityCarriesFieldErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"email":["is already taken"]}}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	_, err := c.CreateEmployee(context.Background(), model.CreateEmployeePayload{
		FirstName: "Ada", LastName: "Park", Email: "ada@example.com",
	}, "")

	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindUnprocessableEntity, apiErr.Kind)
	assert.Equal(t, map[string][]string{"email": {"is already taken"}}, apiErr.ValidationErrors)
}

func TestTimeoutBecomesTimeoutError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	_, err := c.Do(context.Background(), http.MethodGet, "/employees", RequestOptions{
		Timeout: 30 * time.Millisecond,
		NoRetry: true,
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindTimeout, apiErr.Kind)
	assert.Equal(t, 30*time.Millisecond, apiErr.Timeout)
}

func TestNetworkFailureBecomesNetworkError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	c, _ := newTestClient(t, upstream, 1)
	_, err := c.Do(context.Background(), http.MethodGet, "/employees", RequestOptions{})

	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindNetwork, apiErr.Kind)
	assert.NotNil(t, apiErr.Cause)
}

func TestBackoffDelayBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := backoffDelay(1)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
	// The cap holds even for deep attempts, jitter included.
	for i := 0; i < 50; i++ {
		d := backoffDelay(4)
		assert.LessOrEqual(t, d, 12*time.Second)
		assert.GreaterOrEqual(t, d, 6400*time.Millisecond)
	}
}

func TestQueryParametersAreSent(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	c, _ := newTestClient(t, upstream, 3)
	teamID := int64(4)
	_, err := c.ListEmployees(context.Background(), model.EmployeeFilter{TeamID: &teamID})
	require.NoError(t, err)
	assert.Equal(t, "team_id=4", gotQuery)
}
