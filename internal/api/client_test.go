package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmvibe/crmdash/internal/errors"
)

// fakeSessions is a scripted SessionSource.
type fakeSessions struct {
	token     string
	teardowns int
}

func (f *fakeSessions) Token() string   { return f.token }
func (f *fakeSessions) Teardown() error { f.teardowns++; f.token = ""; return nil }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeSessions) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := &fakeSessions{token: "abc"}
	client := NewClient(srv.URL, nil)
	client.BindSession(sessions)
	return client, sessions
}

func TestClient_AttachesBearerHeader(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.Customers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_OmitsHeaderWithoutSession(t *testing.T) {
	var gotAuth string
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	sessions.token = ""

	_, err := client.Customers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedTearsDownOnce(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))

	_, err := client.Events(context.Background())
	require.Error(t, err)

	var unauthorized *UnauthorizedError
	require.True(t, stderrors.As(err, &unauthorized))
	assert.Equal(t, NavigateLogin, unauthorized.Navigate)
	assert.Equal(t, 1, sessions.teardowns, "teardown must run exactly once per failing call")

	var dashErr *errors.DashError
	require.True(t, stderrors.As(err, &dashErr))
	assert.Equal(t, errors.ErrCodeAuthUnauthorized, dashErr.Code)
}

func TestClient_OtherStatusesSurfaceDetail(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Customer not found"}`))
	}))

	_, err := client.Customer(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Customer not found")
	assert.Zero(t, sessions.teardowns, "only 401 triggers teardown")
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"this is": not json`))
	}))

	_, err := client.Analytics(context.Background())
	require.Error(t, err)

	var dashErr *errors.DashError
	require.True(t, stderrors.As(err, &dashErr))
	assert.Equal(t, errors.ErrCodeAPIMalformedBody, dashErr.Code)
}

func TestClient_CustomerEscapesEmail(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"email":"a@b.com","name":"A","events":[],"courses":[],"event_count":0,"course_count":0}`))
	}))

	customer, err := client.Customer(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "/customers/a@b.com", gotPath)
	assert.Equal(t, "a@b.com", customer.Email)
}

func TestClient_DecodesListPayloads(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers":
			_, _ = w.Write([]byte(`[{"email":"a@b.com","name":"A","event_count":2,"course_count":1}]`))
		case "/events":
			_, _ = w.Write([]byte(`[{"event_id":"e1","event_name":"Launch","attendee_count":1,"attendees":[{"name":"A","email":"a@b.com","date":"2026-01-01"}]}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	customers, err := client.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, 2, customers[0].EventCount)

	events, err := client.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Launch", events[0].EventName)
	require.Len(t, events[0].Attendees, 1)
}
