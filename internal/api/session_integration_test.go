package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmvibe/crmdash/internal/session"
)

// These tests wire the real session manager, file store, and API client
// together the way the application shell does.

func newWiredStack(t *testing.T, handler http.Handler) (*session.Manager, *session.FileStore, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewFileStore(t.TempDir())
	client := NewClient(srv.URL, nil)
	manager := session.NewManager(store, client, nil)
	client.BindSession(manager)
	return manager, store, client
}

func TestLoginThenFetchCarriesCredential(t *testing.T) {
	var gotAuth string
	manager, store, client := newWiredStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/google":
			_, _ = w.Write([]byte(`{"access_token":"abc","user":{"id":1,"email":"a@b.com","name":"A","picture":null}}`))
		case "/customers":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	manager.Start()

	_, err := manager.Login(context.Background(), "valid-ext-token")
	require.NoError(t, err)

	_, err = client.Customers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)

	token, user, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestRejectedCredentialTearsDownStoredSession(t *testing.T) {
	manager, store, client := newWiredStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))

	// A stale session from a previous run.
	require.NoError(t, store.Save("expired", session.User{ID: 1, Email: "a@b.com", Name: "A"}))
	manager.Start()
	require.Equal(t, session.StateAuthenticated, manager.State())

	_, err := client.Events(context.Background())
	require.Error(t, err)

	var unauthorized *UnauthorizedError
	require.True(t, stderrors.As(err, &unauthorized))
	assert.Equal(t, NavigateLogin, unauthorized.Navigate)

	assert.Equal(t, session.StateAnonymous, manager.State())
	_, _, ok := store.Load()
	assert.False(t, ok, "401 must clear durable storage")
}
