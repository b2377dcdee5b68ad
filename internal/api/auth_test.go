package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmvibe/crmdash/internal/errors"
)

func TestExchangeGoogleToken_Success(t *testing.T) {
	var gotBody exchangeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/google", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer","user":{"id":1,"email":"a@b.com","name":"A","picture":null}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	sess, err := client.ExchangeGoogleToken(context.Background(), "valid-ext-token")
	require.NoError(t, err)

	assert.Equal(t, "valid-ext-token", gotBody.Token)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, int64(1), sess.User.ID)
	assert.Equal(t, "a@b.com", sess.User.Email)
	assert.Nil(t, sess.User.Picture)
}

func TestExchangeGoogleToken_Failure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail message surfaced",
			status:  http.StatusBadRequest,
			body:    `{"detail":"invalid token"}`,
			wantMsg: "invalid token",
		},
		{
			name:    "missing detail falls back",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantMsg: "Login failed",
		},
		{
			name:    "unparsable error body falls back",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "Login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client := NewClient(srv.URL, nil)
			_, err := client.ExchangeGoogleToken(context.Background(), "bad-ext-token")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var dashErr *errors.DashError
			require.True(t, stderrors.As(err, &dashErr))
			assert.Equal(t, errors.ErrCodeAuthExchangeFailed, dashErr.Code)
		})
	}
}

func TestExchangeGoogleToken_MalformedSuccessBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `ok`},
		{name: "missing access_token", body: `{"user":{"id":1,"email":"a@b.com","name":"A","picture":null}}`},
		{name: "missing user email", body: `{"access_token":"abc","user":{"id":1,"name":"A","picture":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client := NewClient(srv.URL, nil)
			_, err := client.ExchangeGoogleToken(context.Background(), "valid-ext-token")
			require.Error(t, err)

			var dashErr *errors.DashError
			require.True(t, stderrors.As(err, &dashErr))
			assert.Equal(t, errors.ErrCodeAPIMalformedBody, dashErr.Code)
		})
	}
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.com","name":"A","picture":null}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	client.BindSession(&fakeSessions{token: "abc"})

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}
