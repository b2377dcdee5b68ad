package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crmvibe/crmdash/internal/session"
)

func authedAs(email string) session.Session {
	return session.Session{
		Token: "abc",
		User:  session.User{ID: 1, Email: email, Name: "A"},
	}
}

func TestEvaluate(t *testing.T) {
	customers := Route{Name: "customers", AllowEmail: "x@y.com"}
	events := Route{Name: "events"}
	login := Route{Name: "login", Login: true}

	tests := []struct {
		name         string
		state        session.State
		sess         session.Session
		route        Route
		want         Decision
		wantReturnTo string
	}{
		{
			name:  "loading renders nothing",
			state: session.StateLoading,
			route: events,
			want:  DecisionPending,
		},
		{
			name:  "uninitialized renders nothing",
			state: session.StateUninitialized,
			route: events,
			want:  DecisionPending,
		},
		{
			name:         "anonymous redirects to login with return-to",
			state:        session.StateAnonymous,
			route:        events,
			want:         DecisionRedirectLogin,
			wantReturnTo: "events",
		},
		{
			name:         "anonymous never reaches the predicate",
			state:        session.StateAnonymous,
			route:        customers,
			want:         DecisionRedirectLogin,
			wantReturnTo: "customers",
		},
		{
			name:  "authenticated renders unrestricted route",
			state: session.StateAuthenticated,
			sess:  authedAs("anyone@example.com"),
			route: events,
			want:  DecisionRender,
		},
		{
			name:  "predicate match renders",
			state: session.StateAuthenticated,
			sess:  authedAs("x@y.com"),
			route: customers,
			want:  DecisionRender,
		},
		{
			name:  "predicate mismatch goes home, not to login",
			state: session.StateAuthenticated,
			sess:  authedAs("other@y.com"),
			route: customers,
			want:  DecisionRedirectHome,
		},
		{
			name:  "predicate is case-sensitive",
			state: session.StateAuthenticated,
			sess:  authedAs("X@Y.com"),
			route: customers,
			want:  DecisionRedirectHome,
		},
		{
			name:  "login route renders while anonymous",
			state: session.StateAnonymous,
			route: login,
			want:  DecisionRender,
		},
		{
			name:  "login route renders while loading",
			state: session.StateLoading,
			route: login,
			want:  DecisionRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.state, tt.sess, tt.route)
			assert.Equal(t, tt.want, got.Decision)
			assert.Equal(t, tt.wantReturnTo, got.ReturnTo)
		})
	}
}
