// Package guard decides whether a view may render for the current session
// state. It is a pure decision function: callers interpret the returned
// decision, the guard itself never navigates.
package guard

import "github.com/crmvibe/crmdash/internal/session"

// Decision is the outcome of evaluating a route against session state.
type Decision int

const (
	// DecisionPending means the session load has not resolved yet.
	// Callers must render nothing and must not commit to a redirect,
	// or a valid stored session would be discarded by a startup race.
	DecisionPending Decision = iota
	// DecisionRender means the view may render.
	DecisionRender
	// DecisionRedirectLogin means no session is active; go to login.
	DecisionRedirectLogin
	// DecisionRedirectHome means the session is valid but not authorized
	// for this specific view; go home, not to login.
	DecisionRedirectHome
)

// String returns the string representation of the decision
func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Route describes a guarded view.
type Route struct {
	// Name identifies the route; it is carried on login redirects so a
	// successful login can return the user to where they were headed.
	Name string

	// Login marks the login route itself, which is exempt from guarding
	// and never redirects to itself.
	Login bool

	// AllowEmail, when non-empty, restricts the route to the session
	// whose email equals it exactly. Comparison is case-sensitive with
	// no normalization. Empty means any authenticated session may enter.
	AllowEmail string
}

// Result is a guard decision plus the redirect bookkeeping.
type Result struct {
	Decision Decision

	// ReturnTo is the originally requested route name, set on
	// DecisionRedirectLogin so login can return the user there.
	// Best-effort: losing it is acceptable, not a correctness issue.
	ReturnTo string
}

// Evaluate decides whether route may render given the manager's state.
//
// The authorization predicate is evaluated only after a session is
// confirmed present; an unauthenticated request never reaches it.
func Evaluate(state session.State, sess session.Session, route Route) Result {
	if route.Login {
		return Result{Decision: DecisionRender}
	}

	switch state {
	case session.StateUninitialized, session.StateLoading:
		return Result{Decision: DecisionPending}
	case session.StateAnonymous:
		return Result{Decision: DecisionRedirectLogin, ReturnTo: route.Name}
	}

	if route.AllowEmail != "" && sess.User.Email != route.AllowEmail {
		return Result{Decision: DecisionRedirectHome}
	}

	return Result{Decision: DecisionRender}
}
