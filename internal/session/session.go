// Package session owns the client-side authentication state: the durable
// token store and the in-memory session manager layered on top of it.
//
// Exactly one session is active at a time (or none). The manager is the
// single source of truth for in-memory state; the store holds a serialized
// mirror for durability only.
package session

import "context"

// User is the authenticated user profile returned by the backend.
type User struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

// Session is the authenticated identity plus the opaque bearer credential
// presented to the backend on every request.
type Session struct {
	Token string
	User  User
}

// Exchanger trades an external identity-provider credential for a
// backend-issued session. Implemented by the API client.
type Exchanger interface {
	ExchangeGoogleToken(ctx context.Context, externalToken string) (Session, error)
}
