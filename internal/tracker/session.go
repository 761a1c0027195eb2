// ABOUTME: Session value object threaded through presentation calls
// ABOUTME: Immutable snapshots of the current account and vehicle selection

package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/torquelabs/torque-tracker/internal/store"
)

// Session carries the current account and vehicle selection through
// presentation calls. It is a value: the With/Clear methods return modified
// copies, so no two collaborators ever share mutable session state.
//
// Entities held by a session are snapshots; after a mutating controller
// call the collaborator re-fetches and threads a fresh session.
type Session struct {
	ID        string
	StartedAt time.Time
	Account   *store.Account
	Vehicle   *store.Vehicle
}

// NewSession creates an empty, unauthenticated session.
func NewSession() Session {
	return Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
}

// WithAccount returns a copy of the session signed in as the given account.
// Any vehicle selection is dropped - it belonged to the previous account.
func (s Session) WithAccount(account *store.Account) Session {
	s.Account = account
	s.Vehicle = nil
	return s
}

// WithVehicle returns a copy of the session with the given vehicle selected.
func (s Session) WithVehicle(vehicle *store.Vehicle) Session {
	s.Vehicle = vehicle
	return s
}

// Clear returns a signed-out copy of the session, keeping its identity.
func (s Session) Clear() Session {
	s.Account = nil
	s.Vehicle = nil
	return s
}

// Authenticated reports whether the session has a signed-in account.
func (s Session) Authenticated() bool {
	return s.Account != nil
}

// IsAdmin reports whether the signed-in account has the admin flag.
func (s Session) IsAdmin() bool {
	return s.Account != nil && s.Account.Admin
}
