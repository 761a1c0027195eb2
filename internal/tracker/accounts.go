// ABOUTME: Account controller - validation, credential handling, and privilege rules
// ABOUTME: Owns authentication and the lazy legacy-credential migration

package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/torquelabs/torque-tracker/internal/credential"
	"github.com/torquelabs/torque-tracker/internal/store"
)

// Accounts provides domain operations over account persistence. All
// validation and security logic lives here; callers never touch the store
// or credentials directly.
type Accounts struct {
	store       store.AccountStore
	logger      *slog.Logger
	allowLegacy bool
}

// AccountsOptions configures optional controller behavior.
type AccountsOptions struct {
	// AllowLegacyCredentials enables the plaintext-credential compatibility
	// path in Authenticate. Fresh deployments should leave it off.
	AllowLegacyCredentials bool
}

// NewAccounts creates an account controller backed by the given store, with
// legacy credential compatibility enabled.
func NewAccounts(s store.AccountStore) *Accounts {
	return NewAccountsWithOptions(s, AccountsOptions{AllowLegacyCredentials: true})
}

// NewAccountsWithOptions creates an account controller with explicit options.
func NewAccountsWithOptions(s store.AccountStore, opts AccountsOptions) *Accounts {
	return &Accounts{
		store:       s,
		logger:      slog.Default().With("component", "accounts"),
		allowLegacy: opts.AllowLegacyCredentials,
	}
}

// List returns all accounts ordered by username ascending.
func (a *Accounts) List(ctx context.Context) ([]*store.Account, error) {
	return a.store.ListAccounts(ctx)
}

// Get returns the account with the given id, or nil if it does not exist.
func (a *Accounts) Get(ctx context.Context, id int64) (*store.Account, error) {
	account, err := a.store.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return account, err
}

// Create creates a new account with a hashed password credential.
// Returns a ValidationError for an empty username or password and a
// ConflictError when the trimmed username is already taken.
func (a *Accounts) Create(ctx context.Context, username, password string, admin bool) (*store.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Reason: "username cannot be empty"}
	}
	if strings.TrimSpace(password) == "" {
		return nil, &ValidationError{Reason: "password cannot be empty"}
	}

	// Pre-check so duplicates surface as a typed conflict instead of a raw
	// constraint violation. The unique index still backstops races.
	_, err := a.store.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil, &ConflictError{Reason: fmt.Sprintf("account %q already exists", username)}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	stored, err := credential.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &store.Account{
		Username:           username,
		PasswordCredential: stored,
		Admin:              admin,
	}
	if err := a.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, &ConflictError{Reason: fmt.Sprintf("account %q already exists", username)}
		}
		return nil, err
	}

	return account, nil
}

// Authenticate verifies a password against the account's stored credential.
// Unknown ids authenticate false, not as an error.
//
// A successful verification against a legacy plaintext credential rewrites
// the stored value to its hashed form before returning - a one-time
// migration triggered by first login, invisible to the caller.
func (a *Accounts) Authenticate(ctx context.Context, id int64, password string) (bool, error) {
	account, err := a.store.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	cred := credential.Parse(account.PasswordCredential)
	if cred.Kind == credential.KindLegacyPlaintext && !a.allowLegacy {
		a.logger.Warn("rejected legacy credential", "id", id)
		return false, nil
	}
	if !cred.Verify(password) {
		return false, nil
	}

	if cred.Kind == credential.KindLegacyPlaintext {
		hashed, err := credential.Hash(password)
		if err != nil {
			return false, fmt.Errorf("hashing migrated credential: %w", err)
		}
		if err := a.store.UpdateAccountCredential(ctx, id, hashed); err != nil {
			return false, fmt.Errorf("migrating legacy credential: %w", err)
		}
		a.logger.Info("migrated legacy credential", "id", id)
	}

	return true, nil
}

// SetPassword replaces the account's credential with the hash of the new
// password, overwriting any legacy value. Returns a ValidationError for an
// empty password.
func (a *Accounts) SetPassword(ctx context.Context, id int64, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return &ValidationError{Reason: "password cannot be empty"}
	}

	stored, err := credential.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return a.store.UpdateAccountCredential(ctx, id, stored)
}

// SetAdmin sets the account's admin flag. Demoting the last remaining admin
// is rejected with a ConflictError so the system always keeps at least one.
func (a *Accounts) SetAdmin(ctx context.Context, id int64, admin bool) error {
	if !admin {
		if err := a.guardLastAdmin(ctx, id); err != nil {
			return err
		}
	}
	return a.store.UpdateAccountAdmin(ctx, id, admin)
}

// Delete removes the account and cascades to its vehicles and their mileage
// records. Deleting an unknown id is a no-op. Deleting the last remaining
// admin is rejected with a ConflictError.
func (a *Accounts) Delete(ctx context.Context, id int64) error {
	if err := a.guardLastAdmin(ctx, id); err != nil {
		return err
	}
	return a.store.DeleteAccount(ctx, id)
}

// guardLastAdmin returns a ConflictError when removing admin rights from
// (or deleting) the given account would leave zero admins. Unknown accounts
// pass; the store decides what happens to them.
func (a *Accounts) guardLastAdmin(ctx context.Context, id int64) error {
	account, err := a.store.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !account.Admin {
		return nil
	}

	count, err := a.store.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return &ConflictError{Reason: "at least one admin account must remain"}
	}
	return nil
}
