// Package store provides persistent storage for torque-tracker using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with one interface
// per entity:
//
//   - AccountStore: login accounts with credentials and the admin flag
//   - VehicleStore: vehicles owned by accounts
//   - MileageStore: odometer entries and their statistics
//
// SQLiteStore implements all interfaces in a single struct. Controllers in
// internal/tracker depend only on the narrow interface they need.
//
// # Data Model
//
// Ownership is strict: an Account owns zero-or-more Vehicles, a Vehicle owns
// zero-or-more MileageRecords. Deleting an owner cascades to all children via
// foreign keys; no orphans are ever left behind.
//
// Row-to-entity mapping happens at the store boundary: every query scans into
// typed fields, so a missing or mistyped column fails loudly here rather than
// surfacing as a zero value in domain code.
//
// # SQLite Configuration
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The foreign_keys pragma is mandatory - SQLite ships with cascade
// enforcement disabled. The connection pool is capped at one connection;
// the store is a single-writer embedded database, not a server.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested entity does not exist
//   - ErrUsernameExists: account username uniqueness violation
//   - ErrOwnerMissing: vehicle insert referencing a non-existent account
//
// Deletes are idempotent and succeed silently for absent ids. All methods
// accept context.Context for cancellation support.
package store
