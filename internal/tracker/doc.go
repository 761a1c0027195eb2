// Package tracker implements the domain controllers for torque-tracker.
//
// # Overview
//
// Three controllers sit between the presentation layer and the store:
//
//   - Accounts: account lifecycle, authentication, credential migration,
//     and the admin-count safety invariant
//   - Vehicles: vehicle lifecycle with name validation
//   - Mileage: odometer entries and their statistics
//
// Controllers validate input, call the store, and return entities or typed
// failures. The presentation layer performs no validation or security logic
// of its own - duplicating it there would let the two drift apart.
//
// # Error Taxonomy
//
//   - *ValidationError: malformed or missing input; recoverable, re-prompt
//   - *ConflictError: uniqueness or invariant violation; recoverable, retry
//   - Not found: lookups return nil (or false for Authenticate), never an error
//   - Anything else is a store failure, propagated wrapped and unclassified
//
// Match with errors.As, or the IsValidation/IsConflict helpers.
//
// # Privilege Safety
//
// SetAdmin and Delete refuse to remove the last remaining admin account,
// returning a *ConflictError. The invariant is enforced here, in the core,
// so it holds for every caller rather than depending on UI-side checks.
//
// # Sessions
//
// Session is an immutable value threaded through presentation calls in
// place of shared mutable "current user / current vehicle" state. The
// With/Clear methods return copies.
package tracker
