/*
errors.go - Centralized error types for the books engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (the API layer, the persistence bootstrap) match on these with
  errors.Is / errors.As.

ERROR CATEGORIES:
  1. Reference errors - An event names a record that doesn't exist
  2. Validation errors - A banking entry declares an invalid category
     combination
  3. Retraction mismatch - Retracting entries that are already gone
     (recoverable; logged and ignored so replay stays idempotent)

PROPAGATION POLICY:
  Derivation errors are synchronous and surface before any state is
  mutated. The engine guarantees all-or-nothing per event: a caller
  either sees full success or a clean rejection with prior state intact.

SEE ALSO:
  - engine.go: Where these are raised
  - rules.go: Category validation
*/
package books

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrReferenceNotFound is returned when an event references a memo,
	// bill, loading slip or wallet that does not exist in current state.
	// The operation is rejected; partial posting corrupts balances.
	ErrReferenceNotFound = errors.New("referenced record not found")

	// ErrInvalidCategory is returned when a banking entry declares a
	// category combination that cannot be derived (vehicle category
	// without a vehicle number, advance category without a reference).
	ErrInvalidCategory = errors.New("invalid category combination")

	// ErrRetractionMismatch marks a retraction of entries that no longer
	// exist. Treated as a recoverable no-op with a logged warning, since
	// idempotent retraction is required for safe replay.
	ErrRetractionMismatch = errors.New("retraction mismatch: entries already retracted")

	// ErrDuplicateDocument is returned when creating a record whose
	// number/id already exists.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrDocumentReferenced is returned when deleting a record that
	// other records still point at (e.g. a memo with linked advances).
	ErrDocumentReferenced = errors.New("document still referenced")

	// ErrInsufficientWallet is returned when a fuel allocation exceeds
	// the wallet's current balance.
	ErrInsufficientWallet = errors.New("insufficient fuel wallet balance")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ReferenceError reports which reference was missing.
type ReferenceError struct {
	Kind string // "loading_slip", "memo", "bill", "vehicle", "wallet", "banking_entry", "fuel_allocation"
	Ref  string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Ref)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// CategoryError reports why a banking entry's category combination is
// invalid, before any derivation runs.
type CategoryError struct {
	Category BankingCategory
	Missing  string // which field the category requires
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %q requires %s", e.Category, e.Missing)
}

func (e *CategoryError) Unwrap() error { return ErrInvalidCategory }

// WalletBalanceError reports a fuel allocation exceeding the wallet.
type WalletBalanceError struct {
	WalletID  string
	Available Money
	Requested Money
}

func (e *WalletBalanceError) Error() string {
	return fmt.Sprintf("wallet %s: available %v, requested %v",
		e.WalletID, e.Available, e.Requested)
}

func (e *WalletBalanceError) Unwrap() error { return ErrInsufficientWallet }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrDuplicateDocument) ||
		errors.Is(err, ErrDocumentReferenced) ||
		errors.Is(err, ErrInsufficientWallet)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReferenceNotFound)
}
