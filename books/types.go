/*
Package books provides the ledger-derivation engine for a road-transport
accounting system.

PURPOSE:
  This package contains the value types and algorithms that turn domain
  events (memo, bill, banking and fuel events) into a deterministic set
  of derived ledger entries and balances. Loading slips record trips,
  memos record supplier payables, bills record party receivables, and
  banking entries record cash movement; everything the ledger shows is
  derived from those records and from the vehicle master data.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: Decimal rupee amounts (no floating-point drift)
  - EntryID: Deterministic derived-entry identity (source id + role)
  - LedgerEntry: The derived record all balance views read
  - LedgerType: Which book an entry belongs to (party, supplier, ...)

DESIGN PRINCIPLES:
  1. Derivation: Ledger entries are never authored, only derived
  2. Retractability: Entry identity is a pure function of its source,
     so retraction is a set-difference, not a search
  3. Precision: Uses decimal.Decimal for all amounts
  4. Plain dates: Entries carry ISO YYYY-MM-DD strings; formatting is
     the presentation layer's problem

USAGE:
  id := books.EntryID{SourceID: "MO-1", Role: books.RoleMain}
  entry := books.LedgerEntry{
      ID:          id,
      Type:        books.LedgerSupplier,
      ReferenceID: "Shree Transport Co",
      Credit:      books.Rupees(93500),
  }

SEE ALSO:
  - records.go: The domain records entries are derived from
  - rules.go: Event -> entries derivation rules
  - balance.go: Running and outstanding balance computation
*/
package books

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Decimal rupee amounts
// =============================================================================

// Money is a decimal amount in rupees. Alias so decimal arithmetic
// (Add, Sub, Neg, Cmp) is available directly.
type Money = decimal.Decimal

func Rupees(v float64) Money { return decimal.NewFromFloat(v) }

func RupeesFromInt(v int64) Money { return decimal.NewFromInt(v) }

// MustParseMoney parses a decimal string, returning zero on bad input.
func MustParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Zero is the additive identity for Money.
var Zero = decimal.Zero

// =============================================================================
// DERIVED ENTRY IDENTITY
// =============================================================================

// EntryRole distinguishes the ledger entries fanned out from one source
// event. The (SourceID, Role) pair is the entry's full identity.
type EntryRole string

const (
	RoleMain      EntryRole = "main"
	RoleDetention EntryRole = "detention"
	RoleExtra     EntryRole = "extra"
	RoleTDS       EntryRole = "tds"
	RoleFuel      EntryRole = "fuel"   // vehicle side of a market fuel allocation
	RoleWallet    EntryRole = "wallet" // wallet side of a market fuel allocation
)

// EntryID is the deterministic identity of a derived ledger entry.
//
// INVARIANT: EntryID is a pure function of (source event id, role).
// Retracting a source event removes all and only the entries whose
// SourceID matches - no orphans, no duplicates.
type EntryID struct {
	SourceID string
	Role     EntryRole
}

func (id EntryID) String() string {
	return fmt.Sprintf("%s#%s", id.SourceID, id.Role)
}

// =============================================================================
// LEDGER ENTRY - The derived record
// =============================================================================

// LedgerType identifies which book a derived entry belongs to.
type LedgerType string

const (
	LedgerParty          LedgerType = "party"
	LedgerSupplier       LedgerType = "supplier"
	LedgerGeneral        LedgerType = "general"
	LedgerVehicleIncome  LedgerType = "vehicle_income"
	LedgerVehicleExpense LedgerType = "vehicle_expense"
	LedgerFuelWallet     LedgerType = "fuel_wallet"
	LedgerVehicleFuel    LedgerType = "vehicle_fuel"
)

// SourceType identifies the kind of event an entry was derived from.
type SourceType string

const (
	SourceMemo    SourceType = "memo"
	SourceBill    SourceType = "bill"
	SourceBanking SourceType = "banking"
	SourceFuel    SourceType = "fuel_allocation"
)

// TDSAccountName is the fixed statutory account that holds TDS
// receivables derived from bills.
const TDSAccountName = "TDS A/C"

// LedgerEntry is a single derived posting. Entries are never mutated in
// place; an update to the source event is always modeled as
// retract-then-reinsert.
type LedgerEntry struct {
	ID            EntryID
	Type          LedgerType
	ReferenceID   string // counterparty key: party, supplier, vehicle no, wallet id, "TDS A/C"
	ReferenceName string
	Date          string // ISO YYYY-MM-DD
	Debit         Money
	Credit        Money
	SourceType    SourceType
	SourceID      string
	Narration     string
}
