/*
records.go - Domain records the derivations read

PURPOSE:
  Immutable-shaped value types for the transport business nouns:
  LoadingSlip (a trip), Memo (payable to the supplying transporter),
  Bill (receivable from the shipping party), BankingEntry (bank/cash
  movement), Vehicle, FuelWallet and FuelAllocation.

ARITHMETIC CONTRACTS:
  Slip balance       = freight - advance
  Slip total freight = freight + rto
  Memo net           = freight - commission - mamool + detention + extra + rto
  Memo outstanding   = freight - advances - commission - mamool
                       + detention + extra - payments   (RTO excluded)
  Bill net           = bill_amount + detention + extra + rto
                       - mamool - penalties - tds

  The memo outstanding formula excludes RTO while the net amount
  includes it. That asymmetry is deliberate: RTO is reimbursed through
  the net-amount channel, not through the supplier balance.

RELATIONSHIPS:
  All references are one-directional lookups by stable key
  (memo -> loading_slip_id, banking -> memo_number/bill_number).
  No record embeds a mutable back-pointer.

SEE ALSO:
  - rules.go: How each record fans out into ledger entries
  - engine.go: The collections that own these records
*/
package books

// =============================================================================
// LOADING SLIP - One physical trip
// =============================================================================

type LoadingSlip struct {
	ID           string
	SlipNumber   string // unique, sequential
	Date         string // ISO YYYY-MM-DD
	Party        string
	VehicleNo    string
	FromLocation string
	ToLocation   string
	Weight       Money
	Freight      Money
	Advance      Money
	RTO          Money
}

// Balance is the freight still due after the trip advance.
func (s LoadingSlip) Balance() Money { return s.Freight.Sub(s.Advance) }

// TotalFreight includes the RTO charge.
func (s LoadingSlip) TotalFreight() Money { return s.Freight.Add(s.RTO) }

// =============================================================================
// ADVANCE PAYMENT - Sub-record linking a banking advance to its parent
// =============================================================================

// AdvancePayment is attached to a Memo or Bill when a banking entry of
// an advance category references it. ID equals the banking entry id so
// the link can be torn down when that entry is edited or deleted.
type AdvancePayment struct {
	ID        string // banking entry id (back-link for retraction)
	Date      string
	Amount    Money
	Narration string
}

func sumAdvances(advances []AdvancePayment) Money {
	total := Zero
	for _, a := range advances {
		total = total.Add(a.Amount)
	}
	return total
}

// =============================================================================
// MEMO - Amount owed to the supplier who performed a trip
// =============================================================================

type MemoStatus string

const (
	MemoPending MemoStatus = "pending"
	MemoPaid    MemoStatus = "paid"
)

type Memo struct {
	MemoNumber    string // unique
	LoadingSlipID string
	Supplier      string
	Date          string
	Freight       Money
	Commission    Money
	Mamool        Money
	Detention     Money
	Extra         Money
	RTO           Money

	Status     MemoStatus
	PaidDate   string
	PaidAmount Money

	// Owned by the engine; derived from banking advance entries.
	AdvancePayments []AdvancePayment
}

// NetAmount is the canonical payable before advances.
// freight - commission - mamool + detention + extra + rto
func (m Memo) NetAmount() Money {
	return m.Freight.
		Sub(m.Commission).
		Sub(m.Mamool).
		Add(m.Detention).
		Add(m.Extra).
		Add(m.RTO)
}

// TotalAdvance sums the linked advance payments.
func (m Memo) TotalAdvance() Money { return sumAdvances(m.AdvancePayments) }

// Outstanding is the supplier-balance view of what remains payable.
// RTO is excluded here even though NetAmount includes it.
func (m Memo) Outstanding() Money {
	return m.Freight.
		Sub(m.TotalAdvance()).
		Sub(m.Commission).
		Sub(m.Mamool).
		Add(m.Detention).
		Add(m.Extra).
		Sub(m.PaidAmount)
}

// =============================================================================
// BILL - Amount owed by a party (client)
// =============================================================================

type BillStatus string

const (
	BillPending  BillStatus = "pending"
	BillReceived BillStatus = "received"
)

type Bill struct {
	BillNumber    string // unique
	LoadingSlipID string
	Party         string
	Date          string
	BillAmount    Money
	Mamool        Money
	TDS           Money
	Penalties     Money
	Detention     Money
	Extra         Money
	RTO           Money

	Status         BillStatus
	ReceivedDate   string
	ReceivedAmount Money

	// Owned by the engine; derived from banking advance entries.
	AdvancePayments []AdvancePayment
}

// NetAmount is the canonical receivable.
// bill_amount + detention + extra + rto - mamool - penalties - tds
func (b Bill) NetAmount() Money {
	return b.BillAmount.
		Add(b.Detention).
		Add(b.Extra).
		Add(b.RTO).
		Sub(b.Mamool).
		Sub(b.Penalties).
		Sub(b.TDS)
}

// TotalAdvance sums the linked advance payments.
func (b Bill) TotalAdvance() Money { return sumAdvances(b.AdvancePayments) }

// Outstanding is what the party still owes on this bill.
func (b Bill) Outstanding() Money {
	return b.NetAmount().Sub(b.TotalAdvance()).Sub(b.ReceivedAmount)
}

// =============================================================================
// BANKING ENTRY - A bank or cash transaction
// =============================================================================

type BankingType string

const (
	BankingCredit BankingType = "credit"
	BankingDebit  BankingType = "debit"
)

// BankingCategory is the closed set of transaction categories. Each
// category routes to exactly one downstream effect (see rules.go).
type BankingCategory string

const (
	CategoryBillAdvance       BankingCategory = "bill_advance"
	CategoryBillPayment       BankingCategory = "bill_payment"
	CategoryMemoAdvance       BankingCategory = "memo_advance"
	CategoryMemoPayment       BankingCategory = "memo_payment"
	CategoryExpense           BankingCategory = "expense"
	CategoryFuelWallet        BankingCategory = "fuel_wallet"
	CategoryVehicleExpense    BankingCategory = "vehicle_expense"
	CategoryVehicleCreditNote BankingCategory = "vehicle_credit_note"
	CategoryOther             BankingCategory = "other"
)

// BankingCategories lists every valid category, for validation.
var BankingCategories = []BankingCategory{
	CategoryBillAdvance, CategoryBillPayment,
	CategoryMemoAdvance, CategoryMemoPayment,
	CategoryExpense, CategoryFuelWallet,
	CategoryVehicleExpense, CategoryVehicleCreditNote,
	CategoryOther,
}

type BankingEntry struct {
	ID            string
	Type          BankingType
	Category      BankingCategory
	Amount        Money
	Date          string
	ReferenceID   string // memo_number/bill_number for advance/payment, wallet id for fuel_wallet
	ReferenceName string
	VehicleNo     string // required for vehicle_expense / vehicle_credit_note
	Narration     string
}

// =============================================================================
// VEHICLE & FUEL
// =============================================================================

type Vehicle struct {
	VehicleNo string
	Ownership Ownership
	OwnerName string
}

// FuelWallet is a prepaid balance held with a fuel vendor. Balance is
// materialized by the engine: opening + fuel_wallet banking debits
// - allocations.
type FuelWallet struct {
	ID             string
	Name           string
	OpeningBalance Money
	Balance        Money
}

// FuelAllocation records fuel issued from a wallet to a vehicle. It is
// the per-vehicle fuel consumption record.
type FuelAllocation struct {
	ID        string
	Date      string
	WalletID  string
	VehicleNo string
	Amount    Money
	Narration string
}
