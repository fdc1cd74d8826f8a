/*
balance.go - Running and final balance computation

PURPOSE:
  Computes the statement view for one counterparty: the filtered,
  date-ordered slice of ledger entries with a running balance per line
  and a final balance.

SIGN CONVENTION:
  Party and general books read debit - credit (what they owe us);
  supplier and vehicle-income books read credit - debit (what we owe
  them / what the vehicle earned). The convention is a declared
  parameter, never inferred, because the books in this system use
  opposite conventions and guessing from the ledger type has burned
  every system that tried.

PURITY:
  ComputeStatement is a pure function of the entry slice. Re-running
  with the same entries always yields the same balances; no accumulator
  state leaks between calls.

OUTSTANDING vs RUNNING:
  The running balance here starts at 0 for the filtered slice. The
  master-list outstanding summaries (Engine.PartyOutstanding,
  Engine.SupplierOutstanding) are different formulas over the source
  records, defined in records.go and engine.go.

SEE ALSO:
  - engine.go: Statement(), the locked snapshot feeding this
  - records.go: The outstanding-balance arithmetic
*/
package books

// =============================================================================
// SIGN CONVENTION
// =============================================================================

// SignConvention declares how a statement accumulates its running
// balance.
type SignConvention string

const (
	// DebitMinusCredit suits receivable-style books (party, general).
	DebitMinusCredit SignConvention = "debit_minus_credit"

	// CreditMinusDebit suits income/payable-style books (supplier,
	// vehicle_income).
	CreditMinusDebit SignConvention = "credit_minus_debit"
)

// DefaultConvention returns the customary convention for a ledger type.
// Callers may always override; this is a convenience for views that
// don't care.
func DefaultConvention(lt LedgerType) SignConvention {
	switch lt {
	case LedgerSupplier, LedgerVehicleIncome:
		return CreditMinusDebit
	default:
		return DebitMinusCredit
	}
}

// =============================================================================
// STATEMENT
// =============================================================================

// StatementLine is one ledger entry with the running balance after it.
type StatementLine struct {
	Entry   LedgerEntry
	Running Money
}

// Statement is the computed view for one counterparty and book.
type Statement struct {
	ReferenceID  string
	Type         LedgerType
	Convention   SignConvention
	Lines        []StatementLine
	FinalBalance Money
}

// ComputeStatement filters entries to one counterparty key and book,
// restricts to [from, to] (empty bounds are open), orders by date
// ascending (ties broken by entry id for determinism) and accumulates
// the running balance under the given convention.
func ComputeStatement(entries []LedgerEntry, referenceID string, lt LedgerType, from, to string, conv SignConvention) Statement {
	var filtered []LedgerEntry
	for _, e := range entries {
		if e.Type != lt || e.ReferenceID != referenceID {
			continue
		}
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		filtered = append(filtered, e)
	}
	sortEntries(filtered)

	st := Statement{
		ReferenceID: referenceID,
		Type:        lt,
		Convention:  conv,
		Lines:       make([]StatementLine, 0, len(filtered)),
	}
	running := Zero
	for _, e := range filtered {
		delta := e.Debit.Sub(e.Credit)
		if conv == CreditMinusDebit {
			delta = e.Credit.Sub(e.Debit)
		}
		running = running.Add(delta)
		st.Lines = append(st.Lines, StatementLine{Entry: e, Running: running})
	}
	st.FinalBalance = running
	return st
}

// TotalDebit sums the debit side of a statement.
func (s Statement) TotalDebit() Money {
	total := Zero
	for _, l := range s.Lines {
		total = total.Add(l.Entry.Debit)
	}
	return total
}

// TotalCredit sums the credit side of a statement.
func (s Statement) TotalCredit() Money {
	total := Zero
	for _, l := range s.Lines {
		total = total.Add(l.Entry.Credit)
	}
	return total
}
