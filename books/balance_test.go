package books_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
)

func supplierEntries() []books.LedgerEntry {
	return []books.LedgerEntry{
		{
			ID: books.EntryID{SourceID: "MO-2", Role: books.RoleMain}, Type: books.LedgerSupplier,
			ReferenceID: "Shree Transport Co", Date: "2025-04-10", Credit: rs(40000),
			SourceType: books.SourceMemo, SourceID: "MO-2",
		},
		{
			ID: books.EntryID{SourceID: "MO-1", Role: books.RoleMain}, Type: books.LedgerSupplier,
			ReferenceID: "Shree Transport Co", Date: "2025-04-02", Credit: rs(93500),
			SourceType: books.SourceMemo, SourceID: "MO-1",
		},
		{
			ID: books.EntryID{SourceID: "bk-1", Role: books.RoleMain}, Type: books.LedgerSupplier,
			ReferenceID: "Shree Transport Co", Date: "2025-04-05", Debit: rs(50000),
			SourceType: books.SourceBanking, SourceID: "bk-1",
		},
		// Different counterparty, must be filtered out.
		{
			ID: books.EntryID{SourceID: "MO-9", Role: books.RoleMain}, Type: books.LedgerSupplier,
			ReferenceID: "Verma Logistics", Date: "2025-04-03", Credit: rs(7000),
			SourceType: books.SourceMemo, SourceID: "MO-9",
		},
		// Same counterparty key on a different book, must be filtered out.
		{
			ID: books.EntryID{SourceID: "bk-2", Role: books.RoleMain}, Type: books.LedgerGeneral,
			ReferenceID: "Shree Transport Co", Date: "2025-04-04", Debit: rs(100),
			SourceType: books.SourceBanking, SourceID: "bk-2",
		},
	}
}

func TestComputeStatement_RunningBalanceInDateOrder(t *testing.T) {
	// GIVEN: Supplier entries inserted out of date order
	// WHEN: Computing the statement under credit - debit
	// THEN: Lines appear date ascending with a cumulative running
	//       balance per line

	st := books.ComputeStatement(supplierEntries(), "Shree Transport Co",
		books.LedgerSupplier, "", "", books.CreditMinusDebit)

	require.Len(t, st.Lines, 3)
	assert.Equal(t, "2025-04-02", st.Lines[0].Entry.Date)
	assertRs(t, 93500, st.Lines[0].Running)
	assert.Equal(t, "2025-04-05", st.Lines[1].Entry.Date)
	assertRs(t, 43500, st.Lines[1].Running)
	assert.Equal(t, "2025-04-10", st.Lines[2].Entry.Date)
	assertRs(t, 83500, st.Lines[2].Running)
	assertRs(t, 83500, st.FinalBalance)
}

func TestComputeStatement_ConventionsAreMirrors(t *testing.T) {
	entries := supplierEntries()

	a := books.ComputeStatement(entries, "Shree Transport Co",
		books.LedgerSupplier, "", "", books.CreditMinusDebit)
	b := books.ComputeStatement(entries, "Shree Transport Co",
		books.LedgerSupplier, "", "", books.DebitMinusCredit)

	assert.True(t, a.FinalBalance.Equal(b.FinalBalance.Neg()))
}

func TestComputeStatement_DateRangeFilter(t *testing.T) {
	st := books.ComputeStatement(supplierEntries(), "Shree Transport Co",
		books.LedgerSupplier, "2025-04-03", "2025-04-09", books.CreditMinusDebit)

	require.Len(t, st.Lines, 1)
	assert.Equal(t, "bk-1", st.Lines[0].Entry.SourceID)
	assertRs(t, -50000, st.FinalBalance)
}

func TestComputeStatement_IsPure(t *testing.T) {
	// Same inputs twice must give identical balances; no accumulator
	// state may survive a call.

	entries := supplierEntries()
	first := books.ComputeStatement(entries, "Shree Transport Co",
		books.LedgerSupplier, "", "", books.CreditMinusDebit)
	second := books.ComputeStatement(entries, "Shree Transport Co",
		books.LedgerSupplier, "", "", books.CreditMinusDebit)

	assert.Equal(t, first, second)
}

func TestStatement_DebitCreditTotals(t *testing.T) {
	st := books.ComputeStatement(supplierEntries(), "Shree Transport Co",
		books.LedgerSupplier, "", "", books.CreditMinusDebit)

	assertRs(t, 50000, st.TotalDebit())
	assertRs(t, 133500, st.TotalCredit())
}

func TestDefaultConvention_PerBook(t *testing.T) {
	assert.Equal(t, books.CreditMinusDebit, books.DefaultConvention(books.LedgerSupplier))
	assert.Equal(t, books.CreditMinusDebit, books.DefaultConvention(books.LedgerVehicleIncome))
	assert.Equal(t, books.DebitMinusCredit, books.DefaultConvention(books.LedgerParty))
	assert.Equal(t, books.DebitMinusCredit, books.DefaultConvention(books.LedgerGeneral))
	assert.Equal(t, books.DebitMinusCredit, books.DefaultConvention(books.LedgerVehicleExpense))
}
