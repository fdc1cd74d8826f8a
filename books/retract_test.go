package books

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Retraction is idempotent by contract: retracting entries that are
// already gone must warn and change nothing, never fail. These tests
// exercise the internals directly because the public event API guards
// double deletion at the document level.

func TestRetractBySource_SecondCallIsWarnedNoOp(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	e := NewEngine(log)

	e.insertEntries([]LedgerEntry{
		{ID: EntryID{SourceID: "MO-1", Role: RoleMain}, Type: LedgerSupplier, ReferenceID: "S", SourceID: "MO-1", Credit: Rupees(100)},
		{ID: EntryID{SourceID: "MO-1", Role: RoleDetention}, Type: LedgerSupplier, ReferenceID: "S", SourceID: "MO-1", Credit: Rupees(10)},
		{ID: EntryID{SourceID: "MO-2", Role: RoleMain}, Type: LedgerSupplier, ReferenceID: "S", SourceID: "MO-2", Credit: Rupees(50)},
	})

	e.retractBySource("MO-1")
	require.Len(t, e.entries, 1)
	assert.Nil(t, hook.LastEntry())

	e.retractBySource("MO-1")

	require.Len(t, e.entries, 1)
	_, survives := e.entries[EntryID{SourceID: "MO-2", Role: RoleMain}]
	assert.True(t, survives)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, ErrRetractionMismatch.Error(), hook.LastEntry().Message)
}

func TestUnlinkAdvance_MissingLinkReturnsFalse(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	e := NewEngine(log)
	e.memos["MO-1"] = Memo{MemoNumber: "MO-1", Supplier: "S"}

	ok := e.unlinkAdvance(BankingEntry{
		ID: "bk-gone", Category: CategoryMemoAdvance, ReferenceID: "MO-1", Amount: Rupees(500),
	})

	assert.False(t, ok)
}

func TestUnapplyPayment_ReversesSettlement(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	e := NewEngine(log)
	e.memos["MO-1"] = Memo{
		MemoNumber: "MO-1", Supplier: "S",
		Freight:    Rupees(1000),
		Status:     MemoPaid,
		PaidAmount: Rupees(1000),
		PaidDate:   "2025-04-20",
	}

	ok := e.unapplyPayment(BankingEntry{
		ID: "bk-pay", Category: CategoryMemoPayment, ReferenceID: "MO-1",
		Amount: Rupees(1000), Date: "2025-04-20",
	})

	require.True(t, ok)
	m := e.memos["MO-1"]
	assert.True(t, m.PaidAmount.IsZero())
	assert.Equal(t, MemoPending, m.Status)
	assert.Empty(t, m.PaidDate)
}
