package sqlite_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func quietEngine() *books.Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return books.NewEngine(log)
}

func TestStore_BootstrapRebuildsDerivedState(t *testing.T) {
	// GIVEN: Source records persisted across every table
	// WHEN: Bootstrapping a fresh engine
	// THEN: Ledger entries, advance links and wallet balances are all
	//       rebuilt from the sources alone

	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveVehicle(ctx, books.Vehicle{
		VehicleNo: "HR55AB9999", Ownership: books.OwnershipMarket, OwnerName: "Shree Transport Co",
	}))
	require.NoError(t, store.SaveLoadingSlip(ctx, books.LoadingSlip{
		ID: "ls-1", SlipNumber: "LS-0001", Date: "2025-04-01",
		Party: "Agrawal Traders", VehicleNo: "HR55AB9999",
		Freight: books.Rupees(100000), Advance: books.Rupees(30000),
	}))
	require.NoError(t, store.SaveWallet(ctx, books.FuelWallet{
		ID: "iocl", Name: "IOCL XtraPower", OpeningBalance: books.Rupees(20000),
	}))
	require.NoError(t, store.SaveMemo(ctx, books.Memo{
		MemoNumber: "MO-1", LoadingSlipID: "ls-1", Supplier: "Shree Transport Co",
		Date: "2025-04-02", Freight: books.Rupees(100000),
		Commission: books.Rupees(6000), Mamool: books.Rupees(2000),
		Detention: books.Rupees(1000), Extra: books.Rupees(500),
	}))
	require.NoError(t, store.SaveBankingEntry(ctx, books.BankingEntry{
		ID: "bk-adv", Type: books.BankingDebit, Category: books.CategoryMemoAdvance,
		Amount: books.Rupees(50000), Date: "2025-04-03", ReferenceID: "MO-1",
	}))
	require.NoError(t, store.SaveFuelAllocation(ctx, books.FuelAllocation{
		ID: "fa-1", Date: "2025-04-15", WalletID: "iocl", VehicleNo: "HR55AB9999",
		Amount: books.Rupees(6000),
	}))

	eng := quietEngine()
	require.NoError(t, store.Bootstrap(ctx, eng))

	assert.True(t, eng.SupplierOutstanding("Shree Transport Co").Equal(books.Rupees(43500)))
	m, found := eng.GetMemo("MO-1")
	require.True(t, found)
	require.Len(t, m.AdvancePayments, 1)
	assert.Equal(t, "bk-adv", m.AdvancePayments[0].ID)

	w, found := eng.GetWallet("iocl")
	require.True(t, found)
	assert.True(t, w.Balance.Equal(books.Rupees(14000)))

	// Supplier credit + two fuel entries for the market vehicle.
	assert.Len(t, eng.LedgerEntries(), 3)
}

func TestStore_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	m := books.Memo{
		MemoNumber: "MO-1", LoadingSlipID: "ls-1", Supplier: "Shree Transport Co",
		Date: "2025-04-02", Freight: books.Rupees(100000),
	}
	require.NoError(t, store.SaveMemo(ctx, m))
	m.Freight = books.Rupees(80000)
	require.NoError(t, store.SaveMemo(ctx, m))

	memos, err := store.ListMemos(ctx)
	require.NoError(t, err)
	require.Len(t, memos, 1)
	assert.True(t, memos[0].Freight.Equal(books.Rupees(80000)))
}

func TestStore_BankingEntriesOrderedByDateThenID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	entries := []books.BankingEntry{
		{ID: "bk-c", Type: books.BankingDebit, Category: books.CategoryOther, Amount: books.Rupees(1), Date: "2025-04-10"},
		{ID: "bk-a", Type: books.BankingDebit, Category: books.CategoryOther, Amount: books.Rupees(2), Date: "2025-04-12"},
		{ID: "bk-b", Type: books.BankingDebit, Category: books.CategoryOther, Amount: books.Rupees(3), Date: "2025-04-10"},
	}
	for _, e := range entries {
		require.NoError(t, store.SaveBankingEntry(ctx, e))
	}

	got, err := store.ListBankingEntries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "bk-b", got[0].ID)
	assert.Equal(t, "bk-c", got[1].ID)
	assert.Equal(t, "bk-a", got[2].ID)
}

func TestStore_MoneySurvivesRoundTripExactly(t *testing.T) {
	// Paisa-level amounts must come back exactly; TEXT storage, never
	// floating point.

	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveWallet(ctx, books.FuelWallet{
		ID: "hp", Name: "HP Pay", OpeningBalance: books.MustParseMoney("10000.05"),
	}))

	wallets, err := store.ListWallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "10000.05", wallets[0].OpeningBalance.String())
}

func TestStore_ResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveVehicle(ctx, books.Vehicle{VehicleNo: "RJ14GA1234", Ownership: books.OwnershipOwn}))
	require.NoError(t, store.SaveBankingEntry(ctx, books.BankingEntry{
		ID: "bk-1", Type: books.BankingDebit, Category: books.CategoryOther,
		Amount: books.Rupees(100), Date: "2025-04-10",
	}))

	require.NoError(t, store.Reset(ctx))

	vehicles, err := store.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
	banking, err := store.ListBankingEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, banking)
}
