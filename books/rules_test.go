package books_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func rs(v float64) books.Money { return books.Rupees(v) }

func testSlip() books.LoadingSlip {
	return books.LoadingSlip{
		ID:           "ls-1",
		SlipNumber:   "LS-0001",
		Date:         "2025-04-01",
		Party:        "Agrawal Traders",
		VehicleNo:    "RJ14GA1234",
		FromLocation: "Jaipur",
		ToLocation:   "Mumbai",
		Weight:       rs(24.5),
		Freight:      rs(100000),
		Advance:      rs(30000),
		RTO:          rs(1500),
	}
}

func testMemo() books.Memo {
	return books.Memo{
		MemoNumber:    "MO-1",
		LoadingSlipID: "ls-1",
		Supplier:      "Shree Transport Co",
		Date:          "2025-04-02",
		Freight:       rs(100000),
		Commission:    rs(6000),
		Mamool:        rs(2000),
		Detention:     rs(1000),
		Extra:         rs(500),
	}
}

func sumCredits(entries []books.LedgerEntry) books.Money {
	total := books.Zero
	for _, e := range entries {
		total = total.Add(e.Credit)
	}
	return total
}

// =============================================================================
// MEMO DERIVATION
// =============================================================================

func TestDeriveMemoEntries_OwnVehicle_ThreeLineItems(t *testing.T) {
	// GIVEN: Memo{freight=100000, commission=6000, mamool=2000,
	//        detention=1000, extra=500} on an own vehicle
	// WHEN: Deriving the ledger fan-out
	// THEN: Three vehicle_income credits (main 92000, detention 1000,
	//       extra 500) summing to 93500

	entries := books.DeriveMemoEntries(testMemo(), testSlip(), books.OwnershipOwn)

	require.Len(t, entries, 3)
	byRole := map[books.EntryRole]books.LedgerEntry{}
	for _, e := range entries {
		assert.Equal(t, books.LedgerVehicleIncome, e.Type)
		assert.Equal(t, "RJ14GA1234", e.ReferenceID)
		assert.Equal(t, books.SourceMemo, e.SourceType)
		assert.Equal(t, "MO-1", e.SourceID)
		byRole[e.ID.Role] = e
	}
	assert.True(t, byRole[books.RoleMain].Credit.Equal(rs(92000)))
	assert.True(t, byRole[books.RoleDetention].Credit.Equal(rs(1000)))
	assert.True(t, byRole[books.RoleExtra].Credit.Equal(rs(500)))
	assert.True(t, sumCredits(entries).Equal(rs(93500)))
}

func TestDeriveMemoEntries_OwnVehicle_ZeroDetentionExtra_SingleEntry(t *testing.T) {
	// GIVEN: An own-vehicle memo with no detention or extra
	// WHEN: Deriving the fan-out
	// THEN: Only the main credit is produced

	m := testMemo()
	m.Detention = books.Zero
	m.Extra = books.Zero

	entries := books.DeriveMemoEntries(m, testSlip(), books.OwnershipOwn)

	require.Len(t, entries, 1)
	assert.Equal(t, books.RoleMain, entries[0].ID.Role)
	assert.True(t, entries[0].Credit.Equal(rs(92000)))
}

func TestDeriveMemoEntries_MarketVehicle_SingleSupplierCredit(t *testing.T) {
	// GIVEN: The same memo figures on a market vehicle
	// WHEN: Deriving the fan-out
	// THEN: Exactly one supplier credit of 93500 tagged to the supplier

	entries := books.DeriveMemoEntries(testMemo(), testSlip(), books.OwnershipMarket)

	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, books.LedgerSupplier, e.Type)
	assert.Equal(t, "Shree Transport Co", e.ReferenceID)
	assert.True(t, e.Credit.Equal(rs(93500)))
	assert.True(t, e.Debit.IsZero())
}

// =============================================================================
// BILL DERIVATION
// =============================================================================

func TestDeriveBillEntries_WithTDS_TwoEntries(t *testing.T) {
	// GIVEN: Bill{bill_amount=300000, tds=9000, mamool=2000}
	// WHEN: Deriving the fan-out
	// THEN: Party debit 289000 plus a general debit of 9000 on "TDS A/C"

	b := books.Bill{
		BillNumber:    "BL-1",
		LoadingSlipID: "ls-1",
		Party:         "Agrawal Traders",
		Date:          "2025-04-05",
		BillAmount:    rs(300000),
		Mamool:        rs(2000),
		TDS:           rs(9000),
	}

	entries := books.DeriveBillEntries(b)

	require.Len(t, entries, 2)
	main, tds := entries[0], entries[1]
	assert.Equal(t, books.LedgerParty, main.Type)
	assert.Equal(t, "Agrawal Traders", main.ReferenceID)
	assert.True(t, main.Debit.Equal(rs(289000)))

	assert.Equal(t, books.LedgerGeneral, tds.Type)
	assert.Equal(t, books.TDSAccountName, tds.ReferenceID)
	assert.True(t, tds.Debit.Equal(rs(9000)))
	assert.Equal(t, books.RoleTDS, tds.ID.Role)
}

func TestDeriveBillEntries_NoTDS_SingleEntry(t *testing.T) {
	b := books.Bill{
		BillNumber: "BL-2",
		Party:      "Agrawal Traders",
		Date:       "2025-04-05",
		BillAmount: rs(50000),
		Detention:  rs(1000),
		RTO:        rs(500),
		Penalties:  rs(250),
	}

	entries := books.DeriveBillEntries(b)

	require.Len(t, entries, 1)
	// 50000 + 1000 + 500 - 250
	assert.True(t, entries[0].Debit.Equal(rs(51250)))
}

// =============================================================================
// BANKING VALIDATION & DISPATCH
// =============================================================================

func TestValidateBankingEntry_CategoryCombinations(t *testing.T) {
	cases := []struct {
		name    string
		entry   books.BankingEntry
		wantErr bool
	}{
		{"advance without reference", books.BankingEntry{ID: "b1", Type: books.BankingDebit, Category: books.CategoryMemoAdvance, Amount: rs(100)}, true},
		{"payment without reference", books.BankingEntry{ID: "b2", Type: books.BankingDebit, Category: books.CategoryBillPayment, Amount: rs(100)}, true},
		{"vehicle expense without vehicle", books.BankingEntry{ID: "b3", Type: books.BankingDebit, Category: books.CategoryVehicleExpense, Amount: rs(100)}, true},
		{"credit note without vehicle", books.BankingEntry{ID: "b4", Type: books.BankingCredit, Category: books.CategoryVehicleCreditNote, Amount: rs(100)}, true},
		{"fuel wallet without wallet", books.BankingEntry{ID: "b5", Type: books.BankingDebit, Category: books.CategoryFuelWallet, Amount: rs(100)}, true},
		{"unknown category", books.BankingEntry{ID: "b6", Type: books.BankingDebit, Category: "mystery", Amount: rs(100)}, true},
		{"expense with name is fine", books.BankingEntry{ID: "b7", Type: books.BankingDebit, Category: books.CategoryExpense, ReferenceName: "Garage", Amount: rs(100)}, false},
		{"other without name is fine", books.BankingEntry{ID: "b8", Type: books.BankingCredit, Category: books.CategoryOther, Amount: rs(100)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := books.ValidateBankingEntry(tc.entry)
			if tc.wantErr {
				assert.ErrorIs(t, err, books.ErrInvalidCategory)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifyBankingEffect_PriorityDispatch(t *testing.T) {
	cases := []struct {
		name  string
		entry books.BankingEntry
		class books.Ownership
		want  books.BankingEffect
	}{
		{"memo advance", books.BankingEntry{Category: books.CategoryMemoAdvance, ReferenceID: "MO-1"}, books.OwnershipMarket, books.EffectAdvance},
		{"bill advance", books.BankingEntry{Category: books.CategoryBillAdvance, ReferenceID: "BL-1"}, books.OwnershipMarket, books.EffectAdvance},
		{"memo payment", books.BankingEntry{Category: books.CategoryMemoPayment, ReferenceID: "MO-1"}, books.OwnershipMarket, books.EffectPayment},
		{"own vehicle expense", books.BankingEntry{Category: books.CategoryVehicleExpense, VehicleNo: "RJ14GA1234"}, books.OwnershipOwn, books.EffectVehicleLedger},
		{"own vehicle credit note", books.BankingEntry{Category: books.CategoryVehicleCreditNote, VehicleNo: "RJ14GA1234"}, books.OwnershipOwn, books.EffectVehicleLedger},
		{"market vehicle expense falls to category book", books.BankingEntry{Category: books.CategoryVehicleExpense, VehicleNo: "HR55AB9999", ReferenceName: "Driver"}, books.OwnershipMarket, books.EffectCategoryGeneral},
		{"fuel wallet debit", books.BankingEntry{Category: books.CategoryFuelWallet, Type: books.BankingDebit, ReferenceID: "iocl"}, books.OwnershipMarket, books.EffectWalletTopUp},
		{"fuel wallet credit falls through", books.BankingEntry{Category: books.CategoryFuelWallet, Type: books.BankingCredit, ReferenceID: "iocl"}, books.OwnershipMarket, books.EffectCategoryGeneral},
		{"named expense", books.BankingEntry{Category: books.CategoryExpense, Type: books.BankingDebit, ReferenceName: "Sharma Tyres"}, books.OwnershipMarket, books.EffectNamedGeneral},
		{"anonymous other", books.BankingEntry{Category: books.CategoryOther, Type: books.BankingCredit}, books.OwnershipMarket, books.EffectCategoryGeneral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, books.ClassifyBankingEffect(tc.entry, tc.class))
		})
	}
}

func TestDeriveBankingEntries_VehicleLedgerDirections(t *testing.T) {
	// GIVEN: vehicle_expense and vehicle_credit_note on an own vehicle
	// THEN: Expense posts a debit, credit note posts a credit, both on
	//       the vehicle_expense book

	expense := books.BankingEntry{ID: "bk-1", Type: books.BankingDebit, Category: books.CategoryVehicleExpense, VehicleNo: "RJ14GA1234", Amount: rs(4000), Date: "2025-04-10"}
	note := books.BankingEntry{ID: "bk-2", Type: books.BankingCredit, Category: books.CategoryVehicleCreditNote, VehicleNo: "RJ14GA1234", Amount: rs(1500), Date: "2025-04-11"}

	got := books.DeriveBankingEntries(expense, books.EffectVehicleLedger)
	require.Len(t, got, 1)
	assert.Equal(t, books.LedgerVehicleExpense, got[0].Type)
	assert.True(t, got[0].Debit.Equal(rs(4000)))

	got = books.DeriveBankingEntries(note, books.EffectVehicleLedger)
	require.Len(t, got, 1)
	assert.True(t, got[0].Credit.Equal(rs(1500)))
}

func TestDeriveBankingEntries_GeneralBookTagging(t *testing.T) {
	named := books.BankingEntry{ID: "bk-3", Type: books.BankingCredit, Category: books.CategoryOther, ReferenceName: "Mehta Finance", Amount: rs(20000), Date: "2025-04-12"}
	anon := books.BankingEntry{ID: "bk-4", Type: books.BankingDebit, Category: books.CategoryExpense, Amount: rs(900), Date: "2025-04-12"}

	got := books.DeriveBankingEntries(named, books.EffectNamedGeneral)
	require.Len(t, got, 1)
	assert.Equal(t, "Mehta Finance", got[0].ReferenceID)
	assert.True(t, got[0].Credit.Equal(rs(20000)))

	got = books.DeriveBankingEntries(anon, books.EffectCategoryGeneral)
	require.Len(t, got, 1)
	assert.Equal(t, "expense", got[0].ReferenceID)
	assert.True(t, got[0].Debit.Equal(rs(900)))
}

func TestDeriveBankingEntries_NoEntriesForLinkEffects(t *testing.T) {
	adv := books.BankingEntry{ID: "bk-5", Category: books.CategoryMemoAdvance, ReferenceID: "MO-1", Amount: rs(5000)}
	assert.Nil(t, books.DeriveBankingEntries(adv, books.EffectAdvance))
	assert.Nil(t, books.DeriveBankingEntries(adv, books.EffectPayment))
	assert.Nil(t, books.DeriveBankingEntries(adv, books.EffectWalletTopUp))
}

// =============================================================================
// FUEL DERIVATION
// =============================================================================

func TestDeriveFuelEntries_OwnVehicle_SingleExpense(t *testing.T) {
	a := books.FuelAllocation{ID: "fa-1", Date: "2025-04-15", WalletID: "iocl", VehicleNo: "RJ14GA1234", Amount: rs(8000)}

	entries := books.DeriveFuelEntries(a, books.OwnershipOwn)

	require.Len(t, entries, 1)
	assert.Equal(t, books.LedgerVehicleExpense, entries[0].Type)
	assert.True(t, entries[0].Debit.Equal(rs(8000)))
}

func TestDeriveFuelEntries_MarketVehicle_TwoAuditableSides(t *testing.T) {
	// GIVEN: Fuel issued to a market vehicle
	// THEN: A vehicle_fuel debit on the vehicle AND a fuel_wallet debit
	//       on the wallet, separately retrievable

	a := books.FuelAllocation{ID: "fa-2", Date: "2025-04-15", WalletID: "iocl", VehicleNo: "HR55AB9999", Amount: rs(6000)}

	entries := books.DeriveFuelEntries(a, books.OwnershipMarket)

	require.Len(t, entries, 2)
	byType := map[books.LedgerType]books.LedgerEntry{}
	for _, e := range entries {
		byType[e.Type] = e
	}
	assert.Equal(t, "HR55AB9999", byType[books.LedgerVehicleFuel].ReferenceID)
	assert.Equal(t, "iocl", byType[books.LedgerFuelWallet].ReferenceID)
	assert.True(t, byType[books.LedgerVehicleFuel].Debit.Equal(rs(6000)))
	assert.True(t, byType[books.LedgerFuelWallet].Debit.Equal(rs(6000)))
}
