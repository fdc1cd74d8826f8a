/*
rules.go - Ledger derivation rules

PURPOSE:
  Pure functions mapping one domain event to the set of ledger entries
  (and side effects) it produces. Every derived entry is keyed by
  EntryID{sourceID, role} so the engine can retract a source event as a
  set-difference.

MEMO FAN-OUT:
  Own vehicle:    vehicle_income credit (freight - commission - mamool)
                  plus separate detention / extra credits when nonzero.
                  Kept as distinct line items so vehicle reports can
                  break them out.
  Market vehicle: exactly one supplier credit for
                  freight - commission - mamool + detention + extra.

BILL FAN-OUT:
  One party debit for the bill net amount; when tds > 0, an additional
  general debit of the TDS amount tagged "TDS A/C". TDS is a receivable
  held by a statutory account, not lost value.

BANKING DISPATCH:
  The closed category set routes to exactly one of six effects, in
  priority order:
    1. advance     (memo_advance / bill_advance)  -> advance link, no entry
    2. payment     (memo_payment / bill_payment)  -> payment bucket, no entry
    3. vehicle     (vehicle_expense / vehicle_credit_note on an own
                    vehicle)                      -> vehicle_expense entry
    4. wallet      (fuel_wallet debit)            -> wallet top-up, no entry
    5. named       (reference name present)       -> general entry per name
    6. category    (fallthrough)                  -> general entry per category
  Mutual exclusivity by category is an invariant; nothing combines.

FUEL ALLOCATION:
  Own vehicle:    one vehicle_expense debit (only net cost matters).
  Market vehicle: a vehicle_fuel debit on the vehicle AND a fuel_wallet
                  debit on the wallet, kept separate so wallet depletion
                  and vehicle cost are each independently auditable.

PURITY:
  Nothing here touches engine state. Validation errors are returned
  before the caller mutates anything.

SEE ALSO:
  - engine.go: Applies and retracts these fan-outs atomically
  - classify.go: The ownership answer the memo/vehicle rules consult
*/
package books

// =============================================================================
// MEMO RULES
// =============================================================================

// DeriveMemoEntries maps a memo (with its originating slip and the trip
// vehicle's ownership class at this moment) to its ledger fan-out.
func DeriveMemoEntries(m Memo, slip LoadingSlip, class Ownership) []LedgerEntry {
	base := m.Freight.Sub(m.Commission).Sub(m.Mamool)

	if class == OwnershipOwn {
		entries := []LedgerEntry{{
			ID:            EntryID{SourceID: m.MemoNumber, Role: RoleMain},
			Type:          LedgerVehicleIncome,
			ReferenceID:   slip.VehicleNo,
			ReferenceName: slip.VehicleNo,
			Date:          m.Date,
			Credit:        base,
			SourceType:    SourceMemo,
			SourceID:      m.MemoNumber,
			Narration:     "freight income " + m.MemoNumber,
		}}
		if !m.Detention.IsZero() {
			entries = append(entries, LedgerEntry{
				ID:            EntryID{SourceID: m.MemoNumber, Role: RoleDetention},
				Type:          LedgerVehicleIncome,
				ReferenceID:   slip.VehicleNo,
				ReferenceName: slip.VehicleNo,
				Date:          m.Date,
				Credit:        m.Detention,
				SourceType:    SourceMemo,
				SourceID:      m.MemoNumber,
				Narration:     "detention " + m.MemoNumber,
			})
		}
		if !m.Extra.IsZero() {
			entries = append(entries, LedgerEntry{
				ID:            EntryID{SourceID: m.MemoNumber, Role: RoleExtra},
				Type:          LedgerVehicleIncome,
				ReferenceID:   slip.VehicleNo,
				ReferenceName: slip.VehicleNo,
				Date:          m.Date,
				Credit:        m.Extra,
				SourceType:    SourceMemo,
				SourceID:      m.MemoNumber,
				Narration:     "extra " + m.MemoNumber,
			})
		}
		return entries
	}

	// Market vehicle: a single supplier payable.
	return []LedgerEntry{{
		ID:            EntryID{SourceID: m.MemoNumber, Role: RoleMain},
		Type:          LedgerSupplier,
		ReferenceID:   m.Supplier,
		ReferenceName: m.Supplier,
		Date:          m.Date,
		Credit:        base.Add(m.Detention).Add(m.Extra),
		SourceType:    SourceMemo,
		SourceID:      m.MemoNumber,
		Narration:     "memo " + m.MemoNumber,
	}}
}

// =============================================================================
// BILL RULES
// =============================================================================

// DeriveBillEntries maps a bill to its ledger fan-out: one party debit
// for the net amount, plus a TDS receivable entry when tds > 0.
func DeriveBillEntries(b Bill) []LedgerEntry {
	entries := []LedgerEntry{{
		ID:            EntryID{SourceID: b.BillNumber, Role: RoleMain},
		Type:          LedgerParty,
		ReferenceID:   b.Party,
		ReferenceName: b.Party,
		Date:          b.Date,
		Debit:         b.NetAmount(),
		SourceType:    SourceBill,
		SourceID:      b.BillNumber,
		Narration:     "bill " + b.BillNumber,
	}}
	if b.TDS.IsPositive() {
		entries = append(entries, LedgerEntry{
			ID:            EntryID{SourceID: b.BillNumber, Role: RoleTDS},
			Type:          LedgerGeneral,
			ReferenceID:   TDSAccountName,
			ReferenceName: TDSAccountName,
			Date:          b.Date,
			Debit:         b.TDS,
			SourceType:    SourceBill,
			SourceID:      b.BillNumber,
			Narration:     "tds on bill " + b.BillNumber,
		})
	}
	return entries
}

// =============================================================================
// BANKING RULES
// =============================================================================

// BankingEffect is the single downstream effect a banking entry routes
// to. The switch over it in engine.go is exhaustive; adding a category
// is a type-checked decision, not a string comparison.
type BankingEffect int

const (
	// EffectAdvance attaches an AdvancePayment to the referenced
	// memo/bill. No ledger entry; the advance reduces outstanding
	// balance at read time.
	EffectAdvance BankingEffect = iota

	// EffectPayment settles the referenced memo/bill. No ledger entry;
	// the net-amount entries are already posted and a payment entry
	// would double count.
	EffectPayment

	// EffectVehicleLedger posts a vehicle_expense entry (debit for an
	// expense, credit for a credit note) on an own vehicle.
	EffectVehicleLedger

	// EffectWalletTopUp increases the named fuel wallet's balance. The
	// wallet balance is the system of record for this category.
	EffectWalletTopUp

	// EffectNamedGeneral posts one general entry tagged to the
	// reference name. This is how ad-hoc per-person ledgers accumulate.
	EffectNamedGeneral

	// EffectCategoryGeneral posts one general entry tagged to the
	// category string itself (no reference name given).
	EffectCategoryGeneral
)

// ValidateBankingEntry rejects invalid category combinations before any
// derivation runs.
func ValidateBankingEntry(e BankingEntry) error {
	valid := false
	for _, c := range BankingCategories {
		if e.Category == c {
			valid = true
			break
		}
	}
	if !valid {
		return &CategoryError{Category: e.Category, Missing: "a known category"}
	}

	switch e.Category {
	case CategoryMemoAdvance, CategoryBillAdvance,
		CategoryMemoPayment, CategoryBillPayment:
		if e.ReferenceID == "" {
			return &CategoryError{Category: e.Category, Missing: "reference_id"}
		}
	case CategoryVehicleExpense, CategoryVehicleCreditNote:
		if e.VehicleNo == "" {
			return &CategoryError{Category: e.Category, Missing: "vehicle_no"}
		}
	case CategoryFuelWallet:
		if e.ReferenceID == "" {
			return &CategoryError{Category: e.Category, Missing: "reference_id (wallet)"}
		}
	}
	return nil
}

// ClassifyBankingEffect resolves the one effect a banking entry
// produces, in the documented priority order. The entry must already be
// validated. class is the ownership of e.VehicleNo (ignored for
// non-vehicle categories).
func ClassifyBankingEffect(e BankingEntry, class Ownership) BankingEffect {
	switch e.Category {
	case CategoryMemoAdvance, CategoryBillAdvance:
		return EffectAdvance
	case CategoryMemoPayment, CategoryBillPayment:
		return EffectPayment
	case CategoryVehicleExpense, CategoryVehicleCreditNote:
		if class == OwnershipOwn {
			return EffectVehicleLedger
		}
		// Market vehicles have no internal vehicle ledger; the cost
		// already lives in the supplier memo. Falls through to the
		// general book.
	case CategoryFuelWallet:
		if e.Type == BankingDebit {
			return EffectWalletTopUp
		}
	}
	if e.ReferenceName != "" && !isVehicleScoped(e.Category) {
		return EffectNamedGeneral
	}
	return EffectCategoryGeneral
}

func isVehicleScoped(c BankingCategory) bool {
	return c == CategoryVehicleExpense ||
		c == CategoryVehicleCreditNote ||
		c == CategoryFuelWallet
}

// DeriveBankingEntries returns the ledger entries for the effects that
// post one (EffectVehicleLedger, EffectNamedGeneral,
// EffectCategoryGeneral); nil for the others.
func DeriveBankingEntries(e BankingEntry, effect BankingEffect) []LedgerEntry {
	switch effect {
	case EffectVehicleLedger:
		entry := LedgerEntry{
			ID:            EntryID{SourceID: e.ID, Role: RoleMain},
			Type:          LedgerVehicleExpense,
			ReferenceID:   e.VehicleNo,
			ReferenceName: e.VehicleNo,
			Date:          e.Date,
			SourceType:    SourceBanking,
			SourceID:      e.ID,
			Narration:     e.Narration,
		}
		if e.Category == CategoryVehicleCreditNote {
			entry.Credit = e.Amount
		} else {
			entry.Debit = e.Amount
		}
		return []LedgerEntry{entry}

	case EffectNamedGeneral, EffectCategoryGeneral:
		ref := e.ReferenceName
		if effect == EffectCategoryGeneral {
			ref = string(e.Category)
		}
		entry := LedgerEntry{
			ID:            EntryID{SourceID: e.ID, Role: RoleMain},
			Type:          LedgerGeneral,
			ReferenceID:   ref,
			ReferenceName: ref,
			Date:          e.Date,
			SourceType:    SourceBanking,
			SourceID:      e.ID,
			Narration:     e.Narration,
		}
		if e.Type == BankingDebit {
			entry.Debit = e.Amount
		} else {
			entry.Credit = e.Amount
		}
		return []LedgerEntry{entry}
	}
	return nil
}

// =============================================================================
// FUEL ALLOCATION RULES
// =============================================================================

// DeriveFuelEntries maps a fuel allocation to its ledger fan-out based
// on the vehicle's ownership class.
func DeriveFuelEntries(a FuelAllocation, class Ownership) []LedgerEntry {
	if class == OwnershipOwn {
		return []LedgerEntry{{
			ID:            EntryID{SourceID: a.ID, Role: RoleMain},
			Type:          LedgerVehicleExpense,
			ReferenceID:   a.VehicleNo,
			ReferenceName: a.VehicleNo,
			Date:          a.Date,
			Debit:         a.Amount,
			SourceType:    SourceFuel,
			SourceID:      a.ID,
			Narration:     "fuel from wallet " + a.WalletID,
		}}
	}

	// Market vehicle: wallet depletion and vehicle cost are posted
	// separately so each side stays auditable.
	return []LedgerEntry{
		{
			ID:            EntryID{SourceID: a.ID, Role: RoleFuel},
			Type:          LedgerVehicleFuel,
			ReferenceID:   a.VehicleNo,
			ReferenceName: a.VehicleNo,
			Date:          a.Date,
			Debit:         a.Amount,
			SourceType:    SourceFuel,
			SourceID:      a.ID,
			Narration:     "fuel from wallet " + a.WalletID,
		},
		{
			ID:            EntryID{SourceID: a.ID, Role: RoleWallet},
			Type:          LedgerFuelWallet,
			ReferenceID:   a.WalletID,
			ReferenceName: a.WalletID,
			Date:          a.Date,
			Debit:         a.Amount,
			SourceType:    SourceFuel,
			SourceID:      a.ID,
			Narration:     "fuel issued to " + a.VehicleNo,
		},
	}
}
