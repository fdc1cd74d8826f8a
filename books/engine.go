/*
engine.go - Materialized collections and event orchestration

PURPOSE:
  The Engine owns every collection (slips, memos, bills, banking
  entries, vehicles, wallets, allocations, derived ledger entries) and
  applies the derivation rules on every mutation. It is the in-memory
  event log of the system; persistence is an external collaborator
  invoked by the caller after a mutation succeeds.

CRITICAL INVARIANTS:
  1. ATOMIC EVENTS: Validation and derivation complete before any
     collection is touched; a rejected event leaves prior state
     unchanged. Partial fan-out is never observable.
  2. RETRACT-THEN-REINSERT: Ledger entries are never edited; an update
     retracts the old fan-out and applies the new one.
  3. IDEMPOTENT RETRACTION: Retracting entries that are already gone is
     a logged-warning no-op, so replays are safe.
  4. SINGLE WRITER: Mutations serialize on one lock; reads take a
     consistent snapshot and may run concurrently with each other.

RECOMPUTE:
  Vehicle master data may change after a memo was derived, leaving
  stale entries. RecomputeAll rebuilds all derived state (entries,
  advance links, payment settlement, wallet balances) as a pure fold
  over the source records against the current registry. It is a full
  replay, not an incremental patch, and is idempotent.

SEE ALSO:
  - rules.go: The pure derivations applied here
  - advance.go: Advance linking / payment settlement helpers
  - balance.go: The read path over the entries owned here
*/
package books

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the current materialized state and applies derivation
// rules on every event. All collections are maps keyed by stable id or
// document number; relationships are resolved by lookup, never by
// embedded pointers.
type Engine struct {
	mu  sync.RWMutex
	log logrus.FieldLogger

	vehicles    *VehicleRegistry
	slips       map[string]LoadingSlip // by id
	memos       map[string]Memo        // by memo number
	bills       map[string]Bill        // by bill number
	banking     map[string]BankingEntry
	wallets     map[string]FuelWallet
	allocations map[string]FuelAllocation
	entries     map[EntryID]LedgerEntry
}

// NewEngine creates an empty engine. A nil logger falls back to the
// standard logrus logger.
func NewEngine(log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		log:         log,
		vehicles:    NewVehicleRegistry(),
		slips:       make(map[string]LoadingSlip),
		memos:       make(map[string]Memo),
		bills:       make(map[string]Bill),
		banking:     make(map[string]BankingEntry),
		wallets:     make(map[string]FuelWallet),
		allocations: make(map[string]FuelAllocation),
		entries:     make(map[EntryID]LedgerEntry),
	}
}

// Reset drops every record and derived entry, returning the engine to
// its freshly constructed state. Used by scenario loaders and tests.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vehicles = NewVehicleRegistry()
	e.slips = make(map[string]LoadingSlip)
	e.memos = make(map[string]Memo)
	e.bills = make(map[string]Bill)
	e.banking = make(map[string]BankingEntry)
	e.wallets = make(map[string]FuelWallet)
	e.allocations = make(map[string]FuelAllocation)
	e.entries = make(map[EntryID]LedgerEntry)
}

// =============================================================================
// VEHICLE MASTER DATA
// =============================================================================

// PutVehicle registers or corrects a vehicle. Changing ownership does
// not patch previously derived entries; call RecomputeAll to reconcile.
func (e *Engine) PutVehicle(v Vehicle) {
	if v.Ownership != OwnershipOwn {
		v.Ownership = OwnershipMarket
	}
	e.vehicles.Put(v)
}

func (e *Engine) RemoveVehicle(vehicleNo string) { e.vehicles.Remove(vehicleNo) }

func (e *Engine) Vehicles() []Vehicle { return e.vehicles.List() }

func (e *Engine) GetVehicle(vehicleNo string) (Vehicle, bool) { return e.vehicles.Get(vehicleNo) }

// Classify answers the ownership class for a vehicle number.
func (e *Engine) Classify(vehicleNo string) Ownership { return e.vehicles.Classify(vehicleNo) }

// =============================================================================
// LOADING SLIPS
// =============================================================================

// PutLoadingSlip creates or updates a slip. Slip edits cascade no
// ledger effect themselves; only memo/bill events do.
func (e *Engine) PutLoadingSlip(s LoadingSlip) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, other := range e.slips {
		if id != s.ID && other.SlipNumber == s.SlipNumber {
			return ErrDuplicateDocument
		}
	}
	e.slips[s.ID] = s
	return nil
}

// DeleteLoadingSlip removes a slip that no memo or bill references.
func (e *Engine) DeleteLoadingSlip(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.slips[id]; !ok {
		return &ReferenceError{Kind: "loading_slip", Ref: id}
	}
	for _, m := range e.memos {
		if m.LoadingSlipID == id {
			return ErrDocumentReferenced
		}
	}
	for _, b := range e.bills {
		if b.LoadingSlipID == id {
			return ErrDocumentReferenced
		}
	}
	delete(e.slips, id)
	return nil
}

func (e *Engine) GetLoadingSlip(id string) (LoadingSlip, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.slips[id]
	return s, ok
}

func (e *Engine) LoadingSlips() []LoadingSlip {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]LoadingSlip, 0, len(e.slips))
	for _, s := range e.slips {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlipNumber < out[j].SlipNumber })
	return out
}

// =============================================================================
// FUEL WALLETS
// =============================================================================

// CreateWallet registers a fuel-vendor wallet.
func (e *Engine) CreateWallet(w FuelWallet) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.wallets[w.ID]; ok {
		return ErrDuplicateDocument
	}
	w.Balance = w.OpeningBalance
	e.wallets[w.ID] = w
	return nil
}

// DeleteWallet removes a wallet nothing references.
func (e *Engine) DeleteWallet(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.wallets[id]; !ok {
		return &ReferenceError{Kind: "wallet", Ref: id}
	}
	for _, a := range e.allocations {
		if a.WalletID == id {
			return ErrDocumentReferenced
		}
	}
	for _, b := range e.banking {
		if b.Category == CategoryFuelWallet && b.ReferenceID == id {
			return ErrDocumentReferenced
		}
	}
	delete(e.wallets, id)
	return nil
}

func (e *Engine) GetWallet(id string) (FuelWallet, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	w, ok := e.wallets[id]
	return w, ok
}

func (e *Engine) Wallets() []FuelWallet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]FuelWallet, 0, len(e.wallets))
	for _, w := range e.wallets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// =============================================================================
// MEMO EVENTS
// =============================================================================

// OnMemoCreated derives and posts the memo's ledger fan-out based on
// the trip vehicle's ownership class at this moment.
func (e *Engine) OnMemoCreated(m Memo) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.memos[m.MemoNumber]; ok {
		return ErrDuplicateDocument
	}
	slip, ok := e.slips[m.LoadingSlipID]
	if !ok {
		return &ReferenceError{Kind: "loading_slip", Ref: m.LoadingSlipID}
	}

	entries := DeriveMemoEntries(m, slip, e.vehicles.Classify(slip.VehicleNo))

	m.AdvancePayments = nil
	m.PaidAmount = Zero
	m.PaidDate = ""
	m.Status = MemoPending
	e.memos[m.MemoNumber] = m
	e.insertEntries(entries)
	return nil
}

// OnMemoUpdated retracts the old fan-out and applies the new one.
// Settlement state (advances, payments, status) stays with the engine.
func (e *Engine) OnMemoUpdated(m Memo) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.memos[m.MemoNumber]
	if !ok {
		return &ReferenceError{Kind: "memo", Ref: m.MemoNumber}
	}
	slip, ok := e.slips[m.LoadingSlipID]
	if !ok {
		return &ReferenceError{Kind: "loading_slip", Ref: m.LoadingSlipID}
	}

	entries := DeriveMemoEntries(m, slip, e.vehicles.Classify(slip.VehicleNo))

	m.AdvancePayments = old.AdvancePayments
	m.PaidAmount = old.PaidAmount
	m.PaidDate = old.PaidDate
	m.Status = memoStatusFor(m)
	e.retractBySource(m.MemoNumber)
	e.memos[m.MemoNumber] = m
	e.insertEntries(entries)
	return nil
}

// OnMemoDeleted retracts all entries derived from the memo. A memo
// still referenced by banking entries cannot be deleted; remove those
// first so no advance or payment link dangles.
func (e *Engine) OnMemoDeleted(memoNumber string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.memos[memoNumber]; !ok {
		return &ReferenceError{Kind: "memo", Ref: memoNumber}
	}
	for _, b := range e.banking {
		if b.ReferenceID == memoNumber &&
			(b.Category == CategoryMemoAdvance || b.Category == CategoryMemoPayment) {
			return ErrDocumentReferenced
		}
	}
	e.retractBySource(memoNumber)
	delete(e.memos, memoNumber)
	return nil
}

func (e *Engine) GetMemo(memoNumber string) (Memo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.memos[memoNumber]
	if ok {
		m.AdvancePayments = append([]AdvancePayment{}, m.AdvancePayments...)
	}
	return m, ok
}

func (e *Engine) Memos() []Memo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Memo, 0, len(e.memos))
	for _, m := range e.memos {
		m.AdvancePayments = append([]AdvancePayment{}, m.AdvancePayments...)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemoNumber < out[j].MemoNumber })
	return out
}

// =============================================================================
// BILL EVENTS
// =============================================================================

// OnBillCreated derives and posts the bill's ledger fan-out.
func (e *Engine) OnBillCreated(b Bill) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.bills[b.BillNumber]; ok {
		return ErrDuplicateDocument
	}
	if _, ok := e.slips[b.LoadingSlipID]; !ok {
		return &ReferenceError{Kind: "loading_slip", Ref: b.LoadingSlipID}
	}

	entries := DeriveBillEntries(b)

	b.AdvancePayments = nil
	b.ReceivedAmount = Zero
	b.ReceivedDate = ""
	b.Status = BillPending
	e.bills[b.BillNumber] = b
	e.insertEntries(entries)
	return nil
}

// OnBillUpdated retracts the old fan-out and applies the new one.
func (e *Engine) OnBillUpdated(b Bill) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.bills[b.BillNumber]
	if !ok {
		return &ReferenceError{Kind: "bill", Ref: b.BillNumber}
	}
	if _, ok := e.slips[b.LoadingSlipID]; !ok {
		return &ReferenceError{Kind: "loading_slip", Ref: b.LoadingSlipID}
	}

	entries := DeriveBillEntries(b)

	b.AdvancePayments = old.AdvancePayments
	b.ReceivedAmount = old.ReceivedAmount
	b.ReceivedDate = old.ReceivedDate
	b.Status = billStatusFor(b)
	e.retractBySource(b.BillNumber)
	e.bills[b.BillNumber] = b
	e.insertEntries(entries)
	return nil
}

// OnBillDeleted retracts both the party and TDS entries by bill number.
func (e *Engine) OnBillDeleted(billNumber string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.bills[billNumber]; !ok {
		return &ReferenceError{Kind: "bill", Ref: billNumber}
	}
	for _, b := range e.banking {
		if b.ReferenceID == billNumber &&
			(b.Category == CategoryBillAdvance || b.Category == CategoryBillPayment) {
			return ErrDocumentReferenced
		}
	}
	e.retractBySource(billNumber)
	delete(e.bills, billNumber)
	return nil
}

func (e *Engine) GetBill(billNumber string) (Bill, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bills[billNumber]
	if ok {
		b.AdvancePayments = append([]AdvancePayment{}, b.AdvancePayments...)
	}
	return b, ok
}

func (e *Engine) Bills() []Bill {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Bill, 0, len(e.bills))
	for _, b := range e.bills {
		b.AdvancePayments = append([]AdvancePayment{}, b.AdvancePayments...)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BillNumber < out[j].BillNumber })
	return out
}

// =============================================================================
// BANKING EVENTS
// =============================================================================

// OnBankingEntryCreated validates the entry, resolves its single
// downstream effect and applies it.
func (e *Engine) OnBankingEntryCreated(entry BankingEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.banking[entry.ID]; ok {
		return ErrDuplicateDocument
	}
	if err := e.validateBankingRefs(entry); err != nil {
		return err
	}

	if err := e.applyBankingEffect(entry); err != nil {
		return err
	}
	e.banking[entry.ID] = entry
	return nil
}

// OnBankingEntryUpdated retracts the old entry's effect and applies the
// new one. Advance back-links are torn down and rebuilt, never left
// dangling.
func (e *Engine) OnBankingEntryUpdated(entry BankingEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.banking[entry.ID]
	if !ok {
		return &ReferenceError{Kind: "banking_entry", Ref: entry.ID}
	}
	if err := e.validateBankingRefs(entry); err != nil {
		return err
	}

	e.retractBankingEffect(old)
	if err := e.applyBankingEffect(entry); err != nil {
		// Validation above makes this unreachable; restore the old
		// effect so the failed update is still all-or-nothing.
		_ = e.applyBankingEffect(old)
		return err
	}
	e.banking[entry.ID] = entry
	return nil
}

// OnBankingEntryDeleted fully retracts whichever effect applied,
// including wallet-balance reversal for fuel_wallet entries.
func (e *Engine) OnBankingEntryDeleted(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.banking[id]
	if !ok {
		return &ReferenceError{Kind: "banking_entry", Ref: id}
	}
	e.retractBankingEffect(old)
	delete(e.banking, id)
	return nil
}

func (e *Engine) GetBankingEntry(id string) (BankingEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.banking[id]
	return b, ok
}

func (e *Engine) BankingEntries() []BankingEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]BankingEntry, 0, len(e.banking))
	for _, b := range e.banking {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// validateBankingRefs rejects invalid category combinations and
// missing references before any state changes.
func (e *Engine) validateBankingRefs(entry BankingEntry) error {
	if err := ValidateBankingEntry(entry); err != nil {
		return err
	}
	switch entry.Category {
	case CategoryMemoAdvance, CategoryMemoPayment:
		if _, ok := e.memos[entry.ReferenceID]; !ok {
			return &ReferenceError{Kind: "memo", Ref: entry.ReferenceID}
		}
	case CategoryBillAdvance, CategoryBillPayment:
		if _, ok := e.bills[entry.ReferenceID]; !ok {
			return &ReferenceError{Kind: "bill", Ref: entry.ReferenceID}
		}
	case CategoryFuelWallet:
		if entry.Type == BankingDebit {
			if _, ok := e.wallets[entry.ReferenceID]; !ok {
				return &ReferenceError{Kind: "wallet", Ref: entry.ReferenceID}
			}
		}
	}
	return nil
}

// applyBankingEffect applies exactly one of the six category effects.
// Callers validate first; the switch is exhaustive over BankingEffect.
func (e *Engine) applyBankingEffect(entry BankingEntry) error {
	effect := ClassifyBankingEffect(entry, e.vehicles.Classify(entry.VehicleNo))
	switch effect {
	case EffectAdvance:
		return e.linkAdvance(entry)
	case EffectPayment:
		return e.applyPayment(entry)
	case EffectWalletTopUp:
		w := e.wallets[entry.ReferenceID]
		w.Balance = w.Balance.Add(entry.Amount)
		e.wallets[entry.ReferenceID] = w
		return nil
	case EffectVehicleLedger, EffectNamedGeneral, EffectCategoryGeneral:
		e.insertEntries(DeriveBankingEntries(entry, effect))
		return nil
	}
	return nil
}

// retractBankingEffect undoes a previously applied banking entry.
// Posted ledger entries are removed by source id, so retraction stays
// correct even if the vehicle's ownership changed since the entry was
// applied. Missing links are RetractionMismatch no-ops.
func (e *Engine) retractBankingEffect(old BankingEntry) {
	switch old.Category {
	case CategoryMemoAdvance, CategoryBillAdvance:
		if !e.unlinkAdvance(old) {
			e.warnMismatch("advance link", old.ID)
		}
		return
	case CategoryMemoPayment, CategoryBillPayment:
		if !e.unapplyPayment(old) {
			e.warnMismatch("payment", old.ID)
		}
		return
	case CategoryFuelWallet:
		if old.Type == BankingDebit {
			w, ok := e.wallets[old.ReferenceID]
			if !ok {
				e.warnMismatch("wallet top-up", old.ID)
				return
			}
			w.Balance = w.Balance.Sub(old.Amount)
			e.wallets[old.ReferenceID] = w
			return
		}
	}
	e.retractBySource(old.ID)
}

// =============================================================================
// FUEL ALLOCATION EVENTS
// =============================================================================

// OnFuelAllocated decrements the wallet, records the per-vehicle fuel
// expense and posts the ownership-dependent ledger fan-out.
func (e *Engine) OnFuelAllocated(a FuelAllocation) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.allocations[a.ID]; ok {
		return ErrDuplicateDocument
	}
	w, ok := e.wallets[a.WalletID]
	if !ok {
		return &ReferenceError{Kind: "wallet", Ref: a.WalletID}
	}
	if w.Balance.LessThan(a.Amount) {
		return &WalletBalanceError{WalletID: a.WalletID, Available: w.Balance, Requested: a.Amount}
	}

	entries := DeriveFuelEntries(a, e.vehicles.Classify(a.VehicleNo))

	w.Balance = w.Balance.Sub(a.Amount)
	e.wallets[a.WalletID] = w
	e.allocations[a.ID] = a
	e.insertEntries(entries)
	return nil
}

// OnFuelAllocationDeleted restores the wallet balance and retracts the
// allocation's entries.
func (e *Engine) OnFuelAllocationDeleted(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.allocations[id]
	if !ok {
		return &ReferenceError{Kind: "fuel_allocation", Ref: id}
	}
	if w, ok := e.wallets[old.WalletID]; ok {
		w.Balance = w.Balance.Add(old.Amount)
		e.wallets[old.WalletID] = w
	} else {
		e.warnMismatch("wallet", old.ID)
	}
	e.retractBySource(id)
	delete(e.allocations, id)
	return nil
}

func (e *Engine) FuelAllocations() []FuelAllocation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]FuelAllocation, 0, len(e.allocations))
	for _, a := range e.allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// VehicleFuelExpenses returns the fuel consumption records for one
// vehicle, oldest first.
func (e *Engine) VehicleFuelExpenses(vehicleNo string) []FuelAllocation {
	all := e.FuelAllocations()
	out := make([]FuelAllocation, 0, len(all))
	for _, a := range all {
		if a.VehicleNo == vehicleNo {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// RECOMPUTE - Full replay against current master data
// =============================================================================

// RecomputeAll rebuilds every piece of derived state (ledger entries,
// advance links, payment settlement, wallet balances) from the source
// records, classifying vehicles against the current registry. On error
// nothing changes. Running it twice yields identical state.
func (e *Engine) RecomputeAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	replay := &Engine{
		log:         e.log,
		vehicles:    e.vehicles,
		slips:       e.slips,
		memos:       make(map[string]Memo, len(e.memos)),
		bills:       make(map[string]Bill, len(e.bills)),
		banking:     make(map[string]BankingEntry, len(e.banking)),
		wallets:     make(map[string]FuelWallet, len(e.wallets)),
		allocations: make(map[string]FuelAllocation, len(e.allocations)),
		entries:     make(map[EntryID]LedgerEntry),
	}

	// Reset derived fields on the working copies.
	for num, m := range e.memos {
		m.AdvancePayments = nil
		m.PaidAmount = Zero
		m.PaidDate = ""
		m.Status = MemoPending
		replay.memos[num] = m
	}
	for num, b := range e.bills {
		b.AdvancePayments = nil
		b.ReceivedAmount = Zero
		b.ReceivedDate = ""
		b.Status = BillPending
		replay.bills[num] = b
	}
	for id, w := range e.wallets {
		w.Balance = w.OpeningBalance
		replay.wallets[id] = w
	}

	// Memos and bills, in document order.
	for _, num := range sortedKeys(replay.memos) {
		m := replay.memos[num]
		slip, ok := replay.slips[m.LoadingSlipID]
		if !ok {
			return &ReferenceError{Kind: "loading_slip", Ref: m.LoadingSlipID}
		}
		replay.insertEntries(DeriveMemoEntries(m, slip, replay.vehicles.Classify(slip.VehicleNo)))
	}
	for _, num := range sortedKeys(replay.bills) {
		replay.insertEntries(DeriveBillEntries(replay.bills[num]))
	}

	// Banking entries in (date, id) order, then allocations likewise,
	// so replay is deterministic regardless of insertion order.
	for _, entry := range sortByDateID(e.banking) {
		if err := replay.validateBankingRefs(entry); err != nil {
			return err
		}
		if err := replay.applyBankingEffect(entry); err != nil {
			return err
		}
		replay.banking[entry.ID] = entry
	}
	for _, a := range sortByDateID(e.allocations) {
		w, ok := replay.wallets[a.WalletID]
		if !ok {
			return &ReferenceError{Kind: "wallet", Ref: a.WalletID}
		}
		w.Balance = w.Balance.Sub(a.Amount)
		replay.wallets[a.WalletID] = w
		replay.allocations[a.ID] = a
		replay.insertEntries(DeriveFuelEntries(a, replay.vehicles.Classify(a.VehicleNo)))
	}

	// Swap in the recomputed state.
	e.memos = replay.memos
	e.bills = replay.bills
	e.banking = replay.banking
	e.wallets = replay.wallets
	e.allocations = replay.allocations
	e.entries = replay.entries
	return nil
}

// =============================================================================
// LEDGER READS
// =============================================================================

// LedgerEntries returns all derived entries ordered by (date, id).
func (e *Engine) LedgerEntries() []LedgerEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]LedgerEntry, 0, len(e.entries))
	for _, entry := range e.entries {
		out = append(out, entry)
	}
	sortEntries(out)
	return out
}

// EntriesFor returns the entries of one book for one counterparty key.
func (e *Engine) EntriesFor(lt LedgerType, referenceID string) []LedgerEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []LedgerEntry
	for _, entry := range e.entries {
		if entry.Type == lt && entry.ReferenceID == referenceID {
			out = append(out, entry)
		}
	}
	sortEntries(out)
	return out
}

// Statement computes running balances for one counterparty over a date
// range, under an explicit sign convention. See balance.go.
func (e *Engine) Statement(referenceID string, lt LedgerType, from, to string, conv SignConvention) Statement {
	return ComputeStatement(e.LedgerEntries(), referenceID, lt, from, to, conv)
}

// PartyOutstanding is the master-list summary for one party:
// total bill nets minus payments and advances.
func (e *Engine) PartyOutstanding(party string) Money {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total := Zero
	for _, b := range e.bills {
		if b.Party == party {
			total = total.Add(b.Outstanding())
		}
	}
	return total
}

// SupplierOutstanding is the master-list summary for one supplier.
// RTO is excluded from this view by design; see records.go.
func (e *Engine) SupplierOutstanding(supplier string) Money {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total := Zero
	for _, m := range e.memos {
		if m.Supplier == supplier {
			total = total.Add(m.Outstanding())
		}
	}
	return total
}

// =============================================================================
// INTERNALS
// =============================================================================

// insertEntries posts a derived fan-out. Caller holds the write lock.
func (e *Engine) insertEntries(entries []LedgerEntry) {
	for _, entry := range entries {
		e.entries[entry.ID] = entry
	}
}

// retractBySource removes all and only the entries derived from one
// source event. Retracting nothing is a logged no-op so replays and
// repeated deletions stay safe.
func (e *Engine) retractBySource(sourceID string) {
	removed := 0
	for id, entry := range e.entries {
		if entry.SourceID == sourceID {
			delete(e.entries, id)
			removed++
		}
	}
	if removed == 0 {
		e.warnMismatch("ledger entries", sourceID)
	}
}

func (e *Engine) warnMismatch(what, sourceID string) {
	e.log.WithFields(logrus.Fields{
		"source": sourceID,
		"what":   what,
	}).Warn(ErrRetractionMismatch.Error())
}

func sortEntries(entries []LedgerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type dated interface {
	BankingEntry | FuelAllocation
}

func sortByDateID[T dated](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		di, ii := dateID(out[i])
		dj, ij := dateID(out[j])
		if di != dj {
			return di < dj
		}
		return ii < ij
	})
	return out
}

func dateID[T dated](v T) (string, string) {
	switch t := any(v).(type) {
	case BankingEntry:
		return t.Date, t.ID
	case FuelAllocation:
		return t.Date, t.ID
	}
	return "", ""
}
