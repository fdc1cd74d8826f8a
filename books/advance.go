/*
advance.go - Advance-payment linking and payment settlement

PURPOSE:
  Maintains the association between a banking entry tagged as an
  advance and the memo/bill it partially settles, and the settlement
  arithmetic for payment-category entries. Neither path posts a ledger
  entry: advances reduce outstanding balance at read time, and payments
  would double count against the net-amount entries already posted.

BACK-LINK:
  AdvancePayment.ID equals the banking entry id. That is the reverse
  link used for retraction: when the banking entry is deleted or edited
  away from the advance category, the sub-record is detached from its
  parent by that id. Detaching something already gone is a
  RetractionMismatch no-op (logged by the engine), never an error.

PAYMENT SETTLEMENT:
  memo_payment / bill_payment accumulate into PaidAmount /
  ReceivedAmount on the parent. Status flips to paid/received once the
  outstanding balance is covered, and back when a payment is retracted.

SEE ALSO:
  - rules.go: EffectAdvance / EffectPayment classification
  - engine.go: Callers of these helpers inside the event lock
*/
package books

// =============================================================================
// ADVANCE LIST HELPERS
// =============================================================================

// attachAdvance appends an advance to a parent's list, replacing any
// existing advance with the same id (idempotent re-link).
func attachAdvance(list []AdvancePayment, ap AdvancePayment) []AdvancePayment {
	for i, existing := range list {
		if existing.ID == ap.ID {
			out := append([]AdvancePayment{}, list...)
			out[i] = ap
			return out
		}
	}
	out := make([]AdvancePayment, 0, len(list)+1)
	out = append(out, list...)
	return append(out, ap)
}

// detachAdvance removes the advance with the given banking id.
// The second return reports whether anything was removed.
func detachAdvance(list []AdvancePayment, id string) ([]AdvancePayment, bool) {
	for i, existing := range list {
		if existing.ID == id {
			out := make([]AdvancePayment, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

// =============================================================================
// ENGINE-SIDE LINKING (called under the event lock)
// =============================================================================

// linkAdvance attaches the advance described by a banking entry to its
// parent memo or bill. The parent must exist.
func (e *Engine) linkAdvance(entry BankingEntry) error {
	ap := AdvancePayment{
		ID:        entry.ID,
		Date:      entry.Date,
		Amount:    entry.Amount,
		Narration: entry.Narration,
	}

	switch entry.Category {
	case CategoryMemoAdvance:
		m, ok := e.memos[entry.ReferenceID]
		if !ok {
			return &ReferenceError{Kind: "memo", Ref: entry.ReferenceID}
		}
		m.AdvancePayments = attachAdvance(m.AdvancePayments, ap)
		e.memos[entry.ReferenceID] = m
	case CategoryBillAdvance:
		b, ok := e.bills[entry.ReferenceID]
		if !ok {
			return &ReferenceError{Kind: "bill", Ref: entry.ReferenceID}
		}
		b.AdvancePayments = attachAdvance(b.AdvancePayments, ap)
		e.bills[entry.ReferenceID] = b
	}
	return nil
}

// unlinkAdvance tears down the advance link for a retracted banking
// entry. Returns false when the link no longer exists (mismatch).
func (e *Engine) unlinkAdvance(entry BankingEntry) bool {
	switch entry.Category {
	case CategoryMemoAdvance:
		m, ok := e.memos[entry.ReferenceID]
		if !ok {
			return false
		}
		list, removed := detachAdvance(m.AdvancePayments, entry.ID)
		if removed {
			m.AdvancePayments = list
			e.memos[entry.ReferenceID] = m
		}
		return removed
	case CategoryBillAdvance:
		b, ok := e.bills[entry.ReferenceID]
		if !ok {
			return false
		}
		list, removed := detachAdvance(b.AdvancePayments, entry.ID)
		if removed {
			b.AdvancePayments = list
			e.bills[entry.ReferenceID] = b
		}
		return removed
	}
	return false
}

// applyPayment settles a payment-category banking entry against its
// parent memo or bill. The parent must exist.
func (e *Engine) applyPayment(entry BankingEntry) error {
	switch entry.Category {
	case CategoryMemoPayment:
		m, ok := e.memos[entry.ReferenceID]
		if !ok {
			return &ReferenceError{Kind: "memo", Ref: entry.ReferenceID}
		}
		m.PaidAmount = m.PaidAmount.Add(entry.Amount)
		m.PaidDate = entry.Date
		m.Status = memoStatusFor(m)
		e.memos[entry.ReferenceID] = m
	case CategoryBillPayment:
		b, ok := e.bills[entry.ReferenceID]
		if !ok {
			return &ReferenceError{Kind: "bill", Ref: entry.ReferenceID}
		}
		b.ReceivedAmount = b.ReceivedAmount.Add(entry.Amount)
		b.ReceivedDate = entry.Date
		b.Status = billStatusFor(b)
		e.bills[entry.ReferenceID] = b
	}
	return nil
}

// unapplyPayment reverses a settled payment during retraction.
// Returns false when the parent no longer exists (mismatch).
func (e *Engine) unapplyPayment(entry BankingEntry) bool {
	switch entry.Category {
	case CategoryMemoPayment:
		m, ok := e.memos[entry.ReferenceID]
		if !ok {
			return false
		}
		m.PaidAmount = m.PaidAmount.Sub(entry.Amount)
		if m.PaidAmount.IsZero() {
			m.PaidDate = ""
		}
		m.Status = memoStatusFor(m)
		e.memos[entry.ReferenceID] = m
		return true
	case CategoryBillPayment:
		b, ok := e.bills[entry.ReferenceID]
		if !ok {
			return false
		}
		b.ReceivedAmount = b.ReceivedAmount.Sub(entry.Amount)
		if b.ReceivedAmount.IsZero() {
			b.ReceivedDate = ""
		}
		b.Status = billStatusFor(b)
		e.bills[entry.ReferenceID] = b
		return true
	}
	return false
}

func memoStatusFor(m Memo) MemoStatus {
	if !m.Outstanding().IsPositive() && m.PaidAmount.IsPositive() {
		return MemoPaid
	}
	return MemoPending
}

func billStatusFor(b Bill) BillStatus {
	if !b.Outstanding().IsPositive() && b.ReceivedAmount.IsPositive() {
		return BillReceived
	}
	return BillPending
}
