/*
handlers.go - HTTP handlers for the transport accounting API

PURPOSE:
  Translates HTTP requests into engine events and store writes. Every
  mutating handler follows the same shape: decode, run the engine
  event (all-or-nothing), then persist the source record. The engine
  is the authority on derived state; the store only keeps the inputs.

ERROR MAPPING:
  - missing references         -> 404
  - duplicates / still in use  -> 409
  - invalid category, wallet   -> 400
  - anything else              -> 500

SEE ALSO:
  - server.go: Route registration
  - dto.go: Wire shapes
  - books/engine.go: The event methods called here
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/factory"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/store/sqlite"
)

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	Engine  *books.Engine
	Store   *sqlite.Store
	Numbers *factory.NumberFactory
	Log     logrus.FieldLogger
}

// NewHandler wires a handler around an engine, its backing store and a
// document number factory.
func NewHandler(eng *books.Engine, store *sqlite.Store, numbers *factory.NumberFactory, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Engine: eng, Store: store, Numbers: numbers, Log: log}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps a domain error to a status code.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case books.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", err)
	case errors.Is(err, books.ErrDuplicateDocument) || errors.Is(err, books.ErrDocumentReferenced):
		writeError(w, http.StatusConflict, "conflict", err)
	case books.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid request", err)
	default:
		h.Log.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}

// persist logs and reports a store failure after the engine has
// already accepted the event. The in-memory state stays authoritative;
// the next bootstrap will diverge, so this is loud.
func (h *Handler) persist(w http.ResponseWriter, what string, err error) bool {
	if err == nil {
		return true
	}
	h.Log.WithError(err).WithField("record", what).Error("persist failed")
	writeError(w, http.StatusInternalServerError, "persist failed", err)
	return false
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	return true
}

// =============================================================================
// VEHICLES
// =============================================================================

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles := h.Engine.Vehicles()
	out := make([]VehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleDTO(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req VehicleDTO
	if !decode(w, r, &req) {
		return
	}
	if req.VehicleNo == "" {
		writeError(w, http.StatusBadRequest, "vehicle_no is required", nil)
		return
	}
	ownership := books.Ownership(req.Ownership)
	if ownership != books.OwnershipOwn && ownership != books.OwnershipMarket {
		writeError(w, http.StatusBadRequest, "ownership must be own or market", nil)
		return
	}
	v := books.Vehicle{VehicleNo: req.VehicleNo, Ownership: ownership, OwnerName: req.OwnerName}
	h.Engine.PutVehicle(v)
	if !h.persist(w, "vehicle", h.Store.SaveVehicle(r.Context(), v)) {
		return
	}
	writeJSON(w, http.StatusCreated, toVehicleDTO(v))
}

// UpdateVehicle replaces a vehicle's registration. An ownership change
// reclassifies every memo and fuel allocation on that vehicle, so the
// whole ledger is recomputed.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleNo := chi.URLParam(r, "vehicleNo")
	prev, ok := h.Engine.GetVehicle(vehicleNo)
	if !ok {
		writeError(w, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	var req VehicleDTO
	if !decode(w, r, &req) {
		return
	}
	ownership := books.Ownership(req.Ownership)
	if ownership != books.OwnershipOwn && ownership != books.OwnershipMarket {
		writeError(w, http.StatusBadRequest, "ownership must be own or market", nil)
		return
	}
	v := books.Vehicle{VehicleNo: vehicleNo, Ownership: ownership, OwnerName: req.OwnerName}
	h.Engine.PutVehicle(v)
	if prev.Ownership != v.Ownership {
		if err := h.Engine.RecomputeAll(); err != nil {
			h.Engine.PutVehicle(prev)
			h.writeEngineError(w, err)
			return
		}
	}
	if !h.persist(w, "vehicle", h.Store.SaveVehicle(r.Context(), v)) {
		return
	}
	writeJSON(w, http.StatusOK, toVehicleDTO(v))
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleNo := chi.URLParam(r, "vehicleNo")
	if _, ok := h.Engine.GetVehicle(vehicleNo); !ok {
		writeError(w, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	h.Engine.RemoveVehicle(vehicleNo)
	// Unregistered vehicles classify as market from here on.
	if err := h.Engine.RecomputeAll(); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "vehicle", h.Store.DeleteVehicle(r.Context(), vehicleNo)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// =============================================================================
// LOADING SLIPS
// =============================================================================

func (h *Handler) ListLoadingSlips(w http.ResponseWriter, r *http.Request) {
	slips := h.Engine.LoadingSlips()
	out := make([]LoadingSlipDTO, 0, len(slips))
	for _, s := range slips {
		out = append(out, toLoadingSlipDTO(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetLoadingSlip(w http.ResponseWriter, r *http.Request) {
	slip, ok := h.Engine.GetLoadingSlip(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "loading slip not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toLoadingSlipDTO(slip))
}

func (h *Handler) CreateLoadingSlip(w http.ResponseWriter, r *http.Request) {
	var req LoadingSlipRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Party == "" || req.VehicleNo == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "party, vehicle_no and date are required", nil)
		return
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	number := req.SlipNumber
	if number == "" {
		number = h.Numbers.Next(factory.KindLoadingSlip)
	} else {
		h.Numbers.Observe(factory.KindLoadingSlip, number)
	}
	slip := req.toDomain(id, number)
	if err := h.Engine.PutLoadingSlip(slip); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "loading slip", h.Store.SaveLoadingSlip(r.Context(), slip)) {
		return
	}
	writeJSON(w, http.StatusCreated, toLoadingSlipDTO(slip))
}

func (h *Handler) UpdateLoadingSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, ok := h.Engine.GetLoadingSlip(id)
	if !ok {
		writeError(w, http.StatusNotFound, "loading slip not found", nil)
		return
	}
	var req LoadingSlipRequest
	if !decode(w, r, &req) {
		return
	}
	number := req.SlipNumber
	if number == "" {
		number = prev.SlipNumber
	}
	slip := req.toDomain(id, number)
	if err := h.Engine.PutLoadingSlip(slip); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "loading slip", h.Store.SaveLoadingSlip(r.Context(), slip)) {
		return
	}
	writeJSON(w, http.StatusOK, toLoadingSlipDTO(slip))
}

func (h *Handler) DeleteLoadingSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Engine.DeleteLoadingSlip(id); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "loading slip", h.Store.DeleteLoadingSlip(r.Context(), id)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// =============================================================================
// MEMOS
// =============================================================================

func (h *Handler) ListMemos(w http.ResponseWriter, r *http.Request) {
	memos := h.Engine.Memos()
	out := make([]MemoDTO, 0, len(memos))
	for _, m := range memos {
		out = append(out, toMemoDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetMemo(w http.ResponseWriter, r *http.Request) {
	m, ok := h.Engine.GetMemo(chi.URLParam(r, "memoNumber"))
	if !ok {
		writeError(w, http.StatusNotFound, "memo not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toMemoDTO(m))
}

func (h *Handler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req MemoRequest
	if !decode(w, r, &req) {
		return
	}
	if req.LoadingSlipID == "" || req.Supplier == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "loading_slip_id, supplier and date are required", nil)
		return
	}
	number := req.MemoNumber
	if number == "" {
		number = h.Numbers.Next(factory.KindMemo)
	} else {
		h.Numbers.Observe(factory.KindMemo, number)
	}
	m := req.toDomain(number)
	if err := h.Engine.OnMemoCreated(m); err != nil {
		h.writeEngineError(w, err)
		return
	}
	created, _ := h.Engine.GetMemo(number)
	if !h.persist(w, "memo", h.Store.SaveMemo(r.Context(), created)) {
		return
	}
	writeJSON(w, http.StatusCreated, toMemoDTO(created))
}

func (h *Handler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "memoNumber")
	var req MemoRequest
	if !decode(w, r, &req) {
		return
	}
	m := req.toDomain(number)
	if err := h.Engine.OnMemoUpdated(m); err != nil {
		h.writeEngineError(w, err)
		return
	}
	updated, _ := h.Engine.GetMemo(number)
	if !h.persist(w, "memo", h.Store.SaveMemo(r.Context(), updated)) {
		return
	}
	writeJSON(w, http.StatusOK, toMemoDTO(updated))
}

func (h *Handler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "memoNumber")
	if err := h.Engine.OnMemoDeleted(number); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "memo", h.Store.DeleteMemo(r.Context(), number)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// =============================================================================
// BILLS
// =============================================================================

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills := h.Engine.Bills()
	out := make([]BillDTO, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillDTO(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	b, ok := h.Engine.GetBill(chi.URLParam(r, "billNumber"))
	if !ok {
		writeError(w, http.StatusNotFound, "bill not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toBillDTO(b))
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if !decode(w, r, &req) {
		return
	}
	if req.LoadingSlipID == "" || req.Party == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "loading_slip_id, party and date are required", nil)
		return
	}
	number := req.BillNumber
	if number == "" {
		number = h.Numbers.Next(factory.KindBill)
	} else {
		h.Numbers.Observe(factory.KindBill, number)
	}
	b := req.toDomain(number)
	if err := h.Engine.OnBillCreated(b); err != nil {
		h.writeEngineError(w, err)
		return
	}
	created, _ := h.Engine.GetBill(number)
	if !h.persist(w, "bill", h.Store.SaveBill(r.Context(), created)) {
		return
	}
	writeJSON(w, http.StatusCreated, toBillDTO(created))
}

func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "billNumber")
	var req BillRequest
	if !decode(w, r, &req) {
		return
	}
	b := req.toDomain(number)
	if err := h.Engine.OnBillUpdated(b); err != nil {
		h.writeEngineError(w, err)
		return
	}
	updated, _ := h.Engine.GetBill(number)
	if !h.persist(w, "bill", h.Store.SaveBill(r.Context(), updated)) {
		return
	}
	writeJSON(w, http.StatusOK, toBillDTO(updated))
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "billNumber")
	if err := h.Engine.OnBillDeleted(number); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "bill", h.Store.DeleteBill(r.Context(), number)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// =============================================================================
// BANKING
// =============================================================================

func (h *Handler) ListBankingEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.Engine.BankingEntries()
	out := make([]BankingEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toBankingEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetBankingEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := h.Engine.GetBankingEntry(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "banking entry not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toBankingEntryDTO(e))
}

func (h *Handler) CreateBankingEntry(w http.ResponseWriter, r *http.Request) {
	var req BankingEntryRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required", nil)
		return
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	entry := req.toDomain(id)
	if err := h.Engine.OnBankingEntryCreated(entry); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "banking entry", h.Store.SaveBankingEntry(r.Context(), entry)) {
		return
	}
	// Advance and payment entries fold into the target document's
	// settlement state, so the document rows need re-saving too.
	h.persistSettlementTargets(r, entry)
	writeJSON(w, http.StatusCreated, toBankingEntryDTO(entry))
}

func (h *Handler) UpdateBankingEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, ok := h.Engine.GetBankingEntry(id)
	if !ok {
		writeError(w, http.StatusNotFound, "banking entry not found", nil)
		return
	}
	var req BankingEntryRequest
	if !decode(w, r, &req) {
		return
	}
	entry := req.toDomain(id)
	if err := h.Engine.OnBankingEntryUpdated(entry); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "banking entry", h.Store.SaveBankingEntry(r.Context(), entry)) {
		return
	}
	h.persistSettlementTargets(r, prev)
	h.persistSettlementTargets(r, entry)
	writeJSON(w, http.StatusOK, toBankingEntryDTO(entry))
}

func (h *Handler) DeleteBankingEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, ok := h.Engine.GetBankingEntry(id)
	if !ok {
		writeError(w, http.StatusNotFound, "banking entry not found", nil)
		return
	}
	if err := h.Engine.OnBankingEntryDeleted(id); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "banking entry", h.Store.DeleteBankingEntry(r.Context(), id)) {
		return
	}
	h.persistSettlementTargets(r, prev)
	writeJSON(w, http.StatusNoContent, nil)
}

// persistSettlementTargets re-saves the memo or bill a banking entry
// points at, picking up advance links and paid state. Failures are
// logged only; the banking row itself already persisted.
func (h *Handler) persistSettlementTargets(r *http.Request, entry books.BankingEntry) {
	if entry.ReferenceID == "" {
		return
	}
	switch entry.Category {
	case books.CategoryMemoAdvance, books.CategoryMemoPayment:
		if m, ok := h.Engine.GetMemo(entry.ReferenceID); ok {
			if err := h.Store.SaveMemo(r.Context(), m); err != nil {
				h.Log.WithError(err).WithField("memo", m.MemoNumber).Error("persist failed")
			}
		}
	case books.CategoryBillAdvance, books.CategoryBillPayment:
		if b, ok := h.Engine.GetBill(entry.ReferenceID); ok {
			if err := h.Store.SaveBill(r.Context(), b); err != nil {
				h.Log.WithError(err).WithField("bill", b.BillNumber).Error("persist failed")
			}
		}
	}
}

// =============================================================================
// FUEL WALLETS & ALLOCATIONS
// =============================================================================

func (h *Handler) ListWallets(w http.ResponseWriter, r *http.Request) {
	wallets := h.Engine.Wallets()
	out := make([]WalletDTO, 0, len(wallets))
	for _, wl := range wallets {
		out = append(out, toWalletDTO(wl))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req WalletRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	wl := books.FuelWallet{ID: req.ID, Name: req.Name, OpeningBalance: toMoney(req.OpeningBalance)}
	if err := h.Engine.CreateWallet(wl); err != nil {
		h.writeEngineError(w, err)
		return
	}
	created, _ := h.Engine.GetWallet(req.ID)
	if !h.persist(w, "wallet", h.Store.SaveWallet(r.Context(), created)) {
		return
	}
	writeJSON(w, http.StatusCreated, toWalletDTO(created))
}

func (h *Handler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Engine.DeleteWallet(id); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "wallet", h.Store.DeleteWallet(r.Context(), id)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListFuelAllocations(w http.ResponseWriter, r *http.Request) {
	allocations := h.Engine.FuelAllocations()
	out := make([]FuelAllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, toFuelAllocationDTO(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateFuelAllocation(w http.ResponseWriter, r *http.Request) {
	var req FuelAllocationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.WalletID == "" || req.VehicleNo == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "wallet_id, vehicle_no and date are required", nil)
		return
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	a := req.toDomain(id)
	if err := h.Engine.OnFuelAllocated(a); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "fuel allocation", h.Store.SaveFuelAllocation(r.Context(), a)) {
		return
	}
	writeJSON(w, http.StatusCreated, toFuelAllocationDTO(a))
}

func (h *Handler) DeleteFuelAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Engine.OnFuelAllocationDeleted(id); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.persist(w, "fuel allocation", h.Store.DeleteFuelAllocation(r.Context(), id)) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) VehicleFuel(w http.ResponseWriter, r *http.Request) {
	vehicleNo := chi.URLParam(r, "vehicleNo")
	allocations := h.Engine.VehicleFuelExpenses(vehicleNo)
	out := make([]FuelAllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, toFuelAllocationDTO(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// LEDGER, STATEMENTS & SUMMARIES
// =============================================================================

func (h *Handler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.Engine.LedgerEntries()
	out := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStatement renders one counterparty's book as an ordered statement
// with running balances.
//
// Query parameters:
//
//	type       ledger book (party, supplier, general, vehicle_income, ...)
//	ref        counterparty key within the book
//	from, to   optional YYYY-MM-DD bounds, inclusive
//	convention optional sign override; defaults per book
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lt := books.LedgerType(q.Get("type"))
	ref := q.Get("ref")
	if lt == "" || ref == "" {
		writeError(w, http.StatusBadRequest, "type and ref query parameters are required", nil)
		return
	}
	conv := books.DefaultConvention(lt)
	if c := q.Get("convention"); c != "" {
		switch books.SignConvention(c) {
		case books.DebitMinusCredit, books.CreditMinusDebit:
			conv = books.SignConvention(c)
		default:
			writeError(w, http.StatusBadRequest, "unknown convention", nil)
			return
		}
	}
	st := h.Engine.Statement(ref, lt, q.Get("from"), q.Get("to"), conv)
	writeJSON(w, http.StatusOK, toStatementDTO(st))
}

func (h *Handler) PartyOutstanding(w http.ResponseWriter, r *http.Request) {
	party := chi.URLParam(r, "party")
	writeJSON(w, http.StatusOK, OutstandingDTO{
		Reference:   party,
		Outstanding: fromMoney(h.Engine.PartyOutstanding(party)),
	})
}

func (h *Handler) SupplierOutstanding(w http.ResponseWriter, r *http.Request) {
	supplier := chi.URLParam(r, "supplier")
	writeJSON(w, http.StatusOK, OutstandingDTO{
		Reference:   supplier,
		Outstanding: fromMoney(h.Engine.SupplierOutstanding(supplier)),
	})
}

// =============================================================================
// ADMIN
// =============================================================================

// Recompute rebuilds every derived figure from the source records held
// in memory. Useful after bulk edits or suspected drift.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.RecomputeAll(); err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recomputed"})
}
