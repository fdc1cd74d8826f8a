/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with
	realistic transport data for demos. Each scenario creates vehicles,
	loading slips, memos, bills and banking entries that demonstrate a
	slice of the ledger derivation.

AVAILABLE SCENARIOS:

	own-fleet-month:  Own vehicles hauling for one party, with fuel
	                  wallet allocations and vehicle income entries
	market-trips:     Market vehicles via suppliers, with memo
	                  advances, payments and TDS on the party bill

HOW SCENARIOS WORK:
 1. Reset the database and the in-memory engine
 2. Create vehicles and wallets
 3. Create loading slips, memos and bills (ledger entries derive)
 4. Add banking entries (advances, payments, expenses)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "market-trips"}

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: Shared response helpers
  - books/engine.go: The event methods driven here
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "own-fleet-month",
		Name:        "Own Fleet Month",
		Description: "Own vehicles hauling for one party, fuel wallet allocations, vehicle income",
	},
	{
		ID:          "market-trips",
		Name:        "Market Trips",
		Description: "Market vehicles via suppliers with memo advances, payments and TDS billing",
	},
}

// =============================================================================
// HANDLERS
// =============================================================================

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.resetAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.resetAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "own-fleet-month":
		err = h.loadOwnFleetScenario(r.Context())
	case "market-trips":
		err = h.loadMarketTripsScenario(r.Context())
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("scenario", req.ScenarioID).Error("scenario load failed")
		writeError(w, http.StatusInternalServerError, "scenario load failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

func (h *Handler) resetAll(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	h.Engine.Reset()
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// seeder pushes records through the engine and the store, stopping at
// the first failure.
type seeder struct {
	h   *Handler
	ctx context.Context
	err error
}

func (s *seeder) vehicle(v books.Vehicle) {
	if s.err != nil {
		return
	}
	s.h.Engine.PutVehicle(v)
	s.err = s.h.Store.SaveVehicle(s.ctx, v)
}

func (s *seeder) slip(slip books.LoadingSlip) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.PutLoadingSlip(slip); s.err == nil {
		s.err = s.h.Store.SaveLoadingSlip(s.ctx, slip)
	}
}

func (s *seeder) wallet(w books.FuelWallet) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.CreateWallet(w); s.err == nil {
		s.err = s.h.Store.SaveWallet(s.ctx, w)
	}
}

func (s *seeder) memo(m books.Memo) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.OnMemoCreated(m); s.err == nil {
		s.err = s.h.Store.SaveMemo(s.ctx, m)
	}
}

func (s *seeder) bill(b books.Bill) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.OnBillCreated(b); s.err == nil {
		s.err = s.h.Store.SaveBill(s.ctx, b)
	}
}

func (s *seeder) banking(e books.BankingEntry) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.OnBankingEntryCreated(e); s.err == nil {
		s.err = s.h.Store.SaveBankingEntry(s.ctx, e)
	}
}

func (s *seeder) fuel(a books.FuelAllocation) {
	if s.err != nil {
		return
	}
	if s.err = s.h.Engine.OnFuelAllocated(a); s.err == nil {
		s.err = s.h.Store.SaveFuelAllocation(s.ctx, a)
	}
}

// loadOwnFleetScenario: two own trucks run three trips for a single
// party over a month. Fuel comes off a prepaid wallet, diesel and
// repair spend books against the trucks, and the party clears one bill.
func (h *Handler) loadOwnFleetScenario(ctx context.Context) error {
	s := &seeder{h: h, ctx: ctx}

	s.vehicle(books.Vehicle{VehicleNo: "RJ14GA1234", Ownership: books.OwnershipOwn})
	s.vehicle(books.Vehicle{VehicleNo: "RJ14GB5678", Ownership: books.OwnershipOwn})

	s.wallet(books.FuelWallet{ID: "bpcl-smartfleet", Name: "BPCL SmartFleet", OpeningBalance: books.RupeesFromInt(50000)})

	s.slip(books.LoadingSlip{
		ID: "ls-own-1", SlipNumber: "LS-0001", Date: "2025-04-02",
		Party: "Agrawal Traders", VehicleNo: "RJ14GA1234",
		FromLocation: "Jaipur", ToLocation: "Mumbai",
		Weight:  books.RupeesFromInt(18),
		Freight: books.RupeesFromInt(85000), Advance: books.RupeesFromInt(20000),
	})
	s.slip(books.LoadingSlip{
		ID: "ls-own-2", SlipNumber: "LS-0002", Date: "2025-04-10",
		Party: "Agrawal Traders", VehicleNo: "RJ14GB5678",
		FromLocation: "Jaipur", ToLocation: "Surat",
		Weight:  books.RupeesFromInt(16),
		Freight: books.RupeesFromInt(62000),
	})
	s.slip(books.LoadingSlip{
		ID: "ls-own-3", SlipNumber: "LS-0003", Date: "2025-04-21",
		Party: "Agrawal Traders", VehicleNo: "RJ14GA1234",
		FromLocation: "Mumbai", ToLocation: "Jaipur",
		Weight:  books.RupeesFromInt(20),
		Freight: books.RupeesFromInt(90000), RTO: books.RupeesFromInt(2000),
	})

	s.memo(books.Memo{
		MemoNumber: "MO-0001", LoadingSlipID: "ls-own-1", Supplier: "Self",
		Date: "2025-04-02", Freight: books.RupeesFromInt(85000),
		Commission: books.RupeesFromInt(4250), Mamool: books.RupeesFromInt(500),
	})
	s.memo(books.Memo{
		MemoNumber: "MO-0002", LoadingSlipID: "ls-own-2", Supplier: "Self",
		Date: "2025-04-10", Freight: books.RupeesFromInt(62000),
		Commission: books.RupeesFromInt(3100),
		Detention:  books.RupeesFromInt(1500),
	})

	s.bill(books.Bill{
		BillNumber: "BL-0001", LoadingSlipID: "ls-own-1", Party: "Agrawal Traders",
		Date: "2025-04-05", BillAmount: books.RupeesFromInt(85000),
		TDS: books.RupeesFromInt(850),
	})

	s.fuel(books.FuelAllocation{
		ID: "fa-own-1", Date: "2025-04-03", WalletID: "bpcl-smartfleet",
		VehicleNo: "RJ14GA1234", Amount: books.RupeesFromInt(12000),
		Narration: "Jaipur-Mumbai diesel",
	})
	s.fuel(books.FuelAllocation{
		ID: "fa-own-2", Date: "2025-04-11", WalletID: "bpcl-smartfleet",
		VehicleNo: "RJ14GB5678", Amount: books.RupeesFromInt(9000),
	})

	s.banking(books.BankingEntry{
		ID: "bk-own-1", Type: books.BankingDebit, Category: books.CategoryVehicleExpense,
		Amount: books.RupeesFromInt(7500), Date: "2025-04-15",
		VehicleNo: "RJ14GA1234", Narration: "Clutch plate replacement",
	})
	s.banking(books.BankingEntry{
		ID: "bk-own-2", Type: books.BankingCredit, Category: books.CategoryBillPayment,
		Amount: books.RupeesFromInt(64150), Date: "2025-04-28",
		ReferenceID: "BL-0001", Narration: "NEFT from Agrawal Traders",
	})
	s.banking(books.BankingEntry{
		ID: "bk-own-3", Type: books.BankingDebit, Category: books.CategoryFuelWallet,
		Amount: books.RupeesFromInt(25000), Date: "2025-04-20",
		ReferenceID: "bpcl-smartfleet", Narration: "Wallet top-up",
	})

	return s.err
}

// loadMarketTripsScenario: hired market trucks via two suppliers. The
// memos carry advances and a final payment; the party bill shows TDS
// and a shortage penalty.
func (h *Handler) loadMarketTripsScenario(ctx context.Context) error {
	s := &seeder{h: h, ctx: ctx}

	s.vehicle(books.Vehicle{VehicleNo: "HR55AB9999", Ownership: books.OwnershipMarket, OwnerName: "Shree Transport Co"})
	s.vehicle(books.Vehicle{VehicleNo: "GJ01CD4321", Ownership: books.OwnershipMarket, OwnerName: "Verma Logistics"})

	s.slip(books.LoadingSlip{
		ID: "ls-mkt-1", SlipNumber: "LS-0101", Date: "2025-05-03",
		Party: "Kanha Cement", VehicleNo: "HR55AB9999",
		FromLocation: "Delhi", ToLocation: "Kanpur",
		Freight: books.RupeesFromInt(100000), Advance: books.RupeesFromInt(30000),
	})
	s.slip(books.LoadingSlip{
		ID: "ls-mkt-2", SlipNumber: "LS-0102", Date: "2025-05-12",
		Party: "Kanha Cement", VehicleNo: "GJ01CD4321",
		FromLocation: "Ahmedabad", ToLocation: "Indore",
		Freight: books.RupeesFromInt(78000),
	})

	s.memo(books.Memo{
		MemoNumber: "MO-0101", LoadingSlipID: "ls-mkt-1", Supplier: "Shree Transport Co",
		Date: "2025-05-03", Freight: books.RupeesFromInt(100000),
		Commission: books.RupeesFromInt(6000), Mamool: books.RupeesFromInt(2000),
		Detention: books.RupeesFromInt(1000), RTO: books.RupeesFromInt(1500),
	})
	s.memo(books.Memo{
		MemoNumber: "MO-0102", LoadingSlipID: "ls-mkt-2", Supplier: "Verma Logistics",
		Date: "2025-05-12", Freight: books.RupeesFromInt(78000),
		Commission: books.RupeesFromInt(4500),
	})

	s.bill(books.Bill{
		BillNumber: "BL-0101", LoadingSlipID: "ls-mkt-1", Party: "Kanha Cement",
		Date: "2025-05-06", BillAmount: books.RupeesFromInt(110000),
		TDS: books.RupeesFromInt(1100), Penalties: books.RupeesFromInt(2500),
	})

	// Advance to the first supplier, then a closing payment.
	s.banking(books.BankingEntry{
		ID: "bk-mkt-1", Type: books.BankingDebit, Category: books.CategoryMemoAdvance,
		Amount: books.RupeesFromInt(40000), Date: "2025-05-04",
		ReferenceID: "MO-0101", Narration: "Cash advance at loading",
	})
	s.banking(books.BankingEntry{
		ID: "bk-mkt-2", Type: books.BankingDebit, Category: books.CategoryMemoPayment,
		Amount: books.RupeesFromInt(53000), Date: "2025-05-19",
		ReferenceID: "MO-0101", Narration: "Balance via RTGS",
	})
	s.banking(books.BankingEntry{
		ID: "bk-mkt-3", Type: books.BankingCredit, Category: books.CategoryBillAdvance,
		Amount: books.RupeesFromInt(50000), Date: "2025-05-08",
		ReferenceID: "BL-0101",
	})
	s.banking(books.BankingEntry{
		ID: "bk-mkt-4", Type: books.BankingDebit, Category: books.CategoryOther,
		Amount: books.RupeesFromInt(1200), Date: "2025-05-15",
		ReferenceName: "Toll FASTag", Narration: "Monthly recharge",
	})

	return s.err
}
