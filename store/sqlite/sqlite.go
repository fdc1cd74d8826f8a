/*
Package sqlite provides SQLite-backed persistence for the books engine.

PURPOSE:
  Persists the SOURCE records only: vehicles, loading slips, memos,
  bills, banking entries, fuel wallets and fuel allocations. Derived
  state (ledger entries, advance links, settlement status, wallet
  balances) is never stored; Bootstrap replays the source records
  through a books.Engine on startup and the engine rebuilds it.

KEY TABLES:
  vehicles:         Vehicle master data (ownership classification)
  loading_slips:    Trips
  memos:            Supplier payables
  bills:            Party receivables
  banking_entries:  Bank/cash movements
  fuel_wallets:     Prepaid fuel vendor wallets (opening balance only)
  fuel_allocations: Fuel issued from wallets to vehicles

MONEY:
  Amounts are stored as decimal TEXT, never floating point. Parsing
  back goes through books.MustParseMoney.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers do not
  block the single writer.

USAGE:
  store, err := sqlite.New("./data/carriers.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  eng := books.NewEngine(logger)
  if err := store.Bootstrap(ctx, eng); err != nil { ... }

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - books/engine.go: The replay target for Bootstrap
  - api/handlers.go: Persists after each successful engine event
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
)

// Store persists source records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_no TEXT PRIMARY KEY,
		ownership TEXT NOT NULL,
		owner_name TEXT
	);

	CREATE TABLE IF NOT EXISTS loading_slips (
		id TEXT PRIMARY KEY,
		slip_number TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		party TEXT NOT NULL,
		vehicle_no TEXT NOT NULL,
		from_location TEXT,
		to_location TEXT,
		weight TEXT NOT NULL DEFAULT '0',
		freight TEXT NOT NULL DEFAULT '0',
		advance TEXT NOT NULL DEFAULT '0',
		rto TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_slips_vehicle ON loading_slips(vehicle_no);
	CREATE INDEX IF NOT EXISTS idx_slips_party ON loading_slips(party);

	CREATE TABLE IF NOT EXISTS memos (
		memo_number TEXT PRIMARY KEY,
		loading_slip_id TEXT NOT NULL,
		supplier TEXT NOT NULL,
		date TEXT NOT NULL,
		freight TEXT NOT NULL DEFAULT '0',
		commission TEXT NOT NULL DEFAULT '0',
		mamool TEXT NOT NULL DEFAULT '0',
		detention TEXT NOT NULL DEFAULT '0',
		extra TEXT NOT NULL DEFAULT '0',
		rto TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_memos_slip ON memos(loading_slip_id);
	CREATE INDEX IF NOT EXISTS idx_memos_supplier ON memos(supplier);

	CREATE TABLE IF NOT EXISTS bills (
		bill_number TEXT PRIMARY KEY,
		loading_slip_id TEXT NOT NULL,
		party TEXT NOT NULL,
		date TEXT NOT NULL,
		bill_amount TEXT NOT NULL DEFAULT '0',
		mamool TEXT NOT NULL DEFAULT '0',
		tds TEXT NOT NULL DEFAULT '0',
		penalties TEXT NOT NULL DEFAULT '0',
		detention TEXT NOT NULL DEFAULT '0',
		extra TEXT NOT NULL DEFAULT '0',
		rto TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_bills_slip ON bills(loading_slip_id);
	CREATE INDEX IF NOT EXISTS idx_bills_party ON bills(party);

	CREATE TABLE IF NOT EXISTS banking_entries (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		date TEXT NOT NULL,
		reference_id TEXT,
		reference_name TEXT,
		vehicle_no TEXT,
		narration TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_banking_category ON banking_entries(category);
	CREATE INDEX IF NOT EXISTS idx_banking_reference
		ON banking_entries(reference_id) WHERE reference_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_banking_date ON banking_entries(date);

	CREATE TABLE IF NOT EXISTS fuel_wallets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		opening_balance TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS fuel_allocations (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		wallet_id TEXT NOT NULL,
		vehicle_no TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		narration TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_allocations_wallet ON fuel_allocations(wallet_id);
	CREATE INDEX IF NOT EXISTS idx_allocations_vehicle ON fuel_allocations(vehicle_no);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// VEHICLES
// =============================================================================

// SaveVehicle upserts a vehicle record.
func (s *Store) SaveVehicle(ctx context.Context, v books.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO vehicles (vehicle_no, ownership, owner_name)
		VALUES (?, ?, ?)
		ON CONFLICT(vehicle_no) DO UPDATE SET
			ownership = excluded.ownership,
			owner_name = excluded.owner_name
	`
	_, err := s.db.ExecContext(ctx, query, v.VehicleNo, string(v.Ownership), v.OwnerName)
	return err
}

// DeleteVehicle removes a vehicle record.
func (s *Store) DeleteVehicle(ctx context.Context, vehicleNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM vehicles WHERE vehicle_no = ?", vehicleNo)
	return err
}

// ListVehicles returns all vehicles ordered by vehicle number.
func (s *Store) ListVehicles(ctx context.Context) ([]books.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT vehicle_no, ownership, owner_name FROM vehicles ORDER BY vehicle_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.Vehicle
	for rows.Next() {
		var v books.Vehicle
		var ownership string
		var ownerName sql.NullString
		if err := rows.Scan(&v.VehicleNo, &ownership, &ownerName); err != nil {
			return nil, err
		}
		v.Ownership = books.Ownership(ownership)
		v.OwnerName = ownerName.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// =============================================================================
// LOADING SLIPS
// =============================================================================

// SaveLoadingSlip upserts a slip.
func (s *Store) SaveLoadingSlip(ctx context.Context, slip books.LoadingSlip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO loading_slips
		(id, slip_number, date, party, vehicle_no, from_location, to_location,
		 weight, freight, advance, rto)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slip_number = excluded.slip_number,
			date = excluded.date,
			party = excluded.party,
			vehicle_no = excluded.vehicle_no,
			from_location = excluded.from_location,
			to_location = excluded.to_location,
			weight = excluded.weight,
			freight = excluded.freight,
			advance = excluded.advance,
			rto = excluded.rto
	`
	_, err := s.db.ExecContext(ctx, query,
		slip.ID, slip.SlipNumber, slip.Date, slip.Party, slip.VehicleNo,
		slip.FromLocation, slip.ToLocation,
		slip.Weight.String(), slip.Freight.String(), slip.Advance.String(), slip.RTO.String(),
	)
	return err
}

// DeleteLoadingSlip removes a slip.
func (s *Store) DeleteLoadingSlip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM loading_slips WHERE id = ?", id)
	return err
}

// ListLoadingSlips returns all slips ordered by slip number.
func (s *Store) ListLoadingSlips(ctx context.Context) ([]books.LoadingSlip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slip_number, date, party, vehicle_no, from_location, to_location,
		       weight, freight, advance, rto
		FROM loading_slips ORDER BY slip_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.LoadingSlip
	for rows.Next() {
		var slip books.LoadingSlip
		var from, to sql.NullString
		var weight, freight, advance, rto string
		if err := rows.Scan(&slip.ID, &slip.SlipNumber, &slip.Date, &slip.Party,
			&slip.VehicleNo, &from, &to, &weight, &freight, &advance, &rto); err != nil {
			return nil, err
		}
		slip.FromLocation = from.String
		slip.ToLocation = to.String
		slip.Weight = books.MustParseMoney(weight)
		slip.Freight = books.MustParseMoney(freight)
		slip.Advance = books.MustParseMoney(advance)
		slip.RTO = books.MustParseMoney(rto)
		out = append(out, slip)
	}
	return out, rows.Err()
}

// =============================================================================
// MEMOS
// =============================================================================

// SaveMemo upserts a memo's source fields. Settlement state is derived
// and not stored.
func (s *Store) SaveMemo(ctx context.Context, m books.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO memos
		(memo_number, loading_slip_id, supplier, date, freight, commission,
		 mamool, detention, extra, rto)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(memo_number) DO UPDATE SET
			loading_slip_id = excluded.loading_slip_id,
			supplier = excluded.supplier,
			date = excluded.date,
			freight = excluded.freight,
			commission = excluded.commission,
			mamool = excluded.mamool,
			detention = excluded.detention,
			extra = excluded.extra,
			rto = excluded.rto
	`
	_, err := s.db.ExecContext(ctx, query,
		m.MemoNumber, m.LoadingSlipID, m.Supplier, m.Date,
		m.Freight.String(), m.Commission.String(), m.Mamool.String(),
		m.Detention.String(), m.Extra.String(), m.RTO.String(),
	)
	return err
}

// DeleteMemo removes a memo.
func (s *Store) DeleteMemo(ctx context.Context, memoNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM memos WHERE memo_number = ?", memoNumber)
	return err
}

// ListMemos returns all memos ordered by memo number.
func (s *Store) ListMemos(ctx context.Context) ([]books.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT memo_number, loading_slip_id, supplier, date, freight, commission,
		       mamool, detention, extra, rto
		FROM memos ORDER BY memo_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.Memo
	for rows.Next() {
		var m books.Memo
		var freight, commission, mamool, detention, extra, rto string
		if err := rows.Scan(&m.MemoNumber, &m.LoadingSlipID, &m.Supplier, &m.Date,
			&freight, &commission, &mamool, &detention, &extra, &rto); err != nil {
			return nil, err
		}
		m.Freight = books.MustParseMoney(freight)
		m.Commission = books.MustParseMoney(commission)
		m.Mamool = books.MustParseMoney(mamool)
		m.Detention = books.MustParseMoney(detention)
		m.Extra = books.MustParseMoney(extra)
		m.RTO = books.MustParseMoney(rto)
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// BILLS
// =============================================================================

// SaveBill upserts a bill's source fields.
func (s *Store) SaveBill(ctx context.Context, b books.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO bills
		(bill_number, loading_slip_id, party, date, bill_amount, mamool, tds,
		 penalties, detention, extra, rto)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(bill_number) DO UPDATE SET
			loading_slip_id = excluded.loading_slip_id,
			party = excluded.party,
			date = excluded.date,
			bill_amount = excluded.bill_amount,
			mamool = excluded.mamool,
			tds = excluded.tds,
			penalties = excluded.penalties,
			detention = excluded.detention,
			extra = excluded.extra,
			rto = excluded.rto
	`
	_, err := s.db.ExecContext(ctx, query,
		b.BillNumber, b.LoadingSlipID, b.Party, b.Date,
		b.BillAmount.String(), b.Mamool.String(), b.TDS.String(),
		b.Penalties.String(), b.Detention.String(), b.Extra.String(), b.RTO.String(),
	)
	return err
}

// DeleteBill removes a bill.
func (s *Store) DeleteBill(ctx context.Context, billNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE bill_number = ?", billNumber)
	return err
}

// ListBills returns all bills ordered by bill number.
func (s *Store) ListBills(ctx context.Context) ([]books.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT bill_number, loading_slip_id, party, date, bill_amount, mamool, tds,
		       penalties, detention, extra, rto
		FROM bills ORDER BY bill_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.Bill
	for rows.Next() {
		var b books.Bill
		var amount, mamool, tds, penalties, detention, extra, rto string
		if err := rows.Scan(&b.BillNumber, &b.LoadingSlipID, &b.Party, &b.Date,
			&amount, &mamool, &tds, &penalties, &detention, &extra, &rto); err != nil {
			return nil, err
		}
		b.BillAmount = books.MustParseMoney(amount)
		b.Mamool = books.MustParseMoney(mamool)
		b.TDS = books.MustParseMoney(tds)
		b.Penalties = books.MustParseMoney(penalties)
		b.Detention = books.MustParseMoney(detention)
		b.Extra = books.MustParseMoney(extra)
		b.RTO = books.MustParseMoney(rto)
		out = append(out, b)
	}
	return out, rows.Err()
}

// =============================================================================
// BANKING ENTRIES
// =============================================================================

// SaveBankingEntry upserts a banking entry.
func (s *Store) SaveBankingEntry(ctx context.Context, e books.BankingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO banking_entries
		(id, type, category, amount, date, reference_id, reference_name, vehicle_no, narration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			category = excluded.category,
			amount = excluded.amount,
			date = excluded.date,
			reference_id = excluded.reference_id,
			reference_name = excluded.reference_name,
			vehicle_no = excluded.vehicle_no,
			narration = excluded.narration
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, string(e.Type), string(e.Category), e.Amount.String(), e.Date,
		nullString(e.ReferenceID), nullString(e.ReferenceName),
		nullString(e.VehicleNo), nullString(e.Narration),
	)
	return err
}

// DeleteBankingEntry removes a banking entry.
func (s *Store) DeleteBankingEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM banking_entries WHERE id = ?", id)
	return err
}

// ListBankingEntries returns all banking entries in (date, id) order,
// the order Bootstrap replays them in.
func (s *Store) ListBankingEntries(ctx context.Context) ([]books.BankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, category, amount, date, reference_id, reference_name, vehicle_no, narration
		FROM banking_entries ORDER BY date, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.BankingEntry
	for rows.Next() {
		var e books.BankingEntry
		var typ, category, amount string
		var refID, refName, vehicleNo, narration sql.NullString
		if err := rows.Scan(&e.ID, &typ, &category, &amount, &e.Date,
			&refID, &refName, &vehicleNo, &narration); err != nil {
			return nil, err
		}
		e.Type = books.BankingType(typ)
		e.Category = books.BankingCategory(category)
		e.Amount = books.MustParseMoney(amount)
		e.ReferenceID = refID.String
		e.ReferenceName = refName.String
		e.VehicleNo = vehicleNo.String
		e.Narration = narration.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// FUEL WALLETS & ALLOCATIONS
// =============================================================================

// SaveWallet upserts a wallet. Only the opening balance is stored; the
// live balance is derived.
func (s *Store) SaveWallet(ctx context.Context, w books.FuelWallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO fuel_wallets (id, name, opening_balance)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			opening_balance = excluded.opening_balance
	`
	_, err := s.db.ExecContext(ctx, query, w.ID, w.Name, w.OpeningBalance.String())
	return err
}

// DeleteWallet removes a wallet.
func (s *Store) DeleteWallet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM fuel_wallets WHERE id = ?", id)
	return err
}

// ListWallets returns all wallets ordered by id.
func (s *Store) ListWallets(ctx context.Context) ([]books.FuelWallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, opening_balance FROM fuel_wallets ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.FuelWallet
	for rows.Next() {
		var w books.FuelWallet
		var opening string
		if err := rows.Scan(&w.ID, &w.Name, &opening); err != nil {
			return nil, err
		}
		w.OpeningBalance = books.MustParseMoney(opening)
		out = append(out, w)
	}
	return out, rows.Err()
}

// SaveFuelAllocation upserts a fuel allocation.
func (s *Store) SaveFuelAllocation(ctx context.Context, a books.FuelAllocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO fuel_allocations (id, date, wallet_id, vehicle_no, amount, narration)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			wallet_id = excluded.wallet_id,
			vehicle_no = excluded.vehicle_no,
			amount = excluded.amount,
			narration = excluded.narration
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Date, a.WalletID, a.VehicleNo, a.Amount.String(), nullString(a.Narration))
	return err
}

// DeleteFuelAllocation removes a fuel allocation.
func (s *Store) DeleteFuelAllocation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM fuel_allocations WHERE id = ?", id)
	return err
}

// ListFuelAllocations returns all allocations in (date, id) order.
func (s *Store) ListFuelAllocations(ctx context.Context) ([]books.FuelAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, wallet_id, vehicle_no, amount, narration
		FROM fuel_allocations ORDER BY date, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []books.FuelAllocation
	for rows.Next() {
		var a books.FuelAllocation
		var amount string
		var narration sql.NullString
		if err := rows.Scan(&a.ID, &a.Date, &a.WalletID, &a.VehicleNo, &amount, &narration); err != nil {
			return nil, err
		}
		a.Amount = books.MustParseMoney(amount)
		a.Narration = narration.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// BOOTSTRAP & UTILITIES
// =============================================================================

// Bootstrap loads every source record and replays it through the
// engine: master data first, then documents, then banking entries and
// fuel allocations in (date, id) order. The engine derives all ledger
// state during the replay.
func (s *Store) Bootstrap(ctx context.Context, eng *books.Engine) error {
	vehicles, err := s.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap vehicles: %w", err)
	}
	for _, v := range vehicles {
		eng.PutVehicle(v)
	}

	slips, err := s.ListLoadingSlips(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap loading slips: %w", err)
	}
	for _, slip := range slips {
		if err := eng.PutLoadingSlip(slip); err != nil {
			return fmt.Errorf("bootstrap slip %s: %w", slip.ID, err)
		}
	}

	wallets, err := s.ListWallets(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap wallets: %w", err)
	}
	for _, w := range wallets {
		if err := eng.CreateWallet(w); err != nil {
			return fmt.Errorf("bootstrap wallet %s: %w", w.ID, err)
		}
	}

	memos, err := s.ListMemos(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap memos: %w", err)
	}
	for _, m := range memos {
		if err := eng.OnMemoCreated(m); err != nil {
			return fmt.Errorf("bootstrap memo %s: %w", m.MemoNumber, err)
		}
	}

	bills, err := s.ListBills(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap bills: %w", err)
	}
	for _, b := range bills {
		if err := eng.OnBillCreated(b); err != nil {
			return fmt.Errorf("bootstrap bill %s: %w", b.BillNumber, err)
		}
	}

	banking, err := s.ListBankingEntries(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap banking entries: %w", err)
	}
	for _, e := range banking {
		if err := eng.OnBankingEntryCreated(e); err != nil {
			return fmt.Errorf("bootstrap banking entry %s: %w", e.ID, err)
		}
	}

	allocations, err := s.ListFuelAllocations(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap fuel allocations: %w", err)
	}
	for _, a := range allocations {
		if err := eng.OnFuelAllocated(a); err != nil {
			return fmt.Errorf("bootstrap fuel allocation %s: %w", a.ID, err)
		}
	}

	return nil
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"fuel_allocations", "banking_entries", "bills", "memos",
		"fuel_wallets", "loading_slips", "vehicles",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
