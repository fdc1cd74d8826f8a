/*
dto.go - Request/response data structures for the REST API

PURPOSE:
  JSON shapes exchanged with clients, separate from the domain types in
  books/. Amounts cross the wire as float64 rupees for frontend
  convenience; all arithmetic stays decimal inside the engine.

CONVERSION:
  toMoney / fromMoney are the only places the float boundary is
  crossed. Derived figures (net amount, outstanding, running balances)
  are computed by the engine and only formatted here.

SEE ALSO:
  - handlers.go: Producers and consumers of these DTOs
  - books/records.go: The domain types behind them
*/
package api

import (
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func fromMoney(m books.Money) float64 {
	f, _ := m.Float64()
	return f
}

func toMoney(v float64) books.Money {
	return books.Rupees(v)
}

// =============================================================================
// VEHICLES
// =============================================================================

type VehicleDTO struct {
	VehicleNo string `json:"vehicle_no"`
	Ownership string `json:"ownership"`
	OwnerName string `json:"owner_name,omitempty"`
}

func toVehicleDTO(v books.Vehicle) VehicleDTO {
	return VehicleDTO{
		VehicleNo: v.VehicleNo,
		Ownership: string(v.Ownership),
		OwnerName: v.OwnerName,
	}
}

// =============================================================================
// LOADING SLIPS
// =============================================================================

type LoadingSlipDTO struct {
	ID           string  `json:"id"`
	SlipNumber   string  `json:"slip_number"`
	Date         string  `json:"date"`
	Party        string  `json:"party"`
	VehicleNo    string  `json:"vehicle_no"`
	FromLocation string  `json:"from_location,omitempty"`
	ToLocation   string  `json:"to_location,omitempty"`
	Weight       float64 `json:"weight"`
	Freight      float64 `json:"freight"`
	Advance      float64 `json:"advance"`
	RTO          float64 `json:"rto"`
	Balance      float64 `json:"balance"`
	TotalFreight float64 `json:"total_freight"`
}

type LoadingSlipRequest struct {
	ID           string  `json:"id,omitempty"`
	SlipNumber   string  `json:"slip_number,omitempty"`
	Date         string  `json:"date"`
	Party        string  `json:"party"`
	VehicleNo    string  `json:"vehicle_no"`
	FromLocation string  `json:"from_location,omitempty"`
	ToLocation   string  `json:"to_location,omitempty"`
	Weight       float64 `json:"weight"`
	Freight      float64 `json:"freight"`
	Advance      float64 `json:"advance"`
	RTO          float64 `json:"rto"`
}

func toLoadingSlipDTO(s books.LoadingSlip) LoadingSlipDTO {
	return LoadingSlipDTO{
		ID:           s.ID,
		SlipNumber:   s.SlipNumber,
		Date:         s.Date,
		Party:        s.Party,
		VehicleNo:    s.VehicleNo,
		FromLocation: s.FromLocation,
		ToLocation:   s.ToLocation,
		Weight:       fromMoney(s.Weight),
		Freight:      fromMoney(s.Freight),
		Advance:      fromMoney(s.Advance),
		RTO:          fromMoney(s.RTO),
		Balance:      fromMoney(s.Balance()),
		TotalFreight: fromMoney(s.TotalFreight()),
	}
}

func (r LoadingSlipRequest) toDomain(id, number string) books.LoadingSlip {
	return books.LoadingSlip{
		ID:           id,
		SlipNumber:   number,
		Date:         r.Date,
		Party:        r.Party,
		VehicleNo:    r.VehicleNo,
		FromLocation: r.FromLocation,
		ToLocation:   r.ToLocation,
		Weight:       toMoney(r.Weight),
		Freight:      toMoney(r.Freight),
		Advance:      toMoney(r.Advance),
		RTO:          toMoney(r.RTO),
	}
}

// =============================================================================
// MEMOS
// =============================================================================

type AdvancePaymentDTO struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Narration string  `json:"narration,omitempty"`
}

func toAdvanceDTOs(advances []books.AdvancePayment) []AdvancePaymentDTO {
	out := make([]AdvancePaymentDTO, 0, len(advances))
	for _, a := range advances {
		out = append(out, AdvancePaymentDTO{
			ID:        a.ID,
			Date:      a.Date,
			Amount:    fromMoney(a.Amount),
			Narration: a.Narration,
		})
	}
	return out
}

type MemoDTO struct {
	MemoNumber    string              `json:"memo_number"`
	LoadingSlipID string              `json:"loading_slip_id"`
	Supplier      string              `json:"supplier"`
	Date          string              `json:"date"`
	Freight       float64             `json:"freight"`
	Commission    float64             `json:"commission"`
	Mamool        float64             `json:"mamool"`
	Detention     float64             `json:"detention"`
	Extra         float64             `json:"extra"`
	RTO           float64             `json:"rto"`
	NetAmount     float64             `json:"net_amount"`
	TotalAdvance  float64             `json:"total_advance"`
	Outstanding   float64             `json:"outstanding"`
	Status        string              `json:"status"`
	PaidDate      string              `json:"paid_date,omitempty"`
	PaidAmount    float64             `json:"paid_amount"`
	Advances      []AdvancePaymentDTO `json:"advance_payments"`
}

type MemoRequest struct {
	MemoNumber    string  `json:"memo_number,omitempty"`
	LoadingSlipID string  `json:"loading_slip_id"`
	Supplier      string  `json:"supplier"`
	Date          string  `json:"date"`
	Freight       float64 `json:"freight"`
	Commission    float64 `json:"commission"`
	Mamool        float64 `json:"mamool"`
	Detention     float64 `json:"detention"`
	Extra         float64 `json:"extra"`
	RTO           float64 `json:"rto"`
}

func toMemoDTO(m books.Memo) MemoDTO {
	return MemoDTO{
		MemoNumber:    m.MemoNumber,
		LoadingSlipID: m.LoadingSlipID,
		Supplier:      m.Supplier,
		Date:          m.Date,
		Freight:       fromMoney(m.Freight),
		Commission:    fromMoney(m.Commission),
		Mamool:        fromMoney(m.Mamool),
		Detention:     fromMoney(m.Detention),
		Extra:         fromMoney(m.Extra),
		RTO:           fromMoney(m.RTO),
		NetAmount:     fromMoney(m.NetAmount()),
		TotalAdvance:  fromMoney(m.TotalAdvance()),
		Outstanding:   fromMoney(m.Outstanding()),
		Status:        string(m.Status),
		PaidDate:      m.PaidDate,
		PaidAmount:    fromMoney(m.PaidAmount),
		Advances:      toAdvanceDTOs(m.AdvancePayments),
	}
}

func (r MemoRequest) toDomain(number string) books.Memo {
	return books.Memo{
		MemoNumber:    number,
		LoadingSlipID: r.LoadingSlipID,
		Supplier:      r.Supplier,
		Date:          r.Date,
		Freight:       toMoney(r.Freight),
		Commission:    toMoney(r.Commission),
		Mamool:        toMoney(r.Mamool),
		Detention:     toMoney(r.Detention),
		Extra:         toMoney(r.Extra),
		RTO:           toMoney(r.RTO),
	}
}

// =============================================================================
// BILLS
// =============================================================================

type BillDTO struct {
	BillNumber     string              `json:"bill_number"`
	LoadingSlipID  string              `json:"loading_slip_id"`
	Party          string              `json:"party"`
	Date           string              `json:"date"`
	BillAmount     float64             `json:"bill_amount"`
	Mamool         float64             `json:"mamool"`
	TDS            float64             `json:"tds"`
	Penalties      float64             `json:"penalties"`
	Detention      float64             `json:"detention"`
	Extra          float64             `json:"extra"`
	RTO            float64             `json:"rto"`
	NetAmount      float64             `json:"net_amount"`
	TotalAdvance   float64             `json:"total_advance"`
	Outstanding    float64             `json:"outstanding"`
	Status         string              `json:"status"`
	ReceivedDate   string              `json:"received_date,omitempty"`
	ReceivedAmount float64             `json:"received_amount"`
	Advances       []AdvancePaymentDTO `json:"advance_payments"`
}

type BillRequest struct {
	BillNumber    string  `json:"bill_number,omitempty"`
	LoadingSlipID string  `json:"loading_slip_id"`
	Party         string  `json:"party"`
	Date          string  `json:"date"`
	BillAmount    float64 `json:"bill_amount"`
	Mamool        float64 `json:"mamool"`
	TDS           float64 `json:"tds"`
	Penalties     float64 `json:"penalties"`
	Detention     float64 `json:"detention"`
	Extra         float64 `json:"extra"`
	RTO           float64 `json:"rto"`
}

func toBillDTO(b books.Bill) BillDTO {
	return BillDTO{
		BillNumber:     b.BillNumber,
		LoadingSlipID:  b.LoadingSlipID,
		Party:          b.Party,
		Date:           b.Date,
		BillAmount:     fromMoney(b.BillAmount),
		Mamool:         fromMoney(b.Mamool),
		TDS:            fromMoney(b.TDS),
		Penalties:      fromMoney(b.Penalties),
		Detention:      fromMoney(b.Detention),
		Extra:          fromMoney(b.Extra),
		RTO:            fromMoney(b.RTO),
		NetAmount:      fromMoney(b.NetAmount()),
		TotalAdvance:   fromMoney(b.TotalAdvance()),
		Outstanding:    fromMoney(b.Outstanding()),
		Status:         string(b.Status),
		ReceivedDate:   b.ReceivedDate,
		ReceivedAmount: fromMoney(b.ReceivedAmount),
		Advances:       toAdvanceDTOs(b.AdvancePayments),
	}
}

func (r BillRequest) toDomain(number string) books.Bill {
	return books.Bill{
		BillNumber:    number,
		LoadingSlipID: r.LoadingSlipID,
		Party:         r.Party,
		Date:          r.Date,
		BillAmount:    toMoney(r.BillAmount),
		Mamool:        toMoney(r.Mamool),
		TDS:           toMoney(r.TDS),
		Penalties:     toMoney(r.Penalties),
		Detention:     toMoney(r.Detention),
		Extra:         toMoney(r.Extra),
		RTO:           toMoney(r.RTO),
	}
}

// =============================================================================
// BANKING
// =============================================================================

type BankingEntryDTO struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	ReferenceID   string  `json:"reference_id,omitempty"`
	ReferenceName string  `json:"reference_name,omitempty"`
	VehicleNo     string  `json:"vehicle_no,omitempty"`
	Narration     string  `json:"narration,omitempty"`
}

type BankingEntryRequest struct {
	ID            string  `json:"id,omitempty"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	ReferenceID   string  `json:"reference_id,omitempty"`
	ReferenceName string  `json:"reference_name,omitempty"`
	VehicleNo     string  `json:"vehicle_no,omitempty"`
	Narration     string  `json:"narration,omitempty"`
}

func toBankingEntryDTO(e books.BankingEntry) BankingEntryDTO {
	return BankingEntryDTO{
		ID:            e.ID,
		Type:          string(e.Type),
		Category:      string(e.Category),
		Amount:        fromMoney(e.Amount),
		Date:          e.Date,
		ReferenceID:   e.ReferenceID,
		ReferenceName: e.ReferenceName,
		VehicleNo:     e.VehicleNo,
		Narration:     e.Narration,
	}
}

func (r BankingEntryRequest) toDomain(id string) books.BankingEntry {
	return books.BankingEntry{
		ID:            id,
		Type:          books.BankingType(r.Type),
		Category:      books.BankingCategory(r.Category),
		Amount:        toMoney(r.Amount),
		Date:          r.Date,
		ReferenceID:   r.ReferenceID,
		ReferenceName: r.ReferenceName,
		VehicleNo:     r.VehicleNo,
		Narration:     r.Narration,
	}
}

// =============================================================================
// FUEL
// =============================================================================

type WalletDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	OpeningBalance float64 `json:"opening_balance"`
	Balance        float64 `json:"balance"`
}

type WalletRequest struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	OpeningBalance float64 `json:"opening_balance"`
}

func toWalletDTO(w books.FuelWallet) WalletDTO {
	return WalletDTO{
		ID:             w.ID,
		Name:           w.Name,
		OpeningBalance: fromMoney(w.OpeningBalance),
		Balance:        fromMoney(w.Balance),
	}
}

type FuelAllocationDTO struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	WalletID  string  `json:"wallet_id"`
	VehicleNo string  `json:"vehicle_no"`
	Amount    float64 `json:"amount"`
	Narration string  `json:"narration,omitempty"`
}

type FuelAllocationRequest struct {
	ID        string  `json:"id,omitempty"`
	Date      string  `json:"date"`
	WalletID  string  `json:"wallet_id"`
	VehicleNo string  `json:"vehicle_no"`
	Amount    float64 `json:"amount"`
	Narration string  `json:"narration,omitempty"`
}

func toFuelAllocationDTO(a books.FuelAllocation) FuelAllocationDTO {
	return FuelAllocationDTO{
		ID:        a.ID,
		Date:      a.Date,
		WalletID:  a.WalletID,
		VehicleNo: a.VehicleNo,
		Amount:    fromMoney(a.Amount),
		Narration: a.Narration,
	}
}

func (r FuelAllocationRequest) toDomain(id string) books.FuelAllocation {
	return books.FuelAllocation{
		ID:        id,
		Date:      r.Date,
		WalletID:  r.WalletID,
		VehicleNo: r.VehicleNo,
		Amount:    toMoney(r.Amount),
		Narration: r.Narration,
	}
}

// =============================================================================
// LEDGER & STATEMENTS
// =============================================================================

type LedgerEntryDTO struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	ReferenceID   string  `json:"reference_id"`
	ReferenceName string  `json:"reference_name,omitempty"`
	Date          string  `json:"date"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	SourceType    string  `json:"source_type"`
	SourceID      string  `json:"source_id"`
	Narration     string  `json:"narration,omitempty"`
}

func toLedgerEntryDTO(e books.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:            e.ID.String(),
		Type:          string(e.Type),
		ReferenceID:   e.ReferenceID,
		ReferenceName: e.ReferenceName,
		Date:          e.Date,
		Debit:         fromMoney(e.Debit),
		Credit:        fromMoney(e.Credit),
		SourceType:    string(e.SourceType),
		SourceID:      e.SourceID,
		Narration:     e.Narration,
	}
}

type StatementLineDTO struct {
	Entry   LedgerEntryDTO `json:"entry"`
	Running float64        `json:"running_balance"`
}

type StatementDTO struct {
	ReferenceID  string             `json:"reference_id"`
	Type         string             `json:"type"`
	Convention   string             `json:"convention"`
	Lines        []StatementLineDTO `json:"lines"`
	TotalDebit   float64            `json:"total_debit"`
	TotalCredit  float64            `json:"total_credit"`
	FinalBalance float64            `json:"final_balance"`
}

func toStatementDTO(st books.Statement) StatementDTO {
	lines := make([]StatementLineDTO, 0, len(st.Lines))
	for _, l := range st.Lines {
		lines = append(lines, StatementLineDTO{
			Entry:   toLedgerEntryDTO(l.Entry),
			Running: fromMoney(l.Running),
		})
	}
	return StatementDTO{
		ReferenceID:  st.ReferenceID,
		Type:         string(st.Type),
		Convention:   string(st.Convention),
		Lines:        lines,
		TotalDebit:   fromMoney(st.TotalDebit()),
		TotalCredit:  fromMoney(st.TotalCredit()),
		FinalBalance: fromMoney(st.FinalBalance),
	}
}

// OutstandingDTO is the master-list summary figure for one party or
// supplier.
type OutstandingDTO struct {
	Reference   string  `json:"reference"`
	Outstanding float64 `json:"outstanding"`
}
