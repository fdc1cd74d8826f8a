/*
handlers_test.go - HTTP-level tests for the accounting API

Tests for:
- Document creation and derived figures over the wire
- Settlement flow through banking endpoints
- Error status mapping
- Scenario loading
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/api"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/factory"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	eng := books.NewEngine(log)
	h := api.NewHandler(eng, store, factory.NewNumberFactory(), log)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

// do sends a JSON request and decodes the response body into out when
// out is non-nil.
func do(t *testing.T, srv *httptest.Server, method, path string, body, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func seedVehicleAndSlip(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp := do(t, srv, http.MethodPost, "/api/vehicles", map[string]any{
		"vehicle_no": "HR55AB9999",
		"ownership":  "market",
		"owner_name": "Shree Transport Co",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/loading-slips", map[string]any{
		"id":          "ls-1",
		"slip_number": "LS-0001",
		"date":        "2025-05-01",
		"party":       "Kanha Cement",
		"vehicle_no":  "HR55AB9999",
		"freight":     100000,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateMemo_DerivesSupplierFigures(t *testing.T) {
	// GIVEN: A market vehicle with a loading slip
	srv := newTestServer(t)
	seedVehicleAndSlip(t, srv)

	// WHEN: A memo is created over HTTP
	var memo api.MemoDTO
	resp := do(t, srv, http.MethodPost, "/api/memos", map[string]any{
		"memo_number":     "MO-0001",
		"loading_slip_id": "ls-1",
		"supplier":        "Shree Transport Co",
		"date":            "2025-05-01",
		"freight":         100000,
		"commission":      6000,
		"mamool":          2000,
		"detention":       1000,
	}, &memo)

	// THEN: The response carries the derived figures
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "MO-0001", memo.MemoNumber)
	assert.Equal(t, float64(93000), memo.NetAmount)
	assert.Equal(t, float64(93000), memo.Outstanding)
	assert.Equal(t, "pending", memo.Status)

	// AND: The supplier statement shows the derived credit
	var st api.StatementDTO
	resp = do(t, srv, http.MethodGet,
		"/api/ledger/statement?type=supplier&ref=Shree+Transport+Co", nil, &st)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, st.Lines, 1)
	assert.Equal(t, float64(93000), st.Lines[0].Entry.Credit)
	assert.Equal(t, float64(93000), st.FinalBalance)
}

func TestBankingAdvanceAndPayment_SettleMemo(t *testing.T) {
	// GIVEN: A memo with 93000 outstanding
	srv := newTestServer(t)
	seedVehicleAndSlip(t, srv)
	resp := do(t, srv, http.MethodPost, "/api/memos", map[string]any{
		"memo_number":     "MO-0001",
		"loading_slip_id": "ls-1",
		"supplier":        "Shree Transport Co",
		"date":            "2025-05-01",
		"freight":         100000,
		"commission":      6000,
		"mamool":          2000,
		"detention":       1000,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN: An advance and the closing payment are recorded
	resp = do(t, srv, http.MethodPost, "/api/banking", map[string]any{
		"type":         "debit",
		"category":     "memo_advance",
		"amount":       40000,
		"date":         "2025-05-02",
		"reference_id": "MO-0001",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/banking", map[string]any{
		"type":         "debit",
		"category":     "memo_payment",
		"amount":       53000,
		"date":         "2025-05-10",
		"reference_id": "MO-0001",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// THEN: The memo reads as fully settled
	var memo api.MemoDTO
	resp = do(t, srv, http.MethodGet, "/api/memos/MO-0001", nil, &memo)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(40000), memo.TotalAdvance)
	assert.Equal(t, float64(53000), memo.PaidAmount)
	assert.Equal(t, float64(0), memo.Outstanding)
	assert.Equal(t, "paid", memo.Status)
	assert.Equal(t, "2025-05-10", memo.PaidDate)
	require.Len(t, memo.Advances, 1)
	assert.Equal(t, float64(40000), memo.Advances[0].Amount)
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	seedVehicleAndSlip(t, srv)

	t.Run("memo for unknown slip is 404", func(t *testing.T) {
		resp := do(t, srv, http.MethodPost, "/api/memos", map[string]any{
			"memo_number":     "MO-0404",
			"loading_slip_id": "no-such-slip",
			"supplier":        "Shree Transport Co",
			"date":            "2025-05-01",
			"freight":         1000,
		}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("duplicate memo number is 409", func(t *testing.T) {
		body := map[string]any{
			"memo_number":     "MO-0001",
			"loading_slip_id": "ls-1",
			"supplier":        "Shree Transport Co",
			"date":            "2025-05-01",
			"freight":         1000,
		}
		resp := do(t, srv, http.MethodPost, "/api/memos", body, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp = do(t, srv, http.MethodPost, "/api/memos", body, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("banking entry missing reference is 400", func(t *testing.T) {
		resp := do(t, srv, http.MethodPost, "/api/banking", map[string]any{
			"type":     "debit",
			"category": "memo_advance",
			"amount":   5000,
			"date":     "2025-05-02",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown memo is 404", func(t *testing.T) {
		resp := do(t, srv, http.MethodGet, "/api/memos/MO-9999", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAutoNumbering(t *testing.T) {
	// GIVEN: A server with default number series
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodPost, "/api/vehicles", map[string]any{
		"vehicle_no": "RJ14GA1234",
		"ownership":  "own",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN: A slip is created without a slip number
	var slip api.LoadingSlipDTO
	resp = do(t, srv, http.MethodPost, "/api/loading-slips", map[string]any{
		"date":       "2025-05-01",
		"party":      "Agrawal Traders",
		"vehicle_no": "RJ14GA1234",
		"freight":    50000,
	}, &slip)

	// THEN: The factory assigns the next number and an id
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "LS-0001", slip.SlipNumber)
	assert.NotEmpty(t, slip.ID)

	// AND: An externally numbered slip bumps the series past it
	resp = do(t, srv, http.MethodPost, "/api/loading-slips", map[string]any{
		"slip_number": "LS-0100",
		"date":        "2025-05-02",
		"party":       "Agrawal Traders",
		"vehicle_no":  "RJ14GA1234",
		"freight":     60000,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var next api.LoadingSlipDTO
	resp = do(t, srv, http.MethodPost, "/api/loading-slips", map[string]any{
		"date":       "2025-05-03",
		"party":      "Agrawal Traders",
		"vehicle_no": "RJ14GA1234",
		"freight":    70000,
	}, &next)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "LS-0101", next.SlipNumber)
}

func TestVehicleOwnershipChange_RewritesLedger(t *testing.T) {
	// GIVEN: A market vehicle with a memo posted to its supplier
	srv := newTestServer(t)
	seedVehicleAndSlip(t, srv)
	resp := do(t, srv, http.MethodPost, "/api/memos", map[string]any{
		"memo_number":     "MO-0001",
		"loading_slip_id": "ls-1",
		"supplier":        "Shree Transport Co",
		"date":            "2025-05-01",
		"freight":         100000,
		"commission":      6000,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN: The vehicle is reclassified as own
	resp = do(t, srv, http.MethodPut, "/api/vehicles/HR55AB9999", map[string]any{
		"ownership": "own",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// THEN: The supplier book is empty and vehicle income carries the trip
	var supplier api.StatementDTO
	do(t, srv, http.MethodGet, "/api/ledger/statement?type=supplier&ref=Shree+Transport+Co", nil, &supplier)
	assert.Empty(t, supplier.Lines)

	var income api.StatementDTO
	do(t, srv, http.MethodGet, "/api/ledger/statement?type=vehicle_income&ref=HR55AB9999", nil, &income)
	require.NotEmpty(t, income.Lines)
	assert.Equal(t, float64(94000), income.FinalBalance)
}

func TestScenarios_LoadAndReset(t *testing.T) {
	srv := newTestServer(t)

	// WHEN: The market trips scenario is loaded
	resp := do(t, srv, http.MethodPost, "/api/scenarios/load", map[string]any{
		"scenario_id": "market-trips",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// THEN: Documents and derived entries exist
	var memos []api.MemoDTO
	do(t, srv, http.MethodGet, "/api/memos", nil, &memos)
	assert.Len(t, memos, 2)

	var entries []api.LedgerEntryDTO
	do(t, srv, http.MethodGet, "/api/ledger/", nil, &entries)
	assert.NotEmpty(t, entries)

	// AND: Reset clears everything
	resp = do(t, srv, http.MethodPost, "/api/scenarios/reset", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	do(t, srv, http.MethodGet, "/api/memos", nil, &memos)
	assert.Empty(t, memos)
}

func TestUnknownScenario_IsBadRequest(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodPost, "/api/scenarios/load", map[string]any{
		"scenario_id": "does-not-exist",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetStatement_ConventionOverride(t *testing.T) {
	// GIVEN: A supplier book with one 93000 credit
	srv := newTestServer(t)
	seedVehicleAndSlip(t, srv)
	resp := do(t, srv, http.MethodPost, "/api/memos", map[string]any{
		"memo_number":     "MO-0001",
		"loading_slip_id": "ls-1",
		"supplier":        "Shree Transport Co",
		"date":            "2025-05-01",
		"freight":         100000,
		"commission":      6000,
		"mamool":          2000,
		"detention":       1000,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN: The statement is read under both conventions
	var byDefault api.StatementDTO
	resp = do(t, srv, http.MethodGet,
		"/api/ledger/statement?type=supplier&ref=Shree+Transport+Co", nil, &byDefault)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var flipped api.StatementDTO
	resp = do(t, srv, http.MethodGet,
		"/api/ledger/statement?type=supplier&ref=Shree+Transport+Co&convention=debit_minus_credit",
		nil, &flipped)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// THEN: The override flips the sign of the running balance
	assert.Equal(t, "credit_minus_debit", byDefault.Convention)
	assert.Equal(t, float64(93000), byDefault.FinalBalance)
	assert.Equal(t, "debit_minus_credit", flipped.Convention)
	assert.Equal(t, float64(-93000), flipped.FinalBalance)

	// AND: An unknown convention is rejected
	resp = do(t, srv, http.MethodGet,
		"/api/ledger/statement?type=supplier&ref=Shree+Transport+Co&convention=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
