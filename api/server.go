/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/vehicles/*           Vehicle registry
  /api/loading-slips/*      Loading slips
  /api/memos/*              Supplier memos
  /api/bills/*              Party bills
  /api/banking/*            Banking entries
  /api/wallets/*            Fuel wallets
  /api/fuel-allocations/*   Fuel allocations
  /api/ledger/*             Ledger entries and statements
  /api/scenarios/*          Demo scenarios
  /api/admin/*              Admin operations

STATIC FILE SERVING:
  Serves the built frontend from web/dist/ when present, falling back
  to index.html for client-side routing. Without a build, a short
  endpoint index is shown instead.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Vehicle registry
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.ListVehicles)
			r.Post("/", h.CreateVehicle)
			r.Put("/{vehicleNo}", h.UpdateVehicle)
			r.Delete("/{vehicleNo}", h.DeleteVehicle)
			r.Get("/{vehicleNo}/fuel", h.VehicleFuel)
		})

		// Loading slips
		r.Route("/loading-slips", func(r chi.Router) {
			r.Get("/", h.ListLoadingSlips)
			r.Post("/", h.CreateLoadingSlip)
			r.Get("/{id}", h.GetLoadingSlip)
			r.Put("/{id}", h.UpdateLoadingSlip)
			r.Delete("/{id}", h.DeleteLoadingSlip)
		})

		// Supplier memos
		r.Route("/memos", func(r chi.Router) {
			r.Get("/", h.ListMemos)
			r.Post("/", h.CreateMemo)
			r.Get("/{memoNumber}", h.GetMemo)
			r.Put("/{memoNumber}", h.UpdateMemo)
			r.Delete("/{memoNumber}", h.DeleteMemo)
		})

		// Party bills
		r.Route("/bills", func(r chi.Router) {
			r.Get("/", h.ListBills)
			r.Post("/", h.CreateBill)
			r.Get("/{billNumber}", h.GetBill)
			r.Put("/{billNumber}", h.UpdateBill)
			r.Delete("/{billNumber}", h.DeleteBill)
		})

		// Banking entries
		r.Route("/banking", func(r chi.Router) {
			r.Get("/", h.ListBankingEntries)
			r.Post("/", h.CreateBankingEntry)
			r.Get("/{id}", h.GetBankingEntry)
			r.Put("/{id}", h.UpdateBankingEntry)
			r.Delete("/{id}", h.DeleteBankingEntry)
		})

		// Fuel wallets and allocations
		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", h.ListWallets)
			r.Post("/", h.CreateWallet)
			r.Delete("/{id}", h.DeleteWallet)
		})
		r.Route("/fuel-allocations", func(r chi.Router) {
			r.Get("/", h.ListFuelAllocations)
			r.Post("/", h.CreateFuelAllocation)
			r.Delete("/{id}", h.DeleteFuelAllocation)
		})

		// Ledger and statements
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", h.ListLedgerEntries)
			r.Get("/statement", h.GetStatement)
		})
		r.Get("/parties/{party}/outstanding", h.PartyOutstanding)
		r.Get("/suppliers/{supplier}/outstanding", h.SupplierOutstanding)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/recompute", h.Recompute)
		})
	})

	// Serve static files (frontend build)
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Road Carriers Books</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Road Carriers Books API</h1>
<p>The API is running. Endpoints live under <code>/api</code>:</p>
<ul>
<li><code>GET /api/vehicles</code></li>
<li><code>GET /api/loading-slips</code></li>
<li><code>GET /api/memos</code></li>
<li><code>GET /api/bills</code></li>
<li><code>GET /api/banking</code></li>
<li><code>GET /api/wallets</code></li>
<li><code>GET /api/ledger/statement?type=supplier&amp;ref=...</code></li>
<li><code>POST /api/scenarios/load</code></li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
