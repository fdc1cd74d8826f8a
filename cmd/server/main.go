/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the road carriers accounting server. Handles
  configuration, the bootstrap replay, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse flags
  2. Open the SQLite store
  3. Replay stored records into a fresh engine
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

CONFIGURATION:
  Flags win over environment variables; both are optional.

  -port / PORT          HTTP server port (default: 8080)
  -db / DB_PATH         SQLite database path (default: books.db)
                        Use ":memory:" for an in-memory database
  -log-level / LOG_LEVEL  logrus level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Run with a file database
  ./server -db="./data/books.db"

  # Run with an in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Persistence and bootstrap replay
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/api"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/books"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/factory"
	"github.com/cipherkaswan30/bhavishyaroadcarriers-sub000/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "books.db"), "SQLite database path")
	logLevel := flag.String("log-level", envStr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown log level %q, using info", *logLevel)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer store.Close()

	// Replay stored records so derived state matches the books.
	engine := books.NewEngine(log)
	if err := store.Bootstrap(context.Background(), engine); err != nil {
		log.WithError(err).Fatal("bootstrap replay failed")
	}

	numbers := factory.NewNumberFactory()
	for _, slip := range engine.LoadingSlips() {
		numbers.Observe(factory.KindLoadingSlip, slip.SlipNumber)
	}
	for _, m := range engine.Memos() {
		numbers.Observe(factory.KindMemo, m.MemoNumber)
	}
	for _, b := range engine.Bills() {
		numbers.Observe(factory.KindBill, b.BillNumber)
	}

	handler := api.NewHandler(engine, store, numbers, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("server starting on http://localhost:%d", *port)
		log.Infof("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
