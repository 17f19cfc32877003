package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpatwari/replacement-tracker/internal/api/handlers"
	"github.com/rpatwari/replacement-tracker/internal/api/middleware"
	"github.com/rpatwari/replacement-tracker/internal/logger"
	"github.com/rpatwari/replacement-tracker/internal/sheets"
	"github.com/rpatwari/replacement-tracker/internal/tracker"
	"github.com/rpatwari/replacement-tracker/internal/tracker/memstore"
)

func main() {
	// .env is optional; flags still override anything it sets
	_ = godotenv.Load()

	var (
		port        = flag.String("port", envOr("PORT", "5000"), "HTTP server port")
		sheetID     = flag.String("sheet-id", os.Getenv("SHEET_ID"), "Google Sheets spreadsheet ID (or set SHEET_ID env)")
		credentials = flag.String("credentials", envOr("SERVICE_ACCOUNT_FILE", "service-account.json"), "path to the service account key file")
		sheetName   = flag.String("sheet-name", envOr("SHEET_NAME", "Sheet1"), "tab holding the transaction log")
		modelView   = flag.String("model-view", os.Getenv("MODEL_VIEW_RANGE"), "optional rollup range with per-model totals, e.g. ModelSummary!A2:C")
		batchView   = flag.String("batch-view", os.Getenv("BATCH_VIEW_RANGE"), "optional rollup range with per-batch totals, e.g. BatchSummary!A2:C")
		memory      = flag.Bool("memory", false, "use an in-memory store instead of Google Sheets")
	)
	flag.Parse()

	log := logger.New()

	ctx := context.Background()

	cfg := tracker.ConfigForSheet(*sheetName)
	cfg.ModelView = *modelView
	cfg.BatchView = *batchView

	var store tracker.RowStore
	if *memory || *sheetID == "" {
		if !*memory {
			log.Warn().Msg("No SHEET_ID configured - falling back to the in-memory store")
		}
		store = memstore.New()
	} else {
		sheetStore, err := sheets.New(ctx, *sheetID, *credentials, *sheetName+"!A:G")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets store")
		}
		store = sheetStore
	}

	svc := tracker.New(store, cfg, log)
	trackerHandler := handlers.NewTrackerHandler(svc, log)

	middleware.RegisterMetrics()

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			trackerHandler.Submit(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			trackerHandler.ListClients(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/client-summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			trackerHandler.ClientSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/client-details", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			trackerHandler.ClientDetails(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/overall-summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			trackerHandler.OverallSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.Metrics(
					middleware.CORS(mux),
				),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
