package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	locationsadapter "warehouse-cloud/internal/allocation/adapters/locations"
	allocationapp "warehouse-cloud/internal/allocation/application"
	allocationhttp "warehouse-cloud/internal/allocation/interfaces/http"
	"warehouse-cloud/internal/audit"
	"warehouse-cloud/internal/auth"
	dashboardapp "warehouse-cloud/internal/dashboard/application"
	dashboardhttp "warehouse-cloud/internal/dashboard/interfaces/http"
	"warehouse-cloud/internal/eventing"
	eventingrepo "warehouse-cloud/internal/eventing/infrastructure/postgres"
	goodsinapp "warehouse-cloud/internal/goodsin/application"
	goodsinevents "warehouse-cloud/internal/goodsin/application/events"
	goodsinrepo "warehouse-cloud/internal/goodsin/infrastructure/postgres"
	goodsinhttp "warehouse-cloud/internal/goodsin/interfaces/http"
	locationsapp "warehouse-cloud/internal/locations/application"
	locationsrepo "warehouse-cloud/internal/locations/infrastructure/postgres"
	locationshttp "warehouse-cloud/internal/locations/interfaces/http"
	"warehouse-cloud/internal/observability/metrics"
	pickingapp "warehouse-cloud/internal/picking/application"
	pickingevents "warehouse-cloud/internal/picking/application/events"
	pickingrepo "warehouse-cloud/internal/picking/infrastructure/postgres"
	pickinghttp "warehouse-cloud/internal/picking/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	allocationCfg, err := allocationapp.LoadConfig()
	if err != nil {
		logger.Fatalf("allocation config error: %v", err)
	}
	capacities := allocationCfg.CapacityTable()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	locationRepo := locationsrepo.NewLocationRepository(db)
	receiptRepo := goodsinrepo.NewReceiptRepository(db)
	pickRepo := pickingrepo.NewPickRepository(db)

	baseBus := eventing.NewInMemoryBus()
	registry := eventing.NewRegistry()
	registry.Register(goodsinevents.GoodsReceived{})
	registry.Register(goodsinevents.StockPlaced{})
	registry.Register(pickingevents.PickCompleted{})

	outboxStore := eventingrepo.NewOutboxStore(db)
	processedStore := eventingrepo.NewProcessedStore(db)
	publisher := eventing.NewPublisher(outboxStore, baseBus, registry, cfg.TenantID)

	eventing.Subscribe(baseBus, eventing.EventTypeOf[goodsinevents.StockPlaced](), "goodsin.log", func(ctx context.Context, event any) error {
		evt, ok := event.(goodsinevents.StockPlaced)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		logger.Printf("stock placed: receipt=%s location=%s weight=%.1fkg", evt.ReceiptID, evt.LocationCode, evt.WeightKg)
		return nil
	}, processedStore)
	eventing.Subscribe(baseBus, eventing.EventTypeOf[pickingevents.PickCompleted](), "picking.log", func(ctx context.Context, event any) error {
		evt, ok := event.(pickingevents.PickCompleted)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		logger.Printf("pick completed: pick=%s location=%s weight=%.1fkg", evt.PickID, evt.LocationCode, evt.WeightKg)
		return nil
	}, processedStore)

	snapshotSource, err := locationsadapter.NewSnapshotAdapter(locationRepo)
	if err != nil {
		logger.Fatalf("snapshot adapter error: %v", err)
	}
	allocationService, err := allocationapp.NewService(snapshotSource, capacities)
	if err != nil {
		logger.Fatalf("allocation service error: %v", err)
	}
	allocationHandler, err := allocationhttp.NewHandler(allocationService)
	if err != nil {
		logger.Fatalf("allocation handler error: %v", err)
	}

	locationService, err := locationsapp.NewService(locationRepo, capacities)
	if err != nil {
		logger.Fatalf("location service error: %v", err)
	}
	repairer, err := locationsapp.NewRepairer(locationRepo, receiptRepo, capacities, logger)
	if err != nil {
		logger.Fatalf("repairer error: %v", err)
	}
	locationHandler, err := locationshttp.NewHandler(locationService, repairer, auditRepo)
	if err != nil {
		logger.Fatalf("location handler error: %v", err)
	}
	repairScheduler := locationsapp.NewRepairScheduler(repairer, allocationCfg.RepairDailyAt, logger)
	go repairScheduler.Start(context.Background())

	goodsinService, err := goodsinapp.NewService(receiptRepo, locationRepo, allocationService, publisher, logger)
	if err != nil {
		logger.Fatalf("goods-in service error: %v", err)
	}
	goodsinHandler, err := goodsinhttp.NewHandler(goodsinService, auditRepo)
	if err != nil {
		logger.Fatalf("goods-in handler error: %v", err)
	}

	pickingService, err := pickingapp.NewService(pickRepo, receiptRepo, locationRepo, capacities, publisher, logger)
	if err != nil {
		logger.Fatalf("picking service error: %v", err)
	}
	pickingHandler, err := pickinghttp.NewHandler(pickingService, auditRepo)
	if err != nil {
		logger.Fatalf("picking handler error: %v", err)
	}

	dashboardService, err := dashboardapp.NewService(db, capacities)
	if err != nil {
		logger.Fatalf("dashboard service error: %v", err)
	}
	dashboardHandler, err := dashboardhttp.NewHandler(dashboardService)
	if err != nil {
		logger.Fatalf("dashboard handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/allocations/suggest", allocationHandler)
	mux.Handle("/api/v1/locations", locationHandler)
	mux.Handle("/api/v1/locations/", locationHandler)
	mux.Handle("/api/v1/goods-in", goodsinHandler)
	mux.Handle("/api/v1/goods-in/", goodsinHandler)
	mux.Handle("/api/v1/picks", pickingHandler)
	mux.Handle("/api/v1/picks/", pickingHandler)
	mux.Handle("/api/v1/dashboard/summary", dashboardHandler)
	mux.Handle("/api/v1/exports/", dashboardHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	TenantID    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		TenantID:    getenvDefault("TENANT_ID", "tenant-demo"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
