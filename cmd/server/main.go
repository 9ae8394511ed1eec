package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"mediquip/internal/auth"
	"mediquip/internal/config"
	"mediquip/internal/handler"
	"mediquip/internal/middleware"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"database", cfg.MongoDB,
	)

	verifier, err := auth.NewHSVerifier(cfg.JWTSecret, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}

	// Open the process-wide store connection, shared by all callers
	ctx := context.Background()
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Client().Disconnect(shutdownCtx)
	}()

	logger.Info("store connected", "uri_db", cfg.MongoDB)

	// Construct one instance of every entity service at startup; the
	// same instances serve every concurrent request.
	accountService := service.NewAccountService(db, logger)
	headquarterService := service.NewHeadquarterService(db, logger)
	officeService := service.NewOfficeService(db, logger)
	equipmentService := service.NewEquipmentService(db, logger)
	serviceRequestService := service.NewServiceRequestService(db, logger)
	activityService := service.NewActivityService(db, logger)
	maintenanceService := service.NewMaintenanceService(db, logger)
	scheduleService := service.NewScheduleService(db, logger)
	signatureService := service.NewSignatureService(db, logger)

	if err := middleware.RegisterMetrics(nil); err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	logger.Info("services initialized")

	mux := http.NewServeMux()
	handler.Register(mux, "accounts", handler.NewResourceHandler(accountService, logger))
	handler.Register(mux, "headquarters", handler.NewResourceHandler(headquarterService, logger))
	handler.Register(mux, "offices", handler.NewResourceHandler(officeService, logger))
	handler.Register(mux, "equipments", handler.NewResourceHandler(equipmentService, logger))
	handler.Register(mux, "service-requests", handler.NewResourceHandler(serviceRequestService, logger))
	handler.Register(mux, "activities", handler.NewResourceHandler(activityService, logger))
	handler.Register(mux, "maintenances", handler.NewResourceHandler(maintenanceService, logger))
	handler.Register(mux, "schedules", handler.NewResourceHandler(scheduleService, logger))
	handler.Register(mux, "signatures", handler.NewResourceHandler(signatureService, logger))

	// API routes sit behind auth; health and metrics stay open
	var apiHandler http.Handler = mux
	apiHandler = middleware.Auth(verifier)(apiHandler)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", handler.Health)
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/api/", apiHandler)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Metrics -> RequestID -> Recovery -> Routes
	var h http.Handler = root
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)
	h = middleware.Metrics()(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
