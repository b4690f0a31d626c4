package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/config"
	"github.com/mamadbah2/manea/internal/repository/mongodb"
	"github.com/mamadbah2/manea/internal/repository/sheets"
	"github.com/mamadbah2/manea/internal/scheduler"
	"github.com/mamadbah2/manea/internal/server/handlers"
	"github.com/mamadbah2/manea/internal/server/router"
	alertsvc "github.com/mamadbah2/manea/internal/service/alerts"
	authsvc "github.com/mamadbah2/manea/internal/service/auth"
	dashboardsvc "github.com/mamadbah2/manea/internal/service/dashboard"
	exportsvc "github.com/mamadbah2/manea/internal/service/export"
	herdsvc "github.com/mamadbah2/manea/internal/service/herd"
	medicalsvc "github.com/mamadbah2/manea/internal/service/medical"
	productionsvc "github.com/mamadbah2/manea/internal/service/production"
	"github.com/mamadbah2/manea/internal/service/rules"
	"github.com/mamadbah2/manea/pkg/clients/qrimage"
	"github.com/mamadbah2/manea/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	engine := rules.NewEngine(store.Animals(), store.Milk(), store.Alerts(), baseLogger.Named("svc.rules"))

	herdService := herdsvc.NewService(
		store.Farms(), store.Pastures(), store.Animals(),
		store.Medical(), store.Milk(), store.Weights(), store.Alerts(),
		engine, baseLogger.Named("svc.herd"))
	medicalService := medicalsvc.NewService(store.Medical(), engine, baseLogger.Named("svc.medical"))
	productionService := productionsvc.NewService(store.Animals(), store.Milk(), store.Weights(), engine, baseLogger.Named("svc.production"))
	alertService := alertsvc.NewService(store.Animals(), store.Alerts(), baseLogger.Named("svc.alerts"))
	dashboardService := dashboardsvc.NewService(
		store.Farms(), store.Animals(), store.Alerts(), store.Milk(), store.Reports(),
		baseLogger.Named("svc.dashboard"))
	authService := authsvc.NewService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))

	// Sheets export is optional; the handler reports it unavailable when
	// credentials are not configured.
	var exportService *exportsvc.Service
	if cfg.Export.Enabled() {
		writer, err := sheets.NewGoogleSheetWriter(context.Background(), cfg.Export, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets writer", zap.Error(err))
		}
		exportService = exportsvc.NewService(store.Animals(), writer, baseLogger.Named("svc.export"))
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets export disabled, credentials missing")
	}

	qrClient := qrimage.NewClient(cfg.QRImage)

	routerHandlers := router.Handlers{
		Auth:       handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Farms:      handlers.NewFarmHandler(herdService, baseLogger.Named("handlers.farms")),
		Animals:    handlers.NewAnimalHandler(herdService, qrClient, cfg.Server.PublicBaseURL, baseLogger.Named("handlers.animals")),
		Medical:    handlers.NewMedicalHandler(medicalService, baseLogger.Named("handlers.medical")),
		Production: handlers.NewProductionHandler(productionService, baseLogger.Named("handlers.production")),
		Alerts:     handlers.NewAlertHandler(alertService, baseLogger.Named("handlers.alerts")),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, exportService, baseLogger.Named("handlers.dashboard")),
		Public:     handlers.NewPublicHandler(herdService, baseLogger.Named("handlers.public")),
	}
	ginEngine := router.New(routerHandlers, authService, cfg.CORS, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, dashboardService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
