package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	identityapp "github.com/financetracking/backend/internal/application/identity"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/auth"
	"github.com/financetracking/backend/internal/infrastructure/cache"
	"github.com/financetracking/backend/internal/infrastructure/config"
	"github.com/financetracking/backend/internal/infrastructure/event"
	"github.com/financetracking/backend/internal/infrastructure/logger"
	"github.com/financetracking/backend/internal/infrastructure/persistence"
	"github.com/financetracking/backend/internal/interfaces/http/handler"
	"github.com/financetracking/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.Open(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	if cfg.Telemetry.TracingEnabled {
		if err := db.EnableTracing(); err != nil {
			return err
		}
		log.Info("Database tracing enabled")
	}

	groupRepo := persistence.NewGormGroupRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	invitationRepo := persistence.NewGormInvitationRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)

	groupService := appgroup.NewGroupService(scope, groupRepo, membershipRepo, historyRepo, userRepo, log)
	invitationService := appgroup.NewInvitationService(scope, groupRepo, membershipRepo, invitationRepo, userRepo, log)
	categoryService := financeapp.NewCategoryService(categoryRepo, log)
	sellerService := financeapp.NewSellerService(sellerRepo, log)
	budgetGoalService := financeapp.NewBudgetGoalService(persistence.NewGormBudgetGoalRepository(db.DB), log)
	receiptService := financeapp.NewReceiptService(receiptRepo, sellerRepo, productRepo, categoryRepo, log)
	productService := financeapp.NewProductService(productRepo, categoryRepo, receiptRepo, log)
	provisioningService := identityapp.NewProvisioningService(scope, userRepo, log)

	store, err := cache.NewIdempotencyStore(*cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()

	bus := event.NewInMemoryEventBus(log)
	handlers := event.WrapHandlersWithIdempotency([]shared.EventHandler{
		identityapp.NewUserCreatedHandler(provisioningService),
		identityapp.NewUserDeletedHandler(provisioningService),
	}, store, log, event.WithIdempotencyConfig(shared.IdempotencyConfig{
		TTL:     cfg.Event.IdempotencyTTL,
		Enabled: true,
	}))
	for _, h := range handlers {
		bus.Subscribe(h)
	}

	validator := auth.NewTokenValidator(cfg.JWT)

	r := router.New(cfg, log, validator)
	r.RegisterPublic(handler.NewSystemHandler(bus, cfg.Event.WebhookSecret, log))
	r.Register(
		handler.NewGroupHandler(groupService),
		handler.NewInvitationHandler(invitationService, groupService),
		handler.NewCategoryHandler(categoryService, groupService),
		handler.NewSellerHandler(sellerService, groupService),
		handler.NewBudgetGoalHandler(budgetGoalService, groupService),
		handler.NewReceiptHandler(receiptService, groupService),
		handler.NewProductHandler(productService, groupService),
	)

	engine, err := r.Setup()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
