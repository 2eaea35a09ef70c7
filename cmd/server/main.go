package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	identityapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/identity"
	leasingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/leasing"
	propertyapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/auth"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/config"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/logger"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/persistence"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/handler"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Smart Rental backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// token blacklist falls back to memory when Redis is unavailable
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	cancelPing()

	// repositories
	buildingRepo := persistence.NewGormBuildingRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	readingRepo := persistence.NewGormReadingRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)
	leasingUow := persistence.NewGormLeasingUnitOfWork(db.DB)

	// application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	buildingService := propertyapp.NewBuildingService(buildingRepo, roomRepo, log)
	roomService := propertyapp.NewRoomService(roomRepo, buildingRepo, log)
	tenantService := leasingapp.NewTenantService(tenantRepo, contractRepo, log)
	contractService := leasingapp.NewContractService(leasingUow, contractRepo, tenantRepo, roomRepo, log)
	utilityService := billingapp.NewUtilityServiceService(serviceRepo, readingRepo, log)
	readingService := billingapp.NewReadingService(readingRepo, serviceRepo, roomRepo, log)
	invoiceService := billingapp.NewInvoiceService(uow, invoiceRepo, serviceRepo, contractRepo, log)
	paymentService := billingapp.NewPaymentService(uow, transactionRepo, log)
	webhookService := billingapp.NewWebhookService(uow, transactionRepo, log)

	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}, router.Handlers{
		System:   handler.NewSystemHandler(db, appVersion),
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService),
		Building: handler.NewBuildingHandler(buildingService),
		Room:     handler.NewRoomHandler(roomService),
		Tenant:   handler.NewTenantHandler(tenantService),
		Contract: handler.NewContractHandler(contractService),
		Service:  handler.NewServiceHandler(utilityService),
		Reading:  handler.NewReadingHandler(readingService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Webhook:  handler.NewWebhookHandler(webhookService, log),
	})

	// periodic sweep flips unpaid invoices past their due date to OVERDUE
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Billing.OverdueSweepEnabled {
		go runOverdueSweep(sweepCtx, invoiceService, cfg.Billing.OverdueSweepEvery, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

func runOverdueSweep(ctx context.Context, invoiceService *billingapp.InvoiceService, every time.Duration, log *zap.Logger) {
	if every <= 0 {
		every = time.Hour
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := invoiceService.SweepOverdue(ctx, time.Now())
			if err != nil {
				log.Error("Overdue sweep failed", zap.Error(err))
				continue
			}
			if count > 0 {
				log.Info("Overdue sweep marked invoices", zap.Int("count", count))
			}
		}
	}
}
