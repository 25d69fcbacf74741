// Package main 啟動洗衣店 CRM 的 HTTP 服務。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rd "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	appcustomer "github.com/jackyeh168/laundry_crm/src/internal/application/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/application/ledger"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/jackyeh168/laundry_crm/src/internal/application/statistics"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/config"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/events"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/lock"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/logging"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/laundry_crm/src/internal/interfaces/api"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	db, err := persistence.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer persistence.Close(db)

	var locker shared.KeyedLocker = lock.NewKeyedMutex(cfg.LockWait)
	if cfg.RedisAddr != "" {
		client := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			sugar.Fatalw("redis connection error", "addr", cfg.RedisAddr, "error", err.Error())
		}
		locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait, logger.Named("lock"))
		sugar.Infow("using redis customer lock", "addr", cfg.RedisAddr)
	}

	loc, err := cfg.Location()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	customers := persistence.NewCustomerRepository(db)
	orders := persistence.NewOrderRepository(db, persistence.WithLegacyLocation(loc))
	clothes := persistence.NewClothesRepository(db, persistence.WithLegacyLocation(loc))
	recharges := persistence.NewRechargeRecordRepository(db, persistence.WithLegacyLocation(loc))
	txManager := persistence.NewGORMTransactionManager(db)
	publisher := events.NewZapPublisher(logger)

	ledgerService := ledger.NewService(customers, txManager, locker, publisher, logger)
	engine := settlement.NewEngine(customers, orders, clothes, recharges, ledgerService, txManager, logger)

	h := api.NewHandler(api.Services{
		Settlement:   engine,
		Ledger:       ledgerService,
		RegisterUC:   appcustomer.NewRegisterCustomerUseCase(customers, txManager, publisher),
		UpdateUC:     appcustomer.NewUpdateCustomerUseCase(customers, txManager, locker),
		DeleteUC:     appcustomer.NewDeleteCustomerUseCase(customers, orders, recharges, txManager, locker),
		Customers:    appcustomer.NewQueryService(customers),
		Statistics:   statistics.NewAggregator(orders, recharges, loc, logger),
		BusinessZone: loc,
	}, logger)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting laundry crm server",
			"addr", cfg.RunAddress,
			"driver", cfg.DatabaseDriver,
			"timezone", loc.String(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
