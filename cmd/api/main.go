package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	accountapp "github.com/shoplane/storefront/internal/account/app"
	accounthttp "github.com/shoplane/storefront/internal/account/http"
	accountpg "github.com/shoplane/storefront/internal/account/infra/postgres"

	adminapp "github.com/shoplane/storefront/internal/admin/app"
	adminhttp "github.com/shoplane/storefront/internal/admin/http"

	cartapp "github.com/shoplane/storefront/internal/cart/app"
	carthttp "github.com/shoplane/storefront/internal/cart/http"
	cartadapter "github.com/shoplane/storefront/internal/cart/infra/adapter"

	catalogapp "github.com/shoplane/storefront/internal/catalog/app"
	cataloghttp "github.com/shoplane/storefront/internal/catalog/http"
	catalogpg "github.com/shoplane/storefront/internal/catalog/infra/postgres"

	checkoutapp "github.com/shoplane/storefront/internal/checkout/app"
	checkouthttp "github.com/shoplane/storefront/internal/checkout/http"
	checkoutadapter "github.com/shoplane/storefront/internal/checkout/infra/adapter"

	orderapp "github.com/shoplane/storefront/internal/order/app"
	orderhttp "github.com/shoplane/storefront/internal/order/http"
	orderpg "github.com/shoplane/storefront/internal/order/infra/postgres"

	"github.com/shoplane/storefront/pkg/config"
	"github.com/shoplane/storefront/pkg/logger"
	"github.com/shoplane/storefront/pkg/postgres"
	"github.com/shoplane/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg.Postgres)
	defer db.Close()

	secureCookies := cfg.AppEnv != "dev"

	// Catalog
	catalogRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart verification
	cartSvc := cartapp.NewService(cartadapter.NewCatalogServiceReader(catalogSvc))

	// Checkout
	checkoutSvc := checkoutapp.NewService(checkoutadapter.NewCatalogServiceReader(catalogSvc), 10)

	// Orders
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db))

	// Accounts
	accountSvc := accountapp.NewService(accountpg.NewUserRepo(db), accountpg.NewSessionRepo(db), cfg.SessionTTL)
	auth := accounthttp.NewAuth(accountSvc)

	// Break-glass admin
	breakGlass := adminapp.NewBreakGlass(cfg.BreakGlass, cfg.AdminSessionTTL, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := postgres.HealthCheck(ctx, db); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	cataloghttp.NewHandler(catalogSvc, log).Register(mux)
	carthttp.NewHandler(cartSvc, log).Register(mux)
	checkouthttp.NewHandler(checkoutSvc, log).Register(mux)
	orderhttp.NewHandler(orderSvc, cartSvc, log).Register(mux, auth)
	accounthttp.NewHandler(accountSvc, secureCookies, log).Register(mux, auth)
	adminhttp.NewHandler(breakGlass, catalogSvc, db, secureCookies, log).Register(mux)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustDB(log *slog.Logger, cfg config.Postgres) *sql.DB {
	db, err := postgres.Open(postgres.Config{
		Host:    cfg.Host,
		Port:    cfg.Port,
		User:    cfg.User,
		Pass:    cfg.Pass,
		DB:      cfg.DB,
		SSLMode: cfg.SSLMode,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}
