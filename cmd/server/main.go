// Command server wires the exchange service: stores, the NBP rate provider,
// the use cases and the HTTP router. Business logic lives in the internal
// services; main only connects them and manages the lifecycle.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	accountsvc "kantor/internal/account/service"
	accountstore "kantor/internal/account/store"
	exchangesvc "kantor/internal/exchange/service"
	"kantor/internal/platform/config"
	"kantor/internal/platform/httpserver"
	"kantor/internal/platform/logger"
	"kantor/internal/platform/metrics"
	"kantor/internal/platform/postgres"
	"kantor/internal/platform/redis"
	"kantor/internal/rates"
	"kantor/internal/rates/nbp"
	txstore "kantor/internal/transaction/store"
	httptransport "kantor/internal/transport/http"
	"kantor/pkg/clock"
	"kantor/pkg/idgen"
	"kantor/pkg/pesel"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		accounts     accountsvc.AccountsStore
		transactions interface {
			accountsvc.TransactionsStore
			exchangesvc.TransactionsStore
			accountsvc.BalancesStore
		}
	)
	if cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		accounts = accountstore.NewPostgres(pool)
		transactions = txstore.NewPostgres(pool)
		log.Info("using postgres stores")
	} else {
		accounts = accountstore.NewInMemory()
		transactions = txstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	var provider rates.Provider = nbp.NewProvider(nbp.NewClient(
		&http.Client{Timeout: 10 * time.Second},
		cfg.NBPBaseURL,
	))
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		provider = rates.NewCache(provider, client, cfg.RateCacheTTL, log)
		log.Info("rate cache enabled", "ttl", cfg.RateCacheTTL)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	clk := clock.System{}

	accountService := accountsvc.New(accounts, transactions, pesel.ChecksumValidator{}, idgen.UUID{}, clk, log, m)
	detailsQuery := accountsvc.NewDetailsQuery(accounts, transactions)
	exchangeService := exchangesvc.New(accounts, transactions, provider, clk, log, m)

	router := httptransport.NewRouter(log,
		httptransport.NewAccountHandler(accountService, detailsQuery, log),
		httptransport.NewExchangeHandler(exchangeService, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting kantor", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
