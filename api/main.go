package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jimiolaniyan/useraccounts/account"
	"github.com/jimiolaniyan/useraccounts/config"
	"github.com/jimiolaniyan/useraccounts/logger"
	"github.com/jimiolaniyan/useraccounts/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty || cfg.IsDevelopment()})

	accounts, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Accounts.Store).Msg("failed to open account store")
	}

	svc := account.NewService(accounts, serviceOptions(cfg)...)

	pages, err := web.NewHandler(svc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load views")
	}

	router := httprouter.New()
	pages.RegisterRoutes(router)
	account.RegisterRoutes(router, svc)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           web.AccessLog(log, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Port).Msg("failed to listen")
	}

	log.Info().Str("port", cfg.Port).Str("store", cfg.Accounts.Store).Msg("server started")
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}

	closeStore()
	log.Info().Msg("server gracefully stopped")
}
