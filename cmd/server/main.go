package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayher/internal/config"
	"ayher/internal/infra"
	"ayher/internal/repository"
	"ayher/internal/router"
	"ayher/internal/service"
	"ayher/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The movement-type registry caches reference data at boot. An empty
	// tipos_movimiento table is a deploy error: run cmd/seedtipos first.
	registro := service.NewTipoRegistry(repository.NewTipoMovimientoRepository(db))
	if err := registro.Cargar(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load movement types")
	}

	// Async document pipeline: PDF rendering and email delivery run on a
	// Redis-backed worker pool so a slow SMTP relay never blocks a sale.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	ventaRepo := repository.NewVentaRepository(db)
	remisionRepo := repository.NewRemisionRepository(db)
	documentoW := worker.NewDocumentoWorker(ventaRepo, remisionRepo, dispatcher, cfg.Empresa, cfg.PDFStoragePath)
	emailW := worker.NewEmailWorker(mailer, smtpCB)
	worker.NewPool(rdb, documentoW, emailW).Start(ctx, cfg.WorkerPoolSize)
	worker.StartRequeueCron(ctx, rdb, smtpCB)

	r := router.New(cfg, db, rdb, registro, dispatcher, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("AYHER backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
