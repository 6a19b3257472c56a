package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandscapers/dropbydrop/app"
	"github.com/brandscapers/dropbydrop/auth"
	"github.com/brandscapers/dropbydrop/config"
	"github.com/brandscapers/dropbydrop/database"
	"github.com/brandscapers/dropbydrop/log"
	"github.com/brandscapers/dropbydrop/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("main.db.connect:", err)
	}
	defer database.Disconnect(context.Background())

	verifier, err := auth.NewVerifier(ctx, cfg)
	if err != nil {
		log.Fatal("main.auth:", err)
	}

	app := app.App{
		Store:    database.NewSurveyStore(db, cfg.SummaryCacheTTL),
		Verifier: verifier,
		Config:   cfg,
	}

	handler := routes.Wire(app)

	err = runServer(ctx, cfg, handler)
	if err != nil {
		log.Fatal("main.server:", err)
	}
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("Listening on " + cfg.Url())
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
