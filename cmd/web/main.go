package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"animalrescue/internal/content"
	"animalrescue/internal/donation"
	"animalrescue/internal/http/handlers"
	httpapi "animalrescue/internal/http/httpapi"
	"animalrescue/internal/infra"
	"animalrescue/internal/page"
	"animalrescue/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	catalog, err := content.Load(cfg.ContentFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load content")
	}
	assets, err := storage.NewFileStore(cfg.AssetsDir, "/media")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn().Str("dir", cfg.AssetsDir).Msg("assets directory missing; media requests will 404")
	case err != nil:
		logger.Fatal().Err(err).Msg("failed to open assets")
	}

	pages := page.NewStore(page.Options{
		Donation: donation.Config{
			ProcessingDelay: cfg.ProcessingDelay,
			ResetDelay:      cfg.ResetDelay,
		},
		ScrollThreshold: cfg.ScrollThreshold,
		Logger:          logger,
	}, cfg.VisitorIdleTTL)
	defer pages.Close()

	app := handlers.NewApp(logger, pages, catalog, assets)
	router := httpapi.NewRouter(app, logger, httpapi.Options{
		RateLimitPerMin: cfg.RateLimitPerMin,
		SecureCookies:   cfg.Production(),
	})
	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msgf("web listening on %s", server.Addr())
		return server.Start()
	})
	g.Go(func() error {
		return pages.Run(gctx, cfg.VisitorSweep)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		pages.Close()
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
