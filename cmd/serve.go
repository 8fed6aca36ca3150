package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"jobboard/internal/api"
	"jobboard/internal/api/handler/v1handler"
	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/jobs"
	"jobboard/internal/matcher"
	"jobboard/internal/messages"
	"jobboard/internal/profiles"
	"jobboard/internal/recommend"
	"jobboard/internal/searches"
	"jobboard/internal/worker"
	"jobboard/pkg/geocoder/nominatim"
	"jobboard/pkg/logger"
	"jobboard/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupWorker starts the background queue and returns a stop callback.
func setupWorker(ctx context.Context,
	cfg *config.Config,
	strg *postgres.PgSQL,
	deps worker.Deps) func(ctx context.Context) {
	riverClient, err := worker.Start(ctx, strg.Pool, deps, worker.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not start background workers", zap.Error(err))
	}

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping background workers...")
		if err := riverClient.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop background workers", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			geocoderClient := nominatim.New(
				&http.Client{Timeout: cfg.Geocoder.Timeout},
				cfg.Geocoder.BaseURL,
				cfg.Geocoder.UserAgent)

			jobsService := jobs.New(strg, geocoderClient)
			matcherService := matcher.New(strg, matcher.NewOptions(cfg))

			stopWorkers := setupWorker(ctx, cfg, strg, worker.Deps{
				Matcher: matcherService,
				Jobs:    jobsService,
			})

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps: v1handler.Deps{
					Auth:      auth.New(strg, auth.NewOptions(cfg)),
					Profiles:  profiles.New(strg),
					Jobs:      jobsService,
					Searches:  searches.New(strg),
					Recommend: recommend.New(strg),
					Messages:  messages.New(strg),
				},
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopWorkers(shutdownCtx)
		},
	}

	return cmd
}
