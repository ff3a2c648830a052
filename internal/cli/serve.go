package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/llm"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/logger"
	"github.com/FACorreiaa/go-trip-planner/internal/routes"
	"github.com/FACorreiaa/go-trip-planner/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the planner web service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg := opts.cfg
	if err := cfg.RequireLLM(); err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	log := logger.Log
	defer func() { _ = log.Sync() }()

	otelShutdown, err := server.InitObservability(cfg.Observability, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	chatModel, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	suggester := location.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, log)
	generator := tripplan.NewGenerator(chatModel, log)
	sessions := planner.NewSessions(cfg.Planner.SessionTTL, suggester, generator, cfg.Planner.Resolution, log)
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Warn("Failed to unregister session metrics", zap.Error(err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, log)
	srv.SetRouter(server.SetupRouter(routes.Dependencies{
		Sessions:   sessions,
		Suggester:  suggester,
		Planner:    generator,
		SessionTTL: cfg.Planner.SessionTTL,
	}, cfg.Observability.ServiceName, log))

	if cfg.Observability.PprofAddr != "" {
		pprofSrv := server.StartPprofServer(cfg.Observability.PprofAddr, log)
		defer pprofSrv.Close()
	}

	httpServer := srv.HTTPServer()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("llm_model", chatModel.Model()),
			zap.String("resolution", cfg.Planner.Resolution),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.GracefulShutdown(httpServer, sessions, log)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", zap.Error(err))
		return err
	}
	log.Info("Graceful shutdown complete")
	return nil
}
