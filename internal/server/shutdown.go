package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	httpShutdownTimeout       = 5 * time.Second
	generationShutdownTimeout = 2 * time.Minute
)

// Waiter is anything that can be drained before exit.
type Waiter interface {
	Wait(ctx context.Context) error
}

// GracefulShutdown stops accepting requests, then waits for the background
// plan generations so their results are not cut off mid-flight.
func GracefulShutdown(srv *http.Server, generations Waiter, logger *zap.Logger) error {
	logger.Info("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	waitCtx, cancelWait := context.WithTimeout(context.Background(), generationShutdownTimeout)
	defer cancelWait()

	if err := generations.Wait(waitCtx); err != nil {
		logger.Warn("Trip plan generations still running at exit", zap.Error(err))
		return err
	}

	logger.Info("Server exiting")
	return nil
}
