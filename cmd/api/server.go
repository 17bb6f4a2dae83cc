package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"job-posting-backend/pkg/logger"
)

// serve runs srv until it stops on its own or a signal arrives on quit.
// A listen failure is returned immediately; a signal drains in-flight
// requests for at most timeout.
func serve(srv *http.Server, quit <-chan os.Signal, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case sig := <-quit:
		logger.Log.Info("Shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
