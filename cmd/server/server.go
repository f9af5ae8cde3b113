package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// readHeaderTimeout bounds how long a client may take to send request headers.
const readHeaderTimeout = 10 * time.Second

// startHTTPServer starts serving in the background. The returned channel
// receives an error if the listener fails; it stays silent after a normal
// Shutdown.
func (app *application) startHTTPServer() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		app.logger.Info("starting server", slog.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return errCh
}
