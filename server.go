package deepzoom

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// DefaultPort is the port the static server listens on by default.
const DefaultPort = 10000

// NewHandler returns a handler serving the files beneath dir verbatim. If
// origins is non-empty, cross-origin GET requests from those origins are
// allowed so a viewer hosted elsewhere can fetch tiles.
func NewHandler(dir string, origins []string) http.Handler {
	h := http.FileServer(http.Dir(dir))
	if len(origins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(h)
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, logger *log.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logger,
	}

	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		logger.Printf("Serving on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	return <-errc
}
