package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/lixenwraith/orrery/parameter"
)

// NewMux routes /ws to the hub, /rings to the static ring document and /metrics to metrics
// A nil metrics handler leaves /metrics unrouted
func NewMux(hub *Hub, rings []byte, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/rings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(rings)
	})
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

// Serve listens on addr until ctx is done, then shuts down gracefully
func Serve(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, handler, log)
}

// ServeListener is Serve over an existing listener
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		log.Info("stream server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.StreamShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("stream server stopped")
	return nil
}
