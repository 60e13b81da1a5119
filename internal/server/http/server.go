package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/epochline/epochline/internal/runtime"
	"github.com/epochline/epochline/internal/server/http/controllers"
	eventsvc "github.com/epochline/epochline/internal/services/events"
	logpkg "github.com/epochline/epochline/pkg/log"
)

// Server is the HTTP front of the timeline service.
type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	svc    *eventsvc.Service
	logger logpkg.Logger
}

// New builds the server and wires all controller routes.
func New(rt *runtime.Runtime) *Server {
	svc := eventsvc.New(rt)
	mux := http.NewServeMux()
	s := &Server{
		rt:     rt,
		svc:    svc,
		srv:    &http.Server{Handler: cors(mux)},
		logger: rt.Logger().With(logpkg.Component("http")),
	}
	controllers.NewControllerRegistry(rt, svc).RegisterAllRoutes(mux)
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// with a five second drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr returns the bound listener address, or empty before ListenAndServe.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

// Close tears the listener down without draining.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
