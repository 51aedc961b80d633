// Package http exposes the JSON API. Handlers stay thin: decode, call the
// service, map the error, encode.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "github.com/Trantoan12022004/chome2/internal/log"
	"github.com/Trantoan12022004/chome2/internal/middleware/ratelimit"
	"github.com/Trantoan12022004/chome2/internal/middleware/security"
	"github.com/Trantoan12022004/chome2/internal/middleware/trace"
	"github.com/Trantoan12022004/chome2/internal/services"
)

type Server struct {
	http.Server
	users        *services.UserService
	expenses     *services.ExpenseService
	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures the routes and returns a ready-to-run http.Server.
func NewServer(addr string, users *services.UserService, expenses *services.ExpenseService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		users:       users,
		expenses:    expenses,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/users", s.handleUsers)
	mux.HandleFunc("/expenses", s.handleExpenses)
	mux.HandleFunc("/expenses/balance", s.handleBalance)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(trace.ClientIP)

	var handler http.Handler = mux
	handler = s.limitWrites(handler)
	handler = headers.Middleware(handler)
	handler = applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(handler)
	handler = applog.Middleware(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP))(handler)
	handler = tracer.Middleware(handler)
	s.Server.Handler = handler

	return s
}

// limitWrites applies the rate limiter to POST requests only.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	limited := s.rateLimiter.Middleware(trace.ClientIP, func(w http.ResponseWriter, r *http.Request) {
		slog.WarnContext(r.Context(), "Rate limit exceeded",
			"client_ip", trace.ClientIP(r), "method", r.Method, "url", r.URL.Path)
		w.Header().Set("Retry-After", "60")
		http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	})(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListUsers(w, r)
	case http.MethodPost:
		s.handleCreateUser(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListExpenses(w, r)
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	balances, err := s.expenses.Balance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toBalanceResponses(balances))
}
