// Package http exposes the JSON API: identity, wallets, categories,
// transactions, preferences and the report endpoints. One bearer token
// maps to one loaded session.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"paisa/internal/auth"
	"paisa/internal/config"
	"paisa/internal/log"
	"paisa/internal/services"
	"paisa/internal/session"
)

// Server wires the HTTP surface over the application services.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	structured *log.StructuredLogger

	gateway      session.Gateway
	auth         *auth.Service
	transactions *services.TransactionService
	onboarding   *services.Onboarding
	reporter     *services.Reporter

	limiter *rateLimiter

	mu       sync.Mutex
	sessions map[string]*apiSession

	shutdownOnce sync.Once
}

// apiSession binds a bearer token to an account and its loaded state.
type apiSession struct {
	account auth.Account
	state   *session.Session
}

func NewServer(
	cfg *config.Config,
	gateway session.Gateway,
	authSvc *auth.Service,
	transactions *services.TransactionService,
	onboarding *services.Onboarding,
	reporter *services.Reporter,
	logger *log.Logger,
) *Server {
	httpLogger := logger.WithComponent(log.ComponentHTTP)
	s := &Server{
		logger:       httpLogger,
		structured:   log.NewStructuredLogger(httpLogger),
		gateway:      gateway,
		auth:         authSvc,
		transactions: transactions,
		onboarding:   onboarding,
		reporter:     reporter,
		limiter:      newRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow),
		sessions:     make(map[string]*apiSession),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/auth/signout", s.withSession(s.handleSignOut))
	mux.HandleFunc("GET /api/auth/me", s.withSession(s.handleMe))

	mux.HandleFunc("GET /api/wallets", s.withSession(s.handleListWallets))
	mux.HandleFunc("POST /api/wallets", s.withSession(s.handleCreateWallet))
	mux.HandleFunc("PATCH /api/wallets/{id}", s.withSession(s.handleUpdateWallet))
	mux.HandleFunc("DELETE /api/wallets/{id}", s.withSession(s.handleDeleteWallet))

	mux.HandleFunc("GET /api/categories", s.withSession(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withSession(s.handleCreateCategory))
	mux.HandleFunc("PATCH /api/categories/{id}", s.withSession(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withSession(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/transactions", s.withSession(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withSession(s.handleCreateTransaction))
	mux.HandleFunc("PATCH /api/transactions/{id}", s.withSession(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSession(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/preferences", s.withSession(s.handleGetPreferences))
	mux.HandleFunc("PATCH /api/preferences", s.withSession(s.handleUpdatePreferences))

	mux.HandleFunc("GET /api/home", s.withSession(s.handleHome))
	mux.HandleFunc("GET /api/analytics", s.withSession(s.handleAnalytics))
	mux.HandleFunc("POST /api/onboarding", s.withSession(s.handleOnboarding))
	mux.HandleFunc("POST /api/reset", s.withSession(s.handleReset))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withMiddleware(log.Middleware(httpLogger)(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("Server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown drains in-flight requests and stops background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.httpServer.Shutdown(ctx)
		s.logger.InfoContext(ctx, "Server stopped", log.FieldOperation, log.OpShutdown)
	})
	return err
}

// withMiddleware applies the outer chain: request id, security headers,
// request logging and rate limiting on the auth endpoints.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		clientIP := extractClientIP(r)

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if strings.HasPrefix(r.URL.Path, "/api/auth/") && !s.limiter.allow(clientIP) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		s.structured.LogHTTPStart(r.Context(), r, clientIP)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.structured.LogHTTPEnd(r.Context(), r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})
}

// withSession resolves the bearer token and hands the handler its session.
func (s *Server) withSession(fn func(http.ResponseWriter, *http.Request, *apiSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		s.mu.Lock()
		as, ok := s.sessions[token]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		fn(w, r, as)
	}
}

// openSession loads the account's state and issues a bearer token. The
// mutation hook keeps the report caches honest.
func (s *Server) openSession(ctx context.Context, account *auth.Account) (string, error) {
	state := session.New(s.gateway, account.ID)
	if err := state.Load(ctx); err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	userID := account.ID
	state.OnMutate(func() { s.reporter.Invalidate(userID) })

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = &apiSession{account: *account, state: state}
	s.mu.Unlock()
	return token, nil
}

func (s *Server) closeSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
