package web

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"softgym/internal/adapters/http/middleware"
	"softgym/internal/adapters/storage/txn"
	"softgym/internal/application/orchestrators"
	"softgym/internal/observability"
)

// Stores holds all storage dependencies.
type Stores struct {
	txn.Stores
	Tx txn.Transactor
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures NewMux.
type Options struct {
	CSRFKey            []byte // 32 bytes; a random key is generated when empty
	SecureCookies      bool
	TrustedOrigins     []string
	SessionTTL         time.Duration
	RateLimitPerSecond int
	SlowRequest        time.Duration
	Location           *time.Location // gym time zone for "today"
	Health             Pinger
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// clock reports the current time in the gym's zone. Tests replace it.
var clock orchestrators.Clock = time.Now

// health backs /healthz; nil reports healthy.
var health Pinger

// NewMux wires HTTP handlers for the app.
func NewMux(opts Options, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore(opts.SessionTTL)
	middleware.SecureCookies = opts.SecureCookies
	health = opts.Health
	if opts.Location != nil {
		clock = orchestrators.InLocation(opts.Location)
	}

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = randomKey()
	}
	rate := opts.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	// Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.SecureCookies, opts.TrustedOrigins),
		middleware.Auth(sessions, stores.Users),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.SlowRequest),
	)
}

func registerRoutes(mux *http.ServeMux) {
	mux.Handle("GET /metrics", observability.Handler())
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))

	mux.HandleFunc("GET /login", handleLoginForm)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)

	authed := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAuth(h))
	}
	authed("GET /{$}", handleHome)
	authed("GET /clients", handleClientRoster)
	authed("GET /clients/new", handleNewClientForm)
	authed("POST /clients/new", handleRegisterClient)
	authed("GET /clients/{id}/edit", handleEditClientForm)
	authed("POST /clients/{id}/edit", handleEditClient)
	authed("POST /clients/{id}/delete", handleDeleteClient)
	authed("GET /clients/{id}/payments", handlePaymentHistory)
	authed("GET /clients/{id}/payments/new", handleNewPaymentForm)
	authed("POST /clients/{id}/payments/new", handleRecordPayment)
	authed("GET /access", handleAccessForm)
	authed("POST /access", handleValidateAccess)
	authed("GET /access/today", handleDailyAccess)
	authed("GET /closing", handleClosingReport)
	authed("GET /change-password", handleChangePasswordForm)
	authed("POST /change-password", handleChangePassword)
}

// handleHealthz reports liveness and database reachability.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if health != nil {
		if err := health.Ping(r.Context()); err != nil {
			zap.L().Error("health_check_failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("csrf key: " + err.Error())
	}
	zap.L().Warn("using random CSRF key; sessions won't survive restart")
	return key
}
