package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/tenant"
	"softgym/internal/domain/user"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// DefaultSessionTTL bounds how long a login stays valid.
const DefaultSessionTTL = 12 * time.Hour

// SecureCookies marks session cookies Secure. Set in production.
var SecureCookies bool

// Session represents an authenticated front-desk login.
type Session struct {
	UserID    int64
	Username  string
	GymID     int64
	CreatedAt time.Time
}

// Scope returns the tenant scope every operation is checked against.
func (s Session) Scope() tenant.Scope {
	return tenant.Scope{UserID: s.UserID, GymID: s.GymID}
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns the session lifetime.
func (ss *SessionStore) TTL() time.Duration {
	return ss.ttl
}

// Create stores a new session and returns the token.
// PRE: userID > 0, gymID > 0
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(userID int64, username string, gymID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		UserID:    userID,
		Username:  username,
		GymID:     gymID,
		CreatedAt: ss.now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// POST: Returns session if valid and not expired; expired sessions are dropped
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	session, ok := ss.sessions[token]
	if !ok {
		return Session{}, false
	}
	if ss.now().Sub(session.CreatedAt) > ss.ttl {
		delete(ss.sessions, token)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// DeleteUser drops every session that belongs to userID.
func (ss *SessionStore) DeleteUser(userID int64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for token, s := range ss.sessions {
		if s.UserID == userID {
			delete(ss.sessions, token)
		}
	}
}

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "softgym_session"

// UserLookup resolves the login behind a session.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// Auth returns middleware that extracts the session from the cookie and sets it in context.
// The session's user is re-read on every request; a deleted login or one moved
// to another gym loses all of its sessions.
// It does NOT block unauthenticated requests; use RequireAuth for that.
func Auth(sessions *SessionStore, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok && sessionUserActive(r.Context(), sessions, users, session) {
					r = r.WithContext(ContextWithSession(r.Context(), session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionUserActive reports whether the session's user still exists in the
// session's gym. Revoked users have their sessions dropped.
func sessionUserActive(ctx context.Context, sessions *SessionStore, users UserLookup, session Session) bool {
	u, err := users.GetByID(ctx, session.UserID)
	switch {
	case apperr.IsNotFound(err):
	case err != nil:
		zap.L().Error("session_lookup_failed", zap.Int64("user_id", session.UserID), zap.Error(err))
		return false
	case u.GymID == session.GymID:
		return true
	}
	sessions.DeleteUser(session.UserID)
	zap.L().Info("auth_event",
		zap.String("event", "session_revoked"),
		zap.String("username", session.Username),
		zap.Int64("gym_id", session.GymID),
	)
	return false
}

// RequireAuth returns middleware that redirects unauthenticated requests to /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
