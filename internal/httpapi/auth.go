package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"time"

	"github.com/OutOfFlux/newinoutboard/internal/store"

	"go.uber.org/zap"
)

const (
	adminCookie = "admin_token"

	// login throttle: per-IP attempt budget within a rolling window
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// Auth implements the single shared admin secret. The cookie value is
// HMAC-SHA256(secret, password), so a valid token cannot be minted without
// the server-side secret and all sessions die together when either rotates.
type Auth struct {
	password string
	secret   string
	kv       store.KV
	logger   *zap.Logger
}

func NewAuth(password, secret string, kv store.KV, logger *zap.Logger) *Auth {
	return &Auth{password: password, secret: secret, kv: kv, logger: logger}
}

func (a *Auth) token() string {
	mac := hmac.New(sha256.New, []byte(a.secret))
	mac.Write([]byte(a.password))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidRequest reports whether the request carries a valid admin cookie.
func (a *Auth) ValidRequest(r *http.Request) bool {
	cookie, err := r.Cookie(adminCookie)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(cookie.Value), []byte(a.token()))
}

// RequireAdmin gates an API handler: 401 JSON when the cookie is missing or
// wrong.
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.ValidRequest(r) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// Login checks the submitted password and issues the admin cookie. Form
// POST with redirects, matching the login page. Attempts are throttled per
// remote IP through the KV store.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ip := remoteIP(r)
	throttleKey := "login_attempts:" + ip
	attempts, err := a.kv.Incr(r.Context(), throttleKey, loginWindow)
	if err != nil {
		// A broken throttle store must not lock admins out.
		a.logger.Warn("login throttle unavailable", zap.Error(err))
	} else if attempts > loginMaxAttempts {
		a.logger.Warn("login throttled", zap.String("ip", ip))
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	password := r.FormValue("password")
	if hmac.Equal([]byte(password), []byte(a.password)) {
		// Only failed attempts count against the budget.
		if err := a.kv.Set(r.Context(), throttleKey, "0", loginWindow); err != nil {
			a.logger.Warn("login throttle reset failed", zap.Error(err))
		}
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookie,
			Value:    a.token(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		http.Redirect(w, r, "/admin.html", http.StatusFound)
		return
	}
	a.logger.Info("failed admin login", zap.String("ip", ip))
	http.Redirect(w, r, "/admin-login.html?error=1", http.StatusFound)
}

// Logout clears the admin cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/admin-login.html", http.StatusFound)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
