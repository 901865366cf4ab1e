// Package auth keeps the admin session in an HMAC-signed cookie.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
)

type ctxKey string

const (
	sessionCookieName = "session"
	ownerIDCtxKey     = ctxKey("ownerID")
	sessionTTL        = 14 * 24 * time.Hour
)

// OwnerVerifier validates that a session's owner still has an account.
// Set it during bootstrap via SetOwnerVerifier. If nil, no extra verification is performed.
type OwnerVerifier func(ctx context.Context, ownerID string) bool

var (
	verifier OwnerVerifier
	secret   string
)

// SetOwnerVerifier configures the global verifier used by RequireAuth.
func SetOwnerVerifier(v OwnerVerifier) { verifier = v }

// SetSecret overrides the signing key, normally taken from SESSION_SECRET.
func SetSecret(s string) { secret = s }

// Secret returns the configured signing key, SESSION_SECRET, or a dev value.
func Secret() string {
	if secret != "" {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(value string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie carrying the owner id.
func CreateSession(w http.ResponseWriter, ownerID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    ownerID + "." + sign(ownerID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns the owner id.
func ParseSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	// owner ids are uuids, so the last dot separates the signature
	i := strings.LastIndex(c.Value, ".")
	if i <= 0 {
		return "", false
	}
	ownerID, sig := c.Value[:i], c.Value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(ownerID))) {
		return "", false
	}
	return ownerID, true
}

// WithOwnerID stores the owner id in context.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDCtxKey, ownerID)
}

// OwnerIDFromContext extracts the owner id.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDCtxKey).(string)
	return id, ok && id != ""
}

// Middleware attaches the owner id to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := ParseSession(r); ok {
			r = r.WithContext(WithOwnerID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := OwnerIDFromContext(r.Context())
		if ok && verifier != nil && !verifier(r.Context(), id) {
			// Session refers to a deleted account: clear and treat as unauthorized.
			ClearSession(w)
			ok = false
		}
		if !ok {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
