// Package identity supplies the current-user capability: a signed
// session cookie resolved to a user on every request, possibly
// anonymous.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialblog/internal/config"
	"socialblog/internal/models"
)

const SessionCookie = "session"

type ctxKey struct{}

type Sessions struct {
	secret   []byte
	duration time.Duration
}

func NewSessions(cfg *config.Config) *Sessions {
	return &Sessions{
		secret:   []byte(cfg.SessionSecret),
		duration: cfg.SessionDuration,
	}
}

// Issue sets a signed session cookie for the user.
func (s *Sessions) Issue(w http.ResponseWriter, user *models.User) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.duration).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(s.duration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *Sessions) parse(r *http.Request) (*models.User, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	userID, ok1 := claims["user_id"].(string)
	username, ok2 := claims["username"].(string)
	if !ok1 || !ok2 {
		return nil, false
	}

	return &models.User{UserID: userID, Username: username}, true
}

// Middleware resolves the session cookie into the request context. An
// invalid or missing cookie means an anonymous request, never an error.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := s.parse(r); ok {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// CurrentUser returns the authenticated user of the request, if any.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(ctxKey{}).(*models.User)
	return user, ok
}

// LoginRequired guards mutating pages: anonymous actors are redirected
// to the login page without side effects.
func LoginRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Redirect(w, r, "/auth/login/", http.StatusFound)
			return
		}
		next(w, r)
	}
}
