package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	CookieName = "raildss_session"
)

var ErrInvalidID = errors.New("invalid session id")

// State is everything the dashboard remembers about a browser between requests.
type State struct {
	SimulationRun bool `json:"simulation_run"`
}

type Store interface {
	// Load returns the zero State for ids it has never seen.
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Health(ctx context.Context) error
}

func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

type contextKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware makes sure every request carries a session id, issuing a fresh
// cookie when the browser has none or sends a malformed one.
func Middleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id := ""
			if cookie, err := request.Cookie(CookieName); err == nil && ValidateID(cookie.Value) == nil {
				id = cookie.Value
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(writer, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(writer, request.WithContext(WithID(request.Context(), id)))
		})
	}
}
