package handlers

import (
	"context"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/models"
)

type userContextKey struct{}

func withUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFrom returns the signed-in user attached by the session middleware.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(models.User)
	return user, ok
}

func bearerToken(e *core.RequestEvent) string {
	header := e.Request.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

type SessionMiddleware struct {
	auth *services.AuthService
}

func NewSessionMiddleware(auth *services.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// RequireUser rejects requests without a live session.
func (m *SessionMiddleware) RequireUser() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := bearerToken(e)
		if token == "" {
			return apiError(status.ErrInvalidSession)
		}
		user, err := m.auth.Authenticate(e.Request.Context(), token)
		if err != nil {
			return apiError(err)
		}
		e.Request = e.Request.WithContext(withUser(e.Request.Context(), user))
		return e.Next()
	}
}

// OptionalUser attaches the user when a valid token is present and lets
// anonymous requests through.
func (m *SessionMiddleware) OptionalUser() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if token := bearerToken(e); token != "" {
			if user, err := m.auth.Authenticate(e.Request.Context(), token); err == nil {
				e.Request = e.Request.WithContext(withUser(e.Request.Context(), user))
			}
		}
		return e.Next()
	}
}

// currentUser is used by handlers mounted behind RequireUser.
func currentUser(e *core.RequestEvent) (models.User, error) {
	user, ok := UserFrom(e.Request.Context())
	if !ok {
		return models.User{}, apiError(status.ErrInvalidSession)
	}
	return user, nil
}
