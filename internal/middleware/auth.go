package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// MessContextKey is the context key for the caller's resolved mess.
	MessContextKey contextKey = "mess_context"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetMessContext returns the caller's mess, if they belong to one.
func GetMessContext(ctx context.Context) (models.MessContext, bool) {
	mc, ok := ctx.Value(MessContextKey).(models.MessContext)
	return mc, ok
}

// WithMessContext stores mc in ctx.
func WithMessContext(ctx context.Context, mc models.MessContext) context.Context {
	return context.WithValue(ctx, MessContextKey, mc)
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the user ID to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			return next(ctx, req)
		}
	}
}

// MessResolver finds the mess a user acts in.
type MessResolver interface {
	Resolve(ctx context.Context, userID string) (models.MessContext, error)
}

// ResolveMess adds the caller's MessContext to the request context. Callers
// without a mess pass through untouched so they can create or join one.
// It must run after RequireAuth.
func ResolveMess(resolver MessResolver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := GetUserID(ctx)
			if userID == "" {
				return next(ctx, req)
			}

			mc, err := resolver.Resolve(ctx, userID)
			switch {
			case err == nil:
				ctx = WithMessContext(ctx, mc)
			case errors.Is(err, models.ErrNotFound):
			default:
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			return next(ctx, req)
		}
	}
}
