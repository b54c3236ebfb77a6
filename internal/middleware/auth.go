package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/internal/auth"
)

type sessionKey struct{}

// WithTraveler returns a context carrying the session traveler.
func WithTraveler(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, sessionKey{}, claims)
}

func session(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(sessionKey{}).(*auth.Claims)
	return claims
}

// GetTravelerID returns the session traveler's id, or "" without a session.
func GetTravelerID(ctx context.Context) string {
	if c := session(ctx); c != nil {
		return c.TravelerID
	}
	return ""
}

// GetName returns the session traveler's display name, or "".
func GetName(ctx context.Context) string {
	if c := session(ctx); c != nil {
		return c.Name
	}
	return ""
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// claimsFrom validates the request's bearer token for the manager's trip.
func claimsFrom(jwtManager *auth.JWTManager, req connect.AnyRequest) (*auth.Claims, error) {
	header := req.Header().Get("Authorization")
	if header == "" {
		return nil, auth.ErrMissingToken
	}
	token, ok := bearerToken(header)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(token)
}

// RequireAuth rejects calls without a valid session token for this trip
// and attaches the session traveler to the rest.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := claimsFrom(jwtManager, req)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithTraveler(ctx, claims), req)
		}
	}
}

// OptionalAuth attaches the session traveler when a valid token is sent and
// lets every call through. Budget reads use it: anyone with the link sees
// balances.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if claims, err := claimsFrom(jwtManager, req); err == nil {
				ctx = WithTraveler(ctx, claims)
			}
			return next(ctx, req)
		}
	}
}
