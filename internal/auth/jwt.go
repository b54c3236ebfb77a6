package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmynk/cuptrip/internal/models"
)

// issuer names this server in every session token.
const issuer = "cuptrip"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims is a traveler's session on one trip. The trip is the token's
// audience, so a token minted for one trip never opens another.
type Claims struct {
	TravelerID string `json:"tid"`
	Name       string `json:"name"`
	jwt.RegisteredClaims
}

// Trip returns the trip the session belongs to.
func (c *Claims) Trip() string {
	if len(c.Audience) == 0 {
		return ""
	}
	return c.Audience[0]
}

// JWTManager signs and checks session tokens for a single trip.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	trip   string
	parser *jwt.Parser
}

// NewJWTManager returns a manager whose tokens last ttl and are only
// accepted for trip.
func NewJWTManager(secret string, ttl time.Duration, trip string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		trip:   trip,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(trip),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// Generate signs a session for traveler on the manager's trip.
func (m *JWTManager) Generate(traveler *models.Traveler) (string, error) {
	now := time.Now()
	claims := &Claims{
		TravelerID: traveler.ID,
		Name:       traveler.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   traveler.ID,
			Audience:  jwt.ClaimStrings{m.trip},
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, lifetime, issuer and trip, and returns the
// session. Every failure wraps ErrInvalidToken.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.TravelerID == "" || claims.TravelerID != claims.Subject {
		return nil, fmt.Errorf("%w: traveler does not match subject", ErrInvalidToken)
	}
	return claims, nil
}
