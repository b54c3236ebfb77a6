package auth

import (
	"context"

	"github.com/mmynk/cuptrip/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (shared
// trip passphrase, per-traveler passwords, OAuth, etc.) without changing the
// service layer code.
type Authenticator interface {
	// Authenticate verifies the credential for the given traveler and
	// returns the traveler if successful.
	Authenticate(ctx context.Context, travelerID, credential string) (*models.Traveler, error)
}
