package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/cuptrip/internal/models"
	"github.com/mmynk/cuptrip/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid traveler or passphrase")
	ErrWeakPassphrase     = errors.New("passphrase must be at least 8 characters")
)

// TravelerLookup is the slice of storage the authenticator needs.
type TravelerLookup interface {
	GetTraveler(ctx context.Context, travelerID string) (*models.Traveler, error)
}

// PassphraseAuthenticator checks a passphrase shared by the whole trip.
// Only the bcrypt hash is kept in memory.
type PassphraseAuthenticator struct {
	travelers TravelerLookup
	hash      []byte
}

// NewPassphraseAuthenticator hashes passphrase and returns an authenticator
// that accepts it for any existing traveler.
func NewPassphraseAuthenticator(travelers TravelerLookup, passphrase string) (*PassphraseAuthenticator, error) {
	if len(passphrase) < 8 {
		return nil, ErrWeakPassphrase
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passphrase: %w", err)
	}

	return &PassphraseAuthenticator{travelers: travelers, hash: hash}, nil
}

// Authenticate verifies the passphrase and that the traveler exists. An
// unknown traveler is ErrInvalidCredentials; store failures are returned
// wrapped.
func (a *PassphraseAuthenticator) Authenticate(ctx context.Context, travelerID, credential string) (*models.Traveler, error) {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	traveler, err := a.travelers.GetTraveler(ctx, travelerID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("failed to look up traveler: %w", err)
	case traveler == nil:
		return nil, ErrInvalidCredentials
	}

	return traveler, nil
}
