package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/internal/auth"
	"github.com/mmynk/cuptrip/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the trip passphrase for a traveler and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "traveler_id", req.Msg.TravelerID)

	// Validate input
	if req.Msg.TravelerID == "" || req.Msg.Passphrase == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	// Authenticate traveler
	traveler, err := s.authenticator.Authenticate(ctx, req.Msg.TravelerID, req.Msg.Passphrase)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.logger.Warn("Login failed", "traveler_id", req.Msg.TravelerID, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	case err != nil:
		s.logger.Error("Login lookup failed", "traveler_id", req.Msg.TravelerID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to check credentials"))
	}

	// Generate JWT token
	token, err := s.jwtManager.Generate(traveler)
	if err != nil {
		s.logger.Error("Failed to generate token", "traveler_id", traveler.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Traveler logged in", "traveler_id", traveler.ID, "name", traveler.Name)
	return connect.NewResponse(&api.LoginResponse{
		Token:    token,
		Traveler: travelerToAPI(traveler),
	}), nil
}
