package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/internal/models"
	"github.com/mmynk/cuptrip/internal/storage"
	"github.com/mmynk/cuptrip/pkg/api"
)

// TravelerService implements the Connect TravelerService.
type TravelerService struct {
	store storage.Store
}

// NewTravelerService creates a new TravelerService with the given storage backend.
func NewTravelerService(store storage.Store) *TravelerService {
	return &TravelerService{store: store}
}

// CreateTraveler adds a member to the trip.
func (s *TravelerService) CreateTraveler(ctx context.Context, req *connect.Request[api.CreateTravelerRequest]) (*connect.Response[api.CreateTravelerResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}

	traveler := &models.Traveler{
		Name:  name,
		Emoji: req.Msg.Emoji,
		Color: req.Msg.Color,
	}
	if err := s.store.CreateTraveler(ctx, traveler); err != nil {
		slog.Error("CreateTraveler failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Traveler created", "traveler_id", traveler.ID, "name", traveler.Name)
	return connect.NewResponse(&api.CreateTravelerResponse{Traveler: travelerToAPI(traveler)}), nil
}

// ListTravelers returns every member in join order.
func (s *TravelerService) ListTravelers(ctx context.Context, req *connect.Request[api.ListTravelersRequest]) (*connect.Response[api.ListTravelersResponse], error) {
	travelers, err := s.store.ListTravelers(ctx)
	if err != nil {
		slog.Error("ListTravelers failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Traveler, len(travelers))
	for i, t := range travelers {
		out[i] = travelerToAPI(t)
	}
	return connect.NewResponse(&api.ListTravelersResponse{Travelers: out}), nil
}

// DeleteTraveler removes a member who has no expenses or shares.
func (s *TravelerService) DeleteTraveler(ctx context.Context, req *connect.Request[api.DeleteTravelerRequest]) (*connect.Response[api.DeleteTravelerResponse], error) {
	err := s.store.DeleteTraveler(ctx, req.Msg.TravelerID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrInUse):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case err != nil:
		slog.Error("DeleteTraveler failed", "traveler_id", req.Msg.TravelerID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Traveler deleted", "traveler_id", req.Msg.TravelerID)
	return connect.NewResponse(&api.DeleteTravelerResponse{}), nil
}
