package models

// Traveler represents a member of the trip.
type Traveler struct {
	// ID is the unique identifier for the traveler (UUID format).
	ID string

	// Name is the display name shown on balances and settlement cards.
	Name string

	// Emoji is the avatar shown next to the name (e.g., "⚽").
	Emoji string

	// Color is the traveler's tag color as a CSS value (e.g., "#1f77b4").
	Color string

	// CreatedAt is the Unix timestamp when the traveler was added.
	CreatedAt int64
}
