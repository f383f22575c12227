package domain

import "context"

// Backend is the PMS capability surface. Mock and remote implementations are
// interchangeable; the choice is made once at construction.
//
// GetGuest and GetRoom return (nil, nil) when the backend reports a miss.
// The remaining operations always return a populated result on success.
type Backend interface {
	GetGuest(ctx context.Context, guestID string) (*Guest, error)
	GetRoom(ctx context.Context, roomID string) (*Room, error)
	GetRoomStatus(ctx context.Context, roomID string) (RoomStatus, error)
	ListAvailableRooms(ctx context.Context) ([]Room, error)
	CheckIn(ctx context.Context, reservationID, roomID string) (*CheckInResult, error)
	CheckOut(ctx context.Context, reservationID string) (*CheckOutResult, error)
	GetFolio(ctx context.Context, reservationID string) (*Folio, error)

	// Close releases pooled transport resources. Safe to call on any backend.
	Close() error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
