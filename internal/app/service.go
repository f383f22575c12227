package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"synxis_pms/internal/domain"
)

// PMSService fronts the selected backend and adds read-through caching for
// the stable lookups. Mutating operations evict affected room entries.
type PMSService struct {
	backend  domain.Backend
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewPMSService(b domain.Backend, c domain.Cache, ttl time.Duration, logger zerolog.Logger) *PMSService {
	return &PMSService{backend: b, cache: c, cacheTTL: ttl, log: logger}
}

func (s *PMSService) GetGuest(ctx context.Context, guestID string) (*domain.Guest, error) {
	key := "guest:" + guestID
	if s.cache != nil {
		var g domain.Guest
		if ok, _ := s.cache.Get(ctx, key, &g); ok {
			return &g, nil
		}
	}
	g, err := s.backend.GetGuest(ctx, guestID)
	if err != nil || g == nil {
		return g, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, g, int(s.cacheTTL.Seconds()))
	}
	return g, nil
}

func (s *PMSService) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	key := "room:" + roomID
	if s.cache != nil {
		var r domain.Room
		if ok, _ := s.cache.Get(ctx, key, &r); ok {
			return &r, nil
		}
	}
	r, err := s.backend.GetRoom(ctx, roomID)
	if err != nil || r == nil {
		return r, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	}
	return r, nil
}

// GetRoomStatus is never cached: housekeeping status is too volatile.
func (s *PMSService) GetRoomStatus(ctx context.Context, roomID string) (domain.RoomStatus, error) {
	return s.backend.GetRoomStatus(ctx, roomID)
}

func (s *PMSService) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return s.backend.ListAvailableRooms(ctx)
}

func (s *PMSService) CheckIn(ctx context.Context, reservationID, roomID string) (*domain.CheckInResult, error) {
	res, err := s.backend.CheckIn(ctx, reservationID, roomID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && res.RoomID != "" {
		_ = s.cache.Del(ctx, "room:"+res.RoomID)
	}
	return res, nil
}

func (s *PMSService) CheckOut(ctx context.Context, reservationID string) (*domain.CheckOutResult, error) {
	res, err := s.backend.CheckOut(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && res.RoomID != "" {
		_ = s.cache.Del(ctx, "room:"+res.RoomID)
	}
	return res, nil
}

func (s *PMSService) GetFolio(ctx context.Context, reservationID string) (*domain.Folio, error) {
	return s.backend.GetFolio(ctx, reservationID)
}

// Close releases the backend's transport resources.
func (s *PMSService) Close() error {
	return s.backend.Close()
}
