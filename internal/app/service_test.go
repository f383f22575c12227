package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"synxis_pms/internal/app"
	"synxis_pms/internal/domain"
)

// ---- fakes ----

type fakeBackend struct {
	guest      *domain.Guest
	room       *domain.Room
	guestCalls int
	roomCalls  int
}

func (f *fakeBackend) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	f.guestCalls++
	return f.guest, nil
}
func (f *fakeBackend) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	f.roomCalls++
	return f.room, nil
}
func (f *fakeBackend) GetRoomStatus(ctx context.Context, id string) (domain.RoomStatus, error) {
	return domain.RoomStatusDirty, nil
}
func (f *fakeBackend) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return nil, nil
}
func (f *fakeBackend) CheckIn(ctx context.Context, resID, roomID string) (*domain.CheckInResult, error) {
	return &domain.CheckInResult{Success: true, ReservationID: resID, RoomID: roomID, KeyCardsIssued: 2}, nil
}
func (f *fakeBackend) CheckOut(ctx context.Context, resID string) (*domain.CheckOutResult, error) {
	return &domain.CheckOutResult{Success: true, ReservationID: resID, RoomID: "ROOM001"}, nil
}
func (f *fakeBackend) GetFolio(ctx context.Context, resID string) (*domain.Folio, error) {
	return &domain.Folio{FolioID: "FOLIO-" + resID, ReservationID: resID}, nil
}
func (f *fakeBackend) Close() error { return nil }

type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Guest:
		d.GuestID = string(v)
	case *domain.Room:
		d.RoomID = string(v)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	switch t := v.(type) {
	case *domain.Guest:
		c.store[key] = []byte(t.GuestID)
	case *domain.Room:
		c.store[key] = []byte(t.RoomID)
	}
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- tests ----

func TestGetGuest_CacheMissThenHit(t *testing.T) {
	be := &fakeBackend{guest: &domain.Guest{GuestID: "G1", FirstName: "John", LastName: "Doe"}}
	cache := &fakeCache{}
	svc := app.NewPMSService(be, cache, 5*time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.GetGuest(ctx, "G1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := svc.GetGuest(ctx, "G1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if be.guestCalls != 1 {
		t.Fatalf("expected a single backend call, got %d", be.guestCalls)
	}
}

func TestGetGuest_AbsentNotCached(t *testing.T) {
	be := &fakeBackend{guest: nil}
	cache := &fakeCache{}
	svc := app.NewPMSService(be, cache, 5*time.Minute, zerolog.Nop())

	g, err := svc.GetGuest(context.Background(), "NOPE")
	if err != nil || g != nil {
		t.Fatalf("expected absent guest, got %+v err=%v", g, err)
	}
	if len(cache.store) != 0 {
		t.Fatalf("absent results must not be cached: %v", cache.store)
	}
}

func TestCheckIn_EvictsRoom(t *testing.T) {
	be := &fakeBackend{}
	cache := &fakeCache{store: map[string][]byte{"room:ROOM42": []byte("ROOM42")}}
	svc := app.NewPMSService(be, cache, 5*time.Minute, zerolog.Nop())

	res, err := svc.CheckIn(context.Background(), "RES123", "ROOM42")
	if err != nil || !res.Success {
		t.Fatalf("check-in failed: %+v err=%v", res, err)
	}
	if len(cache.dels) != 1 || cache.dels[0] != "room:ROOM42" {
		t.Fatalf("expected room eviction, got %v", cache.dels)
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	be := &fakeBackend{guest: &domain.Guest{GuestID: "G1", FirstName: "John", LastName: "Doe"}}
	svc := app.NewPMSService(be, nil, 0, zerolog.Nop())

	if _, err := svc.GetGuest(context.Background(), "G1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := svc.CheckOut(context.Background(), "RES1"); err != nil {
		t.Fatalf("err: %v", err)
	}
}
