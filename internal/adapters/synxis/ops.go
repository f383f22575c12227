// internal/adapters/synxis/ops.go
package synxis

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"synxis_pms/internal/domain"
)

// propertyQuery scopes a request to the configured hotel property.
func (c *Remote) propertyQuery() url.Values {
	q := url.Values{}
	if c.cfg.PropertyID != "" {
		q.Set("propertyId", c.cfg.PropertyID)
	}
	return q
}

func (c *Remote) GetGuest(ctx context.Context, guestID string) (*domain.Guest, error) {
	c.log.Info().Str("guest_id", guestID).Msg("getting guest")

	var payload map[string]any
	err := c.dispatch(ctx, http.MethodGet, "/guests/"+url.PathEscape(guestID), c.propertyQuery(), nil, &payload)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g := mapGuest(payload, guestID)
	return &g, nil
}

func (c *Remote) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	c.log.Info().Str("room_id", roomID).Msg("getting room")

	var payload map[string]any
	err := c.dispatch(ctx, http.MethodGet, "/rooms/"+url.PathEscape(roomID), c.propertyQuery(), nil, &payload)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r := mapRoom(payload, roomID)
	return &r, nil
}

func (c *Remote) GetRoomStatus(ctx context.Context, roomID string) (domain.RoomStatus, error) {
	c.log.Info().Str("room_id", roomID).Msg("getting room status")

	var payload map[string]any
	err := c.dispatch(ctx, http.MethodGet, "/rooms/"+url.PathEscape(roomID)+"/status", c.propertyQuery(), nil, &payload)
	if err != nil {
		return "", err
	}
	// The status endpoint has its own upstream contract; it is deliberately
	// not unified with the full-room mapping.
	return roomStatusOrDefault(str(payload, "status")), nil
}

func (c *Remote) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	c.log.Info().Msg("listing available rooms")

	q := c.propertyQuery()
	q.Set("status", "available")

	var payload any
	if err := c.dispatch(ctx, http.MethodGet, "/rooms", q, nil, &payload); err != nil {
		return nil, err
	}

	// accept either a bare array or an object wrapping a "rooms" array
	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["rooms"].([]any)
	}

	rooms := make([]domain.Room, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rooms = append(rooms, mapRoom(m, ""))
	}
	return rooms, nil
}

func (c *Remote) CheckIn(ctx context.Context, reservationID, roomID string) (*domain.CheckInResult, error) {
	c.log.Info().Str("reservation_id", reservationID).Str("room_id", roomID).Msg("checking in guest")

	body := map[string]any{"roomId": roomID, "propertyId": c.cfg.PropertyID}
	var payload map[string]any
	err := c.dispatch(ctx, http.MethodPost, "/reservations/"+url.PathEscape(reservationID)+"/checkin", nil, body, &payload)
	if err != nil {
		return nil, err
	}
	res := mapCheckIn(payload, reservationID, roomID)
	return &res, nil
}

func (c *Remote) CheckOut(ctx context.Context, reservationID string) (*domain.CheckOutResult, error) {
	c.log.Info().Str("reservation_id", reservationID).Msg("checking out guest")

	body := map[string]any{"propertyId": c.cfg.PropertyID}
	var payload map[string]any
	err := c.dispatch(ctx, http.MethodPost, "/reservations/"+url.PathEscape(reservationID)+"/checkout", nil, body, &payload)
	if err != nil {
		return nil, err
	}
	res := mapCheckOut(payload, reservationID)
	return &res, nil
}

func (c *Remote) GetFolio(ctx context.Context, reservationID string) (*domain.Folio, error) {
	c.log.Info().Str("reservation_id", reservationID).Msg("getting folio")

	var payload map[string]any
	err := c.dispatch(ctx, http.MethodGet, "/reservations/"+url.PathEscape(reservationID)+"/folio", c.propertyQuery(), nil, &payload)
	if err != nil {
		return nil, err
	}
	f := mapFolio(payload, reservationID)
	return &f, nil
}
