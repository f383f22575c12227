// internal/adapters/synxis/mock.go
package synxis

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"synxis_pms/internal/domain"
)

// Mock generates randomized but schema-valid PMS data. It performs no network
// I/O; it is both a standalone operating mode and a fixture for the tool layer.
type Mock struct {
	log zerolog.Logger
}

func NewMock(logger zerolog.Logger) *Mock { return &Mock{log: logger} }

func (m *Mock) Close() error { return nil }

func (m *Mock) GetGuest(ctx context.Context, guestID string) (*domain.Guest, error) {
	m.log.Info().Str("guest_id", guestID).Bool("mock", true).Msg("getting guest")
	g := domain.Guest{
		GuestID:     guestID,
		FirstName:   "John",
		LastName:    "Doe",
		Email:       strp("john.doe@example.com"),
		Phone:       strp("+1-555-0100"),
		Address:     strp("123 Main Street"),
		City:        strp("New York"),
		Country:     strp("US"),
		LoyaltyTier: strp("Gold"),
		VIPStatus:   rand.Float64() < 0.2,
		Preferences: []string{"High floor", "Non-smoking"},
	}
	return &g, nil
}

func (m *Mock) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	m.log.Info().Str("room_id", roomID).Bool("mock", true).Msg("getting room")
	r := m.room(roomID)
	return &r, nil
}

func (m *Mock) GetRoomStatus(ctx context.Context, roomID string) (domain.RoomStatus, error) {
	m.log.Info().Str("room_id", roomID).Bool("mock", true).Msg("getting room status")
	return m.room(roomID).Status, nil
}

func (m *Mock) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	m.log.Info().Bool("mock", true).Msg("listing available rooms")
	var rooms []domain.Room
	for i := 1; i <= 10; i++ {
		if rand.Float64() > 0.3 {
			r := m.room(fmt.Sprintf("ROOM%03d", i))
			r.Status = domain.RoomStatusAvailable
			r.CurrentOccupancy = 0
			rooms = append(rooms, r)
		}
	}
	return rooms, nil
}

func (m *Mock) CheckIn(ctx context.Context, reservationID, roomID string) (*domain.CheckInResult, error) {
	m.log.Info().Str("reservation_id", reservationID).Str("room_id", roomID).Bool("mock", true).Msg("checking in guest")
	res := domain.CheckInResult{
		Success:        true,
		ReservationID:  reservationID,
		RoomID:         roomID,
		RoomNumber:     randomRoomNumber(),
		GuestName:      "John Doe",
		CheckInTime:    time.Now().UTC(),
		KeyCardsIssued: 2,
		Message:        strp("Welcome! Your room is ready."),
	}
	return &res, nil
}

func (m *Mock) CheckOut(ctx context.Context, reservationID string) (*domain.CheckOutResult, error) {
	m.log.Info().Str("reservation_id", reservationID).Bool("mock", true).Msg("checking out guest")

	total := 200.0 + rand.Float64()*600.0
	paid := total * (0.5 + rand.Float64()*0.5)
	res := domain.CheckOutResult{
		Success:          true,
		ReservationID:    reservationID,
		RoomID:           "ROOM001",
		RoomNumber:       "305",
		GuestName:        "John Doe",
		CheckOutTime:     time.Now().UTC(),
		TotalCharges:     round2(total),
		PaymentsReceived: round2(paid),
		BalanceDue:       round2(total - paid),
		InvoiceNumber:    strp(fmt.Sprintf("INV-%05d", 10000+rand.IntN(90000))),
	}
	return &res, nil
}

func (m *Mock) GetFolio(ctx context.Context, reservationID string) (*domain.Folio, error) {
	m.log.Info().Str("reservation_id", reservationID).Bool("mock", true).Msg("getting folio")

	now := time.Now().UTC()
	charges := make([]domain.Charge, 0, 3)
	for i := 0; i < 3; i++ {
		charges = append(charges, domain.Charge{
			ChargeID:      fmt.Sprintf("CHG%03d", i),
			ReservationID: reservationID,
			Description:   "Room Charge",
			Amount:        199.99,
			Currency:      "USD",
			Category:      "ROOM",
			PostedAt:      now,
		})
	}
	payments := []domain.Payment{{
		PaymentID:     "PAY001",
		ReservationID: reservationID,
		Amount:        200.00,
		Currency:      "USD",
		Method:        domain.PaymentCreditCard,
		Reference:     strp(uuid.NewString()),
		ProcessedAt:   now,
	}}

	// the mock computes totals from the lists rather than trusting any
	// pre-rounded figures
	var totalCharges, totalPayments float64
	for _, c := range charges {
		totalCharges += c.Amount
	}
	for _, p := range payments {
		totalPayments += p.Amount
	}

	f := domain.Folio{
		FolioID:       "FOLIO-" + reservationID,
		ReservationID: reservationID,
		GuestName:     "John Doe",
		RoomNumber:    "305",
		Charges:       charges,
		Payments:      payments,
		TotalCharges:  round2(totalCharges),
		TotalPayments: round2(totalPayments),
		Balance:       round2(totalCharges - totalPayments),
	}
	return &f, nil
}

// room builds a random room: floors 1-10, units 01-20.
func (m *Mock) room(roomID string) domain.Room {
	floor := 1 + rand.IntN(10)
	return domain.Room{
		RoomID:           roomID,
		RoomNumber:       fmt.Sprintf("%d%02d", floor, 1+rand.IntN(20)),
		RoomType:         "DLX",
		RoomTypeName:     "Deluxe Room",
		Floor:            &floor,
		Status:           domain.RoomStatuses[rand.IntN(len(domain.RoomStatuses))],
		Features:         []string{"WiFi", "Mini Bar", "Safe", "Iron"},
		MaxOccupancy:     2,
		CurrentOccupancy: rand.IntN(3),
	}
}

func randomRoomNumber() string {
	return fmt.Sprintf("%d%02d", 1+rand.IntN(10), 1+rand.IntN(20))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func strp(s string) *string { return &s }
