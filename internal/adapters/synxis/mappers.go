// internal/adapters/synxis/mappers.go
package synxis

import (
	"strings"
	"time"

	"synxis_pms/internal/domain"
)

/********** payload helpers **********/

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func strOr(m map[string]any, key, def string) string {
	if s := str(m, key); s != "" {
		return s
	}
	return def
}

func strPtr(m map[string]any, key string) *string {
	if s := str(m, key); s != "" {
		return &s
	}
	return nil
}

func num(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func numOr(m map[string]any, key string, def float64) float64 {
	if f, ok := num(m, key); ok {
		return f
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	if f, ok := num(m, key); ok {
		return int(f)
	}
	return def
}

func intPtr(m map[string]any, key string) *int {
	if f, ok := num(m, key); ok {
		n := int(f)
		return &n
	}
	return nil
}

func boolOr(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func strList(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func timeOr(m map[string]any, key string, def time.Time) time.Time {
	if s := str(m, key); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return def
}

func sub(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if mm, ok := v.(map[string]any); ok {
			out = append(out, mm)
		}
	}
	return out
}

func roomStatusOrDefault(s string) domain.RoomStatus {
	rs := domain.RoomStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range domain.RoomStatuses {
		if rs == known {
			return rs
		}
	}
	// "clean"-equivalent default when upstream omits or garbles the field
	return domain.RoomStatusAvailable
}

func paymentMethodOrDefault(s string) domain.PaymentMethod {
	pm := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch pm {
	case domain.PaymentCreditCard, domain.PaymentDebitCard, domain.PaymentCash,
		domain.PaymentInvoice, domain.PaymentPrepaid:
		return pm
	}
	return domain.PaymentCreditCard
}

/********** upstream payload -> domain **********/

func mapGuest(m map[string]any, fallbackID string) domain.Guest {
	return domain.Guest{
		GuestID:     strOr(m, "guestId", fallbackID),
		FirstName:   str(m, "firstName"),
		LastName:    str(m, "lastName"),
		Email:       strPtr(m, "email"),
		Phone:       strPtr(m, "phone"),
		Address:     strPtr(m, "address"),
		City:        strPtr(m, "city"),
		Country:     strPtr(m, "country"),
		LoyaltyTier: strPtr(m, "loyaltyTier"),
		VIPStatus:   boolOr(m, "vipStatus", false),
		Preferences: strList(m, "preferences"),
		Notes:       strPtr(m, "notes"),
	}
}

func mapRoom(m map[string]any, fallbackID string) domain.Room {
	return domain.Room{
		RoomID:           strOr(m, "roomId", fallbackID),
		RoomNumber:       str(m, "roomNumber"),
		RoomType:         str(m, "roomType"),
		RoomTypeName:     str(m, "roomTypeName"),
		Floor:            intPtr(m, "floor"),
		Status:           roomStatusOrDefault(str(m, "status")),
		Features:         strList(m, "features"),
		MaxOccupancy:     intOr(m, "maxOccupancy", 2),
		CurrentOccupancy: intOr(m, "currentOccupancy", 0),
	}
}

func mapCheckIn(m map[string]any, reservationID, roomID string) domain.CheckInResult {
	return domain.CheckInResult{
		Success:        boolOr(m, "success", true),
		ReservationID:  strOr(m, "reservationId", reservationID),
		RoomID:         strOr(m, "roomId", roomID),
		RoomNumber:     str(m, "roomNumber"),
		GuestName:      str(m, "guestName"),
		CheckInTime:    timeOr(m, "checkInTime", time.Now().UTC()),
		KeyCardsIssued: intOr(m, "keyCardsIssued", 2),
		Message:        strPtr(m, "message"),
	}
}

func mapCheckOut(m map[string]any, reservationID string) domain.CheckOutResult {
	return domain.CheckOutResult{
		Success:          boolOr(m, "success", true),
		ReservationID:    strOr(m, "reservationId", reservationID),
		RoomID:           str(m, "roomId"),
		RoomNumber:       str(m, "roomNumber"),
		GuestName:        str(m, "guestName"),
		CheckOutTime:     timeOr(m, "checkOutTime", time.Now().UTC()),
		TotalCharges:     numOr(m, "totalCharges", 0),
		PaymentsReceived: numOr(m, "paymentsReceived", 0),
		BalanceDue:       numOr(m, "balanceDue", 0),
		InvoiceNumber:    strPtr(m, "invoiceNumber"),
	}
}

// mapFolio trusts upstream totals verbatim; only mock mode recomputes them.
func mapFolio(m map[string]any, reservationID string) domain.Folio {
	f := domain.Folio{
		FolioID:       strOr(m, "folioId", "FOLIO-"+reservationID),
		ReservationID: strOr(m, "reservationId", reservationID),
		GuestName:     str(m, "guestName"),
		RoomNumber:    str(m, "roomNumber"),
		TotalCharges:  numOr(m, "totalCharges", 0),
		TotalPayments: numOr(m, "totalPayments", 0),
		Balance:       numOr(m, "balance", 0),
	}
	for _, cm := range sub(m, "charges") {
		f.Charges = append(f.Charges, domain.Charge{
			ChargeID:      str(cm, "chargeId"),
			ReservationID: strOr(cm, "reservationId", reservationID),
			Description:   str(cm, "description"),
			Amount:        numOr(cm, "amount", 0),
			Currency:      strOr(cm, "currency", "USD"),
			Category:      str(cm, "category"),
			PostedAt:      timeOr(cm, "postedAt", time.Time{}),
			PostedBy:      strPtr(cm, "postedBy"),
		})
	}
	for _, pm := range sub(m, "payments") {
		f.Payments = append(f.Payments, domain.Payment{
			PaymentID:     str(pm, "paymentId"),
			ReservationID: strOr(pm, "reservationId", reservationID),
			Amount:        numOr(pm, "amount", 0),
			Currency:      strOr(pm, "currency", "USD"),
			Method:        paymentMethodOrDefault(str(pm, "method")),
			Reference:     strPtr(pm, "reference"),
			ProcessedAt:   timeOr(pm, "processedAt", time.Time{}),
		})
	}
	return f
}
