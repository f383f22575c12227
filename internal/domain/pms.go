package domain

import "time"

// RoomStatus values as reported by the PMS.
type RoomStatus string

const (
	RoomStatusAvailable  RoomStatus = "AVAILABLE"
	RoomStatusOccupied   RoomStatus = "OCCUPIED"
	RoomStatusReserved   RoomStatus = "RESERVED"
	RoomStatusOutOfOrder RoomStatus = "OUT_OF_ORDER"
	RoomStatusDirty      RoomStatus = "DIRTY"
	RoomStatusCleaning   RoomStatus = "CLEANING"
)

// RoomStatuses lists every valid room status, in enum order.
var RoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusReserved,
	RoomStatusOutOfOrder,
	RoomStatusDirty,
	RoomStatusCleaning,
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentCash       PaymentMethod = "CASH"
	PaymentInvoice    PaymentMethod = "INVOICE"
	PaymentPrepaid    PaymentMethod = "PREPAID"
)

// Guest is a PMS guest profile. GuestID and both names are required;
// everything else is optional.
type Guest struct {
	GuestID     string
	FirstName   string
	LastName    string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	Country     *string
	LoyaltyTier *string
	VIPStatus   bool
	Preferences []string
	Notes       *string
}

type Room struct {
	RoomID           string
	RoomNumber       string
	RoomType         string
	RoomTypeName     string
	Floor            *int
	Status           RoomStatus
	Features         []string
	MaxOccupancy     int
	CurrentOccupancy int
}

type Charge struct {
	ChargeID      string
	ReservationID string
	Description   string
	Amount        float64
	Currency      string
	Category      string
	PostedAt      time.Time
	PostedBy      *string
}

type Payment struct {
	PaymentID     string
	ReservationID string
	Amount        float64
	Currency      string
	Method        PaymentMethod
	Reference     *string
	ProcessedAt   time.Time
}

// Folio is the itemized bill for one reservation. In mock mode the totals are
// recomputed from the charge/payment lists; in real mode upstream values are
// trusted verbatim.
type Folio struct {
	FolioID       string
	ReservationID string
	GuestName     string
	RoomNumber    string
	Charges       []Charge
	Payments      []Payment
	TotalCharges  float64
	TotalPayments float64
	Balance       float64
}

type CheckInResult struct {
	Success        bool
	ReservationID  string
	RoomID         string
	RoomNumber     string
	GuestName      string
	CheckInTime    time.Time
	KeyCardsIssued int
	Message        *string
}

type CheckOutResult struct {
	Success          bool
	ReservationID    string
	RoomID           string
	RoomNumber       string
	GuestName        string
	CheckOutTime     time.Time
	TotalCharges     float64
	PaymentsReceived float64
	BalanceDue       float64
	InvoiceNumber    *string
}
