package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the order's position in the fulfilment pipeline.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusPaymentDeclined OrderStatus = "Payment Declined"
	OrderStatusAuthorized      OrderStatus = "Authorized"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusCanceled        OrderStatus = "Canceled"
)

var orderPipeline = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusAuthorized, OrderStatusPaymentDeclined, OrderStatusCanceled},
	OrderStatusPaymentDeclined: {OrderStatusPending, OrderStatusAuthorized, OrderStatusCanceled},
	OrderStatusAuthorized:      {OrderStatusShipped, OrderStatusCanceled},
}

// CheckTransition returns ErrInvalidOrderStatus when the pipeline forbids moving
// from one status to another. Staying put is always allowed.
func CheckTransition(from, to OrderStatus) error {
	if from == to {
		return nil
	}
	for _, s := range orderPipeline[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %q to %q", ErrInvalidOrderStatus, from, to)
}

// Address is a postal address attached to an order.
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

// OrderLine is a purchased product line.
type OrderLine struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	PartnerSKU       string          `json:"partner_sku"`
	Quantity         int             `json:"quantity"`
	UnitPriceInclTax decimal.Decimal `json:"unit_price_incl_tax"`
}

// Order is the checkout order the gateway collects payment for.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	Status          OrderStatus     `json:"status"`
	Currency        string          `json:"currency"`
	TotalInclTax    decimal.Decimal `json:"total_incl_tax"`
	Email           string          `json:"email"`
	UserID          *string         `json:"user_id,omitempty"`
	ShippingCode    string          `json:"shipping_code"`
	BillingAddress  *Address        `json:"billing_address,omitempty"`
	ShippingAddress *Address        `json:"shipping_address,omitempty"`
	Lines           []OrderLine     `json:"lines"`
}

// NoteType separates notes written by the system from staff notes.
type NoteType string

const (
	NoteTypeSystem NoteType = "System"
)

// OrderNote is a free-text note attached to an order.
type OrderNote struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	NoteType     NoteType  `json:"note_type"`
	Message      string    `json:"message"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// PaymentEventType names a money movement recorded against order lines.
type PaymentEventType string

const (
	PaymentEventAuthorise PaymentEventType = "Authorise"
	PaymentEventDebit     PaymentEventType = "Debit"
)

// PaymentEventLine is the quantity of an order line covered by an event.
type PaymentEventLine struct {
	LineID   uuid.UUID `json:"line_id"`
	Quantity int       `json:"quantity"`
}

// PaymentEvent records an authorization or debit against the order.
type PaymentEvent struct {
	ID        uuid.UUID          `json:"id"`
	OrderID   uuid.UUID          `json:"order_id"`
	EventType PaymentEventType   `json:"event_type"`
	Amount    decimal.Decimal    `json:"amount"`
	Reference string             `json:"reference"`
	Lines     []PaymentEventLine `json:"lines"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewPaymentEvent covers every line of the order at its full quantity.
func NewPaymentEvent(order *Order, eventType PaymentEventType, amount decimal.Decimal, reference string) *PaymentEvent {
	lines := make([]PaymentEventLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, PaymentEventLine{LineID: l.ID, Quantity: l.Quantity})
	}
	return &PaymentEvent{
		OrderID:   order.ID,
		EventType: eventType,
		Amount:    amount,
		Reference: reference,
		Lines:     lines,
	}
}
