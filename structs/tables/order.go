package tables

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusSuccessful OrderStatus = "successful"
)

type Order struct {
	tableName struct{}  `bun:"table:orders,alias:o"`
	Id        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`

	// Customer Data
	Name        string `bun:"name,notnull" json:"name"`
	Email       string `bun:"email,notnull" json:"email"`
	PhoneNumber string `bun:"phone_number,notnull" json:"phone_number"`

	// Shipping Address
	Street  string `bun:"street,notnull" json:"street"`
	City    string `bun:"city,notnull" json:"city"`
	State   string `bun:"state,notnull" json:"state"`
	Country string `bun:"country,notnull" json:"country"`

	// Generated once at creation, never mutated afterwards
	ReferenceCode string `bun:"reference_code,notnull,unique" json:"reference_code"`
	PaymentCode   string `bun:"payment_code,notnull,unique" json:"payment_code"`

	// Lifecycle
	Status         OrderStatus `bun:"order_status,notnull,default:'pending'" json:"order_status"`
	ProofOfPayment *string     `bun:"proof_of_payment,nullzero" json:"proof_of_payment"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items"`
}

type OrderItem struct {
	tableName struct{}  `bun:"table:order_items,alias:oi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderId   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Amount    float64   `bun:"amount,notnull" json:"amount"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
}

// LineTotal is amount times quantity; never stored.
func (oi *OrderItem) LineTotal() float64 {
	return oi.Amount * float64(oi.Quantity)
}

// Total sums the line totals of all items on the order.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}
