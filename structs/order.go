package structs

import (
	"orderdesk_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=100"`
	Email       string             `json:"email" validate:"required,email"`
	PhoneNumber string             `json:"phone_number" validate:"required,min=7,max=20"`
	Street      string             `json:"street" validate:"required,max=200"`
	City        string             `json:"city" validate:"required,max=100"`
	State       string             `json:"state" validate:"required,max=100"`
	Country     string             `json:"country" validate:"required,max=100"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest carries partial-update semantics: nil fields are left
// untouched, a non-nil Items slice replaces the whole item set.
type UpdateOrderRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	PhoneNumber *string             `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Street      *string             `json:"street" validate:"omitempty,max=200"`
	City        *string             `json:"city" validate:"omitempty,max=100"`
	State       *string             `json:"state" validate:"omitempty,max=100"`
	Country     *string             `json:"country" validate:"omitempty,max=100"`
	Items       *[]OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

type OrderItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}

type OrderResponse struct {
	Id             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	PhoneNumber    string              `json:"phone_number"`
	Street         string              `json:"street"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	Country        string              `json:"country"`
	ReferenceCode  string              `json:"reference_code"`
	PaymentCode    string              `json:"payment_code"`
	OrderStatus    tables.OrderStatus  `json:"order_status"`
	ProofOfPayment *string             `json:"proof_of_payment"`
	Items          []OrderItemResponse `json:"items"`
	Total          float64             `json:"total"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// EmailDispatch reports the per-recipient outcome of the notification fan-out
// after a successful payment-proof upload.
type EmailDispatch struct {
	Customer bool `json:"customer"`
	Admin    bool `json:"admin"`
}

func NewOrderResponse(order *tables.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			Id:        item.Id,
			Name:      item.Name,
			Amount:    item.Amount,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}

	return &OrderResponse{
		Id:             order.Id,
		Name:           order.Name,
		Email:          order.Email,
		PhoneNumber:    order.PhoneNumber,
		Street:         order.Street,
		City:           order.City,
		State:          order.State,
		Country:        order.Country,
		ReferenceCode:  order.ReferenceCode,
		PaymentCode:    order.PaymentCode,
		OrderStatus:    order.Status,
		ProofOfPayment: order.ProofOfPayment,
		Items:          items,
		Total:          order.Total(),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
