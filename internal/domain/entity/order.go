package entity

import "time"

// OrderStatus enumerates the fulfilment states an order moves through.
type OrderStatus string

const (
	StatusNotProcessed OrderStatus = "not processed"
	StatusProcessing   OrderStatus = "processing"
	StatusShipped      OrderStatus = "shipped"
	StatusDelivered    OrderStatus = "delivered"
	StatusCancelled    OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNotProcessed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a placed purchase. TransactionID references the charge at the
// payment gateway; TotalCents is computed server-side at checkout.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Status        OrderStatus `json:"status"`
	TotalCents    int64       `json:"total_cents"`
	TransactionID string      `json:"transaction_id"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem snapshots name and unit price at purchase time so later catalog
// edits do not rewrite order history.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}
