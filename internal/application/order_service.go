package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/gateway"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
	"github.com/oksasatya/go-commerce-api/pkg/mailer"
)

var (
	ErrCartEmpty          = NewFault("cart is empty")
	ErrNonceRequired      = NewFault("payment nonce is required")
	ErrBadQuantity        = NewFault("item quantity must be positive")
	ErrProductUnavailable = NewFault("product is unavailable")
	ErrPaymentDeclined    = NewFault("payment was not successful")
	ErrOrderNotFound      = NewFault("order not found")
	ErrUnknownStatus      = NewFault("unknown order status")
)

// OrderService handles checkout against the payment gateway and order
// fulfilment. The publisher is optional; when present, status changes enqueue
// notification emails.
type OrderService struct {
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
	Gateway  gateway.PaymentGateway
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	AppName  string
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository,
	users repository.UserRepository, gw gateway.PaymentGateway, pub *helpers.RabbitPublisher,
	logger *logrus.Logger, appName string) *OrderService {
	return &OrderService{
		Orders:   orders,
		Products: products,
		Users:    users,
		Gateway:  gw,
		Pub:      pub,
		Logger:   logger,
		AppName:  appName,
	}
}

// ClientToken fetches a fresh gateway token for the payment drop-in.
func (s *OrderService) ClientToken(ctx context.Context) (string, error) {
	return s.Gateway.ClientToken(ctx)
}

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Checkout prices the cart server-side, charges the gateway once, and
// persists the order with its item snapshot. A declined charge is a soft
// fault; a store failure after a successful charge is fatal and logged with
// the transaction id so operators can reconcile.
func (s *OrderService) Checkout(ctx context.Context, userID string, items []CheckoutItem, nonce string) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	if nonce == "" {
		return nil, ErrNonceRequired
	}

	var total int64
	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrBadQuantity
		}
		p, err := s.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductUnavailable
			}
			return nil, err
		}
		total += p.PriceCents * int64(it.Quantity)
		orderItems = append(orderItems, entity.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Quantity:   it.Quantity,
		})
	}

	txID, err := s.Gateway.Sale(ctx, total, nonce)
	if err != nil {
		if errors.Is(err, gateway.ErrDeclined) {
			return nil, ErrPaymentDeclined
		}
		return nil, err
	}

	o := &entity.Order{
		UserID:        userID,
		Status:        entity.StatusNotProcessed,
		TotalCents:    total,
		TransactionID: txID,
		Items:         orderItems,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"user_id":        userID,
				"transaction_id": txID,
			}).Error("order persist failed after successful charge")
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]entity.Order, error) {
	return s.Orders.ListAll(ctx)
}

// UpdateStatus moves an order to a new fulfilment state and notifies the
// buyer by email, best-effort.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, ErrUnknownStatus
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, o)
	return o, nil
}

func (s *OrderService) notifyStatus(ctx context.Context, o *entity.Order) {
	if s.Pub == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order notification lookup failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateOrderStatus,
		Data: map[string]any{
			"AppName": s.AppName,
			"Name":    u.Name,
			"OrderID": o.ID,
			"Status":  string(o.Status),
			"Total":   fmt.Sprintf("%.2f", float64(o.TotalCents)/100),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order notification publish failed")
	}
}
