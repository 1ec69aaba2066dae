package store

import (
	"context"
	"errors"
	"time"

	"lankagrocer/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicate         = errors.New("already exists")
)

type Repository interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error)
	ListPendingOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)

	ListAgents(ctx context.Context) ([]domain.Agent, error)
	ListAgentsByStatus(ctx context.Context, availabilityStatus string) ([]domain.Agent, error)
	GetAgentByID(ctx context.Context, agentID string) (*domain.Agent, error)
	CreateAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error)

	GetDeliveryByID(ctx context.Context, deliveryID string) (*domain.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	ListDeliveriesByAgent(ctx context.Context, agentID string, activeOnly bool) ([]domain.Delivery, error)
	CountActiveDeliveries(ctx context.Context, agentID string) (int, error)
	CreateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error)
	UpdateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error)

	CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, from time.Time, to time.Time) ([]domain.Payment, error)

	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) (*domain.Product, error)

	CreateFeedback(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error)
	GetFeedbackByOrderID(ctx context.Context, orderID string) (*domain.Feedback, error)
	ListFeedbackByAgent(ctx context.Context, agentID string) ([]domain.Feedback, error)

	RevenueSummary(ctx context.Context, from time.Time, to time.Time) (domain.RevenueSummary, error)

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
