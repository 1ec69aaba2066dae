package domain

import "time"

type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	Area          string    `json:"area"`
	PostalCode    string    `json:"postal_code"`
	TotalOrders   int       `json:"total_orders"`
	CreatedAt     time.Time `json:"created_at"`
}

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Unit       string `json:"unit"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
	Active     bool   `json:"active"`
}

type OrderItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Order struct {
	ID               string      `json:"id"`
	CustomerID       string      `json:"customer_id"`
	CustomerName     string      `json:"customer_name"`
	ContactNumber    string      `json:"contact_number"`
	DeliveryAddress  string      `json:"delivery_address"`
	Area             string      `json:"area"`
	Items            []OrderItem `json:"items"`
	SubtotalCents    int64       `json:"subtotal_cents"`
	DeliveryFeeCents int64       `json:"delivery_fee_cents"`
	TaxCents         int64       `json:"tax_cents"`
	TotalCents       int64       `json:"total_cents"`
	PaymentMethod    string      `json:"payment_method"`
	PaymentStatus    string      `json:"payment_status"`
	Status           string      `json:"status"`
	AssignedAgentID  string      `json:"assigned_agent_id,omitempty"`
	AssignedAt       *time.Time  `json:"assigned_at,omitempty"`
	DeliveredAt      *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

type Agent struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	ContactNumber      string    `json:"contact_number"`
	Area               string    `json:"area"`
	PostalCode         string    `json:"postal_code"`
	VehicleType        string    `json:"vehicle_type"`
	AvailabilityStatus string    `json:"availability_status"`
	Rating             float64   `json:"rating"`
	CurrentWorkload    int       `json:"current_workload"`
	TotalDeliveries    int       `json:"total_deliveries"`
	CreatedAt          time.Time `json:"created_at"`
}

type Delivery struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	AgentID     string     `json:"agent_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Signature   string     `json:"signature,omitempty"`
}

type Payment struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Feedback struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	AgentID    string    `json:"agent_id"`
	CustomerID string    `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RankedAgent is an agent snapshot augmented with the proximity ranking
// for a specific order. It is a copy; ranking never mutates stored agents.
type RankedAgent struct {
	Agent
	DistanceKm float64 `json:"distance_km"`
	Score      float64 `json:"score"`
}

type Area struct {
	Name       string `json:"name"`
	PostalCode string `json:"postal_code"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderCreateRequest struct {
	CustomerID      string             `json:"customer_id"`
	Items           []OrderItemRequest `json:"items"`
	PaymentMethod   string             `json:"payment_method"`
	DeliveryAddress string             `json:"delivery_address,omitempty"`
	Area            string             `json:"area,omitempty"`
}

// OrderDetail is the dispatcher's single-order view: the order plus the
// delivery, payment, and feedback records that exist for it so far.
type OrderDetail struct {
	Order    Order     `json:"order"`
	Delivery *Delivery `json:"delivery,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`
	Feedback *Feedback `json:"feedback,omitempty"`
}

type AgentCreateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	ContactNumber string `json:"contact_number"`
	Area          string `json:"area"`
	VehicleType   string `json:"vehicle_type,omitempty"`
}

type RecommendRequest struct {
	TopN int `json:"top_n"`
}

type AssignRequest struct {
	AgentID string `json:"agent_id"`
}

type AssignResult struct {
	Order    Order    `json:"order"`
	Agent    Agent    `json:"agent"`
	Delivery Delivery `json:"delivery"`
}

type AutoAssignResult struct {
	AssignedCount int `json:"assigned_count"`
	FailedCount   int `json:"failed_count"`
}

type ConfirmDeliveryRequest struct {
	Signature string `json:"signature"`
}

type AgentStatusUpdateRequest struct {
	AvailabilityStatus *string `json:"availability_status,omitempty"`
	Area               *string `json:"area,omitempty"`
}

type FeedbackRequest struct {
	OrderID string `json:"order_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type AgentPerformance struct {
	AgentID            string  `json:"agent_id"`
	Name               string  `json:"name"`
	Area               string  `json:"area"`
	AvailabilityStatus string  `json:"availability_status"`
	Rating             float64 `json:"rating"`
	CurrentWorkload    int     `json:"current_workload"`
	TotalDeliveries    int     `json:"total_deliveries"`
	EarningsCents      int64   `json:"earnings_cents"`
}

type RevenueSummary struct {
	Period          string `json:"period"`
	OrderCount      int    `json:"order_count"`
	RevenueCents    int64  `json:"revenue_cents"`
	DeliveryFees    int64  `json:"delivery_fee_cents"`
	CollectedCents  int64  `json:"collected_cents"`
	PendingPayments int    `json:"pending_payments"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type UserAccount struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type DispatchUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	OrderStatusReceived       = "Received"
	OrderStatusProcessing     = "Processing"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
)

const (
	DeliveryStatusAssigned  = "Assigned"
	DeliveryStatusInTransit = "In Transit"
	DeliveryStatusDelivered = "Delivered"
)

const (
	AgentStatusOnline  = "Online"
	AgentStatusOffline = "Offline"
	AgentStatusBusy    = "Busy"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
)

const (
	PaymentMethodCash   = "Cash on Delivery"
	PaymentMethodOnline = "Online Payment"
)
