package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lankagrocer/backend/internal/domain"
	"lankagrocer/backend/internal/store"
	"lankagrocer/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	ordersByID      map[string]domain.Order
	agentsByID      map[string]domain.Agent
	deliveriesByID  map[string]domain.Delivery
	deliveryByOrder map[string]string
	paymentsByID    map[string]domain.Payment
	customersByID   map[string]domain.Customer
	productsByID    map[string]domain.Product
	feedbackByID    map[string]domain.Feedback
	feedbackByOrder map[string]string
	usersByUsername map[string]domain.UserAccount
}

func New() *Store {
	return &Store{
		ordersByID:      make(map[string]domain.Order),
		agentsByID:      make(map[string]domain.Agent),
		deliveriesByID:  make(map[string]domain.Delivery),
		deliveryByOrder: make(map[string]string),
		paymentsByID:    make(map[string]domain.Payment),
		customersByID:   make(map[string]domain.Customer),
		productsByID:    make(map[string]domain.Product),
		feedbackByID:    make(map[string]domain.Feedback),
		feedbackByOrder: make(map[string]string),
		usersByUsername: seedUsers(),
	}
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials come from SEED_DISPATCHER_PASSWORD and SEED_AGENT_PASSWORD;
// if unset, hardcoded dev defaults are used with a warning. These accounts
// are never used in production (the backend uses PostgreSQL when
// DATABASE_URL is set).
func seedUsers() map[string]domain.UserAccount {
	dispatcherPwd := envOr("SEED_DISPATCHER_PASSWORD", "dispatch123")
	agentPwd := envOr("SEED_AGENT_PASSWORD", "agent123")
	if os.Getenv("SEED_DISPATCHER_PASSWORD") == "" || os.Getenv("SEED_AGENT_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_DISPATCHER_PASSWORD and SEED_AGENT_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"dispatcher", dispatcherPwd, "dispatcher"},
		{"agent", agentPwd, "agent"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewSeeded returns a store preloaded with a small Sri Lankan grocery data
// set for dev/demo mode.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	customers := []domain.Customer{
		{ID: "cus-1001", Name: "Nimal Perera", Email: "nimal@example.lk", ContactNumber: "+94771234001", Address: "24 Galle Face Terrace", Area: "Colombo 3", PostalCode: "00300", TotalOrders: 4, CreatedAt: now.AddDate(0, -6, 0)},
		{ID: "cus-1002", Name: "Shanika Fernando", Email: "shanika@example.lk", ContactNumber: "+94771234002", Address: "12 Station Road", Area: "Dehiwala", PostalCode: "10350", TotalOrders: 2, CreatedAt: now.AddDate(0, -4, 0)},
		{ID: "cus-1003", Name: "Ruwan Jayasinghe", Email: "ruwan@example.lk", ContactNumber: "+94771234003", Address: "88 High Level Road", Area: "Nugegoda", PostalCode: "10250", TotalOrders: 7, CreatedAt: now.AddDate(0, -9, 0)},
	}

	products := []domain.Product{
		{ID: "prd-2001", Name: "Basmati Rice 5kg", Category: "grocery", Unit: "pack", PriceCents: 289500, Stock: 40, Active: true},
		{ID: "prd-2002", Name: "Red Dhal 1kg", Category: "grocery", Unit: "pack", PriceCents: 64000, Stock: 60, Active: true},
		{ID: "prd-2003", Name: "Fresh Milk 1L", Category: "dairy", Unit: "bottle", PriceCents: 48000, Stock: 35, Active: true},
		{ID: "prd-2004", Name: "Ceylon Tea 200g", Category: "beverage", Unit: "pack", PriceCents: 95000, Stock: 50, Active: true},
		{ID: "prd-2005", Name: "Coconut", Category: "produce", Unit: "each", PriceCents: 15000, Stock: 120, Active: true},
		{ID: "prd-2006", Name: "Kithul Treacle 375ml", Category: "grocery", Unit: "bottle", PriceCents: 125000, Stock: 18, Active: true},
	}

	agents := []domain.Agent{
		{ID: "agt-3001", Name: "Kasun Silva", Email: "kasun@example.lk", ContactNumber: "+94779876001", Area: "Colombo 3", PostalCode: "00300", VehicleType: "Motorbike", AvailabilityStatus: domain.AgentStatusOnline, Rating: 4.8, CurrentWorkload: 0, TotalDeliveries: 212, CreatedAt: now.AddDate(-1, 0, 0)},
		{ID: "agt-3002", Name: "Tharindu Bandara", Email: "tharindu@example.lk", ContactNumber: "+94779876002", Area: "Colombo 3", PostalCode: "00300", VehicleType: "Motorbike", AvailabilityStatus: domain.AgentStatusOnline, Rating: 4.0, CurrentWorkload: 2, TotalDeliveries: 148, CreatedAt: now.AddDate(0, -10, 0)},
		{ID: "agt-3003", Name: "Dilani Wickrama", Email: "dilani@example.lk", ContactNumber: "+94779876003", Area: "Nugegoda", PostalCode: "10250", VehicleType: "Three-wheeler", AvailabilityStatus: domain.AgentStatusOnline, Rating: 4.5, CurrentWorkload: 1, TotalDeliveries: 97, CreatedAt: now.AddDate(0, -7, 0)},
		{ID: "agt-3004", Name: "Mohamed Rizwan", Email: "rizwan@example.lk", ContactNumber: "+94779876004", Area: "Dehiwala", PostalCode: "10350", VehicleType: "Motorbike", AvailabilityStatus: domain.AgentStatusOffline, Rating: 4.9, CurrentWorkload: 0, TotalDeliveries: 301, CreatedAt: now.AddDate(-2, 0, 0)},
	}

	orders := []domain.Order{
		{
			ID: "ord-5001", CustomerID: "cus-1001", CustomerName: "Nimal Perera",
			ContactNumber: "+94771234001", DeliveryAddress: "24 Galle Face Terrace", Area: "Colombo 3",
			Items: []domain.OrderItem{
				{ProductID: "prd-2001", Name: "Basmati Rice 5kg", Qty: 1, UnitPriceCents: 289500},
				{ProductID: "prd-2003", Name: "Fresh Milk 1L", Qty: 2, UnitPriceCents: 48000},
			},
			SubtotalCents: 385500, DeliveryFeeCents: 20000, TaxCents: 20275, TotalCents: 425775,
			PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusPending,
			Status: domain.OrderStatusReceived, CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID: "ord-5002", CustomerID: "cus-1003", CustomerName: "Ruwan Jayasinghe",
			ContactNumber: "+94771234003", DeliveryAddress: "88 High Level Road", Area: "Nugegoda",
			Items: []domain.OrderItem{
				{ProductID: "prd-2004", Name: "Ceylon Tea 200g", Qty: 1, UnitPriceCents: 95000},
			},
			SubtotalCents: 95000, DeliveryFeeCents: 20000, TaxCents: 5750, TotalCents: 120750,
			PaymentMethod: domain.PaymentMethodOnline, PaymentStatus: domain.PaymentStatusCompleted,
			Status: domain.OrderStatusReceived, CreatedAt: now.Add(-45 * time.Minute),
		},
	}

	for _, c := range customers {
		s.customersByID[c.ID] = c
	}
	for _, p := range products {
		s.productsByID[p.ID] = p
	}
	for _, a := range agents {
		s.agentsByID[a.ID] = a
	}
	for _, o := range orders {
		s.ordersByID[o.ID] = o
	}
	return s
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneOrder(o domain.Order) domain.Order {
	clone := o
	clone.Items = slices.Clone(o.Items)
	if o.AssignedAt != nil {
		t := *o.AssignedAt
		clone.AssignedAt = &t
	}
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		clone.DeliveredAt = &t
	}
	return clone
}

func cloneDelivery(d domain.Delivery) domain.Delivery {
	clone := d
	if d.PickedUpAt != nil {
		t := *d.PickedUpAt
		clone.PickedUpAt = &t
	}
	if d.DeliveredAt != nil {
		t := *d.DeliveredAt
		clone.DeliveredAt = &t
	}
	return clone
}

func (s *Store) ListOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.ordersByID))
	for _, o := range s.ordersByID {
		orders = append(orders, cloneOrder(o))
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return orders, nil
}

func (s *Store) ListOrdersByStatus(_ context.Context, status string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for _, o := range s.ordersByID {
		if o.Status != status {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return orders, nil
}

func (s *Store) ListPendingOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for _, o := range s.ordersByID {
		if o.AssignedAgentID != "" {
			continue
		}
		if o.Status != domain.OrderStatusReceived && o.Status != domain.OrderStatusProcessing {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return orders, nil
}

func (s *Store) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.ordersByID[orderID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := cloneOrder(order)
	return &clone, nil
}

func (s *Store) CreateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = xid.New("ord")
	}
	if _, exists := s.ordersByID[order.ID]; exists {
		return nil, store.ErrDuplicate
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.ordersByID[order.ID] = cloneOrder(order)
	clone := cloneOrder(order)
	return &clone, nil
}

func (s *Store) UpdateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ordersByID[order.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.ordersByID[order.ID] = cloneOrder(order)
	clone := cloneOrder(order)
	return &clone, nil
}

func (s *Store) ListAgents(_ context.Context) ([]domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]domain.Agent, 0, len(s.agentsByID))
	for _, a := range s.agentsByID {
		agents = append(agents, a)
	}
	slices.SortFunc(agents, func(a, b domain.Agent) int {
		return cmpString(a.ID, b.ID)
	})
	return agents, nil
}

func (s *Store) ListAgentsByStatus(_ context.Context, availabilityStatus string) ([]domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]domain.Agent, 0)
	for _, a := range s.agentsByID {
		if a.AvailabilityStatus != availabilityStatus {
			continue
		}
		agents = append(agents, a)
	}
	slices.SortFunc(agents, func(a, b domain.Agent) int {
		return cmpString(a.ID, b.ID)
	})
	return agents, nil
}

func (s *Store) GetAgentByID(_ context.Context, agentID string) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agent, exists := s.agentsByID[agentID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := agent
	return &clone, nil
}

func (s *Store) CreateAgent(_ context.Context, agent domain.Agent) (*domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if agent.ID == "" {
		agent.ID = xid.New("agt")
	}
	if _, exists := s.agentsByID[agent.ID]; exists {
		return nil, store.ErrDuplicate
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now().UTC()
	}
	if agent.AvailabilityStatus == "" {
		agent.AvailabilityStatus = domain.AgentStatusOffline
	}
	s.agentsByID[agent.ID] = agent
	clone := agent
	return &clone, nil
}

func (s *Store) UpdateAgent(_ context.Context, agent domain.Agent) (*domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agentsByID[agent.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.agentsByID[agent.ID] = agent
	clone := agent
	return &clone, nil
}

func (s *Store) GetDeliveryByID(_ context.Context, deliveryID string) (*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	delivery, exists := s.deliveriesByID[deliveryID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := cloneDelivery(delivery)
	return &clone, nil
}

func (s *Store) GetDeliveryByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deliveryID, exists := s.deliveryByOrder[orderID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := cloneDelivery(s.deliveriesByID[deliveryID])
	return &clone, nil
}

func (s *Store) ListDeliveriesByAgent(_ context.Context, agentID string, activeOnly bool) ([]domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deliveries := make([]domain.Delivery, 0)
	for _, d := range s.deliveriesByID {
		if d.AgentID != agentID {
			continue
		}
		if activeOnly && d.Status == domain.DeliveryStatusDelivered {
			continue
		}
		deliveries = append(deliveries, cloneDelivery(d))
	}
	slices.SortFunc(deliveries, func(a, b domain.Delivery) int {
		if !a.AssignedAt.Equal(b.AssignedAt) {
			return a.AssignedAt.Compare(b.AssignedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return deliveries, nil
}

func (s *Store) CountActiveDeliveries(_ context.Context, agentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, d := range s.deliveriesByID {
		if d.AgentID == agentID && d.Status != domain.DeliveryStatusDelivered {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateDelivery(_ context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delivery.ID == "" {
		delivery.ID = xid.New("dlv")
	}
	if _, exists := s.deliveriesByID[delivery.ID]; exists {
		return nil, store.ErrDuplicate
	}
	if _, exists := s.deliveryByOrder[delivery.OrderID]; exists {
		return nil, store.ErrDuplicate
	}
	if delivery.AssignedAt.IsZero() {
		delivery.AssignedAt = time.Now().UTC()
	}
	s.deliveriesByID[delivery.ID] = cloneDelivery(delivery)
	s.deliveryByOrder[delivery.OrderID] = delivery.ID
	clone := cloneDelivery(delivery)
	return &clone, nil
}

func (s *Store) UpdateDelivery(_ context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deliveriesByID[delivery.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.deliveriesByID[delivery.ID] = cloneDelivery(delivery)
	clone := cloneDelivery(delivery)
	return &clone, nil
}

func (s *Store) CreatePayment(_ context.Context, payment domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if _, exists := s.paymentsByID[payment.ID]; exists {
		return nil, store.ErrDuplicate
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	s.paymentsByID[payment.ID] = payment
	clone := payment
	return &clone, nil
}

func (s *Store) GetPaymentByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.paymentsByID {
		if p.OrderID == orderID {
			clone := p
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListPayments(_ context.Context, from time.Time, to time.Time) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]domain.Payment, 0)
	for _, p := range s.paymentsByID {
		if p.CreatedAt.Before(from) || p.CreatedAt.After(to) {
			continue
		}
		payments = append(payments, p)
	}
	slices.SortFunc(payments, func(a, b domain.Payment) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return payments, nil
}

func (s *Store) GetCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customersByID[customerID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := customer
	return &clone, nil
}

func (s *Store) UpdateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[customer.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.customersByID[customer.ID] = customer
	clone := customer
	return &clone, nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.productsByID))
	for _, p := range s.productsByID {
		if !p.Active {
			continue
		}
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return cmpString(a.Name, b.Name)
		}
		return cmpString(a.Category, b.Category)
	})
	return products, nil
}

func (s *Store) GetProductByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.productsByID[productID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := product
	return &clone, nil
}

func (s *Store) AdjustStock(_ context.Context, productID string, delta int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.productsByID[productID]
	if !exists {
		return nil, store.ErrNotFound
	}
	if product.Stock+delta < 0 {
		return nil, store.ErrInsufficientStock
	}
	product.Stock += delta
	s.productsByID[productID] = product
	clone := product
	return &clone, nil
}

func (s *Store) CreateFeedback(_ context.Context, feedback domain.Feedback) (*domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if feedback.ID == "" {
		feedback.ID = xid.New("fbk")
	}
	if _, exists := s.feedbackByOrder[feedback.OrderID]; exists {
		return nil, store.ErrDuplicate
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	s.feedbackByID[feedback.ID] = feedback
	s.feedbackByOrder[feedback.OrderID] = feedback.ID
	clone := feedback
	return &clone, nil
}

func (s *Store) GetFeedbackByOrderID(_ context.Context, orderID string) (*domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedbackID, exists := s.feedbackByOrder[orderID]
	if !exists {
		return nil, store.ErrNotFound
	}
	clone := s.feedbackByID[feedbackID]
	return &clone, nil
}

func (s *Store) ListFeedbackByAgent(_ context.Context, agentID string) ([]domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedback := make([]domain.Feedback, 0)
	for _, f := range s.feedbackByID {
		if f.AgentID != agentID {
			continue
		}
		feedback = append(feedback, f)
	}
	slices.SortFunc(feedback, func(a, b domain.Feedback) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return cmpString(a.ID, b.ID)
	})
	return feedback, nil
}

func (s *Store) RevenueSummary(_ context.Context, from time.Time, to time.Time) (domain.RevenueSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := domain.RevenueSummary{}
	for _, o := range s.ordersByID {
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		summary.OrderCount++
		summary.RevenueCents += o.TotalCents
		summary.DeliveryFees += o.DeliveryFeeCents
		if o.PaymentStatus == domain.PaymentStatusCompleted {
			summary.CollectedCents += o.TotalCents
		} else {
			summary.PendingPayments++
		}
	}
	return summary, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return store.ErrDuplicate
	}
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, u := range s.usersByUsername {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return cmpString(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}
