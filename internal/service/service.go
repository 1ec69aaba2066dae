package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"lankagrocer/backend/internal/distance"
	"lankagrocer/backend/internal/domain"
	"lankagrocer/backend/internal/notify"
	"lankagrocer/backend/internal/recommendation"
	"lankagrocer/backend/internal/store"
	"lankagrocer/backend/internal/xid"
)

// ErrValidation marks request precondition failures. Callers can rely on
// no state having been mutated when it is returned.
var ErrValidation = errors.New("validation failed")

const (
	// Delivery fees in LKR cents: flat rate inside the served zone, a
	// higher flat rate for out-of-zone addresses.
	inZoneDeliveryFeeCents    = 20000
	outOfZoneDeliveryFeeCents = 35000

	// taxRatePercent is fixed at order creation and applied to
	// subtotal + delivery fee.
	taxRatePercent = 5.0

	// Agent commission per completed delivery, LKR cents.
	commissionPerDeliveryCents = 7500

	notifyTimeout = 5 * time.Second
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo        store.Repository
	recommender *recommendation.Engine
	notifier    notify.Sender

	// orderLocks serializes mutations per order so two concurrent assigns
	// of the same order cannot both succeed.
	lockMu     sync.Mutex
	orderLocks map[string]*sync.Mutex
}

func New(repo store.Repository, recommender *recommendation.Engine, notifier notify.Sender) *Service {
	if notifier == nil {
		notifier = notify.LogSender{}
	}

	return &Service{
		repo:        repo,
		recommender: recommender,
		notifier:    notifier,
		orderLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockOrder(orderID string) func() {
	s.lockMu.Lock()
	mu, ok := s.orderLocks[orderID]
	if !ok {
		mu = &sync.Mutex{}
		s.orderLocks[orderID] = mu
	}
	s.lockMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// notifyAsync sends a message without blocking the caller and without ever
// propagating a failure: a lost message never rolls back domain state.
func (s *Service) notifyAsync(contact string, message string) {
	if contact == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, contact, message); err != nil {
			log.Printf("[service] WARN: notification to %s failed: %v", contact, err)
		}
	}()
}

func (s *Service) Areas() []domain.Area {
	return distance.Areas()
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListPendingOrders(ctx)
}

// OrderDetail assembles the full dispatcher view of one order. Delivery,
// payment, and feedback are nil until the corresponding record exists.
func (s *Service) OrderDetail(ctx context.Context, orderID string) (domain.OrderDetail, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	detail := domain.OrderDetail{Order: *order}

	delivery, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.OrderDetail{}, err
	}
	detail.Delivery = delivery

	payment, err := s.repo.GetPaymentByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.OrderDetail{}, err
	}
	detail.Payment = payment

	feedback, err := s.repo.GetFeedbackByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.OrderDetail{}, err
	}
	detail.Feedback = feedback

	return detail, nil
}

func (s *Service) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (domain.Order, error) {
	if req.CustomerID == "" {
		return domain.Order{}, fmt.Errorf("customer_id is required: %w", ErrValidation)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order has no items: %w", ErrValidation)
	}
	if req.PaymentMethod != domain.PaymentMethodCash && req.PaymentMethod != domain.PaymentMethodOnline {
		return domain.Order{}, fmt.Errorf("unsupported payment method %q: %w", req.PaymentMethod, ErrValidation)
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Qty < 1 {
			return domain.Order{}, fmt.Errorf("invalid order item: %w", ErrValidation)
		}
	}

	customer, err := s.repo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return domain.Order{}, err
	}

	area := req.Area
	if area == "" {
		area = customer.Area
	}
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		address = customer.Address
	}

	// Validate stock for the whole basket before decrementing anything, so
	// an insufficient line leaves no partial reservation behind.
	items := make([]domain.OrderItem, 0, len(req.Items))
	var subtotal int64
	for _, line := range req.Items {
		product, err := s.repo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if product.Stock < line.Qty {
			return domain.Order{}, fmt.Errorf("product %s: %w", product.Name, store.ErrInsufficientStock)
		}
		items = append(items, domain.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			Qty:            line.Qty,
			UnitPriceCents: product.PriceCents,
		})
		subtotal += product.PriceCents * int64(line.Qty)
	}

	for _, item := range items {
		if _, err := s.repo.AdjustStock(ctx, item.ProductID, -item.Qty); err != nil {
			return domain.Order{}, err
		}
	}

	fee := int64(outOfZoneDeliveryFeeCents)
	if distance.Served(area) {
		fee = inZoneDeliveryFeeCents
	}
	tax := int64(math.Round(float64(subtotal+fee) * taxRatePercent / 100))

	paymentStatus := domain.PaymentStatusPending
	if req.PaymentMethod == domain.PaymentMethodOnline {
		paymentStatus = domain.PaymentStatusCompleted
	}

	order := domain.Order{
		ID:               xid.New("ord"),
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		ContactNumber:    customer.ContactNumber,
		DeliveryAddress:  address,
		Area:             area,
		Items:            items,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: fee,
		TaxCents:         tax,
		TotalCents:       subtotal + fee + tax,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    paymentStatus,
		Status:           domain.OrderStatusReceived,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	customer.TotalOrders++
	if _, err := s.repo.UpdateCustomer(ctx, *customer); err != nil {
		log.Printf("[service] WARN: failed to bump order count for customer %s: %v", customer.ID, err)
	}

	s.notifyAsync(customer.ContactNumber,
		fmt.Sprintf("Order %s confirmed! We'll notify you when it's assigned for delivery. Total: LKR %.2f", created.ID, float64(created.TotalCents)/100))

	return *created, nil
}

// Recommend ranks the online agents for an order. topN <= 0 falls back to
// the engine default. An order with no online candidates gets an empty
// list, not an error.
func (s *Service) Recommend(ctx context.Context, orderID string, topN int) ([]domain.RankedAgent, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListAgentsByStatus(ctx, domain.AgentStatusOnline)
	if err != nil {
		return nil, err
	}

	return s.recommender.Rank(ctx, *order, candidates, topN), nil
}

// Assign dispatches an agent to an order: order moves to Out for Delivery,
// the order's single delivery record is created or overwritten, and both
// parties are notified. A fresh assignment increments the agent's
// workload; re-dispatching an existing delivery to another agent does not
// adjust workload on either side, matching the legacy bookkeeping that
// RecountWorkload exists to reconcile.
func (s *Service) Assign(ctx context.Context, orderID string, agentID string) (domain.AssignResult, error) {
	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.AssignResult{}, err
	}
	agent, err := s.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return domain.AssignResult{}, err
	}

	existing, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.AssignResult{}, err
	}

	switch {
	case existing == nil:
		if order.Status != domain.OrderStatusReceived {
			return domain.AssignResult{}, fmt.Errorf("order %s is in status %q, not assignable: %w", orderID, order.Status, ErrValidation)
		}
	case existing.Status != domain.DeliveryStatusAssigned:
		// Re-dispatch is only possible before pickup.
		return domain.AssignResult{}, fmt.Errorf("delivery for order %s already %s: %w", orderID, existing.Status, ErrValidation)
	}

	now := time.Now().UTC()
	order.AssignedAgentID = agent.ID
	order.AssignedAt = &now
	order.Status = domain.OrderStatusOutForDelivery

	updatedOrder, err := s.repo.UpdateOrder(ctx, *order)
	if err != nil {
		return domain.AssignResult{}, err
	}

	var delivery *domain.Delivery
	if existing == nil {
		delivery, err = s.repo.CreateDelivery(ctx, domain.Delivery{
			OrderID:    orderID,
			AgentID:    agent.ID,
			Status:     domain.DeliveryStatusAssigned,
			AssignedAt: now,
		})
		if err != nil {
			return domain.AssignResult{}, err
		}

		agent.CurrentWorkload++
		if agent, err = s.repo.UpdateAgent(ctx, *agent); err != nil {
			return domain.AssignResult{}, err
		}
	} else {
		existing.AgentID = agent.ID
		existing.Status = domain.DeliveryStatusAssigned
		existing.AssignedAt = now
		delivery, err = s.repo.UpdateDelivery(ctx, *existing)
		if err != nil {
			return domain.AssignResult{}, err
		}
	}

	if customer, err := s.repo.GetCustomerByID(ctx, order.CustomerID); err == nil {
		s.notifyAsync(customer.ContactNumber,
			fmt.Sprintf("Your order %s has been assigned to %s (%s). Estimated delivery: 30-60 mins.", orderID, agent.Name, agent.ContactNumber))
	}
	s.notifyAsync(agent.ContactNumber,
		fmt.Sprintf("New delivery assigned: Order %s. Customer: %s. Address: %s", orderID, order.CustomerName, order.DeliveryAddress))

	return domain.AssignResult{Order: *updatedOrder, Agent: *agent, Delivery: *delivery}, nil
}

// AutoAssignAll dispatches the best-ranked agent to every order still in
// Received. The batch is not transactional: an order with no candidates or
// a failed assignment counts as failed and the loop moves on.
func (s *Service) AutoAssignAll(ctx context.Context) (domain.AutoAssignResult, error) {
	orders, err := s.repo.ListOrdersByStatus(ctx, domain.OrderStatusReceived)
	if err != nil {
		return domain.AutoAssignResult{}, err
	}

	result := domain.AutoAssignResult{}
	for _, order := range orders {
		candidates, err := s.repo.ListAgentsByStatus(ctx, domain.AgentStatusOnline)
		if err != nil {
			log.Printf("[service] WARN: auto-assign could not list agents for order %s: %v", order.ID, err)
			result.FailedCount++
			continue
		}

		ranked := s.recommender.Rank(ctx, order, candidates, 1)
		if len(ranked) == 0 {
			result.FailedCount++
			continue
		}

		if _, err := s.Assign(ctx, order.ID, ranked[0].ID); err != nil {
			log.Printf("[service] WARN: auto-assign failed for order %s: %v", order.ID, err)
			result.FailedCount++
			continue
		}
		result.AssignedCount++
	}
	return result, nil
}

func (s *Service) GetDelivery(ctx context.Context, deliveryID string) (domain.Delivery, error) {
	delivery, err := s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}
	return *delivery, nil
}

// StartDelivery moves an Assigned delivery to In Transit and mirrors the
// order status.
func (s *Service) StartDelivery(ctx context.Context, deliveryID string) (domain.Delivery, error) {
	delivery, err := s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}

	unlock := s.lockOrder(delivery.OrderID)
	defer unlock()

	// Re-read under the lock: a concurrent transition may have advanced it.
	delivery, err = s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}
	if !domain.CanTransitionDelivery(delivery.Status, domain.DeliveryStatusInTransit) {
		return domain.Delivery{}, fmt.Errorf("delivery %s is %s: %w", deliveryID, delivery.Status, store.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	delivery.Status = domain.DeliveryStatusInTransit
	delivery.PickedUpAt = &now

	updated, err := s.repo.UpdateDelivery(ctx, *delivery)
	if err != nil {
		return domain.Delivery{}, err
	}

	order, err := s.repo.GetOrderByID(ctx, delivery.OrderID)
	if err != nil {
		return domain.Delivery{}, err
	}
	order.Status = domain.OrderStatusForDelivery(updated.Status)
	if _, err := s.repo.UpdateOrder(ctx, *order); err != nil {
		return domain.Delivery{}, err
	}

	if agent, err := s.repo.GetAgentByID(ctx, delivery.AgentID); err == nil {
		s.notifyAsync(order.ContactNumber,
			fmt.Sprintf("Your order %s is on its way! Agent: %s", order.ID, agent.Name))
	}

	return *updated, nil
}

// ConfirmDelivered completes a delivery: the recipient signature is
// recorded, the order is closed out, cash-on-delivery payment is captured,
// and the agent's workload and lifetime counters are settled.
func (s *Service) ConfirmDelivered(ctx context.Context, deliveryID string, signature string) (domain.Delivery, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return domain.Delivery{}, fmt.Errorf("recipient signature is required: %w", ErrValidation)
	}

	delivery, err := s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}

	unlock := s.lockOrder(delivery.OrderID)
	defer unlock()

	delivery, err = s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}
	if !domain.CanTransitionDelivery(delivery.Status, domain.DeliveryStatusDelivered) {
		return domain.Delivery{}, fmt.Errorf("delivery %s is %s: %w", deliveryID, delivery.Status, store.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	delivery.Status = domain.DeliveryStatusDelivered
	delivery.DeliveredAt = &now
	delivery.Signature = signature

	updated, err := s.repo.UpdateDelivery(ctx, *delivery)
	if err != nil {
		return domain.Delivery{}, err
	}

	order, err := s.repo.GetOrderByID(ctx, delivery.OrderID)
	if err != nil {
		return domain.Delivery{}, err
	}
	order.Status = domain.OrderStatusDelivered
	order.DeliveredAt = &now

	if order.PaymentMethod == domain.PaymentMethodCash && order.PaymentStatus != domain.PaymentStatusCompleted {
		if _, err := s.repo.CreatePayment(ctx, domain.Payment{
			OrderID:     order.ID,
			AmountCents: order.TotalCents,
			Method:      domain.PaymentMethodCash,
			Status:      domain.PaymentStatusCompleted,
			CreatedAt:   now,
		}); err != nil {
			return domain.Delivery{}, err
		}
		order.PaymentStatus = domain.PaymentStatusCompleted
	}

	if _, err := s.repo.UpdateOrder(ctx, *order); err != nil {
		return domain.Delivery{}, err
	}

	if agent, err := s.repo.GetAgentByID(ctx, delivery.AgentID); err == nil {
		if agent.CurrentWorkload > 0 {
			agent.CurrentWorkload--
		}
		agent.TotalDeliveries++
		if _, err := s.repo.UpdateAgent(ctx, *agent); err != nil {
			log.Printf("[service] WARN: failed to settle counters for agent %s: %v", agent.ID, err)
		}
	}

	s.notifyAsync(order.ContactNumber,
		fmt.Sprintf("Order %s delivered! Please rate your experience in the app.", order.ID))

	return *updated, nil
}

func (s *Service) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.repo.ListAgents(ctx)
}

// CreateAgent registers a delivery agent. New agents start Offline with an
// empty track record; they flip themselves Online through the status update.
func (s *Service) CreateAgent(ctx context.Context, req domain.AgentCreateRequest) (domain.Agent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Agent{}, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		return domain.Agent{}, fmt.Errorf("contact_number is required: %w", ErrValidation)
	}
	area := strings.TrimSpace(req.Area)
	if !distance.Served(area) {
		return domain.Agent{}, fmt.Errorf("area %q is outside the delivery zone: %w", area, ErrValidation)
	}

	agent := domain.Agent{
		Name:               name,
		Email:              strings.TrimSpace(req.Email),
		ContactNumber:      strings.TrimSpace(req.ContactNumber),
		Area:               area,
		VehicleType:        strings.TrimSpace(req.VehicleType),
		AvailabilityStatus: domain.AgentStatusOffline,
	}
	for _, a := range distance.Areas() {
		if a.Name == area {
			agent.PostalCode = a.PostalCode
			break
		}
	}

	created, err := s.repo.CreateAgent(ctx, agent)
	if err != nil {
		return domain.Agent{}, err
	}
	return *created, nil
}

func (s *Service) UpdateAgentStatus(ctx context.Context, agentID string, req domain.AgentStatusUpdateRequest) (domain.Agent, error) {
	agent, err := s.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return domain.Agent{}, err
	}

	if req.AvailabilityStatus != nil {
		status := *req.AvailabilityStatus
		if status != domain.AgentStatusOnline && status != domain.AgentStatusOffline && status != domain.AgentStatusBusy {
			return domain.Agent{}, fmt.Errorf("unknown availability status %q: %w", status, ErrValidation)
		}
		agent.AvailabilityStatus = status
	}
	if req.Area != nil {
		if !distance.Served(*req.Area) {
			return domain.Agent{}, fmt.Errorf("area %q is outside the delivery zone: %w", *req.Area, ErrValidation)
		}
		agent.Area = *req.Area
		for _, a := range distance.Areas() {
			if a.Name == agent.Area {
				agent.PostalCode = a.PostalCode
				break
			}
		}
	}

	updated, err := s.repo.UpdateAgent(ctx, *agent)
	if err != nil {
		return domain.Agent{}, err
	}
	return *updated, nil
}

func (s *Service) AgentDeliveries(ctx context.Context, agentID string, activeOnly bool) ([]domain.Delivery, error) {
	if _, err := s.repo.GetAgentByID(ctx, agentID); err != nil {
		return nil, err
	}
	return s.repo.ListDeliveriesByAgent(ctx, agentID, activeOnly)
}

func (s *Service) AgentPerformance(ctx context.Context, agentID string) (domain.AgentPerformance, error) {
	agent, err := s.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return domain.AgentPerformance{}, err
	}
	return performanceOf(*agent), nil
}

func (s *Service) AgentLeaderboard(ctx context.Context) ([]domain.AgentPerformance, error) {
	agents, err := s.repo.ListAgents(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]domain.AgentPerformance, 0, len(agents))
	for _, agent := range agents {
		board = append(board, performanceOf(agent))
	}
	slices.SortFunc(board, func(a, b domain.AgentPerformance) int {
		if a.Rating != b.Rating {
			if a.Rating > b.Rating {
				return -1
			}
			return 1
		}
		if a.TotalDeliveries != b.TotalDeliveries {
			return b.TotalDeliveries - a.TotalDeliveries
		}
		return strings.Compare(a.AgentID, b.AgentID)
	})
	return board, nil
}

func performanceOf(agent domain.Agent) domain.AgentPerformance {
	return domain.AgentPerformance{
		AgentID:            agent.ID,
		Name:               agent.Name,
		Area:               agent.Area,
		AvailabilityStatus: agent.AvailabilityStatus,
		Rating:             agent.Rating,
		CurrentWorkload:    agent.CurrentWorkload,
		TotalDeliveries:    agent.TotalDeliveries,
		EarningsCents:      int64(agent.TotalDeliveries) * commissionPerDeliveryCents,
	}
}

// RecountWorkload recomputes an agent's workload from their non-Delivered
// deliveries and repairs the stored counter if it drifted (re-dispatches
// do not adjust workload, so drift is expected over time).
func (s *Service) RecountWorkload(ctx context.Context, agentID string) (int, error) {
	agent, err := s.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.CountActiveDeliveries(ctx, agentID)
	if err != nil {
		return 0, err
	}
	if count != agent.CurrentWorkload {
		log.Printf("[service] WARN: workload drift for agent %s: stored=%d actual=%d", agentID, agent.CurrentWorkload, count)
		agent.CurrentWorkload = count
		if _, err := s.repo.UpdateAgent(ctx, *agent); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, req domain.FeedbackRequest) (domain.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Feedback{}, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	order, err := s.repo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return domain.Feedback{}, err
	}
	if order.Status != domain.OrderStatusDelivered {
		return domain.Feedback{}, fmt.Errorf("order %s is not delivered yet: %w", req.OrderID, ErrValidation)
	}
	if order.AssignedAgentID == "" {
		return domain.Feedback{}, fmt.Errorf("order %s has no agent to rate: %w", req.OrderID, ErrValidation)
	}

	created, err := s.repo.CreateFeedback(ctx, domain.Feedback{
		OrderID:    order.ID,
		AgentID:    order.AssignedAgentID,
		CustomerID: order.CustomerID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return domain.Feedback{}, err
	}

	// Recompute the agent rating as the mean of all their feedback,
	// rounded to one decimal.
	all, err := s.repo.ListFeedbackByAgent(ctx, order.AssignedAgentID)
	if err == nil && len(all) > 0 {
		sum := 0
		for _, f := range all {
			sum += f.Rating
		}
		mean := math.Round(float64(sum)/float64(len(all))*10) / 10

		if agent, err := s.repo.GetAgentByID(ctx, order.AssignedAgentID); err == nil {
			agent.Rating = mean
			if _, err := s.repo.UpdateAgent(ctx, *agent); err != nil {
				log.Printf("[service] WARN: failed to update rating for agent %s: %v", agent.ID, err)
			}
		}
	}

	return *created, nil
}

// reportWindow resolves a report period label into a UTC time window.
// The empty period defaults to today.
func reportWindow(period string) (string, time.Time, time.Time, error) {
	now := time.Now().UTC()
	switch period {
	case "", "today":
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return "today", from, now, nil
	case "7d":
		return "7d", now.AddDate(0, 0, -7), now, nil
	case "30d":
		return "30d", now.AddDate(0, 0, -30), now, nil
	default:
		return "", time.Time{}, time.Time{}, fmt.Errorf("unknown period %q: %w", period, ErrValidation)
	}
}

func (s *Service) RevenueReport(ctx context.Context, period string) (domain.RevenueSummary, error) {
	label, from, to, err := reportWindow(period)
	if err != nil {
		return domain.RevenueSummary{}, err
	}

	summary, err := s.repo.RevenueSummary(ctx, from, to)
	if err != nil {
		return domain.RevenueSummary{}, err
	}
	summary.Period = label
	return summary, nil
}

// PaymentsReport lists the payment records captured inside a report window,
// oldest first. Dispatchers use it to reconcile the cash agents hand in
// against the cash-on-delivery orders they closed.
func (s *Service) PaymentsReport(ctx context.Context, period string) ([]domain.Payment, error) {
	_, from, to, err := reportWindow(period)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, from, to)
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}
