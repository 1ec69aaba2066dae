package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lankagrocer/backend/internal/cache"
	"lankagrocer/backend/internal/distance"
	"lankagrocer/backend/internal/domain"
	"lankagrocer/backend/internal/recommendation"
	"lankagrocer/backend/internal/store"
	"lankagrocer/backend/internal/store/memory"
)

type captureSender struct {
	mu   sync.Mutex
	sent []string
}

func (c *captureSender) Notify(_ context.Context, contact string, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, contact+": "+message)
	return nil
}

func (c *captureSender) waitFor(t *testing.T, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for _, s := range c.sent {
			if strings.Contains(s, substr) {
				c.mu.Unlock()
				return
			}
		}
		c.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no notification containing %q was sent", substr)
}

func newTestService() (*Service, *memory.Store, *captureSender) {
	repo := memory.NewSeeded()
	recommender := recommendation.NewEngine(distance.Default(), cache.NoopRankingCache{}, 5*time.Second)
	sender := &captureSender{}
	return New(repo, recommender, sender), repo, sender
}

func TestAssignDispatchesAgentAndBumpsWorkload(t *testing.T) {
	svc, repo, sender := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if result.Order.Status != domain.OrderStatusOutForDelivery {
		t.Fatalf("expected order status Out for Delivery, got %s", result.Order.Status)
	}
	if result.Order.AssignedAgentID != "agt-3001" {
		t.Fatalf("expected assigned agent agt-3001, got %s", result.Order.AssignedAgentID)
	}
	if result.Order.AssignedAt == nil {
		t.Fatalf("expected assigned_at to be set")
	}
	if result.Delivery.Status != domain.DeliveryStatusAssigned {
		t.Fatalf("expected delivery status Assigned, got %s", result.Delivery.Status)
	}
	if result.Agent.CurrentWorkload != 1 {
		t.Fatalf("expected workload 1 after assignment, got %d", result.Agent.CurrentWorkload)
	}

	agent, err := repo.GetAgentByID(ctx, "agt-3001")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if agent.CurrentWorkload != 1 {
		t.Fatalf("stored workload not updated: got %d", agent.CurrentWorkload)
	}

	sender.waitFor(t, "has been assigned to Kasun Silva")
	sender.waitFor(t, "New delivery assigned: Order ord-5001")
}

func TestAssignUnknownOrderOrAgentLeavesStateUntouched(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Assign(ctx, "ord-nope", "agt-3001"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}
	if _, err := svc.Assign(ctx, "ord-5001", "agt-nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown agent, got %v", err)
	}

	order, err := repo.GetOrderByID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != domain.OrderStatusReceived || order.AssignedAgentID != "" {
		t.Fatalf("order mutated by failed assign: %+v", order)
	}
}

func TestReassignOverwritesDeliveryWithoutWorkloadChange(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	second, err := svc.Assign(ctx, "ord-5001", "agt-3002")
	if err != nil {
		t.Fatalf("re-assign failed: %v", err)
	}

	if second.Delivery.ID != first.Delivery.ID {
		t.Fatalf("expected the same delivery record to be reused, got %s and %s", first.Delivery.ID, second.Delivery.ID)
	}
	if second.Delivery.AgentID != "agt-3002" {
		t.Fatalf("delivery not handed over: agent %s", second.Delivery.AgentID)
	}

	// Hand-over bookkeeping: neither the old nor the new agent's workload
	// moves. RecountWorkload is the repair path.
	oldAgent, _ := repo.GetAgentByID(ctx, "agt-3001")
	if oldAgent.CurrentWorkload != 1 {
		t.Fatalf("old agent workload changed on re-assign: %d", oldAgent.CurrentWorkload)
	}
	newAgent, _ := repo.GetAgentByID(ctx, "agt-3002")
	if newAgent.CurrentWorkload != 2 {
		t.Fatalf("new agent workload changed on re-assign: %d", newAgent.CurrentWorkload)
	}
}

func TestAssignRejectedOncePickedUp(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}

	if _, err := svc.Assign(ctx, "ord-5001", "agt-3002"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for re-assign after pickup, got %v", err)
	}
}

func TestAssignRejectsNonReceivedOrder(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	order, err := repo.GetOrderByID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	order.Status = domain.OrderStatusDelivered
	if _, err := repo.UpdateOrder(ctx, *order); err != nil {
		t.Fatalf("update order: %v", err)
	}

	if _, err := svc.Assign(ctx, "ord-5001", "agt-3001"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for delivered order, got %v", err)
	}
}

func TestConcurrentAssignOnlyOneWorkloadIncrement(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.Assign(ctx, "ord-5001", "agt-3001")
	}()
	go func() {
		defer wg.Done()
		_, _ = svc.Assign(ctx, "ord-5001", "agt-3001")
	}()
	wg.Wait()

	// One call creates the delivery, the other re-dispatches it; the
	// workload counter must only move once either way.
	agent, err := repo.GetAgentByID(ctx, "agt-3001")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if agent.CurrentWorkload != 1 {
		t.Fatalf("expected workload 1 after concurrent assigns, got %d", agent.CurrentWorkload)
	}
	if _, err := repo.GetDeliveryByOrderID(ctx, "ord-5001"); err != nil {
		t.Fatalf("expected a delivery for the order: %v", err)
	}
}

func TestAutoAssignAllCountsFailures(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// With every agent offline both seeded Received orders fail.
	agents, err := repo.ListAgents(ctx)
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	for _, a := range agents {
		a.AvailabilityStatus = domain.AgentStatusOffline
		if _, err := repo.UpdateAgent(ctx, a); err != nil {
			t.Fatalf("update agent: %v", err)
		}
	}

	result, err := svc.AutoAssignAll(ctx)
	if err != nil {
		t.Fatalf("auto-assign failed: %v", err)
	}
	if result.AssignedCount != 0 || result.FailedCount != 2 {
		t.Fatalf("expected 0 assigned / 2 failed, got %d / %d", result.AssignedCount, result.FailedCount)
	}
}

func TestAutoAssignAllDispatchesReceivedOrders(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.AutoAssignAll(ctx)
	if err != nil {
		t.Fatalf("auto-assign failed: %v", err)
	}
	if result.AssignedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("expected 2 assigned / 0 failed, got %d / %d", result.AssignedCount, result.FailedCount)
	}

	// ord-5001 is in Colombo 3: Kasun (4.8 rating, idle) outranks Tharindu
	// (4.0 rating, two open deliveries) at the same distance.
	order, err := repo.GetOrderByID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.AssignedAgentID != "agt-3001" {
		t.Fatalf("expected ord-5001 to go to agt-3001, got %s", order.AssignedAgentID)
	}
	// ord-5002 is in Nugegoda where Dilani is local.
	order, err = repo.GetOrderByID(ctx, "ord-5002")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.AssignedAgentID != "agt-3003" {
		t.Fatalf("expected ord-5002 to go to agt-3003, got %s", order.AssignedAgentID)
	}
}

func TestStartDeliveryTransitionsAndMirrorsOrder(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	delivery, err := svc.StartDelivery(ctx, result.Delivery.ID)
	if err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}
	if delivery.Status != domain.DeliveryStatusInTransit {
		t.Fatalf("expected In Transit, got %s", delivery.Status)
	}
	if delivery.PickedUpAt == nil {
		t.Fatalf("expected picked_up_at to be set")
	}

	order, err := repo.GetOrderByID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != domain.OrderStatusOutForDelivery {
		t.Fatalf("expected order to stay Out for Delivery, got %s", order.Status)
	}

	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for second start, got %v", err)
	}
}

func TestConfirmDeliveredCapturesCashAndSettlesAgent(t *testing.T) {
	svc, repo, sender := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}

	delivery, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, " N. Perera ")
	if err != nil {
		t.Fatalf("confirm delivered failed: %v", err)
	}
	if delivery.Status != domain.DeliveryStatusDelivered {
		t.Fatalf("expected Delivered, got %s", delivery.Status)
	}
	if delivery.Signature != "N. Perera" {
		t.Fatalf("expected trimmed signature, got %q", delivery.Signature)
	}
	if delivery.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be set")
	}

	order, err := repo.GetOrderByID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != domain.OrderStatusDelivered {
		t.Fatalf("expected order Delivered, got %s", order.Status)
	}
	if order.PaymentStatus != domain.PaymentStatusCompleted {
		t.Fatalf("expected cash payment captured, got %s", order.PaymentStatus)
	}

	payment, err := repo.GetPaymentByOrderID(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("expected payment record: %v", err)
	}
	if payment.AmountCents != order.TotalCents || payment.Method != domain.PaymentMethodCash {
		t.Fatalf("payment mismatch: %+v", payment)
	}
	if payment.Status != domain.PaymentStatusCompleted {
		t.Fatalf("expected Completed payment, got %s", payment.Status)
	}

	agent, err := repo.GetAgentByID(ctx, "agt-3001")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if agent.CurrentWorkload != 0 {
		t.Fatalf("expected workload back to 0, got %d", agent.CurrentWorkload)
	}
	if agent.TotalDeliveries != 213 {
		t.Fatalf("expected total deliveries 213, got %d", agent.TotalDeliveries)
	}

	sender.waitFor(t, "Order ord-5001 delivered!")
}

func TestConfirmDeliveredOnlinePaymentCreatesNoCashRecord(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5002", "agt-3003")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}
	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "R. Jayasinghe"); err != nil {
		t.Fatalf("confirm delivered failed: %v", err)
	}

	if _, err := repo.GetPaymentByOrderID(ctx, "ord-5002"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no cash payment for prepaid order, got %v", err)
	}
}

func TestConfirmDeliveredRequiresSignature(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}

	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank signature, got %v", err)
	}

	delivery, err := repo.GetDeliveryByID(ctx, result.Delivery.ID)
	if err != nil {
		t.Fatalf("get delivery: %v", err)
	}
	if delivery.Status != domain.DeliveryStatusInTransit {
		t.Fatalf("delivery mutated by rejected confirm: %s", delivery.Status)
	}
}

func TestConfirmDeliveredRejectsRepeat(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}
	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); err != nil {
		t.Fatalf("confirm delivered failed: %v", err)
	}

	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for second confirm, got %v", err)
	}
}

func TestConfirmDeliveredSkippingTransitIsRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for Assigned -> Delivered, got %v", err)
	}
}

func TestRecommendRanksByProximityWorkloadAndRating(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ranked, err := svc.Recommend(ctx, "ord-5001", 0)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected default top 3, got %d", len(ranked))
	}
	if ranked[0].ID != "agt-3001" {
		t.Fatalf("expected agt-3001 first, got %s", ranked[0].ID)
	}
	// Kasun: same area, idle, 4.8 rating.
	if ranked[0].Score != -9.6 {
		t.Fatalf("expected score -9.6 for agt-3001, got %v", ranked[0].Score)
	}
	for _, r := range ranked {
		if r.ID == "agt-3004" {
			t.Fatalf("offline agent agt-3004 must not be ranked")
		}
	}
}

func TestRecommendEmptyPoolYieldsEmptyList(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	agents, err := repo.ListAgents(ctx)
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	for _, a := range agents {
		a.AvailabilityStatus = domain.AgentStatusOffline
		if _, err := repo.UpdateAgent(ctx, a); err != nil {
			t.Fatalf("update agent: %v", err)
		}
	}

	ranked, err := svc.Recommend(ctx, "ord-5001", 3)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %v", ranked)
	}
}

func TestCreateOrderPricesFeeAndTax(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, domain.OrderCreateRequest{
		CustomerID:    "cus-1001",
		PaymentMethod: domain.PaymentMethodCash,
		Items: []domain.OrderItemRequest{
			{ProductID: "prd-2002", Qty: 2},
			{ProductID: "prd-2005", Qty: 4},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 2 x 64000 + 4 x 15000 = 188000, Colombo 3 is in zone.
	if order.SubtotalCents != 188000 {
		t.Fatalf("expected subtotal 188000, got %d", order.SubtotalCents)
	}
	if order.DeliveryFeeCents != 20000 {
		t.Fatalf("expected in-zone fee 20000, got %d", order.DeliveryFeeCents)
	}
	// 5 percent of 208000.
	if order.TaxCents != 10400 {
		t.Fatalf("expected tax 10400, got %d", order.TaxCents)
	}
	if order.TotalCents != 218400 {
		t.Fatalf("expected total 218400, got %d", order.TotalCents)
	}
	if order.PaymentStatus != domain.PaymentStatusPending {
		t.Fatalf("cash order must start Pending, got %s", order.PaymentStatus)
	}
	if order.Status != domain.OrderStatusReceived {
		t.Fatalf("expected Received, got %s", order.Status)
	}

	dhal, err := repo.GetProductByID(ctx, "prd-2002")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if dhal.Stock != 58 {
		t.Fatalf("expected stock 58 after order, got %d", dhal.Stock)
	}
}

func TestCreateOrderOnlinePaymentIsPrepaid(t *testing.T) {
	svc, _, _ := newTestService()

	order, err := svc.CreateOrder(context.Background(), domain.OrderCreateRequest{
		CustomerID:    "cus-1003",
		PaymentMethod: domain.PaymentMethodOnline,
		Items: []domain.OrderItemRequest{
			{ProductID: "prd-2004", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.PaymentStatus != domain.PaymentStatusCompleted {
		t.Fatalf("online order must be prepaid, got %s", order.PaymentStatus)
	}
}

func TestCreateOrderInsufficientStockReservesNothing(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, domain.OrderCreateRequest{
		CustomerID:    "cus-1001",
		PaymentMethod: domain.PaymentMethodCash,
		Items: []domain.OrderItemRequest{
			{ProductID: "prd-2002", Qty: 1},
			{ProductID: "prd-2006", Qty: 500},
		},
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	dhal, err := repo.GetProductByID(ctx, "prd-2002")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if dhal.Stock != 60 {
		t.Fatalf("failed order must not reserve stock, got %d", dhal.Stock)
	}
}

func TestCreateOrderValidatesInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []domain.OrderCreateRequest{
		{PaymentMethod: domain.PaymentMethodCash, Items: []domain.OrderItemRequest{{ProductID: "prd-2002", Qty: 1}}},
		{CustomerID: "cus-1001", PaymentMethod: domain.PaymentMethodCash},
		{CustomerID: "cus-1001", PaymentMethod: "barter", Items: []domain.OrderItemRequest{{ProductID: "prd-2002", Qty: 1}}},
		{CustomerID: "cus-1001", PaymentMethod: domain.PaymentMethodCash, Items: []domain.OrderItemRequest{{ProductID: "prd-2002", Qty: 0}}},
	}
	for i, req := range cases {
		if _, err := svc.CreateOrder(ctx, req); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestUpdateAgentStatusAndArea(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	status := domain.AgentStatusBusy
	area := "Dehiwala"
	agent, err := svc.UpdateAgentStatus(ctx, "agt-3001", domain.AgentStatusUpdateRequest{
		AvailabilityStatus: &status,
		Area:               &area,
	})
	if err != nil {
		t.Fatalf("update agent status failed: %v", err)
	}
	if agent.AvailabilityStatus != domain.AgentStatusBusy {
		t.Fatalf("expected Busy, got %s", agent.AvailabilityStatus)
	}
	if agent.Area != "Dehiwala" || agent.PostalCode != "10350" {
		t.Fatalf("area/postal not updated: %s / %s", agent.Area, agent.PostalCode)
	}

	bad := "Jaffna"
	if _, err := svc.UpdateAgentStatus(ctx, "agt-3001", domain.AgentStatusUpdateRequest{Area: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for out-of-zone area, got %v", err)
	}
	unknown := "Sleeping"
	if _, err := svc.UpdateAgentStatus(ctx, "agt-3001", domain.AgentStatusUpdateRequest{AvailabilityStatus: &unknown}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestRecountWorkloadRepairsDrift(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// agt-3002 is seeded with workload 2 but has no delivery records.
	count, err := svc.RecountWorkload(ctx, "agt-3002")
	if err != nil {
		t.Fatalf("recount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected recount 0, got %d", count)
	}

	agent, err := repo.GetAgentByID(ctx, "agt-3002")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if agent.CurrentWorkload != 0 {
		t.Fatalf("expected repaired workload 0, got %d", agent.CurrentWorkload)
	}
}

func TestSubmitFeedbackRecomputesAgentRating(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start delivery failed: %v", err)
	}
	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); err != nil {
		t.Fatalf("confirm delivered failed: %v", err)
	}

	fb, err := svc.SubmitFeedback(ctx, domain.FeedbackRequest{OrderID: "ord-5001", Rating: 3, Comment: "  late but polite  "})
	if err != nil {
		t.Fatalf("submit feedback failed: %v", err)
	}
	if fb.AgentID != "agt-3001" || fb.Comment != "late but polite" {
		t.Fatalf("feedback mismatch: %+v", fb)
	}

	agent, err := repo.GetAgentByID(ctx, "agt-3001")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	// One rating on record: the mean is exactly 3.0.
	if agent.Rating != 3.0 {
		t.Fatalf("expected rating 3.0, got %v", agent.Rating)
	}

	if _, err := svc.SubmitFeedback(ctx, domain.FeedbackRequest{OrderID: "ord-5001", Rating: 5}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second feedback, got %v", err)
	}
}

func TestSubmitFeedbackValidations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitFeedback(ctx, domain.FeedbackRequest{OrderID: "ord-5001", Rating: 6}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for rating 6, got %v", err)
	}
	if _, err := svc.SubmitFeedback(ctx, domain.FeedbackRequest{OrderID: "ord-5001", Rating: 4}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for undelivered order, got %v", err)
	}
}

func TestRevenueReportPeriods(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	report, err := svc.RevenueReport(ctx, "")
	if err != nil {
		t.Fatalf("revenue report failed: %v", err)
	}
	if report.Period != "today" {
		t.Fatalf("expected default period today, got %s", report.Period)
	}

	// Both seeded orders land inside the 7d window regardless of the
	// wall-clock hour the test runs at.
	report, err = svc.RevenueReport(ctx, "7d")
	if err != nil {
		t.Fatalf("revenue report failed: %v", err)
	}
	if report.OrderCount != 2 {
		t.Fatalf("expected 2 orders, got %d", report.OrderCount)
	}
	if report.RevenueCents != 425775+120750 {
		t.Fatalf("unexpected revenue %d", report.RevenueCents)
	}
	if report.CollectedCents != 120750 || report.PendingPayments != 1 {
		t.Fatalf("unexpected collection split: %+v", report)
	}

	if _, err := svc.RevenueReport(ctx, "1y"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown period, got %v", err)
	}
}

func TestOrderDetailAggregatesDeliveryPaymentFeedback(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	detail, err := svc.OrderDetail(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("order detail failed: %v", err)
	}
	if detail.Delivery != nil || detail.Payment != nil || detail.Feedback != nil {
		t.Fatalf("expected bare order before dispatch, got %+v", detail)
	}

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.SubmitFeedback(ctx, domain.FeedbackRequest{OrderID: "ord-5001", Rating: 4, Comment: "on time"}); err != nil {
		t.Fatalf("feedback failed: %v", err)
	}

	detail, err = svc.OrderDetail(ctx, "ord-5001")
	if err != nil {
		t.Fatalf("order detail failed: %v", err)
	}
	if detail.Delivery == nil || detail.Delivery.Status != domain.DeliveryStatusDelivered {
		t.Fatalf("expected delivered delivery in detail, got %+v", detail.Delivery)
	}
	if detail.Payment == nil || detail.Payment.AmountCents != 425775 {
		t.Fatalf("expected cash payment in detail, got %+v", detail.Payment)
	}
	if detail.Feedback == nil || detail.Feedback.Rating != 4 {
		t.Fatalf("expected feedback in detail, got %+v", detail.Feedback)
	}

	if _, err := svc.OrderDetail(ctx, "ord-nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAgentStartsOfflineWithZonePostalCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	agent, err := svc.CreateAgent(ctx, domain.AgentCreateRequest{
		Name:          "  Nuwan Perera  ",
		ContactNumber: "0771234567",
		Area:          "Dehiwala",
		VehicleType:   "Motorbike",
	})
	if err != nil {
		t.Fatalf("create agent failed: %v", err)
	}
	if !strings.HasPrefix(agent.ID, "agt-") {
		t.Fatalf("unexpected agent id %s", agent.ID)
	}
	if agent.Name != "Nuwan Perera" {
		t.Fatalf("expected trimmed name, got %q", agent.Name)
	}
	if agent.AvailabilityStatus != domain.AgentStatusOffline {
		t.Fatalf("expected new agent Offline, got %s", agent.AvailabilityStatus)
	}
	if agent.PostalCode != "10350" {
		t.Fatalf("expected Dehiwala postal code, got %s", agent.PostalCode)
	}
	if agent.CurrentWorkload != 0 || agent.TotalDeliveries != 0 || agent.Rating != 0 {
		t.Fatalf("expected empty track record, got %+v", agent)
	}

	cases := []domain.AgentCreateRequest{
		{Name: "", ContactNumber: "0771234567", Area: "Dehiwala"},
		{Name: "Nuwan", ContactNumber: "", Area: "Dehiwala"},
		{Name: "Nuwan", ContactNumber: "0771234567", Area: "Jaffna"},
	}
	for i, req := range cases {
		if _, err := svc.CreateAgent(ctx, req); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestPaymentsReportListsCashCollectedInWindow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	payments, err := svc.PaymentsReport(ctx, "today")
	if err != nil {
		t.Fatalf("payments report failed: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("expected no payments before any delivery closed, got %d", len(payments))
	}

	result, err := svc.Assign(ctx, "ord-5001", "agt-3001")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.StartDelivery(ctx, result.Delivery.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.ConfirmDelivered(ctx, result.Delivery.ID, "N. Perera"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	payments, err = svc.PaymentsReport(ctx, "today")
	if err != nil {
		t.Fatalf("payments report failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].OrderID != "ord-5001" || payments[0].AmountCents != 425775 {
		t.Fatalf("unexpected payment record: %+v", payments[0])
	}
	if payments[0].Method != domain.PaymentMethodCash {
		t.Fatalf("unexpected payment method %s", payments[0].Method)
	}

	if _, err := svc.PaymentsReport(ctx, "1y"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown period, got %v", err)
	}
}

func TestProductsListsActiveCatalogSorted(t *testing.T) {
	svc, _, _ := newTestService()

	products, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if len(products) != 6 {
		t.Fatalf("expected 6 products, got %d", len(products))
	}
	// Sorted by category then name: the beverage comes first.
	if products[0].ID != "prd-2004" {
		t.Fatalf("expected prd-2004 first, got %s", products[0].ID)
	}
}
