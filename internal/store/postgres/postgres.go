package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"lankagrocer/backend/internal/domain"
	"lankagrocer/backend/internal/store"
	"lankagrocer/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const orderColumns = `
	id, customer_id, customer_name, contact_number, delivery_address, area,
	items, subtotal_cents, delivery_fee_cents, tax_cents, total_cents,
	payment_method, payment_status, status, assigned_agent_id, assigned_at,
	delivered_at, created_at
`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		o         domain.Order
		items     []byte
		agentID   sql.NullString
		assigned  sql.NullTime
		delivered sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.ContactNumber, &o.DeliveryAddress, &o.Area,
		&items, &o.SubtotalCents, &o.DeliveryFeeCents, &o.TaxCents, &o.TotalCents,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &agentID, &assigned,
		&delivered, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
	}
	if agentID.Valid {
		o.AssignedAgentID = agentID.String
	}
	if assigned.Valid {
		t := assigned.Time.UTC()
		o.AssignedAt = &t
	}
	if delivered.Valid {
		t := delivered.Time.UTC()
		o.DeliveredAt = &t
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id
	`)
}

func (s *Store) ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return s.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at, id
	`, status)
}

func (s *Store) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE assigned_agent_id IS NULL AND status IN ($1, $2)
		ORDER BY created_at, id
	`, domain.OrderStatusReceived, domain.OrderStatusProcessing)
}

func (s *Store) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Store) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.ID == "" {
		order.ID = xid.New("ord")
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`, order.ID, order.CustomerID, order.CustomerName, order.ContactNumber, order.DeliveryAddress, order.Area,
		items, order.SubtotalCents, order.DeliveryFeeCents, order.TaxCents, order.TotalCents,
		order.PaymentMethod, order.PaymentStatus, order.Status, nullString(order.AssignedAgentID), nullTime(order.AssignedAt),
		nullTime(order.DeliveredAt), order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	created := order
	return &created, nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_name = $2, contact_number = $3, delivery_address = $4, area = $5,
			items = $6, subtotal_cents = $7, delivery_fee_cents = $8, tax_cents = $9,
			total_cents = $10, payment_method = $11, payment_status = $12, status = $13,
			assigned_agent_id = $14, assigned_at = $15, delivered_at = $16
		WHERE id = $1
	`, order.ID, order.CustomerName, order.ContactNumber, order.DeliveryAddress, order.Area,
		items, order.SubtotalCents, order.DeliveryFeeCents, order.TaxCents,
		order.TotalCents, order.PaymentMethod, order.PaymentStatus, order.Status,
		nullString(order.AssignedAgentID), nullTime(order.AssignedAt), nullTime(order.DeliveredAt))
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	updated := order
	return &updated, nil
}

const agentColumns = `
	id, name, email, contact_number, area, postal_code, vehicle_type,
	availability_status, rating, current_workload, total_deliveries, created_at
`

func scanAgent(row interface{ Scan(...any) error }) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.ContactNumber, &a.Area, &a.PostalCode, &a.VehicleType,
		&a.AvailabilityStatus, &a.Rating, &a.CurrentWorkload, &a.TotalDeliveries, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (s *Store) queryAgents(ctx context.Context, query string, args ...any) ([]domain.Agent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0, 32)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *Store) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.queryAgents(ctx, `
		SELECT `+agentColumns+`
		FROM agents
		ORDER BY id
	`)
}

func (s *Store) ListAgentsByStatus(ctx context.Context, availabilityStatus string) ([]domain.Agent, error) {
	return s.queryAgents(ctx, `
		SELECT `+agentColumns+`
		FROM agents
		WHERE availability_status = $1
		ORDER BY id
	`, availabilityStatus)
}

func (s *Store) GetAgentByID(ctx context.Context, agentID string) (*domain.Agent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+agentColumns+`
		FROM agents
		WHERE id = $1
	`, agentID)
	agent, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return agent, nil
}

func (s *Store) CreateAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error) {
	if agent.ID == "" {
		agent.ID = xid.New("agt")
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now().UTC()
	}
	if agent.AvailabilityStatus == "" {
		agent.AvailabilityStatus = domain.AgentStatusOffline
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agents (`+agentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, agent.ID, agent.Name, agent.Email, agent.ContactNumber, agent.Area, agent.PostalCode, agent.VehicleType,
		agent.AvailabilityStatus, agent.Rating, agent.CurrentWorkload, agent.TotalDeliveries, agent.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	created := agent
	return &created, nil
}

func (s *Store) UpdateAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE agents
		SET name = $2, email = $3, contact_number = $4, area = $5, postal_code = $6,
			vehicle_type = $7, availability_status = $8, rating = $9,
			current_workload = $10, total_deliveries = $11
		WHERE id = $1
	`, agent.ID, agent.Name, agent.Email, agent.ContactNumber, agent.Area, agent.PostalCode,
		agent.VehicleType, agent.AvailabilityStatus, agent.Rating,
		agent.CurrentWorkload, agent.TotalDeliveries)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	updated := agent
	return &updated, nil
}

const deliveryColumns = `
	id, order_id, agent_id, status, assigned_at, picked_up_at, delivered_at, signature
`

func scanDelivery(row interface{ Scan(...any) error }) (*domain.Delivery, error) {
	var (
		d         domain.Delivery
		pickedUp  sql.NullTime
		delivered sql.NullTime
		signature sql.NullString
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.AgentID, &d.Status, &d.AssignedAt, &pickedUp, &delivered, &signature)
	if err != nil {
		return nil, err
	}
	d.AssignedAt = d.AssignedAt.UTC()
	if pickedUp.Valid {
		t := pickedUp.Time.UTC()
		d.PickedUpAt = &t
	}
	if delivered.Valid {
		t := delivered.Time.UTC()
		d.DeliveredAt = &t
	}
	if signature.Valid {
		d.Signature = signature.String
	}
	return &d, nil
}

func (s *Store) GetDeliveryByID(ctx context.Context, deliveryID string) (*domain.Delivery, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE id = $1
	`, deliveryID)
	delivery, err := scanDelivery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return delivery, nil
}

func (s *Store) GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE order_id = $1
	`, orderID)
	delivery, err := scanDelivery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return delivery, nil
}

func (s *Store) ListDeliveriesByAgent(ctx context.Context, agentID string, activeOnly bool) ([]domain.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE agent_id = $1
		ORDER BY assigned_at, id
	`
	args := []any{agentID}
	if activeOnly {
		query = `
			SELECT ` + deliveryColumns + `
			FROM deliveries
			WHERE agent_id = $1 AND status <> $2
			ORDER BY assigned_at, id
		`
		args = append(args, domain.DeliveryStatusDelivered)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0, 32)
	for rows.Next() {
		delivery, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (s *Store) CountActiveDeliveries(ctx context.Context, agentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM deliveries
		WHERE agent_id = $1 AND status <> $2
	`, agentID, domain.DeliveryStatusDelivered).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	if delivery.ID == "" {
		delivery.ID = xid.New("dlv")
	}
	if delivery.AssignedAt.IsZero() {
		delivery.AssignedAt = time.Now().UTC()
	}

	// order_id carries a unique constraint: one delivery per order.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deliveries (`+deliveryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, delivery.ID, delivery.OrderID, delivery.AgentID, delivery.Status, delivery.AssignedAt,
		nullTime(delivery.PickedUpAt), nullTime(delivery.DeliveredAt), nullString(delivery.Signature))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	created := delivery
	return &created, nil
}

func (s *Store) UpdateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE deliveries
		SET agent_id = $2, status = $3, assigned_at = $4, picked_up_at = $5,
			delivered_at = $6, signature = $7
		WHERE id = $1
	`, delivery.ID, delivery.AgentID, delivery.Status, delivery.AssignedAt,
		nullTime(delivery.PickedUpAt), nullTime(delivery.DeliveredAt), nullString(delivery.Signature))
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	updated := delivery
	return &updated, nil
}

func (s *Store) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount_cents, method, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, payment.ID, payment.OrderID, payment.AmountCents, payment.Method, payment.Status, payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	created := payment
	return &created, nil
}

func (s *Store) GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var p domain.Payment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, amount_cents, method, status, created_at
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.Method, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (s *Store) ListPayments(ctx context.Context, from time.Time, to time.Time) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, amount_cents, method, status, created_at
		FROM payments
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, 64)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, contact_number, address, area, postal_code, total_orders, created_at
		FROM customers
		WHERE id = $1
	`, customerID).Scan(&c.ID, &c.Name, &c.Email, &c.ContactNumber, &c.Address, &c.Area, &c.PostalCode, &c.TotalOrders, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $2, email = $3, contact_number = $4, address = $5, area = $6,
			postal_code = $7, total_orders = $8
		WHERE id = $1
	`, customer.ID, customer.Name, customer.Email, customer.ContactNumber, customer.Address, customer.Area,
		customer.PostalCode, customer.TotalOrders)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	updated := customer
	return &updated, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, unit, price_cents, stock, active
		FROM products
		WHERE active = true
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 128)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.PriceCents, &p.Stock, &p.Active); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, unit, price_cents, stock, active
		FROM products
		WHERE id = $1
	`, productID).Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.PriceCents, &p.Stock, &p.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) AdjustStock(ctx context.Context, productID string, delta int) (*domain.Product, error) {
	// The WHERE guard makes the decrement atomic: a concurrent order that
	// would take stock negative simply matches zero rows.
	row := s.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock = stock + $2
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING id, name, category, unit, price_cents, stock, active
	`, productID, delta)

	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.PriceCents, &p.Stock, &p.Active)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Distinguish missing product from insufficient stock.
	if _, err := s.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	return nil, store.ErrInsufficientStock
}

func (s *Store) CreateFeedback(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error) {
	if feedback.ID == "" {
		feedback.ID = xid.New("fbk")
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	// order_id is unique: one feedback per order.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, order_id, agent_id, customer_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, feedback.ID, feedback.OrderID, feedback.AgentID, feedback.CustomerID, feedback.Rating, feedback.Comment, feedback.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	created := feedback
	return &created, nil
}

func (s *Store) GetFeedbackByOrderID(ctx context.Context, orderID string) (*domain.Feedback, error) {
	var f domain.Feedback
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, agent_id, customer_id, rating, comment, created_at
		FROM feedback
		WHERE order_id = $1
	`, orderID).Scan(&f.ID, &f.OrderID, &f.AgentID, &f.CustomerID, &f.Rating, &f.Comment, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return &f, nil
}

func (s *Store) ListFeedbackByAgent(ctx context.Context, agentID string) ([]domain.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, agent_id, customer_id, rating, comment, created_at
		FROM feedback
		WHERE agent_id = $1
		ORDER BY created_at, id
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := make([]domain.Feedback, 0, 32)
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.OrderID, &f.AgentID, &f.CustomerID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.CreatedAt = f.CreatedAt.UTC()
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *Store) RevenueSummary(ctx context.Context, from time.Time, to time.Time) (domain.RevenueSummary, error) {
	var summary domain.RevenueSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_cents), 0),
			COALESCE(SUM(delivery_fee_cents), 0),
			COALESCE(SUM(total_cents) FILTER (WHERE payment_status = $3), 0),
			COUNT(*) FILTER (WHERE payment_status <> $3)
		FROM orders
		WHERE created_at BETWEEN $1 AND $2
	`, from, to, domain.PaymentStatusCompleted).Scan(
		&summary.OrderCount, &summary.RevenueCents, &summary.DeliveryFees,
		&summary.CollectedCents, &summary.PendingPayments)
	if err != nil {
		return domain.RevenueSummary{}, err
	}
	return summary, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role, active, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var u domain.UserAccount
		if err := rows.Scan(&u.Username, &u.Password, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password = $2
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
