package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQLStore implements Store for PostgreSQL.
type PostgreSQLStore struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLStore creates a new PostgreSQL order store.
// It creates the tables if they don't exist.
func NewPostgreSQLStore(ctx context.Context, pool *pgxpool.Pool) (*PostgreSQLStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("connection pool is required")
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS production_batches (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'open',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create production_batches table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			items JSONB NOT NULL,
			status TEXT NOT NULL DEFAULT 'new',
			batch_id UUID REFERENCES production_batches(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_batch_id ON orders(batch_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)",
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			slog.Warn("failed to create index", "error", err)
		}
	}

	return &PostgreSQLStore{pool: pool}, nil
}

func (s *PostgreSQLStore) CreateOrder(ctx context.Context, o *Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusNew
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, items, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, o.ID, o.CustomerName, o.CustomerEmail, items, o.Status).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *PostgreSQLStore) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, customer_name, customer_email, items, status, batch_id, created_at, updated_at
		FROM orders WHERE id = $1
	`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return o, nil
}

func (s *PostgreSQLStore) ListOrders(ctx context.Context, f ListFilter) ([]Order, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	query := `
		SELECT id, customer_name, customer_email, items, status, batch_id, created_at, updated_at
		FROM orders
	`
	args := []interface{}{}
	if f.Status != "" {
		query += " WHERE status = $1"
		args = append(args, f.Status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (s *PostgreSQLStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return nil
}

func (s *PostgreSQLStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return nil
}

func (s *PostgreSQLStore) CreateBatch(ctx context.Context, b *Batch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BatchOpen
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO production_batches (id, name, status)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, b.ID, b.Name, b.Status).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (s *PostgreSQLStore) GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error) {
	var b Batch
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, status, created_at FROM production_batches WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: batch %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("select batch: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_name, customer_email, items, status, batch_id, created_at, updated_at
		FROM orders WHERE batch_id = $1 ORDER BY created_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select batch orders: %w", err)
	}
	defer rows.Close()

	b.Orders, err = collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgreSQLStore) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, status, created_at FROM production_batches ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (s *PostgreSQLStore) AssignOrders(ctx context.Context, batchID uuid.UUID, orderIDs []uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders SET batch_id = $1, status = $2, updated_at = now()
		WHERE id = ANY($3)
	`, batchID, StatusInProduction, orderIDs)
	if err != nil {
		return fmt.Errorf("assign orders: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no matching orders", ErrNotFound)
	}
	return nil
}

func (s *PostgreSQLStore) CloseBatch(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE production_batches SET status = $2 WHERE id = $1
	`, id, BatchClosed)
	if err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: batch %s", ErrNotFound, id)
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var items []byte
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &items, &o.Status, &o.BatchID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
