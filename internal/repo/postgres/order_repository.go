package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// total читается текстом: numeric -> decimal без промежуточного float.
const orderColumns = `id, total::text, items_count, created_at, updated_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Create — вставляет заказ и заполняет ID и временные метки, назначенные базой.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}

	var total string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (total, items_count)
		VALUES ($1::numeric, $2)
		RETURNING `+orderColumns,
		order.Total.String(), order.ItemsCount,
	).Scan(&order.ID, &total, &order.ItemsCount, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if order.Total, err = decimal.NewFromString(total); err != nil {
		return fmt.Errorf("parse total %q: %w", total, err)
	}
	return nil
}

// GetByID — заказ по ID; (nil, nil), если его нет.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order %d: %w", id, err)
	}
	return order, nil
}

// List — страница заказов, новые первыми.
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		return []*domain.Order{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	return r.query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
}

// LastN — n последних заказов (для прогрева кэша).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	return r.List(ctx, n, 0)
}

// Count — количество заказов.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// DeleteAll — удаляет все заказы, возвращает число удалённых строк.
func (r *OrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order domain.Order
		total string
	)
	if err := row.Scan(&order.ID, &total, &order.ItemsCount, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if order.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total %q: %w", total, err)
	}
	return &order, nil
}
