package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"souvenir-shop-backend/internal/domains/order/model"
)

const orderColumns = `id, order_number, user_id, status, subtotal, discount, total, promotion_id, created_at, updated_at`

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

func (r *postgresOrderRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreateOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, status, subtotal, discount, total, promotion_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Status,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.PromotionID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreateShippingTx(ctx context.Context, tx pgx.Tx, shipping *model.Shipping) error {
	query := `
		INSERT INTO shippings (id, order_id, city, warehouse_number, recipient_name, recipient_phone, tracking_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	_, err := tx.Exec(ctx, query,
		shipping.ID,
		shipping.OrderID,
		shipping.City,
		shipping.WarehouseNumber,
		shipping.RecipientName,
		shipping.RecipientPhone,
		shipping.TrackingNumber,
	)
	if err != nil {
		return fmt.Errorf("create shipping: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreatePaymentTx(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, amount, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := tx.Exec(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreateOrderItemsTx(ctx context.Context, tx pgx.Tx, items []*model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, original_price, discount_amount, final_price, promotion_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, item := range items {
		_, err := tx.Exec(ctx, query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.OriginalPrice,
			item.DiscountAmount,
			item.FinalPrice,
			item.PromotionID,
		)
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

func (r *postgresOrderRepository) UpdateOrderTotalsTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, subtotal, discount, total decimal.Decimal, promotionID *uuid.UUID) error {
	query := `
		UPDATE orders
		SET subtotal = $2, discount = $3, total = $4, promotion_id = $5, updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.Exec(ctx, query, orderID, subtotal, discount, total, promotionID); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) UpdatePaymentAmountTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, amount decimal.Decimal) error {
	if _, err := tx.Exec(ctx, `UPDATE payments SET amount = $2 WHERE id = $1`, paymentID, amount); err != nil {
		return fmt.Errorf("update payment amount: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) DecrementStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) (bool, error) {
	query := `UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	rows, err := r.pool.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, total, nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)
	return scanOrder(r.pool.QueryRow(ctx, query, orderID, userID))
}

func (r *postgresOrderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, original_price, discount_amount, final_price, promotion_id
		FROM order_items
		WHERE order_id = $1`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []*model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.OriginalPrice,
			&item.DiscountAmount,
			&item.FinalPrice,
			&item.PromotionID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func (r *postgresOrderRepository) GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error) {
	query := `
		SELECT id, order_id, city, warehouse_number, recipient_name, recipient_phone, tracking_number, created_at
		FROM shippings
		WHERE order_id = $1`

	var s model.Shipping
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&s.ID,
		&s.OrderID,
		&s.City,
		&s.WarehouseNumber,
		&s.RecipientName,
		&s.RecipientPhone,
		&s.TrackingNumber,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipping: %w", err)
	}
	return &s, nil
}

func (r *postgresOrderRepository) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	query := `
		SELECT id, order_id, method, amount, status, transaction_id, created_at
		FROM payments
		WHERE order_id = $1`

	var p model.Payment
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&p.ID,
		&p.OrderID,
		&p.Method,
		&p.Amount,
		&p.Status,
		&p.TransactionID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.Status,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&o.PromotionID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}
