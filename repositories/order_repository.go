package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shophub/config"
	"shophub/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// ErrInsufficientStock aborts order placement when a product's stock dropped
// below the requested quantity between quoting and committing.
type ErrInsufficientStock struct {
	ProductID   int
	ProductName string
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

// Place persists an order with its items and decrements stock, all inside one
// transaction. The stock check and decrement are a single conditional UPDATE,
// so two competing checkouts for the last unit cannot both pass. Any failed
// line rolls the whole order back.
func (r *OrderRepository) Place(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	for _, item := range items {
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = $2
			 WHERE id = $3 AND stock_quantity >= $1`,
			item.Quantity, now, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return &ErrInsufficientStock{ProductID: item.ProductID, ProductName: item.ProductName}
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, subtotal, tax, shipping, total,
			status, payment_status, payment_method, shipping_address, billing_address,
			notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.UserID, order.Subtotal, order.Tax, order.Shipping, order.Total,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.ShippingAddress,
		order.BillingAddress, order.Notes, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		items[i].Total = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity,
			items[i].UnitPrice, items[i].Total,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	order.Items = items
	return nil
}

const orderColumns = `o.id, o.order_number, o.user_id, o.subtotal, o.tax, o.shipping, o.total,
	o.status, o.payment_status, o.payment_method, o.shipping_address, o.billing_address,
	o.notes, o.created_at, o.updated_at`

func (r *OrderRepository) scanOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Tax, &o.Shipping, &o.Total,
			&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.ShippingAddress, &o.BillingAddress,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListByUser pages a user's own orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	var total int
	err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE user_id = $1", userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.user_id = $1
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	orders, err := r.scanOrders(ctx, query, userID, limit, (page-1)*limit)
	return orders, total, err
}

// AdminList pages all orders, optionally filtered by status.
func (r *OrderRepository) AdminList(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	where := ""
	countArgs := []interface{}{}
	args := []interface{}{}

	if status != "" {
		where = " WHERE o.status = $1"
		countArgs = append(countArgs, status)
		args = append(args, status)
	}

	var total int
	err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders o"+where, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM orders o%s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	orders, err := r.scanOrders(ctx, query, args...)
	return orders, total, err
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(ctx context.Context, id int) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders o WHERE o.id = $1", orderColumns)

	var o models.Order
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Tax, &o.Shipping, &o.Total,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.ShippingAddress, &o.BillingAddress,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price, oi.total
		 FROM order_items oi JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = $1 ORDER BY oi.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Total)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

// UpdateStatus persists a status and/or payment status change. Transition
// validity is checked by the caller against the workflow table.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status models.OrderStatus, paymentStatus models.PaymentStatus) error {
	_, err := config.DB.Exec(ctx,
		"UPDATE orders SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4",
		status, paymentStatus, time.Now(), id)
	return err
}
