package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/order/app"
	"github.com/shoplane/storefront/internal/order/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// CreateOrderTx writes the order, its items and the stock decrements
// atomically. A line whose decrement would drive stock negative fails the
// whole transaction with ErrInsufficientStock.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order

	err := r.execTX(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, status, subtotal, shipping, total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
			order.UserID, order.Status, order.Subtotal, order.Shipping, order.Total,
		)

		var orderID uuid.UUID
		created = order
		if err := row.Scan(&orderID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		created.ID = orderID.String()

		items := make([]domain.OrderItem, 0, len(order.Items))
		for i, item := range order.Items {
			expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if !item.LineTotal.Equal(expected) {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			pUUID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("item %d: invalid product UUID: %w", i, err)
			}

			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND stock >= $2`,
				pUUID, item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("item %d: decrement stock: %w", i, err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				return fmt.Errorf("item %d (%s): %w", i, item.ProductID, app.ErrInsufficientStock)
			}

			itemRow := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, line_total)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				orderID, pUUID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal,
			)

			var itemID uuid.UUID
			if err := itemRow.Scan(&itemID); err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}

			item.ID = itemID.String()
			item.OrderID = created.ID
			items = append(items, item)
		}

		created.Items = items
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

func (r *OrderRepo) Get(ctx context.Context, id, userID string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, subtotal, shipping, total, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2`,
		orderID, userID,
	)

	var (
		o   domain.Order
		oid uuid.UUID
	)
	err = row.Scan(&oid, &o.UserID, &o.Status, &o.Subtotal, &o.Shipping, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = oid.String()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, unit_price, quantity, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`,
		orderID,
	)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item        domain.OrderItem
			itemID, pid uuid.UUID
		)
		if err := rows.Scan(&itemID, &pid, &item.Name, &item.UnitPrice, &item.Quantity, &item.LineTotal); err != nil {
			return domain.Order{}, err
		}
		item.ID = itemID.String()
		item.OrderID = o.ID
		item.ProductID = pid.String()
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, err
	}

	return o, nil
}
