package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const selectOrder = "SELECT id, order_time, total_price, pay_status, customer_id, table_id FROM order_infos"

const selectLine = `
	SELECT od.id, od.order_id, od.dish_id, od.set_meal_id, od.quantity, od.sub_total,
	       d.name, d.price, s.name, s.price, oi.order_time
	FROM order_details od
	JOIN order_infos oi ON oi.id = od.order_id
	LEFT JOIN dishes d ON d.id = od.dish_id
	LEFT JOIN set_meals s ON s.id = od.set_meal_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) ListOrders(ctx context.Context, page domain.PageRequest) ([]domain.OrderInfo, int64, error) {
	total, err := count(ctx, r.DB, "order_infos")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, selectOrder+" ORDER BY id LIMIT $1 OFFSET $2", page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.OrderInfo
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	lines, err := queryLines(ctx, r.DB, selectLine+" WHERE od.order_id = ANY($1) ORDER BY od.id", pq.Array(ids))
	if err != nil {
		return nil, 0, err
	}
	byOrder := make(map[int64][]domain.OrderDetails, len(orders))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	for i := range orders {
		orders[i].OrderDetails = byOrder[orders[i].ID]
		if orders[i].OrderDetails == nil {
			orders[i].OrderDetails = []domain.OrderDetails{}
		}
	}
	return orders, total, nil
}

// GetOrder loads the order header together with its lines.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*domain.OrderInfo, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, selectOrder+" WHERE id = $1", id))
	if err != nil {
		return nil, writeError(err)
	}
	o.OrderDetails, err = queryLines(ctx, r.DB, selectLine+" WHERE od.order_id = $1 ORDER BY od.id", id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) ListOrderLines(ctx context.Context, orderID int64) ([]domain.OrderDetails, error) {
	order, err := r.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order.OrderDetails, nil
}

// CreateOrder writes the header and every line in one transaction. All
// lines pass their pre-write hook before anything is sent to the database.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o *domain.OrderInfo) error {
	for i := range o.OrderDetails {
		if err := o.OrderDetails[i].BeforeWrite(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_infos (order_time, total_price, pay_status, customer_id, table_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			o.DateTime, o.TotalPrice, o.PayStatus, o.CustomerID, o.TableID).Scan(&o.ID); err != nil {
			return writeError(err)
		}
		for i := range o.OrderDetails {
			line := &o.OrderDetails[i]
			line.ID = 0
			line.OrderID = o.ID
			line.OrderedAt = o.DateTime
			if err := insertLine(ctx, tx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateOrder rewrites the order header. When OrderDetails is non-nil the
// owned lines are replaced: lines whose id is absent from the new list are
// deleted, lines with a known id are updated, lines without id are
// inserted. The lines held before the update are returned in every case,
// carrying the order time they were sold under.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, o *domain.OrderInfo) ([]domain.OrderDetails, error) {
	for i := range o.OrderDetails {
		if err := o.OrderDetails[i].BeforeWrite(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}

	var previous []domain.OrderDetails
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		previous, err = queryLines(ctx, tx, selectLine+" WHERE od.order_id = $1 ORDER BY od.id FOR UPDATE OF od", o.ID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE order_infos
			SET order_time = $1, total_price = $2, pay_status = $3, customer_id = $4, table_id = $5
			WHERE id = $6`,
			o.DateTime, o.TotalPrice, o.PayStatus, o.CustomerID, o.TableID, o.ID)
		if err != nil {
			return writeError(err)
		}
		if err := expectAffected(result); err != nil {
			return err
		}
		if o.OrderDetails == nil {
			return nil
		}

		owned := make(map[int64]bool, len(previous))
		for _, line := range previous {
			owned[line.ID] = true
		}
		kept := make(map[int64]bool, len(o.OrderDetails))
		for _, line := range o.OrderDetails {
			if line.ID == 0 {
				continue
			}
			if !owned[line.ID] {
				return fmt.Errorf("%w: line %d does not belong to order %d", domain.ErrValidation, line.ID, o.ID)
			}
			kept[line.ID] = true
		}

		for _, line := range previous {
			if kept[line.ID] {
				continue
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM order_details WHERE id = $1", line.ID); err != nil {
				return err
			}
		}
		for i := range o.OrderDetails {
			line := &o.OrderDetails[i]
			line.OrderID = o.ID
			line.OrderedAt = o.DateTime
			if line.ID == 0 {
				err = insertLine(ctx, tx, line)
			} else {
				err = updateLine(ctx, tx, line)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}

// DeleteOrder removes the order's lines and then the order, returning the
// removed lines.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int64) ([]domain.OrderDetails, error) {
	var removed []domain.OrderDetails
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		removed, err = queryLines(ctx, tx, selectLine+" WHERE od.order_id = $1 ORDER BY od.id FOR UPDATE OF od", id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM order_details WHERE order_id = $1", id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM order_infos WHERE id = $1", id)
		if err != nil {
			return deleteError(err)
		}
		return expectAffected(result)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PostgresRepository) ListOrderDetails(ctx context.Context, page domain.PageRequest) ([]domain.OrderDetails, int64, error) {
	total, err := count(ctx, r.DB, "order_details")
	if err != nil {
		return nil, 0, err
	}
	lines, err := queryLines(ctx, r.DB, selectLine+" ORDER BY od.id LIMIT $1 OFFSET $2", page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

func (r *PostgresRepository) GetOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	lines, err := queryLines(ctx, r.DB, selectLine+" WHERE od.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	return &lines[0], nil
}

// CreateOrderDetails adds one line to an existing order.
func (r *PostgresRepository) CreateOrderDetails(ctx context.Context, line *domain.OrderDetails) error {
	if err := line.BeforeWrite(); err != nil {
		return err
	}
	orderedAt, err := orderTime(ctx, r.DB, line.OrderID)
	if err != nil {
		return err
	}
	if err := insertLine(ctx, r.DB, line); err != nil {
		return err
	}
	line.OrderedAt = orderedAt
	return nil
}

// UpdateOrderDetails rewrites one line and returns the line as it was
// before the update.
func (r *PostgresRepository) UpdateOrderDetails(ctx context.Context, line *domain.OrderDetails) (*domain.OrderDetails, error) {
	if err := line.BeforeWrite(); err != nil {
		return nil, err
	}

	var previous domain.OrderDetails
	var orderedAt time.Time
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		lines, err := queryLines(ctx, tx, selectLine+" WHERE od.id = $1 FOR UPDATE OF od", line.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrNotFound
		}
		previous = lines[0]
		if orderedAt, err = orderTime(ctx, tx, line.OrderID); err != nil {
			return err
		}
		return updateLine(ctx, tx, line)
	})
	if err != nil {
		return nil, err
	}
	line.OrderedAt = orderedAt
	return &previous, nil
}

func (r *PostgresRepository) DeleteOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	var line domain.OrderDetails
	var dishID, setMealID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `
		DELETE FROM order_details od USING order_infos oi
		WHERE od.id = $1 AND oi.id = od.order_id
		RETURNING od.id, od.order_id, od.dish_id, od.set_meal_id, od.quantity, od.sub_total, oi.order_time`, id).
		Scan(&line.ID, &line.OrderID, &dishID, &setMealID, &line.Quantity, &line.SubTotal, &line.OrderedAt)
	if err != nil {
		return nil, writeError(err)
	}
	line.DishID = nullableID(dishID)
	line.SetMealID = nullableID(setMealID)
	return &line, nil
}

// insertLine and updateLine are the only places order lines reach the
// database; both run the pre-write hook first.
func insertLine(ctx context.Context, q querier, line *domain.OrderDetails) error {
	if err := line.BeforeWrite(); err != nil {
		return err
	}
	err := q.QueryRowContext(ctx, `
		INSERT INTO order_details (order_id, dish_id, set_meal_id, quantity, sub_total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		line.OrderID, line.DishID, line.SetMealID, line.Quantity, line.SubTotal).Scan(&line.ID)
	return writeError(err)
}

func updateLine(ctx context.Context, q querier, line *domain.OrderDetails) error {
	if err := line.BeforeWrite(); err != nil {
		return err
	}
	result, err := q.ExecContext(ctx, `
		UPDATE order_details
		SET order_id = $1, dish_id = $2, set_meal_id = $3, quantity = $4, sub_total = $5
		WHERE id = $6`,
		line.OrderID, line.DishID, line.SetMealID, line.Quantity, line.SubTotal, line.ID)
	if err != nil {
		return writeError(err)
	}
	return expectAffected(result)
}

func orderTime(ctx context.Context, q querier, orderID int64) (time.Time, error) {
	var at time.Time
	err := q.QueryRowContext(ctx, "SELECT order_time FROM order_infos WHERE id = $1", orderID).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return at, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return at, err
}

func scanOrder(row rowScanner) (domain.OrderInfo, error) {
	var o domain.OrderInfo
	var customerID, tableID sql.NullInt64
	if err := row.Scan(&o.ID, &o.DateTime, &o.TotalPrice, &o.PayStatus, &customerID, &tableID); err != nil {
		return o, err
	}
	o.CustomerID = nullableID(customerID)
	o.TableID = nullableID(tableID)
	return o, nil
}

func queryLines(ctx context.Context, q querier, query string, args ...any) ([]domain.OrderDetails, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.OrderDetails{}
	for rows.Next() {
		var line domain.OrderDetails
		var dishID, setMealID sql.NullInt64
		var dishName, setName sql.NullString
		var dishPrice, setPrice decimal.NullDecimal
		if err := rows.Scan(&line.ID, &line.OrderID, &dishID, &setMealID, &line.Quantity, &line.SubTotal,
			&dishName, &dishPrice, &setName, &setPrice, &line.OrderedAt); err != nil {
			return nil, err
		}
		line.DishID = nullableID(dishID)
		line.SetMealID = nullableID(setMealID)
		line.Dish = itemRef(line.DishID, dishName, dishPrice)
		line.SetMeal = itemRef(line.SetMealID, setName, setPrice)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
