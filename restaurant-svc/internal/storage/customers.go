package storage

import (
	"context"

	"restaurant-backend/restaurant-svc/internal/domain"
)

func (r *PostgresRepository) ListCustomers(ctx context.Context, page domain.PageRequest) ([]domain.Customer, int64, error) {
	total, err := count(ctx, r.DB, "customers")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, phone
		FROM customers
		ORDER BY id
		LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *PostgresRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.DB.QueryRowContext(ctx, "SELECT id, name, phone FROM customers WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Phone)
	if err != nil {
		return nil, writeError(err)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO customers (name, phone) VALUES ($1, $2) RETURNING id",
		c.Name, c.Phone).Scan(&c.ID)
	return writeError(err)
}

func (r *PostgresRepository) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET name = $1, phone = $2 WHERE id = $3",
		c.Name, c.Phone, c.ID)
	if err != nil {
		return writeError(err)
	}
	return expectAffected(result)
}

func (r *PostgresRepository) DeleteCustomer(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return deleteError(err)
	}
	return expectAffected(result)
}
