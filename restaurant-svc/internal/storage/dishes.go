package storage

import (
	"context"

	"restaurant-backend/restaurant-svc/internal/domain"
)

const selectDish = "SELECT id, name, description, price, type FROM dishes"

func (r *PostgresRepository) ListDishes(ctx context.Context, page domain.PageRequest) ([]domain.Dish, int64, error) {
	total, err := count(ctx, r.DB, "dishes")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, selectDish+" ORDER BY id LIMIT $1 OFFSET $2", page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.Type); err != nil {
			return nil, 0, err
		}
		dishes = append(dishes, d)
	}
	return dishes, total, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	var d domain.Dish
	err := r.DB.QueryRowContext(ctx, selectDish+" WHERE id = $1", id).
		Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.Type)
	if err != nil {
		return nil, writeError(err)
	}
	return &d, nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, d *domain.Dish) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO dishes (name, description, price, type) VALUES ($1, $2, $3, $4) RETURNING id",
		d.Name, d.Description, d.Price, d.Type).Scan(&d.ID)
	return writeError(err)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, d *domain.Dish) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE dishes
		SET name = $1, description = $2, price = $3, type = $4
		WHERE id = $5`,
		d.Name, d.Description, d.Price, d.Type, d.ID)
	if err != nil {
		return writeError(err)
	}
	return expectAffected(result)
}

// DeleteDish fails with a conflict while set meals or order lines still
// point at the dish.
func (r *PostgresRepository) DeleteDish(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM dishes WHERE id = $1", id)
	if err != nil {
		return deleteError(err)
	}
	return expectAffected(result)
}

func (r *PostgresRepository) SetMealsContainingDish(ctx context.Context, dishID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT set_meal_id FROM set_dishes WHERE dish_id = $1", dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
