package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const selectSetMeal = "SELECT id, name, description, price FROM set_meals"

const selectSetDish = `
	SELECT sd.set_meal_id, sd.dish_id, sd.quantity, s.name, s.price, d.name, d.price
	FROM set_dishes sd
	JOIN set_meals s ON s.id = sd.set_meal_id
	JOIN dishes d ON d.id = sd.dish_id`

func (r *PostgresRepository) ListSetMeals(ctx context.Context, page domain.PageRequest) ([]domain.SetMeal, int64, error) {
	total, err := count(ctx, r.DB, "set_meals")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, selectSetMeal+" ORDER BY id LIMIT $1 OFFSET $2", page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var meals []domain.SetMeal
	for rows.Next() {
		var s domain.SetMeal
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price); err != nil {
			return nil, 0, err
		}
		meals = append(meals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(meals) == 0 {
		return meals, total, nil
	}

	ids := make([]int64, len(meals))
	for i, s := range meals {
		ids[i] = s.ID
	}
	entries, err := querySetDishes(ctx, r.DB, selectSetDish+" WHERE sd.set_meal_id = ANY($1) ORDER BY sd.set_meal_id, sd.dish_id", pq.Array(ids))
	if err != nil {
		return nil, 0, err
	}
	bySetMeal := make(map[int64][]domain.SetDish, len(meals))
	for _, sd := range entries {
		bySetMeal[sd.ID.SetMealID] = append(bySetMeal[sd.ID.SetMealID], sd)
	}
	for i := range meals {
		meals[i].SetDishes = bySetMeal[meals[i].ID]
		if meals[i].SetDishes == nil {
			meals[i].SetDishes = []domain.SetDish{}
		}
	}
	return meals, total, nil
}

// GetSetMeal loads the set meal together with its set dishes.
func (r *PostgresRepository) GetSetMeal(ctx context.Context, id int64) (*domain.SetMeal, error) {
	var s domain.SetMeal
	err := r.DB.QueryRowContext(ctx, selectSetMeal+" WHERE id = $1", id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Price)
	if err != nil {
		return nil, writeError(err)
	}

	s.SetDishes, err = querySetDishes(ctx, r.DB, selectSetDish+" WHERE sd.set_meal_id = $1 ORDER BY sd.dish_id", id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) ListSetMealDishes(ctx context.Context, setMealID int64) ([]domain.SetDish, error) {
	meal, err := r.GetSetMeal(ctx, setMealID)
	if err != nil {
		return nil, err
	}
	return meal.SetDishes, nil
}

// CreateSetMeal inserts the set meal and any set dishes it carries in one
// transaction.
func (r *PostgresRepository) CreateSetMeal(ctx context.Context, s *domain.SetMeal) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO set_meals (name, description, price) VALUES ($1, $2, $3) RETURNING id",
			s.Name, s.Description, s.Price).Scan(&s.ID); err != nil {
			return writeError(err)
		}
		if len(s.SetDishes) == 0 {
			return nil
		}
		if err := prepareSetDishes(s.ID, s.SetDishes); err != nil {
			return err
		}
		return upsertSetDishes(ctx, tx, s.SetDishes)
	})
}

// UpdateSetMeal rewrites the set meal header. When SetDishes is non-nil the
// owned collection is replaced: entries missing from the new list are deleted.
func (r *PostgresRepository) UpdateSetMeal(ctx context.Context, s *domain.SetMeal) error {
	if s.SetDishes != nil {
		if err := prepareSetDishes(s.ID, s.SetDishes); err != nil {
			return err
		}
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE set_meals SET name = $1, description = $2, price = $3 WHERE id = $4",
			s.Name, s.Description, s.Price, s.ID)
		if err != nil {
			return writeError(err)
		}
		if err := expectAffected(result); err != nil {
			return err
		}
		if s.SetDishes == nil {
			return nil
		}

		keep := make([]int64, 0, len(s.SetDishes))
		for _, sd := range s.SetDishes {
			keep = append(keep, sd.ID.DishID)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM set_dishes WHERE set_meal_id = $1 AND NOT (dish_id = ANY($2))",
			s.ID, pq.Array(keep)); err != nil {
			return err
		}
		return upsertSetDishes(ctx, tx, s.SetDishes)
	})
}

// DeleteSetMeal removes the owned set dishes first, then the set meal.
func (r *PostgresRepository) DeleteSetMeal(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM set_dishes WHERE set_meal_id = $1", id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM set_meals WHERE id = $1", id)
		if err != nil {
			return deleteError(err)
		}
		return expectAffected(result)
	})
}

func (r *PostgresRepository) ListSetDishes(ctx context.Context, page domain.PageRequest) ([]domain.SetDish, int64, error) {
	total, err := count(ctx, r.DB, "set_dishes")
	if err != nil {
		return nil, 0, err
	}
	dishes, err := querySetDishes(ctx, r.DB,
		selectSetDish+" ORDER BY sd.set_meal_id, sd.dish_id LIMIT $1 OFFSET $2", page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return dishes, total, nil
}

func (r *PostgresRepository) GetSetDish(ctx context.Context, key domain.SetDishKey) (*domain.SetDish, error) {
	dishes, err := querySetDishes(ctx, r.DB,
		selectSetDish+" WHERE sd.set_meal_id = $1 AND sd.dish_id = $2", key.SetMealID, key.DishID)
	if err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return nil, domain.ErrNotFound
	}
	return &dishes[0], nil
}

func (r *PostgresRepository) CreateSetDish(ctx context.Context, sd *domain.SetDish) error {
	if err := sd.BeforeWrite(); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO set_dishes (set_meal_id, dish_id, quantity) VALUES ($1, $2, $3)",
		sd.ID.SetMealID, sd.ID.DishID, sd.Quantity)
	return writeError(err)
}

// UpdateSetDish only changes the quantity; the key is the identity.
func (r *PostgresRepository) UpdateSetDish(ctx context.Context, sd *domain.SetDish) error {
	if err := sd.BeforeWrite(); err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx,
		"UPDATE set_dishes SET quantity = $1 WHERE set_meal_id = $2 AND dish_id = $3",
		sd.Quantity, sd.ID.SetMealID, sd.ID.DishID)
	if err != nil {
		return writeError(err)
	}
	return expectAffected(result)
}

func (r *PostgresRepository) DeleteSetDish(ctx context.Context, key domain.SetDishKey) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM set_dishes WHERE set_meal_id = $1 AND dish_id = $2",
		key.SetMealID, key.DishID)
	if err != nil {
		return deleteError(err)
	}
	return expectAffected(result)
}

// prepareSetDishes binds entries to their set meal and runs the pre-write
// hook on each. An entry may name its dish by key or by embedded reference.
func prepareSetDishes(setMealID int64, entries []domain.SetDish) error {
	seen := make(map[domain.SetDishKey]bool, len(entries))
	for i := range entries {
		sd := &entries[i]
		sd.ID.SetMealID = setMealID
		sd.SetMeal = nil
		if sd.ID.DishID == 0 && sd.Dish != nil {
			sd.ID.DishID = sd.Dish.ID
		}
		if err := sd.BeforeWrite(); err != nil {
			return err
		}
		if seen[sd.ID] {
			return fmt.Errorf("%w: dish %d appears twice in set meal", domain.ErrValidation, sd.ID.DishID)
		}
		seen[sd.ID] = true
	}
	return nil
}

func upsertSetDishes(ctx context.Context, tx *sql.Tx, entries []domain.SetDish) error {
	for _, sd := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO set_dishes (set_meal_id, dish_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (set_meal_id, dish_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
			sd.ID.SetMealID, sd.ID.DishID, sd.Quantity); err != nil {
			return writeError(err)
		}
	}
	return nil
}

func querySetDishes(ctx context.Context, q querier, query string, args ...any) ([]domain.SetDish, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.SetDish{}
	for rows.Next() {
		var sd domain.SetDish
		var meal, dish domain.ItemRef
		if err := rows.Scan(&sd.ID.SetMealID, &sd.ID.DishID, &sd.Quantity,
			&meal.Name, &meal.Price, &dish.Name, &dish.Price); err != nil {
			return nil, err
		}
		meal.ID = sd.ID.SetMealID
		dish.ID = sd.ID.DishID
		sd.SetMeal = &meal
		sd.Dish = &dish
		dishes = append(dishes, sd)
	}
	return dishes, rows.Err()
}
