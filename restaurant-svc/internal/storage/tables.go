package storage

import (
	"context"

	"restaurant-backend/restaurant-svc/internal/domain"
)

func (r *PostgresRepository) ListTables(ctx context.Context, page domain.PageRequest) ([]domain.TableInfo, int64, error) {
	total, err := count(ctx, r.DB, "table_infos")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, capacity, location
		FROM table_infos
		ORDER BY id
		LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tables []domain.TableInfo
	for rows.Next() {
		var t domain.TableInfo
		if err := rows.Scan(&t.ID, &t.Capacity, &t.Location); err != nil {
			return nil, 0, err
		}
		tables = append(tables, t)
	}
	return tables, total, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int64) (*domain.TableInfo, error) {
	var t domain.TableInfo
	err := r.DB.QueryRowContext(ctx, "SELECT id, capacity, location FROM table_infos WHERE id = $1", id).
		Scan(&t.ID, &t.Capacity, &t.Location)
	if err != nil {
		return nil, writeError(err)
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, t *domain.TableInfo) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO table_infos (capacity, location) VALUES ($1, $2) RETURNING id",
		t.Capacity, t.Location).Scan(&t.ID)
	return writeError(err)
}

func (r *PostgresRepository) UpdateTable(ctx context.Context, t *domain.TableInfo) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE table_infos SET capacity = $1, location = $2 WHERE id = $3",
		t.Capacity, t.Location, t.ID)
	if err != nil {
		return writeError(err)
	}
	return expectAffected(result)
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM table_infos WHERE id = $1", id)
	if err != nil {
		return deleteError(err)
	}
	return expectAffected(result)
}
