package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id    BIGSERIAL PRIMARY KEY,
			name  VARCHAR(100) NOT NULL,
			phone VARCHAR(20)  NOT NULL,
			CONSTRAINT uq_customers_phone UNIQUE (phone)
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id          BIGSERIAL PRIMARY KEY,
			name        VARCHAR(100)   NOT NULL,
			description TEXT           NOT NULL DEFAULT '',
			price       NUMERIC(10, 2) NOT NULL,
			type        VARCHAR(50)    NOT NULL,
			CONSTRAINT uq_dishes_name UNIQUE (name)
		)`,
		`CREATE TABLE IF NOT EXISTS set_meals (
			id          BIGSERIAL PRIMARY KEY,
			name        VARCHAR(100)   NOT NULL,
			description TEXT           NOT NULL DEFAULT '',
			price       NUMERIC(10, 2) NOT NULL,
			CONSTRAINT uq_set_meals_name UNIQUE (name)
		)`,
		`CREATE TABLE IF NOT EXISTS set_dishes (
			set_meal_id BIGINT  NOT NULL,
			dish_id     BIGINT  NOT NULL,
			quantity    INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (set_meal_id, dish_id),
			CONSTRAINT fk_set_dishes_set_meal FOREIGN KEY (set_meal_id) REFERENCES set_meals (id),
			CONSTRAINT fk_set_dishes_dish FOREIGN KEY (dish_id) REFERENCES dishes (id)
		)`,
		`CREATE TABLE IF NOT EXISTS table_infos (
			id       BIGSERIAL PRIMARY KEY,
			capacity INTEGER      NOT NULL,
			location VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_infos (
			id          BIGSERIAL PRIMARY KEY,
			order_time  TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
			total_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			pay_status  VARCHAR(20)    NOT NULL DEFAULT 'unpaid',
			customer_id BIGINT,
			table_id    BIGINT,
			CONSTRAINT fk_order_infos_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
			CONSTRAINT fk_order_infos_table FOREIGN KEY (table_id) REFERENCES table_infos (id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_details (
			id          BIGSERIAL PRIMARY KEY,
			order_id    BIGINT         NOT NULL,
			dish_id     BIGINT,
			set_meal_id BIGINT,
			quantity    INTEGER        NOT NULL DEFAULT 1,
			sub_total   NUMERIC(12, 2) NOT NULL DEFAULT 0,
			CONSTRAINT fk_order_details_order FOREIGN KEY (order_id) REFERENCES order_infos (id),
			CONSTRAINT fk_order_details_dish FOREIGN KEY (dish_id) REFERENCES dishes (id),
			CONSTRAINT fk_order_details_set_meal FOREIGN KEY (set_meal_id) REFERENCES set_meals (id)
		)`,
		"CREATE INDEX IF NOT EXISTS idx_order_details_order_id ON order_details (order_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// writeError translates driver errors raised by INSERT and UPDATE.
func writeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s already exists", domain.ErrConflict, uniqueSubject(pqErr.Constraint))
		case "foreign_key_violation":
			return fmt.Errorf("%w: referenced row does not exist (%s)", domain.ErrNotFound, pqErr.Constraint)
		case "not_null_violation", "string_data_right_truncation", "numeric_value_out_of_range":
			return fmt.Errorf("%w: %s", domain.ErrMalformed, pqErr.Message)
		}
	}
	return err
}

// deleteError translates driver errors raised by DELETE. A foreign key
// violation here means the row is still referenced.
func deleteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return fmt.Errorf("%w: row is still referenced (%s)", domain.ErrConflict, pqErr.Constraint)
	}
	return err
}

func uniqueSubject(constraint string) string {
	switch constraint {
	case "uq_customers_phone":
		return "customer phone"
	case "uq_dishes_name":
		return "dish name"
	case "uq_set_meals_name":
		return "set meal name"
	case "set_dishes_pkey":
		return "set dish"
	}
	return constraint
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func count(ctx context.Context, q querier, table string) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&total)
	return total, err
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func itemRef(id *int64, name sql.NullString, price decimal.NullDecimal) *domain.ItemRef {
	if id == nil || !name.Valid {
		return nil
	}
	return &domain.ItemRef{ID: *id, Name: name.String, Price: price.Decimal}
}
