package record

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, rec *Record) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO records (user_id, food_id, quantity, record_date, meal_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rec.UserID, rec.FoodID, rec.Quantity, rec.RecordDate, rec.MealType).Scan(&rec.ID, &rec.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrUnknownFood
	}
	return err
}

func (r *PostgresRepository) ListByDate(ctx context.Context, userID int64, date time.Time) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, f.id, f.food_name, f.energy_kcal, r.quantity, r.meal_type
		FROM records r
		JOIN foods f ON r.food_id = f.id
		WHERE r.user_id = $1 AND r.record_date = $2
		ORDER BY r.id ASC
	`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.FoodID, &e.FoodName, &e.EnergyKcal, &e.Quantity, &e.MealType); err != nil {
			return nil, err
		}
		e.MealType = MealLabel(e.MealType)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresRepository) Summary(ctx context.Context, userID int64, date time.Time) (Summary, error) {
	var s Summary
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(f.energy_kcal * r.quantity), 0)::float8,
			COALESCE(SUM(f.carbohydrate_g * r.quantity), 0)::float8,
			COALESCE(SUM(f.protein_g * r.quantity), 0)::float8,
			COALESCE(SUM(f.fat_g * r.quantity), 0)::float8
		FROM records r
		JOIN foods f ON r.food_id = f.id
		WHERE r.user_id = $1 AND r.record_date = $2
	`, userID, date).Scan(&s.TotalKcal, &s.TotalCarbs, &s.TotalProtein, &s.TotalFat)
	return s, err
}

func (r *PostgresRepository) DailyTotals(ctx context.Context, userID int64, since time.Time) ([]DailyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.record_date, COALESCE(ROUND(SUM(f.energy_kcal * r.quantity), 2), 0)::float8
		FROM records r
		JOIN foods f ON r.food_id = f.id
		WHERE r.user_id = $1 AND r.record_date >= $2
		GROUP BY r.record_date
		ORDER BY r.record_date ASC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailyTotal{}
	for rows.Next() {
		var d DailyTotal
		if err := rows.Scan(&d.Date, &d.TotalKcal); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
