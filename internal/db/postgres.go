package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func ConnectPostgres(ctx context.Context, dsn string, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.WithField("component", "db").Info("connected to PostgreSQL")
	return pool, nil
}

// InitSchema creates or updates the database schema. Every statement is
// idempotent so it runs on each start.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, log logrus.FieldLogger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("schema step %q: %w", stmt.name, err)
		}
	}

	log.WithField("component", "db").Info("schema initialized")
	return nil
}

type schemaStep struct {
	name string
	sql  string
}

var schema = []schemaStep{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},

	// -------------------------------
	// FOODS (nutrients per serving)
	// -------------------------------
	{"foods", `
		CREATE TABLE IF NOT EXISTS foods (
			id BIGSERIAL PRIMARY KEY,
			food_name VARCHAR(255) NOT NULL,
			energy_kcal NUMERIC,
			carbohydrate_g NUMERIC,
			protein_g NUMERIC,
			fat_g NUMERIC,
			sugar_g NUMERIC,
			sodium_mg NUMERIC,
			calcium_mg NUMERIC,
			iron_mg NUMERIC,
			potassium_mg NUMERIC,
			vitamin_a_ug NUMERIC,
			vitamin_c_mg NUMERIC,
			vitamin_d_ug NUMERIC,
			cholesterol_mg NUMERIC,
			saturated_fat_g NUMERIC,
			trans_fat_g NUMERIC
		)
	`},
	{"foods_name_idx", `
		CREATE INDEX IF NOT EXISTS foods_food_name_idx ON foods (food_name)
	`},

	// -------------------------------
	// RECORDS
	// -------------------------------
	{"records", `
		CREATE TABLE IF NOT EXISTS records (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			food_id BIGINT NOT NULL REFERENCES foods(id),
			quantity NUMERIC NOT NULL DEFAULT 1,
			record_date DATE NOT NULL,
			meal_type VARCHAR(20) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"records_user_date_idx", `
		CREATE INDEX IF NOT EXISTS records_user_date_idx ON records (user_id, record_date)
	`},
}
