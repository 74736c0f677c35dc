package food

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]FoodName, error) {
	return r.queryNames(ctx, `
		SELECT MIN(id) AS id, food_name
		FROM foods
		GROUP BY food_name
		ORDER BY food_name ASC
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) Search(ctx context.Context, term string, limit int) ([]FoodName, error) {
	esc := escapeLike(term)
	query := `
		SELECT MIN(id) AS id, food_name
		FROM foods
		WHERE food_name LIKE $1 OR food_name LIKE $2 OR food_name = $3
		GROUP BY food_name
		ORDER BY food_name ASC
	`
	args := []any{"%" + esc + "%", esc + "%", term}
	if limit > 0 {
		query += " LIMIT $4"
		args = append(args, limit)
	}
	return r.queryNames(ctx, query, args...)
}

func (r *PostgresRepository) Autocomplete(ctx context.Context, term string, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT food_name
		FROM foods
		WHERE food_name LIKE $1
		ORDER BY food_name ASC
		LIMIT $2
	`, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (r *PostgresRepository) ByPrefixes(ctx context.Context, prefixes []string, limit int) ([]FoodName, error) {
	if len(prefixes) == 0 {
		return []FoodName{}, nil
	}

	clauses := make([]string, len(prefixes))
	args := make([]any, 0, len(prefixes)+1)
	for i, p := range prefixes {
		clauses[i] = fmt.Sprintf("food_name LIKE $%d", i+1)
		args = append(args, escapeLike(p)+"%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT MIN(id) AS id, food_name
		FROM foods
		WHERE %s
		GROUP BY food_name
		ORDER BY food_name ASC
		LIMIT $%d
	`, strings.Join(clauses, " OR "), len(args))

	return r.queryNames(ctx, query, args...)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Food, error) {
	var f Food
	err := r.db.QueryRow(ctx, `
		SELECT
			id, food_name,
			energy_kcal, carbohydrate_g, protein_g, fat_g, sugar_g,
			sodium_mg, calcium_mg, iron_mg, potassium_mg,
			vitamin_a_ug, vitamin_c_mg, vitamin_d_ug,
			cholesterol_mg, saturated_fat_g, trans_fat_g
		FROM foods
		WHERE id = $1
	`, id).Scan(
		&f.ID, &f.FoodName,
		&f.EnergyKcal, &f.CarbohydrateG, &f.ProteinG, &f.FatG, &f.SugarG,
		&f.SodiumMg, &f.CalciumMg, &f.IronMg, &f.PotassiumMg,
		&f.VitaminAUg, &f.VitaminCMg, &f.VitaminDUg,
		&f.CholesterolMg, &f.SaturatedFatG, &f.TransFatG,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) queryNames(ctx context.Context, query string, args ...any) ([]FoodName, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FoodName{}
	for rows.Next() {
		var n FoodName
		if err := rows.Scan(&n.ID, &n.FoodName); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
