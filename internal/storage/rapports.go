package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"digestease/internal/models"
)

type RapportStorage struct {
	pool *pgxpool.Pool
}

func NewRapportStorage(pool *pgxpool.Pool) *RapportStorage {
	return &RapportStorage{
		pool: pool,
	}
}

// CreateRapport assigns the id and persists the rapport.
func (db_rs *RapportStorage) CreateRapport(ctx context.Context, rapport *models.Rapport) error {
	op := "internal/storage/rapports.go CreateRapport"

	day, err := time.Parse(models.DateLayout, rapport.Date)
	if err != nil {
		return fmt.Errorf("%s: failed to parse rapport date: %w", op, err)
	}

	rapport.ID = uuid.NewString()

	sql_query := `
	INSERT INTO rapports (id, rapport_date, result) VALUES ($1, $2, $3)
	`

	if _, err := db_rs.pool.Exec(ctx, sql_query, rapport.ID, day, rapport.Result); err != nil {
		return fmt.Errorf("%s: failed to save rapport: %w", op, err)
	}

	return nil
}

// ListRapports returns every rapport in the order they were produced.
func (db_rs *RapportStorage) ListRapports(ctx context.Context) ([]models.Rapport, error) {
	op := "internal/storage/rapports.go ListRapports"

	sql_query := `
	SELECT id, rapport_date, result FROM rapports
	ORDER BY rapport_date ASC, created_at ASC
	`

	rows, err := db_rs.pool.Query(ctx, sql_query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query rapports: %w", op, err)
	}
	defer rows.Close()

	rapports := []models.Rapport{}
	for rows.Next() {
		var (
			rapport models.Rapport
			day     time.Time
		)
		if err := rows.Scan(&rapport.ID, &day, &rapport.Result); err != nil {
			return nil, fmt.Errorf("%s: failed to scan rapport: %w", op, err)
		}
		rapport.Date = day.Format(models.DateLayout)
		rapports = append(rapports, rapport)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to read rapports: %w", op, err)
	}

	return rapports, nil
}
