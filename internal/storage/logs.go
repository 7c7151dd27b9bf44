package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"digestease/internal/models"
)

type LogStorage struct {
	pool *pgxpool.Pool
}

func NewLogStorage(pool *pgxpool.Pool) *LogStorage {
	return &LogStorage{
		pool: pool,
	}
}

// CreateLog assigns the id and persists the entry.
func (db_ls *LogStorage) CreateLog(ctx context.Context, entry *models.LogEntry) error {
	op := "internal/storage/logs.go CreateLog"

	day, err := time.Parse(models.DateLayout, entry.Date)
	if err != nil {
		return fmt.Errorf("Failure to parse log date in %s: %w", op, err)
	}

	entry.ID = uuid.NewString()
	food := entry.FoodInput
	if food == nil {
		food = []string{}
	}

	sql_query := `
	INSERT INTO logs
	(id, log_date, food_input, alcohol, bowel_movements, stress, pain, nausea)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err = db_ls.pool.Exec(
		ctx,
		sql_query,
		entry.ID,
		day,
		food, // pgx []string -> TEXT[]
		entry.Alcohol,
		string(entry.BowelMovements),
		entry.Stress,
		entry.Pain,
		entry.Nausea,
	)

	if err != nil {
		return fmt.Errorf("Failure to create log in %s: %w", op, err)
	}

	return nil
}

// RecentLogs returns up to limit logs, newest day first.
func (db_ls *LogStorage) RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	op := "internal/storage/logs.go RecentLogs"

	sql_query := `
	SELECT id, log_date, food_input, alcohol, bowel_movements, stress, pain, nausea
	FROM logs
	ORDER BY log_date DESC, created_at DESC
	LIMIT $1;
	`

	rows, err := db_ls.pool.Query(ctx, sql_query, limit)

	if err != nil {
		return nil, fmt.Errorf("Failure to get logs in %s: %w", op, err)
	}
	defer rows.Close()
	entries := []models.LogEntry{}

	for rows.Next() {
		var (
			entry models.LogEntry
			day   time.Time
			bowel string
		)

		err := rows.Scan(
			&entry.ID,
			&day,
			&entry.FoodInput,
			&entry.Alcohol,
			&bowel,
			&entry.Stress,
			&entry.Pain,
			&entry.Nausea,
		)

		if err != nil {
			return nil, fmt.Errorf("Failure to Scan logs in %s: %w", op, err)
		}

		entry.Date = day.Format(models.DateLayout)
		entry.BowelMovements = models.BowelMovement(bowel)
		if entry.FoodInput == nil {
			entry.FoodInput = []string{}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failure to read logs in %s: %w", op, err)
	}

	return entries, nil
}
