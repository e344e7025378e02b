package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sportclip/highlightd/internal/dbx"
	"github.com/sportclip/highlightd/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Intervals are stored as jsonb; per-account order is
// carried by a bigserial sequence column.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, record *models.HighlightRecord) (*models.HighlightRecord, error) {

	intervals, err := json.Marshal(record.Intervals)
	if err != nil {
		return nil, fmt.Errorf("marshal intervals: %w", err)
	}

	query := `
		INSERT INTO highlight_records
			(id, account_id, title, source_name, location, duration_seconds, intervals, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		record.ID, record.AccountID, record.Title, record.SourceName, record.Location,
		record.DurationSeconds, intervals, record.StorageKey).Scan(&record.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]*models.HighlightRecord, error) {
	query := `
		SELECT id, account_id, title, source_name, location, duration_seconds, intervals, storage_key, created_at
		FROM highlight_records
		WHERE account_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := []*models.HighlightRecord{}
	for rows.Next() {
		var item models.HighlightRecord
		var intervals []byte
		if err := rows.Scan(
			&item.ID, &item.AccountID, &item.Title, &item.SourceName, &item.Location,
			&item.DurationSeconds, &intervals, &item.StorageKey, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(intervals, &item.Intervals); err != nil {
			return nil, fmt.Errorf("unmarshal intervals: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
