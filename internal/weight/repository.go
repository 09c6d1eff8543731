package weight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ofir-cohen/fitlife-api/internal/database"
)

// Repository handles weight log persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a weight measurement
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, weight float64, date time.Time) (*Log, error) {
	dbLog := &database.WeightLog{
		UserID: userID,
		Weight: weight,
		Date:   date,
	}

	_, err := r.db.NewInsert().
		Model(dbLog).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create weight log: %w", err)
	}

	return mapDBLogToModel(dbLog), nil
}

// ListByUser returns all weight measurements for a user ordered by date
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Log, error) {
	var dbLogs []database.WeightLog
	err := r.db.NewSelect().
		Model(&dbLogs).
		Where("user_id = ?", userID).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight logs: %w", err)
	}

	logs := make([]Log, 0, len(dbLogs))
	for i := range dbLogs {
		logs = append(logs, *mapDBLogToModel(&dbLogs[i]))
	}
	return logs, nil
}

func mapDBLogToModel(dbl *database.WeightLog) *Log {
	return &Log{
		ID:     dbl.ID,
		UserID: dbl.UserID,
		Weight: dbl.Weight,
		Date:   dbl.Date.Format(DateLayout),
	}
}
