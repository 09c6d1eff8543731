package nutrition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ofir-cohen/fitlife-api/internal/database"
)

// Repository handles nutrition log persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a nutrition log entry
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, food string, calories int) (*Log, error) {
	dbLog := &database.NutritionLog{
		UserID:   userID,
		Food:     food,
		Calories: calories,
	}

	_, err := r.db.NewInsert().
		Model(dbLog).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition log: %w", err)
	}

	return mapDBLogToModel(dbLog), nil
}

// ListByUser returns all nutrition logs for a user, newest last
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Log, error) {
	var dbLogs []database.NutritionLog
	err := r.db.NewSelect().
		Model(&dbLogs).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition logs: %w", err)
	}

	logs := make([]Log, 0, len(dbLogs))
	for i := range dbLogs {
		logs = append(logs, *mapDBLogToModel(&dbLogs[i]))
	}
	return logs, nil
}

func mapDBLogToModel(dbl *database.NutritionLog) *Log {
	return &Log{
		ID:        dbl.ID,
		UserID:    dbl.UserID,
		Food:      dbl.Food,
		Calories:  dbl.Calories,
		CreatedAt: dbl.CreatedAt,
	}
}
