package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ofir-cohen/fitlife-api/internal/database"
)

// Repository handles workout persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a workout entry
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, exercise string, duration int, date time.Time) (*Workout, error) {
	dbWorkout := &database.Workout{
		UserID:   userID,
		Exercise: exercise,
		Duration: duration,
		Date:     date,
	}

	_, err := r.db.NewInsert().
		Model(dbWorkout).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	return mapDBWorkoutToModel(dbWorkout), nil
}

// ListByUserAndDate returns all workouts for a user on a given date
func (r *Repository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Workout, error) {
	var dbWorkouts []database.Workout
	err := r.db.NewSelect().
		Model(&dbWorkouts).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format(DateLayout)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	workouts := make([]Workout, 0, len(dbWorkouts))
	for i := range dbWorkouts {
		workouts = append(workouts, *mapDBWorkoutToModel(&dbWorkouts[i]))
	}
	return workouts, nil
}

func mapDBWorkoutToModel(dbw *database.Workout) *Workout {
	return &Workout{
		ID:       dbw.ID,
		UserID:   dbw.UserID,
		Exercise: dbw.Exercise,
		Duration: dbw.Duration,
		Date:     dbw.Date.Format(DateLayout),
	}
}
