package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database row for a registered user
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username     string    `bun:"username,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Name         string    `bun:"name,notnull"`
	Age          int       `bun:"age,notnull"`
	Gender       *string   `bun:"gender"`
	Height       *float64  `bun:"height"`
	Weight       *float64  `bun:"weight"`
	Email        *string   `bun:"email"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:now()"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:now()"`
}

// PasswordResetToken is a single-use credential authorizing one password change
type PasswordResetToken struct {
	bun.BaseModel `bun:"table:password_reset_tokens"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Token     string    `bun:"token,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	IsUsed    bool      `bun:"is_used,notnull,default:false"`
}

// Workout is one logged exercise session
type Workout struct {
	bun.BaseModel `bun:"table:workouts"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Exercise  string    `bun:"exercise,notnull"`
	Duration  int       `bun:"duration,notnull"`
	Date      time.Time `bun:"date,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

// NutritionLog is one logged food entry
type NutritionLog struct {
	bun.BaseModel `bun:"table:nutrition_logs"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Food      string    `bun:"food,notnull"`
	Calories  int       `bun:"calories,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

// WeightLog is one logged body-weight measurement
type WeightLog struct {
	bun.BaseModel `bun:"table:weight_logs"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Weight    float64   `bun:"weight,notnull"`
	Date      time.Time `bun:"date,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}
