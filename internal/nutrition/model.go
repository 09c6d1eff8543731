package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// Log is one food entry with its calorie count
type Log struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Food      string    `json:"food"`
	Calories  int       `json:"calories"`
	CreatedAt time.Time `json:"created_at"`
}
