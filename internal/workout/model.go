package workout

import (
	"github.com/google/uuid"
)

// DateLayout is the wire format for workout dates
const DateLayout = "2006-01-02"

type Workout struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Exercise string    `json:"exercise"`
	Duration int       `json:"duration"` // minutes
	Date     string    `json:"date"`     // YYYY-MM-DD
}
