package weight

import (
	"github.com/google/uuid"
)

// DateLayout is the wire format for measurement dates
const DateLayout = "2006-01-02"

// Log is one body-weight measurement
type Log struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Weight float64   `json:"weight"`
	Date   string    `json:"date"`
}
