package models

import (
	"time"

	"github.com/google/uuid"
)

// Season is one competition edition with its active regulation
type Season struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Regulation Regulation `json:"regulation"`
}
