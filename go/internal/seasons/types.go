package seasons

import (
	"time"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// CreateSeasonRequest represents the data needed to open a season.
// A nil Regulation falls back to the configured default.
type CreateSeasonRequest struct {
	Name       string             `json:"name"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	Regulation *models.Regulation `json:"regulation,omitempty"`
}

// CreateGoalTypeRequest adds an entry to the goal type catalogue
type CreateGoalTypeRequest struct {
	Name string `json:"name"`
}
