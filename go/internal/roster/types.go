package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// AddPlayerRequest registers a player on a team, checked against the
// regulation of SeasonID.
type AddPlayerRequest struct {
	SeasonID  uuid.UUID         `json:"seasonId"`
	TeamID    uuid.UUID         `json:"teamId"`
	Name      string            `json:"name"`
	BirthDate time.Time         `json:"birthDate"`
	Type      models.PlayerType `json:"type"`
}

// UpdatePlayerRequest changes the non-nil fields of a player
type UpdatePlayerRequest struct {
	SeasonID  uuid.UUID          `json:"seasonId"`
	Name      *string            `json:"name,omitempty"`
	BirthDate *time.Time         `json:"birthDate,omitempty"`
	Type      *models.PlayerType `json:"type,omitempty"`
}
