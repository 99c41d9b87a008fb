package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerType distinguishes players counted against the foreign quota
type PlayerType string

const (
	PlayerTypeDomestic PlayerType = "domestic"
	PlayerTypeForeign  PlayerType = "foreign"
)

// Valid reports whether t is a known player type
func (t PlayerType) Valid() bool {
	return t == PlayerTypeDomestic || t == PlayerTypeForeign
}

// Player is a registered footballer. Age is always derived from BirthDate.
type Player struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	BirthDate time.Time  `json:"birthDate"`
	Type      PlayerType `json:"type"`
	TeamID    uuid.UUID  `json:"teamId"`
}
