package models

import "github.com/google/uuid"

// Team is a club together with its current roster
type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Roster      []Player  `json:"roster"`
	HomeStadium string    `json:"homeStadium"`
}

// ForeignCount returns the number of foreign players on the roster
func (t Team) ForeignCount() int {
	n := 0
	for _, p := range t.Roster {
		if p.Type == PlayerTypeForeign {
			n++
		}
	}
	return n
}

// HasPlayer reports whether the roster contains playerID
func (t Team) HasPlayer(playerID uuid.UUID) bool {
	for _, p := range t.Roster {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// WithoutPlayer returns a copy of the team whose roster omits playerID
func (t Team) WithoutPlayer(playerID uuid.UUID) Team {
	out := t
	out.Roster = make([]Player, 0, len(t.Roster))
	for _, p := range t.Roster {
		if p.ID != playerID {
			out.Roster = append(out.Roster, p)
		}
	}
	return out
}
