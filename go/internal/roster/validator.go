package roster

import (
	"time"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// YearsBetween returns the number of completed years from birth to now.
func YearsBetween(birth, now time.Time) int {
	birth = birth.UTC()
	now = now.UTC()
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ValidateRosterAddition checks whether candidate may join team under reg.
// Checks run in a fixed order and the first violation is returned:
// age, foreign quota, squad size.
func ValidateRosterAddition(team models.Team, candidate models.Player, reg models.Regulation, now time.Time) error {
	age := YearsBetween(candidate.BirthDate, now)
	if age < reg.MinAge || age > reg.MaxAge {
		return errs.New(errs.KindAgeOutOfRange, "player %s is %d, allowed ages are %d-%d",
			candidate.Name, age, reg.MinAge, reg.MaxAge)
	}

	if candidate.Type == models.PlayerTypeForeign {
		if foreign := team.ForeignCount(); foreign >= reg.MaxForeignPlayers {
			return errs.New(errs.KindForeignQuotaExceeded, "team %s already has %d of %d foreign players",
				team.Name, foreign, reg.MaxForeignPlayers)
		}
	}

	if size := len(team.Roster); size >= reg.MaxPlayers {
		return errs.New(errs.KindRosterFull, "team %s already has %d of %d players",
			team.Name, size, reg.MaxPlayers)
	}

	return nil
}

// ValidateRosterChange applies the addition rules to an edited player,
// counting the roster without the player's current entry.
func ValidateRosterChange(team models.Team, updated models.Player, reg models.Regulation, now time.Time) error {
	return ValidateRosterAddition(team.WithoutPlayer(updated.ID), updated, reg, now)
}

// ValidateRosterMinimum checks the squad is large enough to compete.
func ValidateRosterMinimum(team models.Team, reg models.Regulation) error {
	if size := len(team.Roster); size < reg.MinPlayers {
		return errs.New(errs.KindRosterTooSmall, "team %s has %d players, at least %d required",
			team.Name, size, reg.MinPlayers)
	}
	return nil
}
