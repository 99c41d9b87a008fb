package seasons

import (
	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// ValidateRegulation checks that a rule set is internally consistent.
func ValidateRegulation(reg models.Regulation) error {
	if reg.MinAge < 0 || reg.MinAge > reg.MaxAge {
		return errs.New(errs.KindInvalidArgument, "age bounds %d-%d are invalid", reg.MinAge, reg.MaxAge)
	}
	if reg.MinPlayers < 0 || reg.MinPlayers > reg.MaxPlayers {
		return errs.New(errs.KindInvalidArgument, "squad size bounds %d-%d are invalid", reg.MinPlayers, reg.MaxPlayers)
	}
	if reg.MaxForeignPlayers < 0 {
		return errs.New(errs.KindInvalidArgument, "foreign player quota %d is negative", reg.MaxForeignPlayers)
	}
	if reg.MinGoalMinute > reg.MaxGoalMinute {
		return errs.New(errs.KindInvalidArgument, "goal minute bounds %d-%d are invalid", reg.MinGoalMinute, reg.MaxGoalMinute)
	}

	seen := make(map[models.TieBreakCriterion]bool, len(reg.TieBreakPriority))
	for _, c := range reg.TieBreakPriority {
		if !c.Valid() {
			return errs.New(errs.KindInvalidArgument, "unknown tie-break criterion %q", c)
		}
		if seen[c] {
			return errs.New(errs.KindInvalidArgument, "tie-break criterion %q listed twice", c)
		}
		seen[c] = true
	}
	return nil
}
