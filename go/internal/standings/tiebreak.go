package standings

import (
	"cmp"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// comparator orders two records; negative means a ranks above b
type comparator func(a, b *record) int

// builder creates the comparator of one criterion. earlier holds the
// comparators of the criteria configured before it.
type builder func(t *table, earlier []comparator) comparator

var criteria = map[models.TieBreakCriterion]builder{
	models.TieBreakPoints:         descending(func(r *record) int { return r.row.Points }),
	models.TieBreakGoalDifference: descending(func(r *record) int { return r.row.GoalDifference }),
	models.TieBreakGoalsFor:       descending(func(r *record) int { return r.row.GoalsFor }),
	models.TieBreakAwayGoals:      descending(func(r *record) int { return r.awayGoals }),
	models.TieBreakHeadToHead:     headToHead,
}

func (t *table) comparators(priority []models.TieBreakCriterion) []comparator {
	out := make([]comparator, 0, len(priority))
	for _, c := range priority {
		b, ok := criteria[c]
		if !ok {
			continue
		}
		out = append(out, b(t, out))
	}
	return out
}

func descending(field func(*record) int) builder {
	return func(*table, []comparator) comparator {
		return func(a, b *record) int {
			return cmp.Compare(field(b), field(a))
		}
	}
}

// headToHead decides between exactly two teams level on every earlier
// criterion by the points, then goals, they took off each other. Larger tie
// groups, or teams that never met, stay level.
func headToHead(t *table, earlier []comparator) comparator {
	groupSize := make(map[*record]int, len(t.records))
	for _, a := range t.records {
		for _, r := range t.records {
			if level(earlier, a, r) {
				groupSize[a]++
			}
		}
	}

	return func(a, b *record) int {
		if groupSize[a] != 2 || !level(earlier, a, b) {
			return 0
		}
		ab := t.direct[pairing{team: a.row.TeamID, opponent: b.row.TeamID}]
		ba := t.direct[pairing{team: b.row.TeamID, opponent: a.row.TeamID}]
		if c := cmp.Compare(ba.points, ab.points); c != 0 {
			return c
		}
		return cmp.Compare(ba.goalsFor, ab.goalsFor)
	}
}

func level(cmps []comparator, a, b *record) bool {
	for _, c := range cmps {
		if c(a, b) != 0 {
			return false
		}
	}
	return true
}
