// Package standings reduces match outcomes into an ordered league table.
package standings

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// record is a table row plus the figures only the tie-breakers need
type record struct {
	row       models.StandingRow
	awayGoals int
}

// meeting is one team's haul from its direct matches against one opponent
type meeting struct {
	points   int
	goalsFor int
}

type pairing struct {
	team, opponent uuid.UUID
}

type table struct {
	records []*record
	byTeam  map[uuid.UUID]*record
	direct  map[pairing]meeting
}

// Compute builds the league table of seasonID. teamIDs are the admitted teams
// in their fallback order; every one of them gets a row even without matches.
// Outcomes of other seasons, outcomes naming a team outside teamIDs and
// repeated match ids are ignored. The result depends only on the arguments.
func Compute(seasonID uuid.UUID, teamIDs []uuid.UUID, outcomes []models.MatchOutcome, reg models.Regulation) []models.StandingRow {
	t := newTable(teamIDs)

	seen := make(map[uuid.UUID]bool, len(outcomes))
	for _, o := range outcomes {
		if o.SeasonID != seasonID || seen[o.MatchID] {
			continue
		}
		home, away := t.byTeam[o.Team1ID], t.byTeam[o.Team2ID]
		if home == nil || away == nil || home == away {
			continue
		}
		seen[o.MatchID] = true
		t.apply(home, away, o, reg)
	}

	cmps := t.comparators(reg.TieBreakPriority)
	slices.SortStableFunc(t.records, func(a, b *record) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	})

	rows := make([]models.StandingRow, len(t.records))
	for i, r := range t.records {
		rows[i] = r.row
	}
	return rows
}

func newTable(teamIDs []uuid.UUID) *table {
	t := &table{
		records: make([]*record, 0, len(teamIDs)),
		byTeam:  make(map[uuid.UUID]*record, len(teamIDs)),
		direct:  make(map[pairing]meeting),
	}
	for _, id := range teamIDs {
		if _, ok := t.byTeam[id]; ok {
			continue
		}
		r := &record{row: models.StandingRow{TeamID: id}}
		t.records = append(t.records, r)
		t.byTeam[id] = r
	}
	return t
}

func (t *table) apply(home, away *record, o models.MatchOutcome, reg models.Regulation) {
	homePts, awayPts := reg.DrawPoints, reg.DrawPoints
	switch o.Winner {
	case models.WinnerTeam1:
		homePts, awayPts = reg.WinPoints, reg.LossPoints
		home.row.Won++
		away.row.Lost++
	case models.WinnerTeam2:
		homePts, awayPts = reg.LossPoints, reg.WinPoints
		home.row.Lost++
		away.row.Won++
	default:
		home.row.Drawn++
		away.row.Drawn++
	}

	tally(&home.row, o.Team1Goals, o.Team2Goals, homePts)
	tally(&away.row, o.Team2Goals, o.Team1Goals, awayPts)
	away.awayGoals += o.Team2Goals

	t.meet(o.Team1ID, o.Team2ID, homePts, o.Team1Goals)
	t.meet(o.Team2ID, o.Team1ID, awayPts, o.Team2Goals)
}

func tally(row *models.StandingRow, scored, conceded, points int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	row.Points += points
}

func (t *table) meet(team, opponent uuid.UUID, points, goals int) {
	k := pairing{team: team, opponent: opponent}
	m := t.direct[k]
	m.points += points
	m.goalsFor += goals
	t.direct[k] = m
}
