package kickoff

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// PlayedReporter marks matches whose kick-off has passed and writes their
// MatchPlayed events
type PlayedReporter interface {
	ReportPlayed(ctx context.Context, now time.Time, limit int) ([]models.MatchOutcome, error)
}

const defaultReportBatch = 100

// Announcer turns the passing of kick-off time into events, so a table that
// changes only because a match is now played still reaches live subscribers
type Announcer struct {
	matches PlayedReporter
	clock   clockwork.Clock
	batch   int
}

func NewAnnouncer(matches PlayedReporter, clock clockwork.Clock) *Announcer {
	return &Announcer{matches: matches, clock: clock, batch: defaultReportBatch}
}

// Announce reports every match that kicked off since the last run and returns
// how many were reported
func (a *Announcer) Announce(ctx context.Context) (int, error) {
	now := a.clock.Now()
	total := 0
	for {
		outcomes, err := a.matches.ReportPlayed(ctx, now, a.batch)
		if err != nil {
			return total, fmt.Errorf("failed to report played matches: %w", err)
		}
		total += len(outcomes)
		for _, o := range outcomes {
			log.Info().
				Str("match_id", o.MatchID.String()).
				Str("season_id", o.SeasonID.String()).
				Str("winner", string(o.Winner)).
				Msg("match played")
		}
		if len(outcomes) < a.batch {
			return total, nil
		}
	}
}
