package seasons

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

func TestValidateRegulation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Regulation)
		ok     bool
	}{
		{"default", func(r *models.Regulation) {}, true},
		{"empty tie-break list", func(r *models.Regulation) { r.TieBreakPriority = nil }, true},
		{"age bounds inverted", func(r *models.Regulation) { r.MinAge, r.MaxAge = 30, 20 }, false},
		{"squad bounds inverted", func(r *models.Regulation) { r.MinPlayers = 30 }, false},
		{"negative quota", func(r *models.Regulation) { r.MaxForeignPlayers = -1 }, false},
		{"minute bounds inverted", func(r *models.Regulation) { r.MinGoalMinute = 91 }, false},
		{"unknown criterion", func(r *models.Regulation) {
			r.TieBreakPriority = []models.TieBreakCriterion{"fairPlay"}
		}, false},
		{"duplicate criterion", func(r *models.Regulation) {
			r.TieBreakPriority = []models.TieBreakCriterion{models.TieBreakPoints, models.TieBreakPoints}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := models.DefaultRegulation()
			tt.mutate(&reg)
			err := ValidateRegulation(reg)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}
}
