package roster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

var validationNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func testRegulation() models.Regulation {
	return models.Regulation{
		MinAge:            16,
		MaxAge:            40,
		MinPlayers:        3,
		MaxPlayers:        25,
		MaxForeignPlayers: 3,
		MinGoalMinute:     0,
		MaxGoalMinute:     90,
		WinPoints:         3,
		DrawPoints:        1,
		LossPoints:        0,
	}
}

func playerAged(years int, typ models.PlayerType) models.Player {
	return models.Player{
		ID:        uuid.New(),
		Name:      "candidate",
		BirthDate: validationNow.AddDate(-years, 0, -1),
		Type:      typ,
	}
}

func teamWith(domestic, foreign int) models.Team {
	team := models.Team{ID: uuid.New(), Name: "Harbor FC"}
	for i := 0; i < domestic; i++ {
		team.Roster = append(team.Roster, playerAged(25, models.PlayerTypeDomestic))
	}
	for i := 0; i < foreign; i++ {
		team.Roster = append(team.Roster, playerAged(25, models.PlayerTypeForeign))
	}
	return team
}

func TestYearsBetween(t *testing.T) {
	birth := time.Date(2000, time.June, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, YearsBetween(birth, validationNow), "day before birthday")
	assert.Equal(t, 26, YearsBetween(birth, validationNow.AddDate(0, 0, 1)), "on birthday")
	assert.Equal(t, 0, YearsBetween(validationNow, validationNow))
}

func TestValidateRosterAdditionAgeBounds(t *testing.T) {
	reg := testRegulation()
	team := teamWith(2, 0)

	tests := []struct {
		name string
		age  int
		want error
	}{
		{"below minimum", 15, errs.ErrAgeOutOfRange},
		{"at minimum", 16, nil},
		{"at maximum", 40, nil},
		{"above maximum", 41, errs.ErrAgeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRosterAddition(team, playerAged(tt.age, models.PlayerTypeDomestic), reg, validationNow)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateRosterAdditionAgeIndependentOfOtherFields(t *testing.T) {
	reg := testRegulation()
	// a full roster with a full foreign quota still reports the age problem first
	team := teamWith(22, 3)

	err := ValidateRosterAddition(team, playerAged(50, models.PlayerTypeForeign), reg, validationNow)
	assert.ErrorIs(t, err, errs.ErrAgeOutOfRange)
}

func TestValidateRosterAdditionForeignQuota(t *testing.T) {
	reg := testRegulation()

	err := ValidateRosterAddition(teamWith(5, 3), playerAged(22, models.PlayerTypeForeign), reg, validationNow)
	assert.ErrorIs(t, err, errs.ErrForeignQuotaExceeded)

	err = ValidateRosterAddition(teamWith(5, 2), playerAged(22, models.PlayerTypeForeign), reg, validationNow)
	assert.NoError(t, err)

	// domestic players are not counted against the quota
	err = ValidateRosterAddition(teamWith(5, 3), playerAged(22, models.PlayerTypeDomestic), reg, validationNow)
	assert.NoError(t, err)
}

func TestValidateRosterAdditionRosterFull(t *testing.T) {
	reg := testRegulation()

	err := ValidateRosterAddition(teamWith(25, 0), playerAged(22, models.PlayerTypeDomestic), reg, validationNow)
	require.Error(t, err)
	assert.Equal(t, errs.KindRosterFull, errs.KindOf(err))

	err = ValidateRosterAddition(teamWith(24, 0), playerAged(22, models.PlayerTypeDomestic), reg, validationNow)
	assert.NoError(t, err)
}

func TestValidateRosterAdditionQuotaCheckedBeforeSize(t *testing.T) {
	reg := testRegulation()

	err := ValidateRosterAddition(teamWith(22, 3), playerAged(22, models.PlayerTypeForeign), reg, validationNow)
	assert.ErrorIs(t, err, errs.ErrForeignQuotaExceeded)
}

func TestValidateRosterChangeExcludesCurrentEntry(t *testing.T) {
	reg := testRegulation()
	team := teamWith(21, 3)
	existing := team.Roster[0]

	// switching a domestic player to foreign would exceed the quota
	switched := existing
	switched.Type = models.PlayerTypeForeign
	assert.ErrorIs(t, ValidateRosterChange(team, switched, reg, validationNow), errs.ErrForeignQuotaExceeded)

	// editing a foreign player in place on a full roster is fine
	foreign := team.Roster[len(team.Roster)-1]
	foreign.Name = "renamed"
	full := teamWith(22, 3)
	full.Roster[len(full.Roster)-1] = foreign
	assert.NoError(t, ValidateRosterChange(full, foreign, reg, validationNow))
}

func TestValidateRosterMinimum(t *testing.T) {
	reg := testRegulation()

	assert.ErrorIs(t, ValidateRosterMinimum(teamWith(2, 0), reg), errs.ErrRosterTooSmall)
	assert.NoError(t, ValidateRosterMinimum(teamWith(2, 1), reg))
}
