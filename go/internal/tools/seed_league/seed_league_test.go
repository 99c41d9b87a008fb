package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

func TestParseSnapshotDefaultsRegulation(t *testing.T) {
	snap, err := parseSnapshot([]byte(`{
		"seasons": [{"id": "6f1c7d5e-7c1a-4d43-9a55-2f0b5a0c9a11", "name": "2026", "start_date": "2026-08-01", "end_date": "2027-05-31"}],
		"teams": [{"id": "0d9b0f42-3b8e-4c59-8f2c-8e7f0d7d2c01", "name": "Rovers", "home_stadium": "Riverside",
			"players": [{"id": "a1f0c3de-93b1-4f34-8d8f-7f1c2b9e4a10", "name": "Sam Keeper", "birth_date": "2001-03-04", "type": "domestic"}]}]
	}`))
	require.NoError(t, err)
	require.Len(t, snap.Seasons, 1)
	assert.Equal(t, models.DefaultRegulation(), *snap.Seasons[0].Regulation)
	assert.Equal(t, models.PlayerTypeDomestic, snap.Teams[0].Players[0].Type)
}

func TestParseSnapshotRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"regulation": `{"seasons": [{"name": "x", "start_date": "2026-08-01", "end_date": "2027-05-31", "regulation": {"minAge": 30, "maxAge": 20}}]}`,
		"dates":      `{"seasons": [{"name": "x", "start_date": "2027-08-01", "end_date": "2026-05-31"}]}`,
		"type":       `{"teams": [{"name": "x", "players": [{"name": "p", "birth_date": "2000-01-01", "type": "alien"}]}]}`,
		"birth date": `{"teams": [{"name": "x", "players": [{"name": "p", "birth_date": "01/01/2000", "type": "foreign"}]}]}`,
		"json":       `{`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseSnapshot([]byte(body))
			assert.Error(t, err)
		})
	}

	_, err := parseSnapshot([]byte(tests["regulation"]))
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}
