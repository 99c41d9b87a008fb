package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// transitions lists the legal moves out of every non-terminal status.
var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationStatusPending: {
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
	models.ApplicationStatusAccepted: {
		models.ApplicationStatusWithdrawn,
	},
}

// CanTransition reports whether an application may move from one status to another
func CanTransition(from, to models.ApplicationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsActive reports whether an application still blocks a new one for the same pair
func IsActive(status models.ApplicationStatus) bool {
	return status == models.ApplicationStatusPending || status == models.ApplicationStatusAccepted
}

// CheckApply fails with DuplicateApplication when existing holds an active
// application of teamID for seasonID.
func CheckApply(existing []models.Application, teamID, seasonID uuid.UUID) error {
	for _, a := range existing {
		if a.TeamID == teamID && a.SeasonID == seasonID && IsActive(a.Status) {
			return errs.New(errs.KindDuplicateApplication,
				"team %s already has a %s application for season %s", teamID, a.Status, seasonID)
		}
	}
	return nil
}

// NewApplication returns a pending application submitted at now
func NewApplication(teamID, seasonID uuid.UUID, now time.Time) models.Application {
	return models.Application{
		ID:          uuid.New(),
		TeamID:      teamID,
		SeasonID:    seasonID,
		Status:      models.ApplicationStatusPending,
		SubmittedAt: now,
	}
}

// Decide accepts or rejects a pending application.
func Decide(app models.Application, decision models.ApplicationStatus) (models.Application, error) {
	switch decision {
	case models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
	default:
		return app, errs.New(errs.KindInvalidArgument, "decision must be accepted or rejected, got %q", decision)
	}
	return transition(app, decision)
}

// Withdraw cancels a pending or accepted application.
func Withdraw(app models.Application) (models.Application, error) {
	return transition(app, models.ApplicationStatusWithdrawn)
}

func transition(app models.Application, to models.ApplicationStatus) (models.Application, error) {
	if !CanTransition(app.Status, to) {
		return app, errs.New(errs.KindInvalidTransition, "application %s cannot move from %s to %s", app.ID, app.Status, to)
	}
	app.Status = to
	return app, nil
}
