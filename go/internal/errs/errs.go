// Package errs holds the league's violation taxonomy. Every rule check returns
// one specific Kind so callers can render a precise message without parsing text.
package errs

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable violation code.
type Kind string

const (
	KindUnknown Kind = "UNKNOWN"

	// Application workflow
	KindDuplicateApplication Kind = "DUPLICATE_APPLICATION"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindNotFound             Kind = "NOT_FOUND"

	// Roster eligibility
	KindAgeOutOfRange        Kind = "AGE_OUT_OF_RANGE"
	KindForeignQuotaExceeded Kind = "FOREIGN_QUOTA_EXCEEDED"
	KindRosterFull           Kind = "ROSTER_FULL"
	KindRosterTooSmall       Kind = "ROSTER_TOO_SMALL"

	// Match results
	KindInvalidMinute   Kind = "INVALID_MINUTE"
	KindTeamNotInMatch  Kind = "TEAM_NOT_IN_MATCH"
	KindPlayerNotOnTeam Kind = "PLAYER_NOT_ON_TEAM"
	KindMatchLocked     Kind = "MATCH_LOCKED"

	// Configuration
	KindInvalidArgument  Kind = "INVALID_ARGUMENT"
	KindRegulationLocked Kind = "REGULATION_LOCKED"
	KindTeamInUse        Kind = "TEAM_IN_USE"
)

// Error is a rule violation of a specific Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrRosterFull)
// holds for every roster-full violation regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New returns a violation of kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the violation kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Sentinels for errors.Is.
var (
	ErrDuplicateApplication = &Error{Kind: KindDuplicateApplication}
	ErrInvalidTransition    = &Error{Kind: KindInvalidTransition}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrAgeOutOfRange        = &Error{Kind: KindAgeOutOfRange}
	ErrForeignQuotaExceeded = &Error{Kind: KindForeignQuotaExceeded}
	ErrRosterFull           = &Error{Kind: KindRosterFull}
	ErrRosterTooSmall       = &Error{Kind: KindRosterTooSmall}
	ErrInvalidMinute        = &Error{Kind: KindInvalidMinute}
	ErrTeamNotInMatch       = &Error{Kind: KindTeamNotInMatch}
	ErrPlayerNotOnTeam      = &Error{Kind: KindPlayerNotOnTeam}
	ErrMatchLocked          = &Error{Kind: KindMatchLocked}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
	ErrRegulationLocked     = &Error{Kind: KindRegulationLocked}
	ErrTeamInUse            = &Error{Kind: KindTeamInUse}
)
