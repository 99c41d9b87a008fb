package errs

import "connectrpc.com/connect"

// ConnectCode maps a violation kind to a connect status code.
func ConnectCode(kind Kind) connect.Code {
	switch kind {
	case KindDuplicateApplication:
		return connect.CodeAlreadyExists
	case KindNotFound:
		return connect.CodeNotFound
	case KindInvalidTransition, KindForeignQuotaExceeded, KindRosterFull, KindRosterTooSmall,
		KindRegulationLocked, KindMatchLocked, KindTeamInUse:
		return connect.CodeFailedPrecondition
	case KindAgeOutOfRange, KindInvalidMinute, KindTeamNotInMatch, KindPlayerNotOnTeam, KindInvalidArgument:
		return connect.CodeInvalidArgument
	default:
		return connect.CodeInternal
	}
}
