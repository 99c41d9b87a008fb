package rpc

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
)

// ViolationHeader carries the machine-readable violation kind on error responses
const ViolationHeader = "League-Violation"

// Error converts an app error to a connect error. Violations keep their kind in
// ViolationHeader; anything else is reported as internal.
func Error(err error) error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}

	kind := errs.KindOf(err)
	out := connect.NewError(errs.ConnectCode(kind), err)
	if kind != errs.KindUnknown {
		out.Meta().Set(ViolationHeader, string(kind))
	}
	return out
}

// ParseID parses a uuid field of a request message.
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, Error(errs.New(errs.KindInvalidArgument, "%s %q is not a valid id", field, value))
	}
	return id, nil
}
