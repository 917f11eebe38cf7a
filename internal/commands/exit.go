package commands

import (
	"errors"

	"github.com/wlame/archivist/internal/acquirer"
	"github.com/wlame/archivist/internal/giterror"
)

// Exit codes returned by the archivist binary
const (
	ExitOK               = 0
	ExitError            = 1
	ExitInvalidInput     = 2
	ExitDestination      = 3
	ExitTransferRejected = 4
	ExitNetwork          = 5
)

// ExitCode maps an error returned by Execute to the process exit code.
//
//	2  bad flags, config, or repository reference
//	3  output directory could not be created
//	4  remote refused the clone (credentials, missing repository or branch, occupied destination)
//	5  remote could not be reached
//	1  anything else
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK

	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, acquirer.ErrInvalidRequest),
		errors.Is(err, acquirer.ErrEmptyReference),
		errors.Is(err, acquirer.ErrMalformedReference):
		return ExitInvalidInput

	case errors.Is(err, acquirer.ErrDestinationUnwritable):
		return ExitDestination

	case errors.Is(err, acquirer.ErrTransferFailed):
		cause := err
		var stepErr *acquirer.StepError
		if errors.As(err, &stepErr) && stepErr.Cause != nil {
			cause = stepErr.Cause
		}
		switch giterror.Classify(giterror.NewInspector(), cause) {
		case giterror.KindAuth, giterror.KindNotFound, giterror.KindConflict:
			return ExitTransferRejected
		case giterror.KindNetwork:
			return ExitNetwork
		}
		return ExitError

	default:
		return ExitError
	}
}
