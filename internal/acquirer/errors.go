package acquirer

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind of an acquisition.
// Callers match them with errors.Is; the command layer maps them to exit codes.
var (
	// ErrInvalidRequest indicates the request was built with empty or blank fields.
	ErrInvalidRequest = errors.New("invalid acquisition request")

	// ErrEmptyReference indicates the repository reference was empty at validation time.
	ErrEmptyReference = errors.New("repository reference is empty")

	// ErrMalformedReference indicates the reference is not a well-formed repository locator.
	ErrMalformedReference = errors.New("repository reference is malformed")

	// ErrDestinationUnwritable indicates the destination directory could not be created.
	ErrDestinationUnwritable = errors.New("destination is not writable")

	// ErrTransferFailed indicates the transfer mechanism reported an error.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrAcquisitionFailed is matched by every error returned from Run.
	ErrAcquisitionFailed = errors.New("acquisition failed")

	// ErrAlreadyTransferred indicates Transfer was called twice on one Acquirer.
	ErrAlreadyTransferred = errors.New("repository already transferred")
)

// StepError is returned by a single acquisition step.
// Kind is one of the sentinels above and Cause is the underlying error, if any.
type StepError struct {
	Kind  error
	Cause error
}

func (e *StepError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StepError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// AcquisitionError is the envelope Run returns. Phase names the step that failed.
type AcquisitionError struct {
	Phase Phase
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("%v during %s: %v", ErrAcquisitionFailed, e.Phase, e.Err)
}

func (e *AcquisitionError) Unwrap() []error {
	return []error{ErrAcquisitionFailed, e.Err}
}

func stepError(kind, cause error) *StepError {
	return &StepError{Kind: kind, Cause: cause}
}
