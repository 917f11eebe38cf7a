// Package acquirer fetches a remote repository into a local directory.
//
// An Acquirer drives one acquisition through three ordered steps:
//
//  1. ValidateReference - syntactic check of the repository reference
//  2. PrepareDestination - make sure the destination directory exists
//  3. Transfer - hand the reference and destination to the Cloner
//
// Each step can be called on its own. Run composes them and stops at the first failure.
// An Acquirer is single use: once it has transferred or failed it must be discarded.
package acquirer

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Cloner materializes the repository at source into destination.
// Any error it returns is wrapped as ErrTransferFailed without interpretation.
type Cloner interface {
	Clone(source, destination string) error
}

// Request is the immutable input of an acquisition.
type Request struct {
	// Source is the remote repository locator, usually a URL.
	Source string

	// Destination is where the working tree is materialized. It need not exist.
	Destination string
}

// Acquirer runs a single repository acquisition.
// It is not safe for concurrent use, and two Acquirers must not share a destination.
type Acquirer struct {
	req       Request
	cloner    Cloner
	validator Validator
	fs        Filesystem
	logger    *zap.Logger

	state   State
	failure error
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithValidator replaces the default URLValidator.
func WithValidator(v Validator) Option {
	return func(a *Acquirer) { a.validator = v }
}

// WithFilesystem replaces the default OS filesystem.
func WithFilesystem(fs Filesystem) Option {
	return func(a *Acquirer) { a.fs = fs }
}

// WithLogger sets the logger used for step tracing. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Acquirer) { a.logger = l }
}

// New creates an Acquirer for source and destination.
// It fails with ErrInvalidRequest when either argument is blank or cloner is nil.
func New(source, destination string, cloner Cloner, opts ...Option) (*Acquirer, error) {
	if strings.TrimSpace(source) == "" {
		return nil, stepError(ErrInvalidRequest, fmt.Errorf("source reference is empty"))
	}
	if strings.TrimSpace(destination) == "" {
		return nil, stepError(ErrInvalidRequest, fmt.Errorf("destination path is empty"))
	}
	if cloner == nil {
		return nil, stepError(ErrInvalidRequest, fmt.Errorf("no transfer mechanism configured"))
	}

	a := &Acquirer{
		req:       Request{Source: source, Destination: destination},
		cloner:    cloner,
		validator: URLValidator{},
		fs:        NewFilesystem(afero.NewOsFs()),
		logger:    zap.NewNop(),
		state:     StateCreated,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With(
		zap.String("source", source),
		zap.String("destination", destination),
	)
	return a, nil
}

// Request returns the request the Acquirer was built with.
func (a *Acquirer) Request() Request {
	return a.req
}

// State returns the current lifecycle state.
func (a *Acquirer) State() State {
	return a.state
}

// ValidateReference checks that the reference is present and well formed.
// It does not contact the remote; unreachable repositories surface in Transfer.
func (a *Acquirer) ValidateReference() (bool, error) {
	if a.state == StateFailed {
		return false, a.failure
	}

	a.logger.Debug("validating reference")

	if strings.TrimSpace(a.req.Source) == "" {
		return false, a.fail(stepError(ErrEmptyReference, nil))
	}
	if !a.validator.IsWellFormed(a.req.Source) {
		return false, a.fail(stepError(ErrMalformedReference, fmt.Errorf("%q", a.req.Source)))
	}

	a.advance(StateReferenceValidated)
	return true, nil
}

// PrepareDestination makes sure the destination directory exists.
// An existing directory is left untouched, whether or not it is empty.
func (a *Acquirer) PrepareDestination() (bool, error) {
	if a.state == StateFailed {
		return false, a.failure
	}

	dest := a.req.Destination

	exists, err := a.fs.IsDir(dest)
	if err != nil {
		return false, a.fail(stepError(ErrDestinationUnwritable, err))
	}

	if !exists {
		a.logger.Debug("creating destination directory")
		if err := a.fs.MkdirAll(dest); err != nil {
			return false, a.fail(stepError(ErrDestinationUnwritable, err))
		}
	}

	a.advance(StateDestinationReady)
	return true, nil
}

// Transfer clones the repository into the destination and returns the destination path.
// It runs the Cloner at most once per Acquirer.
func (a *Acquirer) Transfer() (string, error) {
	switch a.state {
	case StateFailed:
		return "", a.failure
	case StateTransferred:
		return "", stepError(ErrAlreadyTransferred, nil)
	}

	a.logger.Debug("transferring repository")

	if err := a.cloner.Clone(a.req.Source, a.req.Destination); err != nil {
		return "", a.fail(stepError(ErrTransferFailed, err))
	}

	a.advance(StateTransferred)
	a.logger.Info("repository transferred")
	return a.req.Destination, nil
}

// Run validates the reference, prepares the destination and transfers, in that order.
// The first failure is returned as an *AcquisitionError naming the failed phase.
func (a *Acquirer) Run() (string, error) {
	if _, err := a.ValidateReference(); err != nil {
		return "", &AcquisitionError{Phase: PhaseValidate, Err: err}
	}
	if _, err := a.PrepareDestination(); err != nil {
		return "", &AcquisitionError{Phase: PhasePrepare, Err: err}
	}

	dest, err := a.Transfer()
	if err != nil {
		return "", &AcquisitionError{Phase: PhaseTransfer, Err: err}
	}
	return dest, nil
}

func (a *Acquirer) fail(err error) error {
	a.state = StateFailed
	a.failure = err
	a.logger.Warn("acquisition step failed", zap.Error(err))
	return err
}

// advance moves forward only; repeating an earlier idempotent step keeps the later state.
func (a *Acquirer) advance(s State) {
	if s > a.state {
		a.state = s
	}
}
