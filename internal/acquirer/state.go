package acquirer

// State is the lifecycle position of an Acquirer.
type State int

const (
	StateCreated State = iota
	StateReferenceValidated
	StateDestinationReady
	StateTransferred
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateReferenceValidated:
		return "reference-validated"
	case StateDestinationReady:
		return "destination-ready"
	case StateTransferred:
		return "transferred"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Phase identifies the step of Run that failed.
type Phase string

const (
	PhaseValidate Phase = "validate"
	PhasePrepare  Phase = "prepare"
	PhaseTransfer Phase = "transfer"
)
