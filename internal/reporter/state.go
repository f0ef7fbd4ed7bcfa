package reporter

// State is the lifecycle of a NumberReporter. A reporter moves from Created
// to Running exactly once and ends in Completed or Failed.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
