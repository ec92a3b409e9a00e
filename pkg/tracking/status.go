package tracking

// Status is the result code of a runtime tracking query.
type Status int

const (
	StatusSuccess Status = iota
	StatusPoseInvalid
	StatusNotTracking
	StatusSessionNotRunning
	StatusRuntimeFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPoseInvalid:
		return "pose invalid"
	case StatusNotTracking:
		return "not tracking"
	case StatusSessionNotRunning:
		return "session not running"
	case StatusRuntimeFailure:
		return "runtime failure"
	default:
		return "unknown"
	}
}

// OK reports whether the query produced a usable result.
func (s Status) OK() bool {
	return s == StatusSuccess
}
