package constants

// JobStatus is the lifecycle state of a single extraction job.
type JobStatus string

// Stable values (the HTTP API exposes these exact strings).
const (
	JobStatusPending    JobStatus = "pending"    // enqueued, not yet picked up
	JobStatusProcessing JobStatus = "processing" // in flight
	JobStatusSuccess    JobStatus = "success"    // terminal: fields extracted
	JobStatusError      JobStatus = "error"      // terminal failure
)

// IsTerminal reports whether no further transition is allowed from s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSuccess || s == JobStatusError
}

// CanTransition reports whether a job may move from s to next.
func (s JobStatus) CanTransition(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing
	case JobStatusProcessing:
		return next == JobStatusSuccess || next == JobStatusError
	default:
		return false
	}
}
