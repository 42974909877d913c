package output

// DeduplicationGate interface - Output port
// Converts at-least-once webhook delivery into at-most-once handling within
// one process instance. It does not survive restarts and is not shared
// between instances.
type DeduplicationGate interface {
	// ShouldProcess marks updateID as seen and returns true, or returns false
	// when it was already marked.
	ShouldProcess(updateID int64) bool

	// Forget unmarks updateID so a redelivery is processed again.
	Forget(updateID int64)
}
