package memory

import (
	"fmt"

	"album-uploader/internal/ports/output"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDedupCapacity is the number of update ids remembered when none is configured.
// Telegram keeps undelivered updates for 24 hours; a few thousand ids cover
// redeliveries at human-paced traffic.
const DefaultDedupCapacity = 10000

// Compile-time check to ensure DeduplicationGate implements output.DeduplicationGate
var _ output.DeduplicationGate = (*DeduplicationGate)(nil)

// DeduplicationGate struct - Output adapter remembering recently seen update ids.
// The set is bounded: the least recently seen ids are evicted first. It lives in
// process memory only, so restarts and other instances do not share it.
type DeduplicationGate struct {
	seen *lru.Cache[int64, struct{}]
}

// NewDeduplicationGate creates a gate remembering up to capacity update ids
func NewDeduplicationGate(capacity int) (*DeduplicationGate, error) {
	if capacity <= 0 {
		capacity = DefaultDedupCapacity
	}
	cache, err := lru.New[int64, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedup cache: %w", err)
	}
	return &DeduplicationGate{seen: cache}, nil
}

// ShouldProcess marks updateID and reports whether it was unseen
func (g *DeduplicationGate) ShouldProcess(updateID int64) bool {
	found, _ := g.seen.ContainsOrAdd(updateID, struct{}{})
	return !found
}

// Forget unmarks updateID
func (g *DeduplicationGate) Forget(updateID int64) {
	g.seen.Remove(updateID)
}

// Len returns the number of remembered update ids
func (g *DeduplicationGate) Len() int {
	return g.seen.Len()
}
