package memory

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicationGateFirstSeenOnly(t *testing.T) {
	gate, err := NewDeduplicationGate(16)
	require.NoError(t, err)

	assert.True(t, gate.ShouldProcess(42), "first delivery should be processed")
	assert.False(t, gate.ShouldProcess(42), "redelivery should be skipped")
	assert.True(t, gate.ShouldProcess(43), "a different id should be processed")
	assert.Equal(t, 2, gate.Len())
}

func TestDeduplicationGateForget(t *testing.T) {
	gate, err := NewDeduplicationGate(16)
	require.NoError(t, err)

	require.True(t, gate.ShouldProcess(7))
	gate.Forget(7)

	assert.True(t, gate.ShouldProcess(7), "forgotten id should be accepted again")
	assert.NotPanics(t, func() { gate.Forget(999) })
}

func TestDeduplicationGateEvictsOldestPastCapacity(t *testing.T) {
	gate, err := NewDeduplicationGate(3)
	require.NoError(t, err)

	for id := int64(1); id <= 4; id++ {
		require.True(t, gate.ShouldProcess(id))
	}

	assert.Equal(t, 3, gate.Len())
	assert.True(t, gate.ShouldProcess(1), "evicted id is treated as new")
}

func TestDeduplicationGateDefaultCapacity(t *testing.T) {
	gate, err := NewDeduplicationGate(0)
	require.NoError(t, err)

	for id := int64(0); id < DefaultDedupCapacity+10; id++ {
		gate.ShouldProcess(id)
	}
	assert.Equal(t, DefaultDedupCapacity, gate.Len())
}

func TestDeduplicationGateConcurrentSameID(t *testing.T) {
	gate, err := NewDeduplicationGate(16)
	require.NoError(t, err)

	var accepted int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.ShouldProcess(1001) {
				atomic.AddInt32(&accepted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted, "exactly one concurrent delivery may pass")
}
