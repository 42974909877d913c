package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"album-uploader/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherKeepsPerChatOrder(t *testing.T) {
	var mu sync.Mutex
	seen := map[string][]int64{}
	dispatcher := NewUpdateDispatcher(func(ctx context.Context, update domain.Update) error {
		mu.Lock()
		seen[update.ChatID] = append(seen[update.ChatID], update.ID)
		mu.Unlock()
		return nil
	}, 4, 100)
	dispatcher.Start(context.Background())

	for id := int64(0); id < 50; id++ {
		chatID := fmt.Sprintf("chat-%d", id%3)
		require.NoError(t, dispatcher.Submit(domain.NewTextCommand(id, chatID, "/help")))
	}
	dispatcher.Stop()

	total := 0
	for chatID, ids := range seen {
		total += len(ids)
		for i := 1; i < len(ids); i++ {
			assert.Less(t, ids[i-1], ids[i], "updates of %s out of order", chatID)
		}
	}
	assert.Equal(t, 50, total, "every submitted update should be processed before Stop returns")
}

func TestDispatcherQueueFull(t *testing.T) {
	dispatcher := NewUpdateDispatcher(func(ctx context.Context, update domain.Update) error {
		return nil
	}, 1, 1)

	// not started, so the single slot stays occupied
	require.NoError(t, dispatcher.Submit(domain.NewTextCommand(1, testChatID, "/help")))
	assert.ErrorIs(t, dispatcher.Submit(domain.NewTextCommand(2, testChatID, "/help")), domain.ErrQueueFull)
}

func TestDispatcherSubmitAfterStop(t *testing.T) {
	dispatcher := NewUpdateDispatcher(func(ctx context.Context, update domain.Update) error {
		return nil
	}, 2, 2)
	dispatcher.Start(context.Background())
	dispatcher.Stop()

	assert.ErrorIs(t, dispatcher.Submit(domain.NewTextCommand(1, testChatID, "/help")), domain.ErrQueueClosed)
	assert.NotPanics(t, dispatcher.Stop, "Stop should be idempotent")
}

func TestDispatcherRecoversFromPanic(t *testing.T) {
	var processed int32
	dispatcher := NewUpdateDispatcher(func(ctx context.Context, update domain.Update) error {
		if update.ID == 1 {
			panic("boom")
		}
		atomic.AddInt32(&processed, 1)
		return nil
	}, 1, 4)
	dispatcher.Start(context.Background())

	require.NoError(t, dispatcher.Submit(domain.NewTextCommand(1, testChatID, "/help")))
	require.NoError(t, dispatcher.Submit(domain.NewTextCommand(2, testChatID, "/help")))
	dispatcher.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&processed))
}

func TestDispatcherRunsChatsInParallel(t *testing.T) {
	release := make(chan struct{})
	var started int32
	dispatcher := NewUpdateDispatcher(func(ctx context.Context, update domain.Update) error {
		atomic.AddInt32(&started, 1)
		<-release
		return nil
	}, 8, 4)
	dispatcher.Start(context.Background())

	// pick two chats on different shards
	first := "chat-a"
	second := ""
	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("chat-%d", i)
		if dispatcher.shard(candidate) != dispatcher.shard(first) {
			second = candidate
			break
		}
	}
	require.NotEmpty(t, second)

	require.NoError(t, dispatcher.Submit(domain.NewTextCommand(1, first, "/help")))
	require.NoError(t, dispatcher.Submit(domain.NewTextCommand(2, second, "/help")))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&started) == 2
	}, time.Second, 5*time.Millisecond)

	close(release)
	dispatcher.Stop()
}
