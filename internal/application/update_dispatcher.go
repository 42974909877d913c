package application

import (
	"context"
	"hash/fnv"
	"runtime/debug"
	"sync"

	"album-uploader/internal/domain"

	"github.com/sirupsen/logrus"
)

// Default dispatcher sizing
const (
	DefaultDispatcherWorkers   = 8
	DefaultDispatcherQueueSize = 64
)

// UpdateHandlerFunc processes one update on a dispatcher worker
type UpdateHandlerFunc func(ctx context.Context, update domain.Update) error

// UpdateDispatcher struct - Decouples webhook acknowledgement from processing.
// Updates are sharded by chat id so one chat is always handled by the same
// worker in submission order, while different chats run in parallel.
type UpdateDispatcher struct {
	handler UpdateHandlerFunc
	queues  []chan domain.Update

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewUpdateDispatcher func - Creates new dispatcher with workers shards of queueSize each
func NewUpdateDispatcher(handler UpdateHandlerFunc, workers, queueSize int) *UpdateDispatcher {
	if workers <= 0 {
		workers = DefaultDispatcherWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultDispatcherQueueSize
	}
	queues := make([]chan domain.Update, workers)
	for i := range queues {
		queues[i] = make(chan domain.Update, queueSize)
	}
	return &UpdateDispatcher{
		handler: handler,
		queues:  queues,
	}
}

// Start launches one worker per shard. Calling Start twice is a no-op.
func (d *UpdateDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i, queue := range d.queues {
		d.wg.Add(1)
		go d.work(ctx, i, queue)
	}
	logrus.Infof("Update dispatcher started with %d workers", len(d.queues))
}

// Submit enqueues update without blocking.
// Returns domain.ErrQueueClosed after Stop and domain.ErrQueueFull when the
// chat's shard is saturated.
func (d *UpdateDispatcher) Submit(update domain.Update) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return domain.ErrQueueClosed
	}

	select {
	case d.queues[d.shard(update.ChatID)] <- update:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Stop closes the queues and waits until the workers drained them
func (d *UpdateDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
	logrus.Info("Update dispatcher stopped")
}

func (d *UpdateDispatcher) shard(chatID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(chatID))
	return int(h.Sum32() % uint32(len(d.queues)))
}

func (d *UpdateDispatcher) work(ctx context.Context, id int, queue <-chan domain.Update) {
	defer d.wg.Done()
	for update := range queue {
		d.handle(ctx, id, update)
	}
}

// handle - A panicking update is logged and skipped, the worker keeps running
func (d *UpdateDispatcher) handle(ctx context.Context, id int, update domain.Update) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"worker":    id,
				"update_id": update.ID,
				"chat_id":   update.ChatID,
			}).Errorf("Panic while processing update: %v\n%s", r, debug.Stack())
		}
	}()

	if err := d.handler(ctx, update); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"worker":    id,
			"update_id": update.ID,
			"chat_id":   update.ChatID,
		}).Error("Failed to process update")
	}
}
