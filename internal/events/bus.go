package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"cascii/internal/logging"
)

// Bus is a bounded in-memory event journal. Old events are discarded once
// the ring fills; pollers that fall behind resume from the oldest retained
// event.
type Bus struct {
	mu      sync.Mutex
	ring    []Event
	size    int
	nextSeq uint64
	wakeup  chan struct{}
	logger  *slog.Logger
	now     func() time.Time
}

// NewBus builds a bus retaining up to size events.
func NewBus(size int, logger *slog.Logger) *Bus {
	if size <= 0 {
		size = 1024
	}
	return &Bus{
		size:   size,
		wakeup: make(chan struct{}),
		logger: logging.NewComponentLogger(logger, "events"),
		now:    time.Now,
	}
}

// Publish appends an event. Payloads that fail to marshal are dropped with
// a log line rather than surfacing to the pipeline.
func (b *Bus) Publish(channel string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("drop unmarshalable event",
			logging.String("channel", channel),
			logging.Error(err),
		)
		return
	}

	b.mu.Lock()
	b.nextSeq++
	event := Event{
		Seq:     b.nextSeq,
		Channel: channel,
		Time:    b.now().UTC(),
		Payload: body,
	}
	b.ring = append(b.ring, event)
	if len(b.ring) > b.size {
		b.ring = b.ring[len(b.ring)-b.size:]
	}
	wakeup := b.wakeup
	b.wakeup = make(chan struct{})
	b.mu.Unlock()

	close(wakeup)
}

// Tail returns events with sequence numbers greater than afterSeq. When no
// such events exist it blocks up to wait for one to arrive. The returned
// cursor is the highest sequence the caller has now seen.
func (b *Bus) Tail(ctx context.Context, afterSeq uint64, wait time.Duration) ([]Event, uint64, error) {
	deadline := b.now().Add(wait)
	for {
		pending, cursor, wakeup := b.collect(afterSeq)
		if len(pending) > 0 || wait <= 0 {
			return pending, cursor, nil
		}

		remaining := deadline.Sub(b.now())
		if remaining <= 0 {
			return nil, cursor, nil
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, cursor, ctx.Err()
		case <-timer.C:
			return b.collectNow(afterSeq)
		case <-wakeup:
			timer.Stop()
		}
	}
}

func (b *Bus) collect(afterSeq uint64) ([]Event, uint64, chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cursor := afterSeq
	if b.nextSeq < cursor {
		// The daemon restarted with a fresh sequence; resync the caller.
		cursor = 0
	}
	var pending []Event
	for _, event := range b.ring {
		if event.Seq > cursor {
			pending = append(pending, event)
		}
	}
	if len(pending) > 0 {
		cursor = pending[len(pending)-1].Seq
	}
	return pending, cursor, b.wakeup
}

func (b *Bus) collectNow(afterSeq uint64) ([]Event, uint64, error) {
	pending, cursor, _ := b.collect(afterSeq)
	return pending, cursor, nil
}
