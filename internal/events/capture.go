package events

import (
	"encoding/json"
	"sync"
	"time"
)

// Capture is a Sink that records events for assertions in tests.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

// NewCapture returns an empty capture sink.
func NewCapture() *Capture {
	return &Capture{}
}

// Publish records the event.
func (c *Capture) Publish(channel string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{
		Seq:     uint64(len(c.events) + 1),
		Channel: channel,
		Time:    time.Now().UTC(),
		Payload: body,
	})
}

// Events returns a copy of everything recorded so far.
func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// OnChannel returns recorded events for one channel, in publish order.
func (c *Capture) OnChannel(channel string) []Event {
	var out []Event
	for _, event := range c.Events() {
		if event.Channel == channel {
			out = append(out, event)
		}
	}
	return out
}
