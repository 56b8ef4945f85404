package events

import (
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps every stream in memory for the lifetime of one run.
// Handlers run synchronously after the event is stored, in subscription order.
type MemoryStore struct {
	mutex    sync.RWMutex
	log      []Event
	versions map[string]int
	order    []string
	handlers map[string][]Handler
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		versions: make(map[string]int),
		handlers: make(map[string][]Handler),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Append(stream, eventType string, date time.Time, data any) (Event, error) {
	if stream == "" {
		return Event{}, fmt.Errorf("stream id cannot be empty")
	}
	if eventType == "" {
		return Event{}, fmt.Errorf("event type cannot be empty")
	}

	s.mutex.Lock()
	if s.versions[stream] == 0 {
		s.order = append(s.order, stream)
	}
	s.versions[stream]++
	event := Event{
		Stream:  stream,
		Version: s.versions[stream],
		Type:    eventType,
		Date:    date,
		Data:    data,
	}
	s.log = append(s.log, event)
	handlers := append([]Handler(nil), s.handlers[eventType]...)
	s.mutex.Unlock()

	for _, h := range handlers {
		if err := h.Handle(event); err != nil {
			return event, fmt.Errorf("error handling event %s: %w", eventType, err)
		}
	}
	return event, nil
}

// ReadStream returns the events of one stream from fromVersion on
func (s *MemoryStore) ReadStream(stream string, fromVersion int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []Event
	for _, e := range s.log {
		if e.Stream == stream && e.Version >= fromVersion {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemoryStore) ReadAll(fromPosition int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.log) {
		return nil
	}
	return append([]Event(nil), s.log[fromPosition:]...)
}

// Streams returns stream ids in the order they were first written
func (s *MemoryStore) Streams() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return append([]string(nil), s.order...)
}

func (s *MemoryStore) Subscribe(handler Handler, eventTypes ...string) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if len(eventTypes) == 0 {
		return fmt.Errorf("at least one event type is required")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, t := range eventTypes {
		s.handlers[t] = append(s.handlers[t], handler)
	}
	return nil
}
