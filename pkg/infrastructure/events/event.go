// Package events records what happened during a simulation as an append-only
// journal of per-SKU streams.
package events

import (
	"fmt"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// Event is one entry of a stream. Date is the simulated day the event happened
// on, not the wall-clock time it was recorded.
type Event struct {
	Stream  string    `json:"stream"`
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
	Data    any       `json:"data"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %v", e.Date.Format(entities.DateLayout), e.Type, e.Data)
}

// Handler reacts to events as they are appended
type Handler interface {
	Handle(event Event) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(event Event) error

func (f HandlerFunc) Handle(event Event) error {
	return f(event)
}

// Store is an append-only log of event streams. Versions are 1-based per stream,
// positions are 0-based across the whole log.
type Store interface {
	Append(stream, eventType string, date time.Time, data any) (Event, error)
	ReadStream(stream string, fromVersion int) []Event
	ReadAll(fromPosition int) []Event
	Streams() []string
	Subscribe(handler Handler, eventTypes ...string) error
}
