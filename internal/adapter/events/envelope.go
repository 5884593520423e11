package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "user-table-service/internal/domain/user"
)

// SpecVersionV1 is the envelope format version written by this service.
const SpecVersionV1 = "1.0"

// Domain is the envelope domain of every user event.
const Domain = "users"

// Envelope wraps an event payload with routing metadata.
type Envelope struct {
	SpecVersion string            `json:"spec_version"`
	Domain      string            `json:"domain"`
	EventType   string            `json:"event_type"`
	Source      string            `json:"source"`
	Timestamp   time.Time         `json:"timestamp"`
	Correlation map[string]string `json:"correlation,omitempty"`
	Payload     json.RawMessage   `json:"payload"`
}

// ErrUnknownEventType is returned for event types this service does not emit.
var ErrUnknownEventType = errors.New("unknown event type")

// validate rejects envelopes consumers could not route.
func (e Envelope) validate() error {
	switch e.EventType {
	case domain.EventCreated, domain.EventUpdated, domain.EventDeleted:
	case "":
		return errors.New("event_type is required")
	default:
		return fmt.Errorf("%w %q", ErrUnknownEventType, e.EventType)
	}

	if e.Source == "" {
		return errors.New("source is required")
	}
	if len(e.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}
