package models

import "time"

// Zone is a catalog entry: a named valve circuit with its usual run length.
type Zone struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	DefaultMinutes int    `json:"defaultMinutes"`
}

// Zone event types.
const (
	EventZoneStart = "ZONE_START"
	EventStopAll   = "STOP_ALL"
)

// ZoneEvent describes the outcome of one zone command for notification sinks.
type ZoneEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // ZONE_START | STOP_ALL
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
