package models

// Ack is the controller's acknowledgment of a command, passed to callers unchanged.
type Ack struct {
	Type        string `json:"type"`                  // e.g. "AcknowledgeResponse"
	CommandEcho int    `json:"commandEcho,omitempty"` // command code the controller echoes back
}

// Identity is what the controller reports about itself.
type Identity struct {
	Model   string `json:"model"`
	Version string `json:"version,omitempty"`
}

// ControllerInfo is the diagnostics payload. It never carries the controller PIN.
type ControllerInfo struct {
	Model     string `json:"model"`
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
}

// ZoneStatus is the controller's live view of irrigating zones.
// Timestamp is taken when the payload is built, not by the controller.
type ZoneStatus struct {
	ActiveZones []int  `json:"activeZones"`
	Timestamp   string `json:"timestamp"` // ISO-8601, UTC, millisecond precision
}
