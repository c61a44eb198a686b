package service

// ZoneParams is the editable part of a catalog entry.
type ZoneParams struct {
	Name           string
	DefaultMinutes any // numeric-ish, like request durations
}

// Operation names used for response metrics.
const (
	opStartZone      = "start_zone"
	opStopZone       = "stop_zone"
	opControllerInfo = "controller_info"
	opZoneStatus     = "zone_status"
	opListZones      = "list_zones"
	opSaveZone       = "save_zone"
)

// Caller-facing messages. Success messages with arguments are built in place.
const (
	msgAllStopped      = "All zones stopped"
	msgInfoRetrieved   = "Controller info retrieved"
	msgStatusRetrieved = "Zone status retrieved"
	msgZonesRetrieved  = "Zones retrieved"
	msgZoneSaved       = "Zone saved"
	msgStartFailed     = "Failed to start zone"
	msgStopFailed      = "Failed to stop zone"
	msgInfoFailed      = "Failed to get controller info"
	msgStatusFailed    = "Failed to get zone status"
	msgListZonesFailed = "Failed to list zones"
	msgSaveZoneFailed  = "Failed to save zone"
)

// isoMillis is the ISO-8601 layout used for response timestamps.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"
