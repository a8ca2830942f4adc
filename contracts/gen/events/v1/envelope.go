package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope carried on the bus for
// cross-runtime consumers of endorsement pipeline events (vetting.stage_changed,
// board_vote.cast, vetting.finalized). This package is generated-contract-only
// and must stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
