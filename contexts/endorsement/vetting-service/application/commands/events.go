package commands

import (
	"encoding/json"
	"time"

	"caucus/contexts/endorsement/vetting-service/ports"
)

func newVettingEnvelope(
	eventID string,
	eventType string,
	vettingID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Events are partitioned by vetting for stable ordering on per-case
	// consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: "vetting-service",
		SchemaVersion: 1,
		PartitionKey:  vettingID,
		Data:          payload,
	}, nil
}
