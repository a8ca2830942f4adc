package memory

import (
	"encoding/json"

	"caucus/contexts/endorsement/vetting-service/ports"
)

func marshalEnvelope(event ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(event)
}
