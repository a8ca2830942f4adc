package postgresadapter

import (
	"time"

	"caucus/contexts/endorsement/digital-audit-service/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Clock = SystemClock{}
