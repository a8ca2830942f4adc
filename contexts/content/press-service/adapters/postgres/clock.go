package postgresadapter

import (
	"time"

	"caucus/contexts/content/press-service/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Clock = SystemClock{}
