package postgresadapter

import (
	"context"

	"github.com/google/uuid"

	"caucus/contexts/content/press-service/ports"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.IDGenerator = UUIDGenerator{}
