package identity

import (
	"gatekeeper/internal/core/domain/attempt"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateAttemptID() attempt.ID {
	return attempt.ID(uuid.New().String())
}
