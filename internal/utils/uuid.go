package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for users and pending transactions.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered V7 UUID, falling back to V4 if the
// system entropy source misbehaves.
func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
