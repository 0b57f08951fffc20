package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly created records.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a ready-to-use generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to a random UUIDv4
// when the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
