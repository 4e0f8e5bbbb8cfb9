// Package idgen generates transaction identifiers for bookings the service
// initiates itself (the starting-balance posting). Exchange bookings use the
// caller-supplied id instead.
package idgen

import (
	"github.com/google/uuid"

	"kantor/pkg/domain"
)

// Generator produces opaque transaction ids.
type Generator interface {
	Generate() domain.TransactionID
}

// UUID generates random UUID transaction ids.
type UUID struct{}

func (UUID) Generate() domain.TransactionID {
	return domain.TransactionID(uuid.NewString())
}
