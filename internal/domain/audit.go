package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord captures one booking attempt, whatever its outcome.
// Records are append-only: written once and never updated.
type AuditRecord struct {
	ID             uuid.UUID
	Timestamp      time.Time
	FlightID       uuid.UUID
	PassengerEmail string
	RequestedSeats int
	BookedBefore   int
	Outcome        Outcome
	ErrorDetail    string
	ReservationID  *uuid.UUID
}
