package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeConfirmed         Outcome = "CONFIRMED"
	OutcomeFlightNotFound    Outcome = "FLIGHT_NOT_FOUND"
	OutcomeInsufficientSeats Outcome = "INSUFFICIENT_SEATS"
	OutcomeConflictExhausted Outcome = "CONFLICT_EXHAUSTED"
)

type Passenger struct {
	FamilyName string
	GivenName  string
	Email      string
}

func (p Passenger) FullName() string {
	return p.GivenName + " " + p.FamilyName
}

type Reservation struct {
	ID        uuid.UUID
	FlightID  uuid.UUID
	Passenger Passenger
	Seats     int
	CreatedAt time.Time
}
