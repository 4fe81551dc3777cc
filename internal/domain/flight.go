package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCapacity = 180

type Flight struct {
	ID            uuid.UUID
	DepartureCity string
	ArrivalCity   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	PriceCents    int64
	Capacity      int
	Booked        int
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (f *Flight) AvailableSeats() int {
	return f.Capacity - f.Booked
}

func (f *Flight) HasSeats(seats int) bool {
	return f.AvailableSeats() >= seats
}

// SeatState is the (booked, version) pair the allocator reads and
// conditionally updates. Capacity rides along so availability can be
// re-checked on every retry without a second query.
type SeatState struct {
	Capacity int
	Booked   int
	Version  int64
}

func (s SeatState) Available() int {
	return s.Capacity - s.Booked
}

// FlightFilter holds the optional catalog search criteria. Zero values
// mean no filter.
type FlightFilter struct {
	DepartureCity string
	ArrivalCity   string
	DepartureDate time.Time
	ArrivalDate   time.Time
}

func (f FlightFilter) IsEmpty() bool {
	return f.DepartureCity == "" && f.ArrivalCity == "" && f.DepartureDate.IsZero() && f.ArrivalDate.IsZero()
}
