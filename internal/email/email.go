package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightreservation/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("send email to %s: reservation %s for flight %s (%d seats) %s\n",
		event.PassengerEmail, event.ReservationID, event.FlightID, event.Seats, event.Outcome)
	return nil
}
