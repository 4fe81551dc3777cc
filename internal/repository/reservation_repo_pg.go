package repository

import (
	"context"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	ListByFlight(ctx context.Context, flightID uuid.UUID) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	return r.db.QueryRow(ctx, `INSERT INTO reservations (id, flight_id, family_name, given_name, email, seats)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		reservation.ID, reservation.FlightID, reservation.Passenger.FamilyName, reservation.Passenger.GivenName, reservation.Passenger.Email, reservation.Seats).
		Scan(&reservation.CreatedAt)
}

func (r *PGReservationRepository) ListByFlight(ctx context.Context, flightID uuid.UUID) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, family_name, given_name, email, seats, created_at FROM reservations WHERE flight_id=$1 ORDER BY created_at`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.FlightID, &res.Passenger.FamilyName, &res.Passenger.GivenName, &res.Passenger.Email, &res.Seats, &res.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
