package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrVersionMismatch = errors.New("flight version mismatch")
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	ReadSeatState(ctx context.Context, id uuid.UUID) (domain.SeatState, error)
	ConditionalUpdateBooked(ctx context.Context, id uuid.UUID, expectedVersion int64, newBooked int) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, departure_city, arrival_city, departure_time, arrival_time, price_cents, capacity, booked, version, created_at, updated_at`

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights`
	var conds []string
	var args []interface{}

	if filter.DepartureCity != "" {
		args = append(args, "%"+strings.ToLower(filter.DepartureCity)+"%")
		conds = append(conds, fmt.Sprintf("lower(departure_city) LIKE $%d", len(args)))
	}
	if filter.ArrivalCity != "" {
		args = append(args, "%"+strings.ToLower(filter.ArrivalCity)+"%")
		conds = append(conds, fmt.Sprintf("lower(arrival_city) LIKE $%d", len(args)))
	}
	if !filter.DepartureDate.IsZero() {
		args = append(args, filter.DepartureDate)
		conds = append(conds, fmt.Sprintf("departure_time::date = $%d::date", len(args)))
	}
	if !filter.ArrivalDate.IsZero() {
		args = append(args, filter.ArrivalDate)
		conds = append(conds, fmt.Sprintf("arrival_time::date = $%d::date", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.Capacity, &f.Booked, &f.Version, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.Capacity, &f.Booked, &f.Version, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	if flight.Capacity == 0 {
		flight.Capacity = domain.DefaultCapacity
	}
	return r.db.QueryRow(ctx, `INSERT INTO flights (id, departure_city, arrival_city, departure_time, arrival_time, price_cents, capacity, booked, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0)
		RETURNING booked, version, created_at, updated_at`,
		flight.ID, flight.DepartureCity, flight.ArrivalCity, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.Capacity).
		Scan(&flight.Booked, &flight.Version, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) ReadSeatState(ctx context.Context, id uuid.UUID) (domain.SeatState, error) {
	var s domain.SeatState
	err := r.db.QueryRow(ctx, `SELECT capacity, booked, version FROM flights WHERE id=$1`, id).Scan(&s.Capacity, &s.Booked, &s.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SeatState{}, ErrFlightNotFound
		}
		return domain.SeatState{}, err
	}
	return s, nil
}

// ConditionalUpdateBooked commits the new booked count only if the row
// still carries expectedVersion. The UPDATE itself is the compare-and-swap;
// no row lock is held outside the statement.
func (r *PGFlightRepository) ConditionalUpdateBooked(ctx context.Context, id uuid.UUID, expectedVersion int64, newBooked int) (int64, error) {
	var newVersion int64
	err := r.db.QueryRow(ctx, `UPDATE flights SET booked=$3, version=version+1, updated_at=now() WHERE id=$1 AND version=$2 RETURNING version`,
		id, expectedVersion, newBooked).Scan(&newVersion)
	if err == nil {
		return newVersion, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// Zero rows matched: either the flight is gone or a concurrent writer
	// bumped the version.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrFlightNotFound
	}
	return 0, ErrVersionMismatch
}

var _ FlightRepository = (*PGFlightRepository)(nil)
