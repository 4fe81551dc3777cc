package repository

import (
	"context"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository is append-only: audit rows are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, record *domain.AuditRecord) error
}

type PGAuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) AuditRepository {
	return &PGAuditRepository{db: db}
}

func (r *PGAuditRepository) Append(ctx context.Context, record *domain.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO audit_logs (id, ts, flight_id, passenger_email, requested_seats, booked_before, outcome, error_detail, reservation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.Timestamp, record.FlightID, record.PassengerEmail, record.RequestedSeats, record.BookedBefore, record.Outcome, record.ErrorDetail, record.ReservationID)
	return err
}

var _ AuditRepository = (*PGAuditRepository)(nil)
