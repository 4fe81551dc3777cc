package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/kafka"
	"github.com/Domenick1991/flightreservation/internal/metrics"
	"github.com/Domenick1991/flightreservation/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid reservation input")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrConflictExhausted  = errors.New("seat allocation retries exhausted")
	ErrReservationPersist = errors.New("reservation persist failed")
)

// InsufficientSeatsError is a business rejection, not a race: retrying
// cannot help, so the allocator returns it without consuming attempts.
type InsufficientSeatsError struct {
	Requested int
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("insufficient seats: requested %d, available %d", e.Requested, e.Available)
}

type ReservationUseCase interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	ListByFlight(ctx context.Context, flightID uuid.UUID) ([]domain.Reservation, error)
}

// SeatStore is the slice of the flight repository the allocator needs:
// a versioned read and a conditional write. The store enforces the
// compare-and-swap; the service holds no locks.
type SeatStore interface {
	ReadSeatState(ctx context.Context, id uuid.UUID) (domain.SeatState, error)
	ConditionalUpdateBooked(ctx context.Context, id uuid.UUID, expectedVersion int64, newBooked int) (int64, error)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

const publishRetries = 3

type ReservationService struct {
	seats        SeatStore
	reservations repository.ReservationRepository
	audit        repository.AuditRepository
	producer     Producer
	eventsTopic  string
	maxAttempts  int
}

type CreateReservationInput struct {
	FlightID  uuid.UUID        `json:"flight_id"`
	Passenger domain.Passenger `json:"passenger"`
	Seats     int              `json:"seats"`
}

type ReservationServiceOption func(*ReservationService)

func WithMaxAttempts(n int) ReservationServiceOption {
	return func(s *ReservationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewReservationService(
	seats SeatStore,
	reservations repository.ReservationRepository,
	audit repository.AuditRepository,
	producer Producer,
	eventsTopic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		seats:        seats,
		reservations: reservations,
		audit:        audit,
		producer:     producer,
		eventsTopic:  eventsTopic,
		maxAttempts:  3,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateReservation runs the optimistic allocation protocol: read the
// seat state, check availability, commit booked+seats guarded by the
// version read, retry on conflict up to maxAttempts. Every decided
// attempt leaves exactly one audit record and one event, success or not.
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if input.Seats <= 0 {
		return nil, fmt.Errorf("%w: seats must be positive", ErrInvalidInput)
	}
	if input.Passenger.Email == "" {
		return nil, fmt.Errorf("%w: passenger email is required", ErrInvalidInput)
	}
	if input.Passenger.FamilyName == "" || input.Passenger.GivenName == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrInvalidInput)
	}

	bookedBefore, outcome, allocErr := s.allocate(ctx, input.FlightID, input.Seats)
	if outcome == "" {
		// Store failure outside the protocol's outcome set: nothing was
		// decided, nothing was committed.
		return nil, allocErr
	}

	if outcome != domain.OutcomeConfirmed {
		s.finish(ctx, input, bookedBefore, outcome, allocErr, nil)
		return nil, allocErr
	}

	res := &domain.Reservation{
		ID:        uuid.New(),
		FlightID:  input.FlightID,
		Passenger: input.Passenger,
		Seats:     input.Seats,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		// The counter increment already committed. No compensating
		// decrement here: it could race with concurrent readers, so the
		// inconsistency is surfaced for reconciliation instead.
		persistErr := fmt.Errorf("%w: %v", ErrReservationPersist, err)
		s.finish(ctx, input, bookedBefore, outcome, persistErr, nil)
		return nil, persistErr
	}

	s.finish(ctx, input, bookedBefore, outcome, nil, res)
	return res, nil
}

func (s *ReservationService) ListByFlight(ctx context.Context, flightID uuid.UUID) ([]domain.Reservation, error) {
	return s.reservations.ListByFlight(ctx, flightID)
}

// allocate returns the booked count observed before the deciding
// iteration and the protocol outcome. An empty outcome means the store
// failed before anything was decided.
func (s *ReservationService) allocate(ctx context.Context, flightID uuid.UUID, seats int) (int, domain.Outcome, error) {
	bookedBefore := 0
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		state, err := s.seats.ReadSeatState(ctx, flightID)
		if err != nil {
			if errors.Is(err, repository.ErrFlightNotFound) {
				return bookedBefore, domain.OutcomeFlightNotFound, ErrFlightNotFound
			}
			return bookedBefore, "", fmt.Errorf("read seat state: %w", err)
		}
		bookedBefore = state.Booked

		// Re-checked on every iteration with fresh state: a flight that
		// fills up between retries must reject, not loop.
		if state.Available() < seats {
			return bookedBefore, domain.OutcomeInsufficientSeats, &InsufficientSeatsError{Requested: seats, Available: state.Available()}
		}

		_, err = s.seats.ConditionalUpdateBooked(ctx, flightID, state.Version, state.Booked+seats)
		if err == nil {
			return bookedBefore, domain.OutcomeConfirmed, nil
		}
		if errors.Is(err, repository.ErrVersionMismatch) {
			metrics.SeatConflictRetries.Inc()
			continue
		}
		if errors.Is(err, repository.ErrFlightNotFound) {
			return bookedBefore, domain.OutcomeFlightNotFound, ErrFlightNotFound
		}
		return bookedBefore, "", fmt.Errorf("conditional update: %w", err)
	}
	return bookedBefore, domain.OutcomeConflictExhausted, ErrConflictExhausted
}

// finish records the audit row, publishes the event and bumps metrics.
// It runs on every decided path and never alters the outcome: audit and
// publish failures are logged and counted only.
func (s *ReservationService) finish(ctx context.Context, input CreateReservationInput, bookedBefore int, outcome domain.Outcome, attemptErr error, res *domain.Reservation) {
	metrics.BookingAttempts.WithLabelValues(string(outcome)).Inc()

	record := &domain.AuditRecord{
		Timestamp:      time.Now(),
		FlightID:       input.FlightID,
		PassengerEmail: input.Passenger.Email,
		RequestedSeats: input.Seats,
		BookedBefore:   bookedBefore,
		Outcome:        outcome,
	}
	if attemptErr != nil {
		record.ErrorDetail = attemptErr.Error()
	}
	if res != nil {
		id := res.ID
		record.ReservationID = &id
	}

	// Detached from the request context so a canceled caller cannot
	// suppress the record.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.audit.Append(auditCtx, record); err != nil {
		metrics.AuditWriteFailures.Inc()
		log.Printf("audit append failed for flight %s: %v", input.FlightID, err)
	}

	s.publish(auditCtx, input, outcome, res)
}

func (s *ReservationService) publish(ctx context.Context, input CreateReservationInput, outcome domain.Outcome, res *domain.Reservation) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Outcome:        string(outcome),
		FlightID:       input.FlightID.String(),
		Seats:          input.Seats,
		PassengerEmail: input.Passenger.Email,
		Timestamp:      time.Now(),
	}
	if res != nil {
		event.ReservationID = res.ID.String()
	}
	if err := s.producer.PublishWithRetry(ctx, s.eventsTopic, event.FlightID, event, publishRetries); err != nil {
		log.Printf("WARNING: failed to publish reservation event for flight %s: %v", event.FlightID, err)
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
