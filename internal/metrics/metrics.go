package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingAttempts counts allocation attempts by final outcome.
	BookingAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_attempts_total",
		Help: "Total booking attempts by outcome.",
	}, []string{"outcome"})

	// SeatConflictRetries counts conditional-write rejections that led to
	// a retry of the allocation loop.
	SeatConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seat_conflict_retries_total",
		Help: "Total optimistic-lock conflicts retried by the seat allocator.",
	})

	// AuditWriteFailures counts audit records that could not be persisted.
	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Total audit records that failed to persist.",
	})
)
