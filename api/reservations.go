package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

type passengerRequest struct {
	FamilyName string `json:"family_name"`
	GivenName  string `json:"given_name"`
	Email      string `json:"email"`
}

type createReservationRequest struct {
	FlightID  string           `json:"flight_id"`
	Passenger passengerRequest `json:"passenger"`
	Seats     int              `json:"seats"`
}

type reservationResponse struct {
	ReservationID string `json:"reservation_id"`
	Seats         int    `json:"seats"`
	Status        string `json:"status"`
}

type rejectionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/flight/:id", h.listByFlight)
}

func (h *ReservationHandler) listByFlight(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	reservations, err := h.service.ListByFlight(c.Request.Context(), flightID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), reservation.CreateReservationInput{
		FlightID: flightID,
		Passenger: domain.Passenger{
			FamilyName: req.Passenger.FamilyName,
			GivenName:  req.Passenger.GivenName,
			Email:      req.Passenger.Email,
		},
		Seats: req.Seats,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservationResponse{
		ReservationID: res.ID.String(),
		Seats:         res.Seats,
		Status:        "CONFIRMED",
	})
}

func (h *ReservationHandler) writeError(c *gin.Context, err error) {
	var insufficient *reservation.InsufficientSeatsError
	switch {
	case errors.Is(err, reservation.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, rejectionResponse{Status: "NOT_FOUND", Message: err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, rejectionResponse{Status: "INSUFFICIENT_SEATS", Message: err.Error()})
	case errors.Is(err, reservation.ErrConflictExhausted):
		c.JSON(http.StatusConflict, rejectionResponse{Status: "CONFLICT", Message: err.Error()})
	case errors.Is(err, reservation.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// Store failures and anything else outside the protocol's outcome
		// set are server faults, not client ones.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
