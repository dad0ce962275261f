package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/api/metrics"
	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for the booking lifecycle.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List returns the authenticated user's confirmed bookings.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.UserBooking
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create books storage at an approved partner. The price is computed from the
// partner's rate card and stamped onto the booking.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  domain.Booking
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		UserID:         userID,
		PartnerID:      req.PartnerID,
		WeightKg:       req.WeightKg,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	method := req.PaymentMethod
	if method == "" {
		method = "online"
	}
	metrics.BookingsCreatedTotal.WithLabelValues(method).Inc()

	return c.JSON(http.StatusCreated, booking)
}

// UpdateStatus applies a guarded lifecycle transition, typically the
// partner's check-in action moving a booking to collected.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string                      true  "Booking id"
// @Param        body       body      updateBookingStatusRequest  true  "Target status"
// @Success      200        {object}  domain.Booking
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /api/bookings/{bookingId} [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.UpdateStatus(c.Request().Context(), c.Param("bookingId"), domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Delete cancels a booking the requesting user owns.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string  true  "Booking id"
// @Success      200        {object}  messageResponse
// @Failure      404        {object}  map[string]string
// @Router       /api/bookings/{bookingId} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("bookingId"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Booking deleted successfully"})
}
