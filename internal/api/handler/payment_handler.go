package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/api/metrics"
	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

type createOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type verifyPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	OrderID   string `json:"order_id"   validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature"  validate:"required"`
}

// PaymentHandler bridges the client checkout flow and the payment gateway.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateOrder registers a gateway order for a booking's stamped price.
//
// @Summary      Create a payment order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Booking to pay for"
// @Success      201   {object}  domain.PaymentOrder
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/payments/create-order [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.CreateOrder(c.Request().Context(), req.BookingID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Verify checks a gateway confirmation and marks the booking paid.
//
// @Summary      Verify a payment confirmation
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyPaymentRequest  true  "Gateway confirmation triple"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/payments/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Verify(c.Request().Context(), ports.VerifyPaymentInput{
		UserID:    userID,
		BookingID: req.BookingID,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentVerification) {
			metrics.PaymentsVerifiedTotal.WithLabelValues("invalid_signature").Inc()
		} else {
			metrics.PaymentsVerifiedTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PaymentsVerifiedTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, booking)
}
