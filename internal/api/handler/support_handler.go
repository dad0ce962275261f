package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/api/metrics"
	"github.com/storo/booking-api/internal/core/ports"
)

type createTicketRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SupportHandler records customer support requests.
type SupportHandler struct {
	service ports.SupportService
}

func NewSupportHandler(service ports.SupportService) *SupportHandler {
	return &SupportHandler{service: service}
}

// CreateTicket opens a new support ticket for the caller.
//
// @Summary      Open a support ticket
// @Tags         support
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  domain.Ticket
// @Failure      400   {object}  map[string]string
// @Router       /api/support/ticket [post]
func (h *SupportHandler) CreateTicket(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.CreateTicket(c.Request().Context(), userID, req.Subject, req.Message)
	if err != nil {
		return err
	}

	metrics.TicketsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, ticket)
}
