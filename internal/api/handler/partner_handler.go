package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/api/metrics"
	"github.com/storo/booking-api/internal/core/ports"
)

// PartnerHandler handles partner registration, discovery, and the partner
// dashboard.
type PartnerHandler struct {
	service ports.PartnerService
}

func NewPartnerHandler(service ports.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// Register submits a new storage location with its owner account. The
// partner stays invisible to discovery until an admin approves it.
//
// @Summary      Register a partner location
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body      registerPartnerRequest  true  "Partner and owner details"
// @Success      201   {object}  registerPartnerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/partners [post]
func (h *PartnerHandler) Register(c echo.Context) error {
	var req registerPartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterPartnerInput{
		Name:          req.Name,
		Address:       req.Address,
		Longitude:     req.Longitude,
		Latitude:      req.Latitude,
		Capacity:      req.Capacity,
		Base:          req.Base,
		PerKg:         req.PerKg,
		PerHour:       req.PerHour,
		OwnerName:     req.OwnerName,
		OwnerEmail:    req.OwnerEmail,
		OwnerPassword: req.OwnerPassword,
	})
	if err != nil {
		return err
	}

	metrics.PartnersRegisteredTotal.Inc()

	return c.JSON(http.StatusCreated, registerPartnerResponse{
		Message: "Partner request submitted successfully. Awaiting admin approval.",
		Token:   result.Token,
		User:    result.User,
		Partner: result.Partner,
	})
}

// Nearby returns approved partners within a radius of the given point,
// nearest first.
//
// @Summary      Find nearby partners
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body     nearbyRequest  true  "Search point and optional radius in meters"
// @Success      200   {array}  domain.Partner
// @Router       /api/partners/nearby [post]
func (h *PartnerHandler) Nearby(c echo.Context) error {
	var req nearbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	partners, err := h.service.FindNearby(c.Request().Context(), req.Longitude, req.Latitude, req.Radius)
	if err != nil {
		return err
	}
	metrics.NearbyQueryDuration.Observe(time.Since(start).Seconds())
	metrics.NearbyResultsCount.Observe(float64(len(partners)))

	return c.JSON(http.StatusOK, partners)
}

// Profile returns the partner record bound to the caller's credential.
//
// @Summary      Get own partner profile
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Partner
// @Failure      404  {object}  map[string]string
// @Router       /api/partners/profile [get]
func (h *PartnerHandler) Profile(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	partnerID, err := ctxPartnerID(c)
	if err != nil {
		return err
	}

	partner, err := h.service.Profile(c.Request().Context(), partnerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, partner)
}

// Stats aggregates the partner's confirmed bookings within a date range.
//
// @Summary      Get partner booking stats
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Range start (RFC 3339)"
// @Param        end_date    query     string  false  "Range end (RFC 3339)"
// @Success      200         {object}  ports.BookingStats
// @Router       /api/partners/stats [get]
func (h *PartnerHandler) Stats(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	partnerID, err := ctxPartnerID(c)
	if err != nil {
		return err
	}

	from, err := parseDate(c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	to, err := parseDate(c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	stats, err := h.service.Stats(c.Request().Context(), partnerID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Bookings lists the partner's confirmed bookings within a relative or
// custom window.
//
// @Summary      List partner bookings
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        filter      query    string  false  "One of day, week, month, year, custom"
// @Param        start_date  query    string  false  "Custom range start (RFC 3339)"
// @Param        end_date    query    string  false  "Custom range end (RFC 3339)"
// @Success      200         {array}  ports.PartnerBooking
// @Router       /api/partners/bookings [get]
func (h *PartnerHandler) Bookings(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	partnerID, err := ctxPartnerID(c)
	if err != nil {
		return err
	}

	var q dashboardQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	from, err := parseDate(q.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	to, err := parseDate(q.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	bookings, err := h.service.Bookings(c.Request().Context(), partnerID, ports.DateFilter(q.Filter), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty input is the
// zero time (unbounded).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
