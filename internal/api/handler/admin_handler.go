package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/core/ports"
)

// AdminHandler exposes the admin approval workflow. All routes are gated by
// the admin role in the router.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Stats returns platform-wide partner and user counts.
//
// @Summary      Admin platform stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PlatformStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListPending returns partners awaiting approval with their owner accounts.
//
// @Summary      List pending partners
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.PartnerWithOwner
// @Router       /api/admin/partners/pending [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	items, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListApproved returns approved partners with their owner accounts.
//
// @Summary      List approved partners
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.PartnerWithOwner
// @Router       /api/admin/partners/approved [get]
func (h *AdminHandler) ListApproved(c echo.Context) error {
	items, err := h.service.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Approve makes a partner visible to discovery. Idempotent.
//
// @Summary      Approve a partner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        partnerId  path      string  true  "Partner id"
// @Success      200        {object}  domain.Partner
// @Failure      404        {object}  map[string]string
// @Router       /api/admin/partners/{partnerId}/approve [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	partner, err := h.service.Approve(c.Request().Context(), c.Param("partnerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, partner)
}

// Reject deletes a partner request along with its paired owner account.
//
// @Summary      Reject a partner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        partnerId  path      string  true  "Partner id"
// @Success      200        {object}  messageResponse
// @Failure      404        {object}  map[string]string
// @Router       /api/admin/partners/{partnerId}/reject [delete]
func (h *AdminHandler) Reject(c echo.Context) error {
	if err := h.service.Reject(c.Request().Context(), c.Param("partnerId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Partner request rejected and deleted successfully"})
}
