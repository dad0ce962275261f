package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id and role must
// be non-empty (presence proves the middleware ran).
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// ctxPartnerID returns the partner affiliation from the verified credential.
// Partner-dashboard routes require it; a token without one is structurally
// valid but operationally unusable here.
func ctxPartnerID(c echo.Context) (string, error) {
	partnerID, _ := c.Get("partner_id").(string)
	if partnerID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "user is not associated with a partner")
	}
	return partnerID, nil
}
