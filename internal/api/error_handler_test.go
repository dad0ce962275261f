package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrPartnerNotFound, http.StatusNotFound},
		{domain.ErrBookingNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrInvalidRange, http.StatusBadRequest},
		{domain.ErrInvalidResetToken, http.StatusBadRequest},
		{domain.ErrPaymentVerification, http.StatusBadRequest},
		{domain.ErrUpstreamFailure, http.StatusBadGateway},
	}

	for _, tc := range cases {
		rec, _ := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w (from pending to collected)", domain.ErrInvalidTransition)
	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("wrapped domain error must still map: got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid payload" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: socket closed unexpectedly"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details must not leak: %q", body["error"])
	}
}
