package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"creator-ledger/core/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", errors.NewAppError(errors.ErrNoSlotsSelected, "select at least one slot", nil), http.StatusBadRequest, "select at least one slot"},
		{"wrapped", fmt.Errorf("booking: %w", errors.NewAppError(errors.ErrInvalidCreatorAddress, "bad address", nil)), http.StatusBadRequest, "bad address"},
		{"settlement", errors.NewAppError(errors.ErrSettlementFailed, "payment was rejected", nil), http.StatusInternalServerError, "payment was rejected"},
		{"not found", errors.NewAppError(errors.ErrNotFound, "booking not found", nil), http.StatusNotFound, "booking not found"},
		{"echo", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "Not Found"},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := Resolve(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body.Error)
		})
	}
}

func TestHTTPErrorHandlerWritesErrorShape(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	HTTPErrorHandler(errors.NewAppError(errors.ErrInvalidInput, "kind is required", nil), c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "kind is required", body["error"])
}
