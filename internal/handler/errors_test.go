package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/service"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrorMapeaBusinessErrorA400ConReason(t *testing.T) {
	c, rec := testContext(t)
	err := &service.BusinessError{Reason: service.ReasonSolicitudDuplicada, Message: "ya existe"}

	require.NoError(t, writeError(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"SOLICITUD_DUPLICADA"`)
	assert.Contains(t, rec.Body.String(), "ya existe")
}

func TestWriteErrorMapeaNotFoundA404(t *testing.T) {
	c, rec := testContext(t)
	err := &service.NotFoundError{Recurso: "solicitud", ID: 9}

	require.NoError(t, writeError(c, err))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "solicitud no encontrada con ID: 9")
}

func TestWriteErrorMapeaCommunicationErrorA503(t *testing.T) {
	c, rec := testContext(t)
	err := &client.CommunicationError{Service: "user-service", Err: errors.New("timeout")}

	require.NoError(t, writeError(c, err))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-service")
}

func TestWriteErrorOcultaErroresInternos(t *testing.T) {
	c, rec := testContext(t)

	require.NoError(t, writeError(c, errors.New("driver: bad connection")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bad connection")
}

func TestPathIDRechazaValoresNoNumericos(t *testing.T) {
	e := echo.New()
	for _, raw := range []string{"abc", "", "-4", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)

		_, err := pathID(c, "id")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}
