// Package handler exposes the services over HTTP with echo.  Handlers
// bind and validate transport concerns only; every rule lives in the
// service layer and reaches the handler as a typed error.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/service"
)

// writeError maps service-layer errors onto HTTP responses: rule
// violations to 400 with their reason code, missing resources to 404,
// collaborator outages to 503 so the caller knows a retry may help,
// and everything else to an opaque 500.
func writeError(c echo.Context, err error) error {
	var be *service.BusinessError
	if errors.As(err, &be) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  be.Message,
			"reason": string(be.Reason),
		})
	}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	}
	var ce *client.CommunicationError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "no se pudo contactar al servicio de " + ce.Service,
		})
	}
	c.Logger().Errorf("unhandled error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}

// pathID parses the named path parameter as a positive integer id.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	return id, nil
}

// boolQuery reads a boolean query parameter, defaulting to def when
// absent or unparseable.
func boolQuery(c echo.Context, name string, def bool) bool {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
