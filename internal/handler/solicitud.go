package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// SolicitudHandler serves the rental-application endpoints.
type SolicitudHandler struct {
	Solicitudes *service.SolicitudService
}

func NewSolicitudHandler(solicitudes *service.SolicitudService) *SolicitudHandler {
	return &SolicitudHandler{Solicitudes: solicitudes}
}

// Crear handles POST /api/solicitudes.
func (h *SolicitudHandler) Crear(c echo.Context) error {
	var body struct {
		UsuarioID   int64 `json:"usuario_id"`
		PropiedadID int64 `json:"propiedad_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	if body.UsuarioID <= 0 || body.PropiedadID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "usuario_id y propiedad_id son obligatorios"})
	}
	sol, err := h.Solicitudes.Crear(c.Request().Context(), body.UsuarioID, body.PropiedadID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sol)
}

// Listar handles GET /api/solicitudes.  ?details=true enriches each
// solicitud with its remote user and property.
func (h *SolicitudHandler) Listar(c echo.Context) error {
	sols, err := h.Solicitudes.Listar(c.Request().Context(), boolQuery(c, "details", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sols)
}

// Obtener handles GET /api/solicitudes/:id.
func (h *SolicitudHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sol, err := h.Solicitudes.Obtener(c.Request().Context(), id, boolQuery(c, "details", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sol)
}

// PorUsuario handles GET /api/solicitudes/usuario/:usuarioId.
func (h *SolicitudHandler) PorUsuario(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	sols, err := h.Solicitudes.PorUsuario(c.Request().Context(), usuarioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sols)
}

// PorPropiedad handles GET /api/solicitudes/propiedad/:propiedadId.
func (h *SolicitudHandler) PorPropiedad(c echo.Context) error {
	propiedadID, err := pathID(c, "propiedadId")
	if err != nil {
		return err
	}
	sols, err := h.Solicitudes.PorPropiedad(c.Request().Context(), propiedadID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sols)
}

// Aceptar handles POST /api/solicitudes/:id/aceptar.  The lease
// parameters are optional: an omitted monto_mensual is resolved from
// the property service and an omitted fecha_inicio defaults to today.
func (h *SolicitudHandler) Aceptar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		FechaInicio  *time.Time `json:"fecha_inicio"`
		FechaFin     *time.Time `json:"fecha_fin"`
		MontoMensual *float64   `json:"monto_mensual"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	sol, reg, err := h.Solicitudes.Aceptar(c.Request().Context(), id, service.AperturaRegistro{
		FechaInicio:  body.FechaInicio,
		FechaFin:     body.FechaFin,
		MontoMensual: body.MontoMensual,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"solicitud": sol, "registro": reg})
}

// Rechazar handles POST /api/solicitudes/:id/rechazar.
func (h *SolicitudHandler) Rechazar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sol, err := h.Solicitudes.Rechazar(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sol)
}
