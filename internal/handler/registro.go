package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// RegistroHandler serves the lease-record endpoints.
type RegistroHandler struct {
	Registros *service.RegistroService
}

func NewRegistroHandler(registros *service.RegistroService) *RegistroHandler {
	return &RegistroHandler{Registros: registros}
}

// Crear handles POST /api/registros for solicitudes accepted without an
// immediate lease, or for re-opening after an earlier lease ended.
func (h *RegistroHandler) Crear(c echo.Context) error {
	var body struct {
		SolicitudID  int64      `json:"solicitud_id"`
		FechaInicio  *time.Time `json:"fecha_inicio"`
		FechaFin     *time.Time `json:"fecha_fin"`
		MontoMensual float64    `json:"monto_mensual"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	if body.SolicitudID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "solicitud_id es obligatorio"})
	}
	inicio := time.Now().UTC()
	if body.FechaInicio != nil {
		inicio = body.FechaInicio.UTC()
	}
	reg, err := h.Registros.Crear(c.Request().Context(), body.SolicitudID, inicio, body.FechaFin, body.MontoMensual)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, reg)
}

// Listar handles GET /api/registros.
func (h *RegistroHandler) Listar(c echo.Context) error {
	regs, err := h.Registros.Listar(c.Request().Context(), boolQuery(c, "details", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, regs)
}

// Obtener handles GET /api/registros/:id.
func (h *RegistroHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reg, err := h.Registros.Obtener(c.Request().Context(), id, boolQuery(c, "details", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reg)
}

// PorSolicitud handles GET /api/registros/solicitud/:solicitudId.
func (h *RegistroHandler) PorSolicitud(c echo.Context) error {
	solicitudID, err := pathID(c, "solicitudId")
	if err != nil {
		return err
	}
	regs, err := h.Registros.PorSolicitud(c.Request().Context(), solicitudID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, regs)
}

// Finalizar handles POST /api/registros/:id/finalizar.
func (h *RegistroHandler) Finalizar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reg, err := h.Registros.Finalizar(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reg)
}
