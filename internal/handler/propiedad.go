package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// PropiedadHandler serves the listing endpoints.
type PropiedadHandler struct {
	Propiedades *service.PropiedadService
}

func NewPropiedadHandler(propiedades *service.PropiedadService) *PropiedadHandler {
	return &PropiedadHandler{Propiedades: propiedades}
}

// Crear handles POST /api/propiedades.
func (h *PropiedadHandler) Crear(c echo.Context) error {
	var body service.NuevaPropiedad
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	p, err := h.Propiedades.Crear(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Listar handles GET /api/propiedades.  ?disponibles=true narrows the
// list to properties open for new solicitudes.
func (h *PropiedadHandler) Listar(c echo.Context) error {
	ps, err := h.Propiedades.Listar(c.Request().Context(), boolQuery(c, "disponibles", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

// Obtener handles GET /api/propiedades/:id, the contract the
// application and review services call.
func (h *PropiedadHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Propiedades.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// PorPropietario handles GET /api/propiedades/propietario/:propietarioId.
func (h *PropiedadHandler) PorPropietario(c echo.Context) error {
	propietarioID, err := pathID(c, "propietarioId")
	if err != nil {
		return err
	}
	ps, err := h.Propiedades.PorPropietario(c.Request().Context(), propietarioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

// Actualizar handles PUT /api/propiedades/:id.
func (h *PropiedadHandler) Actualizar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body service.ActualizacionPropiedad
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	p, err := h.Propiedades.Actualizar(c.Request().Context(), id, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CambiarDisponibilidad handles POST /api/propiedades/:id/disponibilidad.
func (h *PropiedadHandler) CambiarDisponibilidad(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Disponible bool `json:"disponible"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	if err := h.Propiedades.CambiarDisponibilidad(c.Request().Context(), id, body.Disponible); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Eliminar handles DELETE /api/propiedades/:id.
func (h *PropiedadHandler) Eliminar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Propiedades.Eliminar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
