package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// ResenaHandler serves the review endpoints.
type ResenaHandler struct {
	Resenas *service.ResenaService
}

func NewResenaHandler(resenas *service.ResenaService) *ResenaHandler {
	return &ResenaHandler{Resenas: resenas}
}

// Crear handles POST /api/resenas.
func (h *ResenaHandler) Crear(c echo.Context) error {
	var body service.NuevaResena
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	if body.UsuarioID <= 0 || body.PropiedadID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "usuario_id y propiedad_id son obligatorios"})
	}
	re, err := h.Resenas.Crear(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, re)
}

// Listar handles GET /api/resenas.
func (h *ResenaHandler) Listar(c echo.Context) error {
	res, err := h.Resenas.Listar(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Obtener handles GET /api/resenas/:id.
func (h *ResenaHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	re, err := h.Resenas.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, re)
}

// PorPropiedad handles GET /api/resenas/propiedad/:propiedadId.
func (h *ResenaHandler) PorPropiedad(c echo.Context) error {
	propiedadID, err := pathID(c, "propiedadId")
	if err != nil {
		return err
	}
	res, err := h.Resenas.PorPropiedad(c.Request().Context(), propiedadID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// PorUsuario handles GET /api/resenas/usuario/:usuarioId.
func (h *ResenaHandler) PorUsuario(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	res, err := h.Resenas.PorUsuario(c.Request().Context(), usuarioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Eliminar handles DELETE /api/resenas/:id.
func (h *ResenaHandler) Eliminar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Resenas.Eliminar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
