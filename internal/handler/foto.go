package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// FotoHandler serves the listing-photo endpoints.
type FotoHandler struct {
	Fotos *service.FotoService
}

func NewFotoHandler(fotos *service.FotoService) *FotoHandler {
	return &FotoHandler{Fotos: fotos}
}

// Agregar handles POST /api/propiedades/:id/fotos.
func (h *FotoHandler) Agregar(c echo.Context) error {
	propiedadID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body service.NuevaFoto
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	f, err := h.Fotos.Agregar(c.Request().Context(), propiedadID, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// PorPropiedad handles GET /api/propiedades/:id/fotos.
func (h *FotoHandler) PorPropiedad(c echo.Context) error {
	propiedadID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fs, err := h.Fotos.PorPropiedad(c.Request().Context(), propiedadID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, fs)
}

// Obtener handles GET /api/fotos/:fotoId.
func (h *FotoHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "fotoId")
	if err != nil {
		return err
	}
	f, err := h.Fotos.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// Eliminar handles DELETE /api/fotos/:fotoId.
func (h *FotoHandler) Eliminar(c echo.Context) error {
	id, err := pathID(c, "fotoId")
	if err != nil {
		return err
	}
	if err := h.Fotos.Eliminar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
