package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// MensajeHandler serves the contact-form endpoints.
type MensajeHandler struct {
	Mensajes *service.MensajeService
}

func NewMensajeHandler(mensajes *service.MensajeService) *MensajeHandler {
	return &MensajeHandler{Mensajes: mensajes}
}

// Crear handles POST /api/contacto.
func (h *MensajeHandler) Crear(c echo.Context) error {
	var body service.NuevoMensaje
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	m, err := h.Mensajes.Crear(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Listar handles GET /api/contacto.  ?pendientes=true narrows to
// unanswered messages.
func (h *MensajeHandler) Listar(c echo.Context) error {
	ms, err := h.Mensajes.Listar(c.Request().Context(), boolQuery(c, "pendientes", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}

// Obtener handles GET /api/contacto/:id.
func (h *MensajeHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Mensajes.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Responder handles POST /api/contacto/:id/responder.
func (h *MensajeHandler) Responder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Respuesta string `json:"respuesta"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	m, err := h.Mensajes.Responder(c.Request().Context(), id, body.Respuesta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Eliminar handles DELETE /api/contacto/:id.
func (h *MensajeHandler) Eliminar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Mensajes.Eliminar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
