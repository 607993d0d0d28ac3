package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/service"
)

// DocumentoHandler serves the verification-document endpoints.
type DocumentoHandler struct {
	Documentos *service.DocumentoService
}

func NewDocumentoHandler(documentos *service.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{Documentos: documentos}
}

// Subir handles POST /api/documentos.
func (h *DocumentoHandler) Subir(c echo.Context) error {
	var body service.NuevoDocumento
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	if body.UsuarioID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "usuario_id es obligatorio"})
	}
	d, err := h.Documentos.Subir(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// Listar handles GET /api/documentos.
func (h *DocumentoHandler) Listar(c echo.Context) error {
	ds, err := h.Documentos.Listar(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

// Obtener handles GET /api/documentos/:id.
func (h *DocumentoHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.Documentos.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// PorUsuario handles GET /api/documentos/usuario/:usuarioId.
func (h *DocumentoHandler) PorUsuario(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	ds, err := h.Documentos.PorUsuario(c.Request().Context(), usuarioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

// VerificarAprobados handles
// GET /api/documentos/usuario/:usuarioId/verificar-aprobados, the
// bool contract the application service calls before letting a
// solicitud through.
func (h *DocumentoHandler) VerificarAprobados(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	ok, err := h.Documentos.VerificarAprobados(c.Request().Context(), usuarioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ok)
}

// CambiarEstado handles PUT /api/documentos/:id/estado.
func (h *DocumentoHandler) CambiarEstado(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Estado        model.EstadoDocumento `json:"estado"`
		Observaciones string                `json:"observaciones"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	d, err := h.Documentos.CambiarEstado(c.Request().Context(), id, body.Estado, body.Observaciones)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Eliminar handles DELETE /api/documentos/:id.
func (h *DocumentoHandler) Eliminar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Documentos.Eliminar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
