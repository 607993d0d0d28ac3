package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/service"
)

// UsuarioHandler serves the account endpoints.
type UsuarioHandler struct {
	Usuarios *service.UsuarioService
}

func NewUsuarioHandler(usuarios *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{Usuarios: usuarios}
}

// Registrar handles POST /api/usuarios.
func (h *UsuarioHandler) Registrar(c echo.Context) error {
	var body service.RegistroUsuario
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	u, err := h.Usuarios.Registrar(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// Listar handles GET /api/usuarios.
func (h *UsuarioHandler) Listar(c echo.Context) error {
	us, err := h.Usuarios.Listar(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, us)
}

// Obtener handles GET /api/usuarios/:id.  This is also the contract
// the other services call to verify an account.
func (h *UsuarioHandler) Obtener(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Usuarios.Obtener(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Actualizar handles PUT /api/usuarios/:id.
func (h *UsuarioHandler) Actualizar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body service.ActualizacionUsuario
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo de la petición inválido"})
	}
	u, err := h.Usuarios.Actualizar(c.Request().Context(), id, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Desactivar handles POST /api/usuarios/:id/desactivar.
func (h *UsuarioHandler) Desactivar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Usuarios.Desactivar(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
