// Package router wires each service's handlers onto an echo instance.
// One Register function per service binary; every service exposes the
// same /healthz probe.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rentify/rental-services/internal/handler"
	"github.com/rentify/rental-services/internal/middleware"
	"github.com/rentify/rental-services/internal/model"
)

// RegisterCommon registers the routes every service shares.
func RegisterCommon(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSolicitudes registers the application-service routes.
// Resolving a solicitud (accept or reject) is restricted to owners and
// admins; creating and reading are open to any caller the gateway lets
// through, since the gate re-checks the applicant's role remotely.
func RegisterSolicitudes(e *echo.Echo, h *handler.SolicitudHandler, r *handler.RegistroHandler) {
	g := e.Group("/api/solicitudes")
	g.POST("", h.Crear)
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.GET("/usuario/:usuarioId", h.PorUsuario)
	g.GET("/propiedad/:propiedadId", h.PorPropiedad)

	resolver := middleware.RequireRole(string(model.RolPropietario), string(model.RolAdmin))
	g.POST("/:id/aceptar", h.Aceptar, resolver)
	g.POST("/:id/rechazar", h.Rechazar, resolver)

	rg := e.Group("/api/registros")
	rg.POST("", r.Crear, resolver)
	rg.GET("", r.Listar)
	rg.GET("/:id", r.Obtener)
	rg.GET("/solicitud/:solicitudId", r.PorSolicitud)
	rg.POST("/:id/finalizar", r.Finalizar, resolver)
}

// RegisterUsuarios registers the user-service routes.
func RegisterUsuarios(e *echo.Echo, h *handler.UsuarioHandler) {
	g := e.Group("/api/usuarios")
	g.POST("", h.Registrar)
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.PUT("/:id", h.Actualizar)
	g.POST("/:id/desactivar", h.Desactivar, middleware.RequireRole(string(model.RolAdmin)))
}

// RegisterPropiedades registers the property-service routes.  Writes
// are restricted to owners and admins.
func RegisterPropiedades(e *echo.Echo, h *handler.PropiedadHandler, f *handler.FotoHandler) {
	g := e.Group("/api/propiedades")
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.GET("/propietario/:propietarioId", h.PorPropietario)
	g.GET("/:id/fotos", f.PorPropiedad)

	escritor := middleware.RequireRole(string(model.RolPropietario), string(model.RolAdmin))
	g.POST("", h.Crear, escritor)
	g.PUT("/:id", h.Actualizar, escritor)
	g.POST("/:id/disponibilidad", h.CambiarDisponibilidad, escritor)
	g.POST("/:id/fotos", f.Agregar, escritor)
	g.DELETE("/:id", h.Eliminar, middleware.RequireRole(string(model.RolAdmin)))

	fg := e.Group("/api/fotos")
	fg.GET("/:fotoId", f.Obtener)
	fg.DELETE("/:fotoId", f.Eliminar, escritor)
}

// RegisterDocumentos registers the document-service routes.  Review
// decisions are an admin concern.
func RegisterDocumentos(e *echo.Echo, h *handler.DocumentoHandler) {
	g := e.Group("/api/documentos")
	g.POST("", h.Subir)
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.GET("/usuario/:usuarioId", h.PorUsuario)
	g.GET("/usuario/:usuarioId/verificar-aprobados", h.VerificarAprobados)

	admin := middleware.RequireRole(string(model.RolAdmin))
	g.PUT("/:id/estado", h.CambiarEstado, admin)
	g.DELETE("/:id", h.Eliminar, admin)
}

// RegisterContacto registers the contact-service routes.  Anyone may
// write; reading and answering the inbox is an admin concern.
func RegisterContacto(e *echo.Echo, h *handler.MensajeHandler) {
	g := e.Group("/api/contacto")
	g.POST("", h.Crear)

	admin := middleware.RequireRole(string(model.RolAdmin))
	g.GET("", h.Listar, admin)
	g.GET("/:id", h.Obtener, admin)
	g.POST("/:id/responder", h.Responder, admin)
	g.DELETE("/:id", h.Eliminar, admin)
}

// RegisterResenas registers the review-service routes.
func RegisterResenas(e *echo.Echo, h *handler.ResenaHandler) {
	g := e.Group("/api/resenas")
	g.POST("", h.Crear)
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.GET("/propiedad/:propiedadId", h.PorPropiedad)
	g.GET("/usuario/:usuarioId", h.PorUsuario)
	g.DELETE("/:id", h.Eliminar, middleware.RequireRole(string(model.RolAdmin)))
}
