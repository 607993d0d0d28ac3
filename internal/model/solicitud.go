package model

import "time"

// EstadoSolicitud is the lifecycle state of a rental application.
// A solicitud is created PENDIENTE and moves exactly once to either
// ACEPTADA or RECHAZADA; both are terminal.
type EstadoSolicitud string

const (
	SolicitudPendiente EstadoSolicitud = "PENDIENTE"
	SolicitudAceptada  EstadoSolicitud = "ACEPTADA"
	SolicitudRechazada EstadoSolicitud = "RECHAZADA"
)

// Valido reports whether e is one of the three known states.
func (e EstadoSolicitud) Valido() bool {
	return e == SolicitudPendiente || e == SolicitudAceptada || e == SolicitudRechazada
}

// Terminal reports whether the state admits no further transitions.
func (e EstadoSolicitud) Terminal() bool {
	return e == SolicitudAceptada || e == SolicitudRechazada
}

// Solicitud records a user's application to rent a specific property.
// User and property live in other services; only their ids are stored
// here and they are re-fetched on demand when details are requested.
//
// Fields:
//
//	ID             – primary key identifier.
//	UsuarioID      – user who applies.
//	PropiedadID    – property being applied for.
//	Estado         – lifecycle state (PENDIENTE, ACEPTADA, RECHAZADA).
//	FechaSolicitud – creation timestamp in UTC.
type Solicitud struct {
	ID             int64           `json:"id"`              // solicitudes.id
	UsuarioID      int64           `json:"usuario_id"`      // solicitudes.usuario_id
	PropiedadID    int64           `json:"propiedad_id"`    // solicitudes.propiedad_id
	Estado         EstadoSolicitud `json:"estado"`          // solicitudes.estado
	FechaSolicitud time.Time       `json:"fecha_solicitud"` // solicitudes.fecha_solicitud
}
