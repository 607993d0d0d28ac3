package model

import "time"

// Registro is the materialized lease created when a solicitud is
// accepted.  At most one active registro exists per solicitud; closing
// it sets Activo to false and stamps FechaFin.
//
// Fields:
//
//	ID           – primary key identifier.
//	SolicitudID  – owning solicitud (must be ACEPTADA at creation).
//	FechaInicio  – first day of the lease.
//	FechaFin     – last day of the lease, nil while open-ended.
//	MontoMensual – monthly amount in CLP, strictly positive.
//	Activo       – whether the lease is currently in force.
type Registro struct {
	ID           int64      `json:"id"`                  // registros_arriendo.id
	SolicitudID  int64      `json:"solicitud_id"`        // registros_arriendo.solicitud_id
	FechaInicio  time.Time  `json:"fecha_inicio"`        // registros_arriendo.fecha_inicio
	FechaFin     *time.Time `json:"fecha_fin,omitempty"` // registros_arriendo.fecha_fin (nullable)
	MontoMensual float64    `json:"monto_mensual"`       // registros_arriendo.monto_mensual
	Activo       bool       `json:"activo"`              // registros_arriendo.activo
}
