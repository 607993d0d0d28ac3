package model

import "time"

// TipoResena distinguishes reviews about the property itself from
// reviews about its owner.
type TipoResena string

const (
	ResenaPropiedad   TipoResena = "PROPIEDAD"
	ResenaPropietario TipoResena = "PROPIETARIO"
)

// Valido reports whether t is one of the known review kinds.
func (t TipoResena) Valido() bool {
	return t == ResenaPropiedad || t == ResenaPropietario
}

// Resena is a review left by a user about a property or its owner.
// A user may leave at most one review per (propiedad, tipo) pair.
type Resena struct {
	ID          int64      `json:"id"`           // resenas.id
	UsuarioID   int64      `json:"usuario_id"`   // resenas.usuario_id
	PropiedadID int64      `json:"propiedad_id"` // resenas.propiedad_id
	Tipo        TipoResena `json:"tipo"`         // resenas.tipo
	Puntuacion  int        `json:"puntuacion"`   // resenas.puntuacion (1..5)
	Comentario  string     `json:"comentario"`   // resenas.comentario
	Fcreacion   time.Time  `json:"fcreacion"`    // resenas.fcreacion
}
