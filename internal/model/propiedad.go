package model

import "time"

// Propiedad is a rental listing owned by a user of the user service.
// Disponible gates whether new solicitudes may target the property.
type Propiedad struct {
	ID            int64     `json:"id"`             // propiedades.id
	Codigo        string    `json:"codigo"`         // propiedades.codigo (unique)
	Titulo        string    `json:"titulo"`         // propiedades.titulo
	Direccion     string    `json:"direccion"`      // propiedades.direccion
	PrecioMensual float64   `json:"precio_mensual"` // propiedades.precio_mensual
	Divisa        string    `json:"divisa"`         // propiedades.divisa (e.g. "CLP")
	M2            float64   `json:"m2"`             // propiedades.m2
	NHabitaciones int       `json:"n_habit"`        // propiedades.n_habit
	NBanos        int       `json:"n_banos"`        // propiedades.n_banos
	PetFriendly   bool      `json:"pet_friendly"`   // propiedades.pet_friendly
	Tipo          string    `json:"tipo"`           // propiedades.tipo (e.g. "DEPARTAMENTO")
	Comuna        string    `json:"comuna"`         // propiedades.comuna
	Region        string    `json:"region"`         // propiedades.region
	Disponible    bool      `json:"disponible"`     // propiedades.disponible
	PropietarioID int64     `json:"propietario_id"` // propiedades.propietario_id
	Fcreacion     time.Time `json:"fcreacion"`      // propiedades.fcreacion
}

// Foto is one photo attached to a listing.  Photos are stored as URL
// records; the binaries live outside the service.
type Foto struct {
	ID          int64  `json:"id"`           // fotos.id
	PropiedadID int64  `json:"propiedad_id"` // fotos.propiedad_id
	Nombre      string `json:"nombre"`       // fotos.nombre
	URL         string `json:"url"`          // fotos.url
	Orden       int    `json:"orden"`        // fotos.sort_order
}
