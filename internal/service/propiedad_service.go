package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

// PropiedadService manages rental listings.  The owner account lives in
// the user service; on create it is checked remotely so a listing never
// points at an account that does not exist.
type PropiedadService struct {
	propiedades *repository.PropiedadRepo
	users       UserLookup
}

func NewPropiedadService(propiedades *repository.PropiedadRepo, users UserLookup) *PropiedadService {
	if propiedades == nil || users == nil {
		panic("nil dependency passed to NewPropiedadService")
	}
	return &PropiedadService{propiedades: propiedades, users: users}
}

// NuevaPropiedad carries the fields accepted when publishing a listing.
type NuevaPropiedad struct {
	Codigo        string  `json:"codigo"`
	Titulo        string  `json:"titulo"`
	Direccion     string  `json:"direccion"`
	PrecioMensual float64 `json:"precio_mensual"`
	Divisa        string  `json:"divisa"`
	M2            float64 `json:"m2"`
	NHabitaciones int     `json:"n_habit"`
	NBanos        int     `json:"n_banos"`
	PetFriendly   bool    `json:"pet_friendly"`
	Tipo          string  `json:"tipo"`
	Comuna        string  `json:"comuna"`
	Region        string  `json:"region"`
	PropietarioID int64   `json:"propietario_id"`
}

// Crear publishes a listing.  The owner must exist remotely and hold a
// role allowed to publish; when the user service cannot be reached the
// *client.CommunicationError is surfaced instead of guessing.
func (s *PropiedadService) Crear(ctx context.Context, in NuevaPropiedad) (*model.Propiedad, error) {
	in.Codigo = strings.TrimSpace(in.Codigo)
	if in.Codigo == "" || in.Titulo == "" || in.Direccion == "" {
		return nil, rechazo(ReasonDatosInvalidos, "codigo, titulo y direccion son obligatorios")
	}
	if in.Tipo == "" || in.Comuna == "" {
		return nil, rechazo(ReasonDatosInvalidos, "tipo y comuna son obligatorios")
	}
	if in.PrecioMensual <= 0 {
		return nil, rechazo(ReasonPrecioInvalido, "el precio mensual debe ser mayor que cero")
	}
	if in.M2 <= 0 || in.NHabitaciones < 0 || in.NBanos < 0 {
		return nil, rechazo(ReasonDatosInvalidos, "m2 debe ser mayor que cero y los conteos no pueden ser negativos")
	}
	if in.Divisa == "" {
		in.Divisa = "CLP"
	}

	owner, err := s.users.GetUser(ctx, in.PropietarioID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, rechazo(ReasonUsuarioNoExiste, "el usuario con ID %d no existe", in.PropietarioID)
	}
	if !owner.Rol.PuedeResolverSolicitud() {
		return nil, rechazo(ReasonRolNoPermitido, "solo usuarios con rol PROPIETARIO pueden publicar propiedades")
	}

	p := &model.Propiedad{
		Codigo:        in.Codigo,
		Titulo:        in.Titulo,
		Direccion:     in.Direccion,
		PrecioMensual: in.PrecioMensual,
		Divisa:        in.Divisa,
		M2:            in.M2,
		NHabitaciones: in.NHabitaciones,
		NBanos:        in.NBanos,
		PetFriendly:   in.PetFriendly,
		Tipo:          in.Tipo,
		Comuna:        in.Comuna,
		Region:        in.Region,
		Disponible:    true,
		PropietarioID: in.PropietarioID,
		Fcreacion:     time.Now().UTC(),
	}
	if err := s.propiedades.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rechazo(ReasonCodigoDuplicado, "el código %s ya está en uso", in.Codigo)
		}
		return nil, err
	}

	log.Printf("propiedad %d publicada (código %s)", p.ID, p.Codigo)
	return p, nil
}

// Obtener returns one listing by id.
func (s *PropiedadService) Obtener(ctx context.Context, id int64) (*model.Propiedad, error) {
	p, err := s.propiedades.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "propiedad", id)
	}
	return p, nil
}

// Listar returns listings; soloDisponibles narrows to available ones.
func (s *PropiedadService) Listar(ctx context.Context, soloDisponibles bool) ([]model.Propiedad, error) {
	return s.propiedades.List(ctx, soloDisponibles)
}

// PorPropietario returns the listings published by one owner.
func (s *PropiedadService) PorPropietario(ctx context.Context, propietarioID int64) ([]model.Propiedad, error) {
	return s.propiedades.ListByPropietario(ctx, propietarioID)
}

// ActualizacionPropiedad carries the mutable listing fields.  Nil
// fields are left untouched.
type ActualizacionPropiedad struct {
	Titulo        *string  `json:"titulo"`
	Direccion     *string  `json:"direccion"`
	PrecioMensual *float64 `json:"precio_mensual"`
	Divisa        *string  `json:"divisa"`
	M2            *float64 `json:"m2"`
	NHabitaciones *int     `json:"n_habit"`
	NBanos        *int     `json:"n_banos"`
	PetFriendly   *bool    `json:"pet_friendly"`
	Tipo          *string  `json:"tipo"`
	Comuna        *string  `json:"comuna"`
	Region        *string  `json:"region"`
	Disponible    *bool    `json:"disponible"`
}

// Actualizar applies a partial update to a listing.
func (s *PropiedadService) Actualizar(ctx context.Context, id int64, in ActualizacionPropiedad) (*model.Propiedad, error) {
	p, err := s.propiedades.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "propiedad", id)
	}
	if in.Titulo != nil {
		p.Titulo = *in.Titulo
	}
	if in.Direccion != nil {
		p.Direccion = *in.Direccion
	}
	if in.PrecioMensual != nil {
		if *in.PrecioMensual <= 0 {
			return nil, rechazo(ReasonPrecioInvalido, "el precio mensual debe ser mayor que cero")
		}
		p.PrecioMensual = *in.PrecioMensual
	}
	if in.Divisa != nil {
		p.Divisa = *in.Divisa
	}
	if in.M2 != nil {
		if *in.M2 <= 0 {
			return nil, rechazo(ReasonDatosInvalidos, "m2 debe ser mayor que cero")
		}
		p.M2 = *in.M2
	}
	if in.NHabitaciones != nil {
		p.NHabitaciones = *in.NHabitaciones
	}
	if in.NBanos != nil {
		p.NBanos = *in.NBanos
	}
	if in.PetFriendly != nil {
		p.PetFriendly = *in.PetFriendly
	}
	if in.Tipo != nil {
		p.Tipo = *in.Tipo
	}
	if in.Comuna != nil {
		p.Comuna = *in.Comuna
	}
	if in.Region != nil {
		p.Region = *in.Region
	}
	if in.Disponible != nil {
		p.Disponible = *in.Disponible
	}
	if err := s.propiedades.Update(ctx, p); err != nil {
		return nil, notFoundOrErr(err, "propiedad", id)
	}
	return p, nil
}

// CambiarDisponibilidad flips the disponible flag on its own, used when
// a lease is opened or closed.
func (s *PropiedadService) CambiarDisponibilidad(ctx context.Context, id int64, disponible bool) error {
	if err := s.propiedades.SetDisponible(ctx, id, disponible); err != nil {
		return notFoundOrErr(err, "propiedad", id)
	}
	return nil
}

// Eliminar removes a listing.
func (s *PropiedadService) Eliminar(ctx context.Context, id int64) error {
	if err := s.propiedades.Delete(ctx, id); err != nil {
		return notFoundOrErr(err, "propiedad", id)
	}
	log.Printf("propiedad %d eliminada", id)
	return nil
}
