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

// ResenaService manages reviews.  Both the author and the reviewed
// property live in other services, so create runs two mandatory remote
// checks before writing anything.
type ResenaService struct {
	resenas    *repository.ResenaRepo
	users      UserLookup
	properties PropertyLookup
}

func NewResenaService(resenas *repository.ResenaRepo, users UserLookup, properties PropertyLookup) *ResenaService {
	if resenas == nil || users == nil || properties == nil {
		panic("nil dependency passed to NewResenaService")
	}
	return &ResenaService{resenas: resenas, users: users, properties: properties}
}

// NuevaResena carries the fields accepted when posting a review.
type NuevaResena struct {
	UsuarioID   int64            `json:"usuario_id"`
	PropiedadID int64            `json:"propiedad_id"`
	Tipo        model.TipoResena `json:"tipo"`
	Puntuacion  int              `json:"puntuacion"`
	Comentario  string           `json:"comentario"`
}

// Crear posts a review.  The author and property must both exist; when
// either collaborator cannot be asked the *client.CommunicationError is
// propagated so a review is never accepted blind.  A user may post one
// review per (propiedad, tipo) pair.
func (s *ResenaService) Crear(ctx context.Context, in NuevaResena) (*model.Resena, error) {
	if !in.Tipo.Valido() {
		return nil, rechazo(ReasonTipoInvalido, "tipo de reseña desconocido: %s", in.Tipo)
	}
	if in.Puntuacion < 1 || in.Puntuacion > 5 {
		return nil, rechazo(ReasonPuntuacionInvalida, "la puntuación debe estar entre 1 y 5")
	}
	if strings.TrimSpace(in.Comentario) == "" {
		return nil, rechazo(ReasonDatosInvalidos, "el comentario no puede estar vacío")
	}

	u, err := s.users.GetUser(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, rechazo(ReasonUsuarioNoExiste, "el usuario con ID %d no existe", in.UsuarioID)
	}
	p, err := s.properties.GetProperty(ctx, in.PropiedadID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rechazo(ReasonPropiedadNoExiste, "la propiedad con ID %d no existe", in.PropiedadID)
	}

	dup, err := s.resenas.Exists(ctx, in.UsuarioID, in.PropiedadID, in.Tipo)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, rechazo(ReasonResenaDuplicada, "el usuario ya dejó una reseña de tipo %s para esta propiedad", in.Tipo)
	}

	re := &model.Resena{
		UsuarioID:   in.UsuarioID,
		PropiedadID: in.PropiedadID,
		Tipo:        in.Tipo,
		Puntuacion:  in.Puntuacion,
		Comentario:  in.Comentario,
		Fcreacion:   time.Now().UTC(),
	}
	if err := s.resenas.Create(ctx, re); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rechazo(ReasonResenaDuplicada, "el usuario ya dejó una reseña de tipo %s para esta propiedad", in.Tipo)
		}
		return nil, err
	}

	log.Printf("reseña %d creada por usuario %d sobre propiedad %d", re.ID, re.UsuarioID, re.PropiedadID)
	return re, nil
}

// Obtener returns one review by id.
func (s *ResenaService) Obtener(ctx context.Context, id int64) (*model.Resena, error) {
	re, err := s.resenas.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "resena", id)
	}
	return re, nil
}

// Listar returns every review.
func (s *ResenaService) Listar(ctx context.Context) ([]model.Resena, error) {
	return s.resenas.List(ctx)
}

// PorPropiedad returns the reviews about one property.
func (s *ResenaService) PorPropiedad(ctx context.Context, propiedadID int64) ([]model.Resena, error) {
	return s.resenas.ListByPropiedad(ctx, propiedadID)
}

// PorUsuario returns the reviews written by one user.
func (s *ResenaService) PorUsuario(ctx context.Context, usuarioID int64) ([]model.Resena, error) {
	return s.resenas.ListByUsuario(ctx, usuarioID)
}

// Eliminar removes a review.
func (s *ResenaService) Eliminar(ctx context.Context, id int64) error {
	if err := s.resenas.Delete(ctx, id); err != nil {
		return notFoundOrErr(err, "resena", id)
	}
	log.Printf("reseña %d eliminada", id)
	return nil
}
