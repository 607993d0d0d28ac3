package service

import (
	"context"
	"log"
	"strings"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

// maxFotosPorPropiedad caps how many photos one listing may carry.
const maxFotosPorPropiedad = 20

// FotoService manages the photo records of a listing.  Photos are URL
// references; the binaries are hosted elsewhere, so attaching a photo
// is a plain row insert guarded by the per-listing cap.
type FotoService struct {
	fotos       *repository.FotoRepo
	propiedades *repository.PropiedadRepo
}

func NewFotoService(fotos *repository.FotoRepo, propiedades *repository.PropiedadRepo) *FotoService {
	if fotos == nil || propiedades == nil {
		panic("nil dependency passed to NewFotoService")
	}
	return &FotoService{fotos: fotos, propiedades: propiedades}
}

// NuevaFoto carries the fields accepted when attaching a photo.
type NuevaFoto struct {
	Nombre string `json:"nombre"`
	URL    string `json:"url"`
	Orden  int    `json:"orden"`
}

// Agregar attaches a photo to a listing.  The listing must exist and
// hold fewer than the per-listing maximum.
func (s *FotoService) Agregar(ctx context.Context, propiedadID int64, in NuevaFoto) (*model.Foto, error) {
	if _, err := s.propiedades.GetByID(ctx, propiedadID); err != nil {
		return nil, notFoundOrErr(err, "propiedad", propiedadID)
	}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.URL = strings.TrimSpace(in.URL)
	if in.Nombre == "" || in.URL == "" {
		return nil, rechazo(ReasonDatosInvalidos, "nombre y url son obligatorios")
	}
	n, err := s.fotos.CountByPropiedad(ctx, propiedadID)
	if err != nil {
		return nil, err
	}
	if n >= maxFotosPorPropiedad {
		return nil, rechazo(ReasonMaxFotos, "la propiedad ya tiene el máximo de %d fotos", maxFotosPorPropiedad)
	}

	f := &model.Foto{
		PropiedadID: propiedadID,
		Nombre:      in.Nombre,
		URL:         in.URL,
		Orden:       in.Orden,
	}
	if err := s.fotos.Create(ctx, f); err != nil {
		return nil, err
	}
	log.Printf("foto %d agregada a propiedad %d", f.ID, propiedadID)
	return f, nil
}

// PorPropiedad returns the photos of one listing in display order.
func (s *FotoService) PorPropiedad(ctx context.Context, propiedadID int64) ([]model.Foto, error) {
	if _, err := s.propiedades.GetByID(ctx, propiedadID); err != nil {
		return nil, notFoundOrErr(err, "propiedad", propiedadID)
	}
	return s.fotos.ListByPropiedad(ctx, propiedadID)
}

// Obtener returns one photo by id.
func (s *FotoService) Obtener(ctx context.Context, id int64) (*model.Foto, error) {
	f, err := s.fotos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "foto", id)
	}
	return f, nil
}

// Eliminar removes a photo record.
func (s *FotoService) Eliminar(ctx context.Context, id int64) error {
	if err := s.fotos.Delete(ctx, id); err != nil {
		return notFoundOrErr(err, "foto", id)
	}
	log.Printf("foto %d eliminada", id)
	return nil
}
