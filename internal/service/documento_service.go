package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

const maxDocumentosPorUsuario = 10

// DocumentoService manages verification documents and answers the
// "are all of this user's documents approved?" question the
// application service asks before letting a solicitud through.
type DocumentoService struct {
	documentos *repository.DocumentoRepo
	users      UserLookup
}

func NewDocumentoService(documentos *repository.DocumentoRepo, users UserLookup) *DocumentoService {
	if documentos == nil || users == nil {
		panic("nil dependency passed to NewDocumentoService")
	}
	return &DocumentoService{documentos: documentos, users: users}
}

// NuevoDocumento carries the fields accepted when uploading a document.
type NuevoDocumento struct {
	Nombre    string              `json:"nombre"`
	UsuarioID int64               `json:"usuario_id"`
	Tipo      model.TipoDocumento `json:"tipo"`
}

// Subir registers an uploaded document in PENDIENTE state.  The owner
// must exist in the user service; an unreachable user service aborts
// the upload with a *client.CommunicationError rather than accepting a
// document for an unverifiable account.
func (s *DocumentoService) Subir(ctx context.Context, in NuevoDocumento) (*model.Documento, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		return nil, rechazo(ReasonDatosInvalidos, "el nombre del documento es obligatorio")
	}
	if !in.Tipo.Valido() {
		return nil, rechazo(ReasonTipoInvalido, "tipo de documento desconocido: %s", in.Tipo)
	}

	u, err := s.users.GetUser(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, rechazo(ReasonUsuarioNoExiste, "el usuario con ID %d no existe", in.UsuarioID)
	}

	n, err := s.documentos.CountByUsuario(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if n >= maxDocumentosPorUsuario {
		return nil, rechazo(ReasonMaxDocumentos, "el usuario ya alcanzó el máximo de %d documentos", maxDocumentosPorUsuario)
	}

	d := &model.Documento{
		Nombre:      in.Nombre,
		UsuarioID:   in.UsuarioID,
		Tipo:        in.Tipo,
		Estado:      model.DocumentoPendiente,
		FechaSubido: time.Now().UTC(),
	}
	if err := s.documentos.Create(ctx, d); err != nil {
		return nil, err
	}

	log.Printf("documento %d subido por usuario %d (%s)", d.ID, d.UsuarioID, d.Tipo)
	return d, nil
}

// Obtener returns one document by id.
func (s *DocumentoService) Obtener(ctx context.Context, id int64) (*model.Documento, error) {
	d, err := s.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "documento", id)
	}
	return d, nil
}

// Listar returns every document.
func (s *DocumentoService) Listar(ctx context.Context) ([]model.Documento, error) {
	return s.documentos.List(ctx)
}

// PorUsuario returns the documents uploaded by one user.
func (s *DocumentoService) PorUsuario(ctx context.Context, usuarioID int64) ([]model.Documento, error) {
	return s.documentos.ListByUsuario(ctx, usuarioID)
}

// CambiarEstado moves a document through the review workflow.  A
// rejection must name what is wrong with the document, so observaciones
// is mandatory when the new state is RECHAZADO.
func (s *DocumentoService) CambiarEstado(ctx context.Context, id int64, estado model.EstadoDocumento, observaciones string) (*model.Documento, error) {
	if !estado.Valido() {
		return nil, rechazo(ReasonTipoInvalido, "estado de documento desconocido: %s", estado)
	}
	if estado == model.DocumentoRechazado && strings.TrimSpace(observaciones) == "" {
		return nil, rechazo(ReasonObservacionesRequeridas, "un documento rechazado debe incluir observaciones")
	}
	if err := s.documentos.UpdateEstado(ctx, id, estado, observaciones); err != nil {
		return nil, notFoundOrErr(err, "documento", id)
	}
	d, err := s.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "documento", id)
	}
	log.Printf("documento %d ahora en estado %s", id, estado)
	return d, nil
}

// VerificarAprobados reports whether every document of the user is
// ACEPTADO.  A user with no documents at all fails the check: having
// uploaded nothing is not the same as having everything approved.
func (s *DocumentoService) VerificarAprobados(ctx context.Context, usuarioID int64) (bool, error) {
	total, aprobados, err := s.documentos.ApprovalCounts(ctx, usuarioID)
	if err != nil {
		return false, err
	}
	return total > 0 && total == aprobados, nil
}

// Eliminar removes a document.
func (s *DocumentoService) Eliminar(ctx context.Context, id int64) error {
	if err := s.documentos.Delete(ctx, id); err != nil {
		return notFoundOrErr(err, "documento", id)
	}
	log.Printf("documento %d eliminado", id)
	return nil
}
