package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

// solicitudCounts is the slice of the solicitud repository the
// validation gate reads.  Kept small so gate tests run on fakes.
type solicitudCounts interface {
	CountPendientesByUsuario(ctx context.Context, usuarioID int64) (int64, error)
	ExistsPendiente(ctx context.Context, usuarioID, propiedadID int64) (bool, error)
}

// SolicitudService owns the rental-application lifecycle: the
// validation gate run before a solicitud is created, the
// PENDIENTE→ACEPTADA/RECHAZADA state machine, and the hand-off to the
// lease manager when a solicitud is accepted.
type SolicitudService struct {
	db          *sql.DB
	solicitudes *repository.SolicitudRepo
	registros   *RegistroService
	counts      solicitudCounts
	users       UserLookup
	properties  PropertyLookup
	documents   DocumentLookup
	maxActivas  int
}

// NewSolicitudService wires the service.  maxActivas caps how many
// PENDIENTE solicitudes one user may hold at a time.
func NewSolicitudService(
	solicitudes *repository.SolicitudRepo,
	registros *RegistroService,
	users UserLookup,
	properties PropertyLookup,
	documents DocumentLookup,
	maxActivas int,
) *SolicitudService {
	if solicitudes == nil || registros == nil || users == nil || properties == nil || documents == nil {
		panic("nil dependency passed to NewSolicitudService")
	}
	return &SolicitudService{
		db:          solicitudes.DB(),
		solicitudes: solicitudes,
		registros:   registros,
		counts:      solicitudes,
		users:       users,
		properties:  properties,
		documents:   documents,
		maxActivas:  maxActivas,
	}
}

// SolicitudDetalle is a solicitud optionally enriched with the remote
// user and property projections.  Enrichment is best effort: a lookup
// failure leaves the field empty and is only logged.
type SolicitudDetalle struct {
	model.Solicitud
	Usuario   *client.Usuario   `json:"usuario,omitempty"`
	Propiedad *client.Propiedad `json:"propiedad,omitempty"`
}

// validarNueva is the validation gate.  Checks run in a fixed order and
// short-circuit on the first failure.  The user and property existence
// checks are mandatory: when the collaborator cannot be asked at all
// the *client.CommunicationError is propagated instead of being read as
// "does not exist".  The gate performs no writes.
func (s *SolicitudService) validarNueva(ctx context.Context, usuarioID, propiedadID int64) error {
	u, err := s.users.GetUser(ctx, usuarioID)
	if err != nil {
		return err
	}
	if u == nil {
		return rechazo(ReasonUsuarioNoExiste, "el usuario con ID %d no existe", usuarioID)
	}

	p, err := s.properties.GetProperty(ctx, propiedadID)
	if err != nil {
		return err
	}
	if p == nil {
		return rechazo(ReasonPropiedadNoExiste, "la propiedad con ID %d no existe", propiedadID)
	}
	if !p.Disponible {
		return rechazo(ReasonPropiedadNoDisponible, "la propiedad no está disponible para arriendo")
	}

	if !u.Rol.PuedeCrearSolicitud() {
		return rechazo(ReasonRolNoPermitido, "solo usuarios con rol ARRIENDATARIO pueden crear solicitudes de arriendo")
	}

	if !s.documents.HasApprovedDocuments(ctx, usuarioID) {
		return rechazo(ReasonDocumentosNoAprobados, "el usuario debe tener todos sus documentos aprobados antes de solicitar un arriendo")
	}

	activas, err := s.counts.CountPendientesByUsuario(ctx, usuarioID)
	if err != nil {
		return err
	}
	if activas >= int64(s.maxActivas) {
		return rechazo(ReasonMaxSolicitudesActivas, "el usuario ya tiene el máximo permitido de solicitudes activas (%d)", s.maxActivas)
	}

	dup, err := s.counts.ExistsPendiente(ctx, usuarioID, propiedadID)
	if err != nil {
		return err
	}
	if dup {
		return rechazo(ReasonSolicitudDuplicada, "ya existe una solicitud pendiente para esta propiedad")
	}
	return nil
}

// Crear runs the validation gate and persists a new PENDIENTE
// solicitud.  The duplicate invariant is enforced by a unique key on
// (usuario_id, propiedad_id, pendiente), so a concurrent request that
// slipped past the gate collides at the storage layer and comes back as
// repository.ErrDuplicate; the max-active cap is re-evaluated inside
// the insert itself (see SolicitudRepo.CreatePendienteTx).
func (s *SolicitudService) Crear(ctx context.Context, usuarioID, propiedadID int64) (*model.Solicitud, error) {
	if err := s.validarNueva(ctx, usuarioID, propiedadID); err != nil {
		return nil, err
	}

	sol := &model.Solicitud{
		UsuarioID:      usuarioID,
		PropiedadID:    propiedadID,
		Estado:         model.SolicitudPendiente,
		FechaSolicitud: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	inserted, err := s.solicitudes.CreatePendienteTx(ctx, tx, sol, s.maxActivas)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent request won the race on the unique key.
		return nil, rechazo(ReasonSolicitudDuplicada, "ya existe una solicitud pendiente para esta propiedad")
	}
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, rechazo(ReasonMaxSolicitudesActivas, "el usuario ya tiene el máximo permitido de solicitudes activas (%d)", s.maxActivas)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Printf("solicitud %d creada para usuario %d y propiedad %d", sol.ID, usuarioID, propiedadID)
	return sol, nil
}

// AperturaRegistro carries the optional lease parameters supplied with
// an accept request.  A nil MontoMensual means "use the property's
// monthly price"; a nil FechaInicio means "today".
type AperturaRegistro struct {
	FechaInicio  *time.Time
	FechaFin     *time.Time
	MontoMensual *float64
}

// Aceptar transitions a PENDIENTE solicitud to ACEPTADA and opens its
// lease record in the same transaction.  When the monthly amount is not
// supplied it is resolved from the property service as a mandatory
// lookup: if the collaborator cannot be asked the transition does not
// happen and the *client.CommunicationError is surfaced so the caller
// may retry.  Accepting a solicitud that is not PENDIENTE fails with
// ESTADO_INVALIDO; it never silently succeeds.
func (s *SolicitudService) Aceptar(ctx context.Context, id int64, ap AperturaRegistro) (*model.Solicitud, *model.Registro, error) {
	sol, err := s.solicitudes.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundOrErr(err, "solicitud", id)
	}
	if sol.Estado != model.SolicitudPendiente {
		return nil, nil, rechazo(ReasonEstadoInvalido, "la solicitud no está pendiente (estado actual: %s)", sol.Estado)
	}

	// Resolve the monthly amount before taking any lock; the remote
	// call may block up to the client timeout.
	monto := ap.MontoMensual
	if monto == nil {
		p, err := s.properties.GetProperty(ctx, sol.PropiedadID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, rechazo(ReasonPropiedadNoExiste, "la propiedad con ID %d no existe", sol.PropiedadID)
		}
		monto = &p.PrecioMensual
	}

	inicio := time.Now().UTC()
	if ap.FechaInicio != nil {
		inicio = ap.FechaInicio.UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	locked, err := s.solicitudes.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, nil, notFoundOrErr(err, "solicitud", id)
	}
	if locked.Estado != model.SolicitudPendiente {
		return nil, nil, rechazo(ReasonEstadoInvalido, "la solicitud no está pendiente (estado actual: %s)", locked.Estado)
	}
	ok, err := s.solicitudes.UpdateEstadoTx(ctx, tx, id, model.SolicitudPendiente, model.SolicitudAceptada)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, rechazo(ReasonEstadoInvalido, "la solicitud no está pendiente")
	}

	reg, err := s.registros.abrirTx(ctx, tx, id, inicio, ap.FechaFin, *monto)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	locked.Estado = model.SolicitudAceptada
	log.Printf("solicitud %d aceptada, registro %d abierto", id, reg.ID)
	return locked, reg, nil
}

// Rechazar transitions a PENDIENTE solicitud to RECHAZADA.  Like
// Aceptar it refuses terminal states with ESTADO_INVALIDO.
func (s *SolicitudService) Rechazar(ctx context.Context, id int64) (*model.Solicitud, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	locked, err := s.solicitudes.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "solicitud", id)
	}
	if locked.Estado != model.SolicitudPendiente {
		return nil, rechazo(ReasonEstadoInvalido, "la solicitud no está pendiente (estado actual: %s)", locked.Estado)
	}
	ok, err := s.solicitudes.UpdateEstadoTx(ctx, tx, id, model.SolicitudPendiente, model.SolicitudRechazada)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rechazo(ReasonEstadoInvalido, "la solicitud no está pendiente")
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	locked.Estado = model.SolicitudRechazada
	log.Printf("solicitud %d rechazada", id)
	return locked, nil
}

// Obtener returns one solicitud, enriched when includeDetails is set.
func (s *SolicitudService) Obtener(ctx context.Context, id int64, includeDetails bool) (*SolicitudDetalle, error) {
	sol, err := s.solicitudes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "solicitud", id)
	}
	det := s.enriquecer(ctx, *sol, includeDetails)
	return &det, nil
}

// Listar returns every solicitud, enriched when includeDetails is set.
func (s *SolicitudService) Listar(ctx context.Context, includeDetails bool) ([]SolicitudDetalle, error) {
	sols, err := s.solicitudes.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enriquecerTodas(ctx, sols, includeDetails), nil
}

// PorUsuario returns the solicitudes created by one user.
func (s *SolicitudService) PorUsuario(ctx context.Context, usuarioID int64) ([]SolicitudDetalle, error) {
	sols, err := s.solicitudes.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return s.enriquecerTodas(ctx, sols, false), nil
}

// PorPropiedad returns the solicitudes targeting one property.
func (s *SolicitudService) PorPropiedad(ctx context.Context, propiedadID int64) ([]SolicitudDetalle, error) {
	sols, err := s.solicitudes.ListByPropiedad(ctx, propiedadID)
	if err != nil {
		return nil, err
	}
	return s.enriquecerTodas(ctx, sols, false), nil
}

// enriquecer decorates a solicitud with its remote projections.  Every
// failure — including a collaborator outage — degrades to an absent
// field; decoration is optional enrichment, never a guarantee.
func (s *SolicitudService) enriquecer(ctx context.Context, sol model.Solicitud, includeDetails bool) SolicitudDetalle {
	det := SolicitudDetalle{Solicitud: sol}
	if !includeDetails {
		return det
	}
	if u, err := s.users.GetUser(ctx, sol.UsuarioID); err != nil {
		log.Printf("no se pudo obtener información del usuario %d: %v", sol.UsuarioID, err)
	} else {
		det.Usuario = u
	}
	if p, err := s.properties.GetProperty(ctx, sol.PropiedadID); err != nil {
		log.Printf("no se pudo obtener información de la propiedad %d: %v", sol.PropiedadID, err)
	} else {
		det.Propiedad = p
	}
	return det
}

func (s *SolicitudService) enriquecerTodas(ctx context.Context, sols []model.Solicitud, includeDetails bool) []SolicitudDetalle {
	out := make([]SolicitudDetalle, 0, len(sols))
	for _, sol := range sols {
		out = append(out, s.enriquecer(ctx, sol, includeDetails))
	}
	return out
}

// notFoundOrErr maps sql.ErrNoRows onto a *NotFoundError and passes
// every other error through.
func notFoundOrErr(err error, recurso string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Recurso: recurso, ID: id}
	}
	return err
}
