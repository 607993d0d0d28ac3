package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

// RegistroService manages lease records (registros de arriendo).  A
// solicitud gets at most one active registro; the invariant is checked
// under the solicitud's row lock so two concurrent opens cannot both
// succeed.
type RegistroService struct {
	db          *sql.DB
	registros   *repository.RegistroRepo
	solicitudes *repository.SolicitudRepo
}

func NewRegistroService(registros *repository.RegistroRepo, solicitudes *repository.SolicitudRepo) *RegistroService {
	if registros == nil || solicitudes == nil {
		panic("nil dependency passed to NewRegistroService")
	}
	return &RegistroService{db: registros.DB(), registros: registros, solicitudes: solicitudes}
}

// RegistroDetalle is a registro enriched with its solicitud.  The
// solicitud lives in the same database, so enrichment here is a local
// read rather than a remote call.
type RegistroDetalle struct {
	model.Registro
	Solicitud *model.Solicitud `json:"solicitud,omitempty"`
}

// Crear opens a lease record for an already-ACCEPTED solicitud.  The
// solicitud row is locked for the duration of the check-then-insert so
// the one-active-registro invariant holds under concurrency.
func (s *RegistroService) Crear(ctx context.Context, solicitudID int64, inicio time.Time, fin *time.Time, monto float64) (*model.Registro, error) {
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

	sol, err := s.solicitudes.GetByIDForUpdateTx(ctx, tx, solicitudID)
	if err != nil {
		return nil, notFoundOrErr(err, "solicitud", solicitudID)
	}
	if sol.Estado != model.SolicitudAceptada {
		return nil, rechazo(ReasonSolicitudNoAceptada, "solo se puede crear un registro para una solicitud aceptada (estado actual: %s)", sol.Estado)
	}

	reg, err := s.abrirTx(ctx, tx, solicitudID, inicio, fin, monto)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Printf("registro %d creado para solicitud %d", reg.ID, solicitudID)
	return reg, nil
}

// abrirTx inserts a new active registro inside the caller's
// transaction.  The caller must hold the solicitud's row lock.  Shared
// between Crear and SolicitudService.Aceptar so both paths enforce the
// same rules.
func (s *RegistroService) abrirTx(ctx context.Context, tx *sql.Tx, solicitudID int64, inicio time.Time, fin *time.Time, monto float64) (*model.Registro, error) {
	if monto <= 0 {
		return nil, rechazo(ReasonMontoInvalido, "el monto mensual debe ser mayor que cero")
	}
	if fin != nil && fin.Before(inicio) {
		return nil, rechazo(ReasonFechasInvalidas, "la fecha de fin no puede ser anterior a la fecha de inicio")
	}

	activo, err := s.registros.ExistsActivoBySolicitudTx(ctx, tx, solicitudID)
	if err != nil {
		return nil, err
	}
	if activo {
		return nil, rechazo(ReasonRegistroYaExiste, "ya existe un registro de arriendo activo para la solicitud %d", solicitudID)
	}

	reg := &model.Registro{
		SolicitudID:  solicitudID,
		FechaInicio:  inicio.UTC(),
		FechaFin:     fin,
		MontoMensual: monto,
		Activo:       true,
	}
	if err := s.registros.CreateTx(ctx, tx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Finalizar closes an active registro, stamping its end date.  Closing
// an already-inactive registro fails with REGISTRO_YA_INACTIVO rather
// than silently succeeding twice.
func (s *RegistroService) Finalizar(ctx context.Context, id int64) (*model.Registro, error) {
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

	reg, err := s.registros.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "registro", id)
	}
	if !reg.Activo {
		return nil, rechazo(ReasonRegistroYaInactivo, "el registro de arriendo %d ya fue finalizado", id)
	}

	fin := time.Now().UTC()
	ok, err := s.registros.DeactivateTx(ctx, tx, id, fin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rechazo(ReasonRegistroYaInactivo, "el registro de arriendo %d ya fue finalizado", id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	reg.Activo = false
	reg.FechaFin = &fin
	log.Printf("registro %d finalizado", id)
	return reg, nil
}

// Obtener returns one registro, with its solicitud when includeDetails
// is set.
func (s *RegistroService) Obtener(ctx context.Context, id int64, includeDetails bool) (*RegistroDetalle, error) {
	reg, err := s.registros.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "registro", id)
	}
	det := s.enriquecer(ctx, *reg, includeDetails)
	return &det, nil
}

// Listar returns every registro.
func (s *RegistroService) Listar(ctx context.Context, includeDetails bool) ([]RegistroDetalle, error) {
	regs, err := s.registros.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RegistroDetalle, 0, len(regs))
	for _, reg := range regs {
		out = append(out, s.enriquecer(ctx, reg, includeDetails))
	}
	return out, nil
}

// PorSolicitud returns the registros of one solicitud, newest first.
func (s *RegistroService) PorSolicitud(ctx context.Context, solicitudID int64) ([]RegistroDetalle, error) {
	regs, err := s.registros.ListBySolicitud(ctx, solicitudID)
	if err != nil {
		return nil, err
	}
	out := make([]RegistroDetalle, 0, len(regs))
	for _, reg := range regs {
		out = append(out, RegistroDetalle{Registro: reg})
	}
	return out, nil
}

func (s *RegistroService) enriquecer(ctx context.Context, reg model.Registro, includeDetails bool) RegistroDetalle {
	det := RegistroDetalle{Registro: reg}
	if !includeDetails {
		return det
	}
	sol, err := s.solicitudes.GetByID(ctx, reg.SolicitudID)
	if err != nil {
		log.Printf("no se pudo obtener la solicitud %d del registro %d: %v", reg.SolicitudID, reg.ID, err)
		return det
	}
	det.Solicitud = sol
	return det
}
