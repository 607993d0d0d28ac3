package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// SolicitudRepo provides persistence for rental applications.  All
// timestamp values are stored in UTC.  Mutations that participate in a
// larger unit of work expose Tx variants; the caller owns commit and
// rollback.
type SolicitudRepo struct {
	db *sql.DB
}

// NewSolicitudRepo returns a new SolicitudRepo bound to the given database.
func NewSolicitudRepo(db *sql.DB) *SolicitudRepo { return &SolicitudRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *SolicitudRepo) DB() *sql.DB { return r.db }

const solicitudCols = `id, usuario_id, propiedad_id, estado, fecha_solicitud`

func scanSolicitud(row interface{ Scan(...any) error }) (*model.Solicitud, error) {
	var s model.Solicitud
	if err := row.Scan(&s.ID, &s.UsuarioID, &s.PropiedadID, &s.Estado, &s.FechaSolicitud); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID returns one solicitud or sql.ErrNoRows.
func (r *SolicitudRepo) GetByID(ctx context.Context, id int64) (*model.Solicitud, error) {
	const q = `SELECT ` + solicitudCols + ` FROM solicitudes WHERE id = ?`
	return scanSolicitud(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDForUpdateTx loads a solicitud with a row lock inside tx.  It
// serializes concurrent transitions on the same application.
func (r *SolicitudRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*model.Solicitud, error) {
	const q = `SELECT ` + solicitudCols + ` FROM solicitudes WHERE id = ? FOR UPDATE`
	return scanSolicitud(tx.QueryRowContext(ctx, q, id))
}

// List returns every solicitud ordered by creation time descending.
func (r *SolicitudRepo) List(ctx context.Context) ([]model.Solicitud, error) {
	const q = `SELECT ` + solicitudCols + ` FROM solicitudes ORDER BY fecha_solicitud DESC, id DESC`
	return r.queryMany(ctx, q)
}

// ListByUsuario returns the solicitudes created by one user.
func (r *SolicitudRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]model.Solicitud, error) {
	const q = `SELECT ` + solicitudCols + ` FROM solicitudes WHERE usuario_id = ? ORDER BY fecha_solicitud DESC, id DESC`
	return r.queryMany(ctx, q, usuarioID)
}

// ListByPropiedad returns the solicitudes targeting one property.
func (r *SolicitudRepo) ListByPropiedad(ctx context.Context, propiedadID int64) ([]model.Solicitud, error) {
	const q = `SELECT ` + solicitudCols + ` FROM solicitudes WHERE propiedad_id = ? ORDER BY fecha_solicitud DESC, id DESC`
	return r.queryMany(ctx, q, propiedadID)
}

func (r *SolicitudRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Solicitud, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Solicitud, 0)
	for rows.Next() {
		s, err := scanSolicitud(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountPendientesByUsuario counts the user's PENDIENTE solicitudes.
func (r *SolicitudRepo) CountPendientesByUsuario(ctx context.Context, usuarioID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM solicitudes WHERE usuario_id = ? AND estado = ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, usuarioID, model.SolicitudPendiente).Scan(&n)
	return n, err
}

// ExistsPendiente reports whether the (user, property) pair already has
// a PENDIENTE solicitud.
func (r *SolicitudRepo) ExistsPendiente(ctx context.Context, usuarioID, propiedadID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM solicitudes WHERE usuario_id = ? AND propiedad_id = ? AND estado = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, usuarioID, propiedadID, model.SolicitudPendiente).Scan(&exists)
	return exists, err
}

// CreatePendienteTx inserts a new PENDIENTE solicitud.  MySQL has no
// partial unique index over (usuario_id, propiedad_id, estado=PENDIENTE),
// so the table carries a nullable marker column `pendiente` that is 1
// while the solicitud is PENDIENTE and NULL once it transitions; the
// UNIQUE KEY (usuario_id, propiedad_id, pendiente) then enforces the
// one-PENDIENTE-per-pair invariant at the storage layer (NULLs never
// collide), independent of what any concurrent snapshot read saw.  A
// duplicate surfaces as ErrDuplicate.  The max-active cap is
// re-evaluated inside the INSERT; a guard rejection returns false.
func (r *SolicitudRepo) CreatePendienteTx(ctx context.Context, tx *sql.Tx, s *model.Solicitud, maxActivas int) (bool, error) {
	const q = `INSERT INTO solicitudes (usuario_id, propiedad_id, estado, pendiente, fecha_solicitud)
	           SELECT ?, ?, ?, 1, ?
	           FROM DUAL
	           WHERE (SELECT COUNT(*) FROM solicitudes
	                  WHERE usuario_id = ? AND estado = ?) < ?`
	res, err := tx.ExecContext(ctx, q,
		s.UsuarioID, s.PropiedadID, model.SolicitudPendiente, s.FechaSolicitud.UTC(),
		s.UsuarioID, model.SolicitudPendiente, maxActivas,
	)
	if err != nil {
		if isDuplicate(err) {
			return false, ErrDuplicate
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	s.ID = id
	s.Estado = model.SolicitudPendiente
	return true, nil
}

// UpdateEstadoTx transitions the solicitud from one state to another as
// a compare-and-swap, clearing the `pendiente` marker so the
// (usuario_id, propiedad_id) pair becomes insertable again.  It returns
// false when the row was not in the expected source state (or does not
// exist); the caller distinguishes the two cases.
func (r *SolicitudRepo) UpdateEstadoTx(ctx context.Context, tx *sql.Tx, id int64, from, to model.EstadoSolicitud) (bool, error) {
	const q = `UPDATE solicitudes SET estado = ?, pendiente = NULL WHERE id = ? AND estado = ?`
	res, err := tx.ExecContext(ctx, q, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
