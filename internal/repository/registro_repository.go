package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rentify/rental-services/internal/model"
)

// RegistroRepo provides persistence for lease records.  A registro is
// tied to exactly one solicitud; at most one active registro may exist
// per solicitud, which the service layer enforces inside a transaction
// spanning both tables.
type RegistroRepo struct {
	db *sql.DB
}

// NewRegistroRepo returns a new RegistroRepo bound to the given database.
func NewRegistroRepo(db *sql.DB) *RegistroRepo { return &RegistroRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *RegistroRepo) DB() *sql.DB { return r.db }

const registroCols = `id, solicitud_id, fecha_inicio, fecha_fin, monto_mensual, activo`

func scanRegistro(row interface{ Scan(...any) error }) (*model.Registro, error) {
	var reg model.Registro
	var fin sql.NullTime
	if err := row.Scan(&reg.ID, &reg.SolicitudID, &reg.FechaInicio, &fin, &reg.MontoMensual, &reg.Activo); err != nil {
		return nil, err
	}
	if fin.Valid {
		t := fin.Time
		reg.FechaFin = &t
	}
	return &reg, nil
}

// CreateTx inserts a new registro within the scope of an existing
// transaction and populates the generated ID.  The caller must commit
// or roll back.
func (r *RegistroRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.Registro) error {
	const q = `INSERT INTO registros_arriendo (solicitud_id, fecha_inicio, fecha_fin, monto_mensual, activo)
	           VALUES (?, ?, ?, ?, ?)`
	var fin any
	if reg.FechaFin != nil {
		fin = reg.FechaFin.UTC()
	}
	res, err := tx.ExecContext(ctx, q, reg.SolicitudID, reg.FechaInicio.UTC(), fin, reg.MontoMensual, reg.Activo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = id
	return nil
}

// GetByID returns one registro or sql.ErrNoRows.
func (r *RegistroRepo) GetByID(ctx context.Context, id int64) (*model.Registro, error) {
	const q = `SELECT ` + registroCols + ` FROM registros_arriendo WHERE id = ?`
	return scanRegistro(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDForUpdateTx loads a registro with a row lock inside tx so a
// close cannot race another close of the same record.
func (r *RegistroRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*model.Registro, error) {
	const q = `SELECT ` + registroCols + ` FROM registros_arriendo WHERE id = ? FOR UPDATE`
	return scanRegistro(tx.QueryRowContext(ctx, q, id))
}

// List returns every registro, newest first.
func (r *RegistroRepo) List(ctx context.Context) ([]model.Registro, error) {
	const q = `SELECT ` + registroCols + ` FROM registros_arriendo ORDER BY id DESC`
	return r.queryMany(ctx, q)
}

// ListBySolicitud returns the registros created for one solicitud,
// active or not.
func (r *RegistroRepo) ListBySolicitud(ctx context.Context, solicitudID int64) ([]model.Registro, error) {
	const q = `SELECT ` + registroCols + ` FROM registros_arriendo WHERE solicitud_id = ? ORDER BY id DESC`
	return r.queryMany(ctx, q, solicitudID)
}

func (r *RegistroRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Registro, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Registro, 0)
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsActivoBySolicitudTx reports, inside an open transaction, whether
// the solicitud already has an active registro.
func (r *RegistroRepo) ExistsActivoBySolicitudTx(ctx context.Context, tx *sql.Tx, solicitudID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM registros_arriendo WHERE solicitud_id = ? AND activo = 1)`
	var exists bool
	err := tx.QueryRowContext(ctx, q, solicitudID).Scan(&exists)
	return exists, err
}

// DeactivateTx closes an active registro, stamping fecha_fin.  It
// returns false when the row was not active (or does not exist).
func (r *RegistroRepo) DeactivateTx(ctx context.Context, tx *sql.Tx, id int64, fechaFin time.Time) (bool, error) {
	const q = `UPDATE registros_arriendo SET activo = 0, fecha_fin = ? WHERE id = ? AND activo = 1`
	res, err := tx.ExecContext(ctx, q, fechaFin.UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
