package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// DocumentoRepo provides persistence for verification documents.
type DocumentoRepo struct {
	db *sql.DB
}

// NewDocumentoRepo returns a new DocumentoRepo bound to the given database.
func NewDocumentoRepo(db *sql.DB) *DocumentoRepo { return &DocumentoRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *DocumentoRepo) DB() *sql.DB { return r.db }

const documentoCols = `id, nombre, usuario_id, tipo, estado, observaciones, f_subido`

func scanDocumento(row interface{ Scan(...any) error }) (*model.Documento, error) {
	var d model.Documento
	var obs sql.NullString
	if err := row.Scan(&d.ID, &d.Nombre, &d.UsuarioID, &d.Tipo, &d.Estado, &obs, &d.FechaSubido); err != nil {
		return nil, err
	}
	d.Observaciones = obs.String
	return &d, nil
}

// Create inserts a new documento and populates the generated ID.
func (r *DocumentoRepo) Create(ctx context.Context, d *model.Documento) error {
	const q = `INSERT INTO documentos (nombre, usuario_id, tipo, estado, observaciones, f_subido)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Nombre, d.UsuarioID, d.Tipo, d.Estado, d.Observaciones, d.FechaSubido.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// GetByID returns one documento or sql.ErrNoRows.
func (r *DocumentoRepo) GetByID(ctx context.Context, id int64) (*model.Documento, error) {
	const q = `SELECT ` + documentoCols + ` FROM documentos WHERE id = ?`
	return scanDocumento(r.db.QueryRowContext(ctx, q, id))
}

// List returns every documento ordered by upload time descending.
func (r *DocumentoRepo) List(ctx context.Context) ([]model.Documento, error) {
	const q = `SELECT ` + documentoCols + ` FROM documentos ORDER BY f_subido DESC, id DESC`
	return r.queryMany(ctx, q)
}

// ListByUsuario returns the documents uploaded by one user.
func (r *DocumentoRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]model.Documento, error) {
	const q = `SELECT ` + documentoCols + ` FROM documentos WHERE usuario_id = ? ORDER BY f_subido DESC, id DESC`
	return r.queryMany(ctx, q, usuarioID)
}

func (r *DocumentoRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Documento, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Documento, 0)
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByUsuario counts all documents a user has uploaded.
func (r *DocumentoRepo) CountByUsuario(ctx context.Context, usuarioID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM documentos WHERE usuario_id = ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, usuarioID).Scan(&n)
	return n, err
}

// ApprovalCounts returns the total number of documents a user has and
// how many of them are ACEPTADO, in one round trip.  The pair feeds the
// all-approved check consumed by the application service.
func (r *DocumentoRepo) ApprovalCounts(ctx context.Context, usuarioID int64) (total, aprobados int64, err error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(estado = ?), 0) FROM documentos WHERE usuario_id = ?`
	err = r.db.QueryRowContext(ctx, q, model.DocumentoAceptado, usuarioID).Scan(&total, &aprobados)
	return total, aprobados, err
}

// UpdateEstado changes the review state of a document, recording the
// reviewer's observaciones.  It returns sql.ErrNoRows when the id is
// unknown.
func (r *DocumentoRepo) UpdateEstado(ctx context.Context, id int64, estado model.EstadoDocumento, observaciones string) error {
	const q = `UPDATE documentos SET estado = ?, observaciones = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, estado, observaciones, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM documentos WHERE id = ?`, id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a document.  It returns sql.ErrNoRows when nothing was
// deleted.
func (r *DocumentoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documentos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
