package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// ResenaRepo provides persistence for reviews.  A unique index over
// (usuario_id, propiedad_id, tipo) backs the one-review rule; the
// service still pre-checks to answer with a friendlier message.
type ResenaRepo struct {
	db *sql.DB
}

// NewResenaRepo returns a new ResenaRepo bound to the given database.
func NewResenaRepo(db *sql.DB) *ResenaRepo { return &ResenaRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *ResenaRepo) DB() *sql.DB { return r.db }

const resenaCols = `id, usuario_id, propiedad_id, tipo, puntuacion, comentario, fcreacion`

func scanResena(row interface{ Scan(...any) error }) (*model.Resena, error) {
	var re model.Resena
	if err := row.Scan(&re.ID, &re.UsuarioID, &re.PropiedadID, &re.Tipo, &re.Puntuacion,
		&re.Comentario, &re.Fcreacion); err != nil {
		return nil, err
	}
	return &re, nil
}

// Create inserts a new resena and populates the generated ID.  A repeat
// review for the same (usuario, propiedad, tipo) returns ErrDuplicate.
func (r *ResenaRepo) Create(ctx context.Context, re *model.Resena) error {
	const q = `INSERT INTO resenas (usuario_id, propiedad_id, tipo, puntuacion, comentario, fcreacion)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, re.UsuarioID, re.PropiedadID, re.Tipo, re.Puntuacion, re.Comentario, re.Fcreacion.UTC())
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	re.ID = id
	return nil
}

// GetByID returns one resena or sql.ErrNoRows.
func (r *ResenaRepo) GetByID(ctx context.Context, id int64) (*model.Resena, error) {
	const q = `SELECT ` + resenaCols + ` FROM resenas WHERE id = ?`
	return scanResena(r.db.QueryRowContext(ctx, q, id))
}

// List returns every resena, newest first.
func (r *ResenaRepo) List(ctx context.Context) ([]model.Resena, error) {
	const q = `SELECT ` + resenaCols + ` FROM resenas ORDER BY fcreacion DESC, id DESC`
	return r.queryMany(ctx, q)
}

// ListByPropiedad returns the reviews about one property.
func (r *ResenaRepo) ListByPropiedad(ctx context.Context, propiedadID int64) ([]model.Resena, error) {
	const q = `SELECT ` + resenaCols + ` FROM resenas WHERE propiedad_id = ? ORDER BY fcreacion DESC, id DESC`
	return r.queryMany(ctx, q, propiedadID)
}

// ListByUsuario returns the reviews written by one user.
func (r *ResenaRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]model.Resena, error) {
	const q = `SELECT ` + resenaCols + ` FROM resenas WHERE usuario_id = ? ORDER BY fcreacion DESC, id DESC`
	return r.queryMany(ctx, q, usuarioID)
}

func (r *ResenaRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Resena, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Resena, 0)
	for rows.Next() {
		re, err := scanResena(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *re)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether the user already reviewed the property with
// the given tipo.
func (r *ResenaRepo) Exists(ctx context.Context, usuarioID, propiedadID int64, tipo model.TipoResena) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM resenas WHERE usuario_id = ? AND propiedad_id = ? AND tipo = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, usuarioID, propiedadID, tipo).Scan(&exists)
	return exists, err
}

// Delete removes a review.  It returns sql.ErrNoRows when nothing was
// deleted.
func (r *ResenaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resenas WHERE id = ?`, id)
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
