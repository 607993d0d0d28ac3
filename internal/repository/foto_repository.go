package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// FotoRepo provides persistence for listing photos.
type FotoRepo struct {
	db *sql.DB
}

// NewFotoRepo returns a new FotoRepo bound to the given database.
func NewFotoRepo(db *sql.DB) *FotoRepo { return &FotoRepo{db: db} }

const fotoCols = `id, propiedad_id, nombre, url, sort_order`

func scanFoto(row interface{ Scan(...any) error }) (*model.Foto, error) {
	var f model.Foto
	if err := row.Scan(&f.ID, &f.PropiedadID, &f.Nombre, &f.URL, &f.Orden); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new foto and populates the generated ID.
func (r *FotoRepo) Create(ctx context.Context, f *model.Foto) error {
	const q = `INSERT INTO fotos (propiedad_id, nombre, url, sort_order) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.PropiedadID, f.Nombre, f.URL, f.Orden)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// GetByID returns one foto or sql.ErrNoRows.
func (r *FotoRepo) GetByID(ctx context.Context, id int64) (*model.Foto, error) {
	const q = `SELECT ` + fotoCols + ` FROM fotos WHERE id = ?`
	return scanFoto(r.db.QueryRowContext(ctx, q, id))
}

// ListByPropiedad returns the photos of one listing in display order.
func (r *FotoRepo) ListByPropiedad(ctx context.Context, propiedadID int64) ([]model.Foto, error) {
	const q = `SELECT ` + fotoCols + ` FROM fotos WHERE propiedad_id = ? ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q, propiedadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Foto, 0)
	for rows.Next() {
		f, err := scanFoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByPropiedad counts the photos attached to one listing.
func (r *FotoRepo) CountByPropiedad(ctx context.Context, propiedadID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM fotos WHERE propiedad_id = ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, propiedadID).Scan(&n)
	return n, err
}

// Delete removes a foto.  It returns sql.ErrNoRows when nothing was
// deleted.
func (r *FotoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fotos WHERE id = ?`, id)
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
