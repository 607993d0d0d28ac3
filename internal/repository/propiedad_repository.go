package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// PropiedadRepo provides persistence for property listings.
type PropiedadRepo struct {
	db *sql.DB
}

// NewPropiedadRepo returns a new PropiedadRepo bound to the given database.
func NewPropiedadRepo(db *sql.DB) *PropiedadRepo { return &PropiedadRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *PropiedadRepo) DB() *sql.DB { return r.db }

const propiedadCols = `id, codigo, titulo, direccion, precio_mensual, divisa,
    m2, n_habit, n_banos, pet_friendly, tipo, comuna, region,
    disponible, propietario_id, fcreacion`

func scanPropiedad(row interface{ Scan(...any) error }) (*model.Propiedad, error) {
	var p model.Propiedad
	if err := row.Scan(&p.ID, &p.Codigo, &p.Titulo, &p.Direccion, &p.PrecioMensual, &p.Divisa,
		&p.M2, &p.NHabitaciones, &p.NBanos, &p.PetFriendly, &p.Tipo, &p.Comuna, &p.Region,
		&p.Disponible, &p.PropietarioID, &p.Fcreacion); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new propiedad and populates the generated ID.  A
// duplicate codigo returns ErrDuplicate.
func (r *PropiedadRepo) Create(ctx context.Context, p *model.Propiedad) error {
	const q = `INSERT INTO propiedades
	    (codigo, titulo, direccion, precio_mensual, divisa,
	     m2, n_habit, n_banos, pet_friendly, tipo, comuna, region,
	     disponible, propietario_id, fcreacion)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Codigo, p.Titulo, p.Direccion, p.PrecioMensual, p.Divisa,
		p.M2, p.NHabitaciones, p.NBanos, p.PetFriendly, p.Tipo, p.Comuna, p.Region,
		p.Disponible, p.PropietarioID, p.Fcreacion.UTC())
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
	p.ID = id
	return nil
}

// GetByID returns one propiedad or sql.ErrNoRows.
func (r *PropiedadRepo) GetByID(ctx context.Context, id int64) (*model.Propiedad, error) {
	const q = `SELECT ` + propiedadCols + ` FROM propiedades WHERE id = ?`
	return scanPropiedad(r.db.QueryRowContext(ctx, q, id))
}

// List returns listings, optionally restricted to available ones.
func (r *PropiedadRepo) List(ctx context.Context, soloDisponibles bool) ([]model.Propiedad, error) {
	q := `SELECT ` + propiedadCols + ` FROM propiedades`
	if soloDisponibles {
		q += ` WHERE disponible = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Propiedad, 0)
	for rows.Next() {
		p, err := scanPropiedad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPropietario returns the listings owned by one user.
func (r *PropiedadRepo) ListByPropietario(ctx context.Context, propietarioID int64) ([]model.Propiedad, error) {
	const q = `SELECT ` + propiedadCols + ` FROM propiedades WHERE propietario_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, propietarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Propiedad, 0)
	for rows.Next() {
		p, err := scanPropiedad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable columns of a listing.  It returns
// sql.ErrNoRows when the id is unknown.
func (r *PropiedadRepo) Update(ctx context.Context, p *model.Propiedad) error {
	const q = `UPDATE propiedades
	           SET titulo = ?, direccion = ?, precio_mensual = ?, divisa = ?,
	               m2 = ?, n_habit = ?, n_banos = ?, pet_friendly = ?, tipo = ?, comuna = ?, region = ?,
	               disponible = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Titulo, p.Direccion, p.PrecioMensual, p.Divisa,
		p.M2, p.NHabitaciones, p.NBanos, p.PetFriendly, p.Tipo, p.Comuna, p.Region,
		p.Disponible, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		// Either unknown id or identical values; callers load the row
		// first, so treat it as success when the row exists.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM propiedades WHERE id = ?`, p.ID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// SetDisponible flips the availability flag.  It returns sql.ErrNoRows
// when the id is unknown.
func (r *PropiedadRepo) SetDisponible(ctx context.Context, id int64, disponible bool) error {
	const q = `UPDATE propiedades SET disponible = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, disponible, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM propiedades WHERE id = ?`, id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a listing.  It returns sql.ErrNoRows when nothing was
// deleted.
func (r *PropiedadRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM propiedades WHERE id = ?`, id)
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
