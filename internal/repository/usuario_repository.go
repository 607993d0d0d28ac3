package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// UsuarioRepo provides persistence for user accounts.  Email and rut
// carry unique indexes; violations surface as ErrDuplicate so the
// service can answer with the offending field.
type UsuarioRepo struct {
	db *sql.DB
}

// NewUsuarioRepo returns a new UsuarioRepo bound to the given database.
func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *UsuarioRepo) DB() *sql.DB { return r.db }

const usuarioCols = `id, pnombre, snombre, papellido, fnacimiento, email, rut, ntelefono,
	clave, puntos, duoc_vip, codigo_ref, rol, estado, fcreacion, factualizacion`

func scanUsuario(row interface{ Scan(...any) error }) (*model.Usuario, error) {
	var u model.Usuario
	if err := row.Scan(
		&u.ID, &u.Pnombre, &u.Snombre, &u.Papellido, &u.Fnacimiento, &u.Email, &u.Rut, &u.Ntelefono,
		&u.Clave, &u.Puntos, &u.DuocVip, &u.CodigoRef, &u.Rol, &u.Estado, &u.Fcreacion, &u.Factualizacion,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new usuario and populates the generated ID.  Unique
// violations on email or rut return ErrDuplicate.
func (r *UsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	const q = `INSERT INTO usuarios
	    (pnombre, snombre, papellido, fnacimiento, email, rut, ntelefono,
	     clave, puntos, duoc_vip, codigo_ref, rol, estado, fcreacion, factualizacion)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		u.Pnombre, u.Snombre, u.Papellido, u.Fnacimiento.UTC(), u.Email, u.Rut, u.Ntelefono,
		u.Clave, u.Puntos, u.DuocVip, u.CodigoRef, u.Rol, u.Estado, u.Fcreacion.UTC(), u.Factualizacion.UTC(),
	)
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
	u.ID = id
	return nil
}

// GetByID returns one usuario or sql.ErrNoRows.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*model.Usuario, error) {
	const q = `SELECT ` + usuarioCols + ` FROM usuarios WHERE id = ?`
	return scanUsuario(r.db.QueryRowContext(ctx, q, id))
}

// List returns every usuario ordered by id.
func (r *UsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	const q = `SELECT ` + usuarioCols + ` FROM usuarios ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Usuario, 0)
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByEmail reports whether an account already uses the email.
func (r *UsuarioRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, email).Scan(&exists)
	return exists, err
}

// ExistsByRut reports whether an account already uses the rut.
func (r *UsuarioRepo) ExistsByRut(ctx context.Context, rut string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM usuarios WHERE rut = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, rut).Scan(&exists)
	return exists, err
}

// Update overwrites the mutable profile columns and bumps
// factualizacion.  It returns sql.ErrNoRows when the id is unknown.
func (r *UsuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	const q = `UPDATE usuarios SET pnombre = ?, snombre = ?, papellido = ?, ntelefono = ?,
	           clave = ?, puntos = ?, rol = ?, estado = ?, factualizacion = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		u.Pnombre, u.Snombre, u.Papellido, u.Ntelefono,
		u.Clave, u.Puntos, u.Rol, u.Estado, u.Factualizacion.UTC(), u.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
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
