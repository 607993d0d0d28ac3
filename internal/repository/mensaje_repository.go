package repository

import (
	"context"
	"database/sql"

	"github.com/rentify/rental-services/internal/model"
)

// MensajeRepo provides persistence for contact-form messages.
type MensajeRepo struct {
	db *sql.DB
}

// NewMensajeRepo returns a new MensajeRepo bound to the given database.
func NewMensajeRepo(db *sql.DB) *MensajeRepo { return &MensajeRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *MensajeRepo) DB() *sql.DB { return r.db }

const mensajeCols = `id, usuario_id, nombre, email, asunto, mensaje, respondido, respuesta, fcreacion`

func scanMensaje(row interface{ Scan(...any) error }) (*model.Mensaje, error) {
	var m model.Mensaje
	var usuarioID sql.NullInt64
	var respuesta sql.NullString
	if err := row.Scan(&m.ID, &usuarioID, &m.Nombre, &m.Email, &m.Asunto, &m.Mensaje,
		&m.Respondido, &respuesta, &m.Fcreacion); err != nil {
		return nil, err
	}
	if usuarioID.Valid {
		id := usuarioID.Int64
		m.UsuarioID = &id
	}
	m.Respuesta = respuesta.String
	return &m, nil
}

// Create inserts a new mensaje and populates the generated ID.
func (r *MensajeRepo) Create(ctx context.Context, m *model.Mensaje) error {
	const q = `INSERT INTO mensajes_contacto (usuario_id, nombre, email, asunto, mensaje, respondido, fcreacion)
	           VALUES (?, ?, ?, ?, ?, 0, ?)`
	var usuarioID any
	if m.UsuarioID != nil {
		usuarioID = *m.UsuarioID
	}
	res, err := r.db.ExecContext(ctx, q, usuarioID, m.Nombre, m.Email, m.Asunto, m.Mensaje, m.Fcreacion.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// GetByID returns one mensaje or sql.ErrNoRows.
func (r *MensajeRepo) GetByID(ctx context.Context, id int64) (*model.Mensaje, error) {
	const q = `SELECT ` + mensajeCols + ` FROM mensajes_contacto WHERE id = ?`
	return scanMensaje(r.db.QueryRowContext(ctx, q, id))
}

// List returns every mensaje, newest first.  When soloPendientes is
// true only unanswered messages are returned.
func (r *MensajeRepo) List(ctx context.Context, soloPendientes bool) ([]model.Mensaje, error) {
	q := `SELECT ` + mensajeCols + ` FROM mensajes_contacto`
	if soloPendientes {
		q += ` WHERE respondido = 0`
	}
	q += ` ORDER BY fcreacion DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Mensaje, 0)
	for rows.Next() {
		m, err := scanMensaje(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Responder stores the reply and marks the message answered.  It
// returns false when the message was already answered (or missing).
func (r *MensajeRepo) Responder(ctx context.Context, id int64, respuesta string) (bool, error) {
	const q = `UPDATE mensajes_contacto SET respondido = 1, respuesta = ? WHERE id = ? AND respondido = 0`
	res, err := r.db.ExecContext(ctx, q, respuesta, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Delete removes a message.  It returns sql.ErrNoRows when nothing was
// deleted.
func (r *MensajeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mensajes_contacto WHERE id = ?`, id)
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
