package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func beginTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) *sql.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	return tx
}

func TestCreatePendienteTxPopulaIDCuandoElGuardPermite(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)
	tx := beginTx(t, db, mock)

	s := &model.Solicitud{UsuarioID: 1, PropiedadID: 2, FechaSolicitud: time.Now().UTC()}
	mock.ExpectExec("INSERT INTO solicitudes").
		WithArgs(
			s.UsuarioID, s.PropiedadID, string(model.SolicitudPendiente), s.FechaSolicitud,
			s.UsuarioID, string(model.SolicitudPendiente), 3,
		).
		WillReturnResult(sqlmock.NewResult(11, 1))

	inserted, err := repo.CreatePendienteTx(context.Background(), tx, s, 3)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(11), s.ID)
	assert.Equal(t, model.SolicitudPendiente, s.Estado)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePendienteTxDevuelveFalseCuandoElGuardRechaza(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)
	tx := beginTx(t, db, mock)

	mock.ExpectExec("INSERT INTO solicitudes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := &model.Solicitud{UsuarioID: 1, PropiedadID: 2, FechaSolicitud: time.Now().UTC()}
	inserted, err := repo.CreatePendienteTx(context.Background(), tx, s, 3)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, s.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Two writers racing on the same (usuario, propiedad) pair: the loser
// hits the UNIQUE KEY (usuario_id, propiedad_id, pendiente) and gets
// ErrDuplicate, never a second PENDIENTE row.
func TestCreatePendienteTxColisionEnClaveUnica(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)
	tx := beginTx(t, db, mock)

	mock.ExpectExec("INSERT INTO solicitudes").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2-1' for key 'uk_solicitud_pendiente'"})

	s := &model.Solicitud{UsuarioID: 1, PropiedadID: 2, FechaSolicitud: time.Now().UTC()}
	inserted, err := repo.CreatePendienteTx(context.Background(), tx, s, 3)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.False(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEstadoTxEsCompareAndSwap(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)
	tx := beginTx(t, db, mock)

	mock.ExpectExec("UPDATE solicitudes SET estado = ., pendiente = NULL").
		WithArgs(string(model.SolicitudAceptada), int64(5), string(model.SolicitudPendiente)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.UpdateEstadoTx(context.Background(), tx, 5, model.SolicitudPendiente, model.SolicitudAceptada)
	require.NoError(t, err)
	assert.True(t, ok)

	// Row no longer in the expected source state: zero rows affected.
	mock.ExpectExec("UPDATE solicitudes SET estado = ., pendiente = NULL").
		WithArgs(string(model.SolicitudRechazada), int64(5), string(model.SolicitudPendiente)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.UpdateEstadoTx(context.Background(), tx, 5, model.SolicitudPendiente, model.SolicitudRechazada)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountPendientesByUsuario(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1), string(model.SolicitudPendiente)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountPendientesByUsuario(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDSinFilasEsErrNoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSolicitudRepo(db)

	mock.ExpectQuery("FROM solicitudes WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "propiedad_id", "estado", "fecha_solicitud"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateDetectaError1062(t *testing.T) {
	assert.True(t, isDuplicate(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1054}))
	assert.False(t, isDuplicate(sql.ErrNoRows))
}
