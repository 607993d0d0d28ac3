package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

func arriendatario() *client.Usuario {
	return &client.Usuario{ID: 1, Rol: model.RolArriendatario, Estado: model.UsuarioActivo}
}

func propiedadDisponible() *client.Propiedad {
	return &client.Propiedad{ID: 2, Disponible: true, PrecioMensual: 350000}
}

// gateService builds a SolicitudService with everything set up to pass
// the validation gate; tests break one piece at a time.
func gateService() *SolicitudService {
	return &SolicitudService{
		counts:     &fakeCounts{},
		users:      &fakeUsers{user: arriendatario()},
		properties: &fakeProperties{prop: propiedadDisponible()},
		documents:  &fakeDocuments{approved: true},
		maxActivas: 3,
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	return be.Reason
}

func TestValidarNuevaPasaConTodoEnOrden(t *testing.T) {
	s := gateService()
	require.NoError(t, s.validarNueva(context.Background(), 1, 2))
}

func TestValidarNuevaUsuarioNoExiste(t *testing.T) {
	s := gateService()
	s.users = &fakeUsers{user: nil}
	assert.Equal(t, ReasonUsuarioNoExiste, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaUsuarioInalcanzable(t *testing.T) {
	s := gateService()
	s.users = &fakeUsers{err: &client.CommunicationError{Service: "user-service", Err: errors.New("timeout")}}

	err := s.validarNueva(context.Background(), 1, 2)
	var ce *client.CommunicationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "user-service", ce.Service)
}

func TestValidarNuevaPropiedadNoExiste(t *testing.T) {
	s := gateService()
	s.properties = &fakeProperties{prop: nil}
	assert.Equal(t, ReasonPropiedadNoExiste, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaPropiedadNoDisponible(t *testing.T) {
	s := gateService()
	p := propiedadDisponible()
	p.Disponible = false
	s.properties = &fakeProperties{prop: p}
	assert.Equal(t, ReasonPropiedadNoDisponible, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaRolNoPermitido(t *testing.T) {
	s := gateService()
	u := arriendatario()
	u.Rol = model.RolPropietario
	s.users = &fakeUsers{user: u}
	assert.Equal(t, ReasonRolNoPermitido, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaAdminPuedeCrear(t *testing.T) {
	s := gateService()
	u := arriendatario()
	u.Rol = model.RolAdmin
	s.users = &fakeUsers{user: u}
	require.NoError(t, s.validarNueva(context.Background(), 1, 2))
}

func TestValidarNuevaDocumentosNoAprobados(t *testing.T) {
	s := gateService()
	s.documents = &fakeDocuments{approved: false}
	assert.Equal(t, ReasonDocumentosNoAprobados, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaMaximoDeActivas(t *testing.T) {
	s := gateService()
	s.counts = &fakeCounts{pendientes: 3}
	assert.Equal(t, ReasonMaxSolicitudesActivas, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

func TestValidarNuevaDuplicada(t *testing.T) {
	s := gateService()
	s.counts = &fakeCounts{duplicada: true}
	assert.Equal(t, ReasonSolicitudDuplicada, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

// The property availability check runs before the role check, so a
// request failing both reports the property problem.
func TestValidarNuevaOrdenDeChequeos(t *testing.T) {
	s := gateService()
	p := propiedadDisponible()
	p.Disponible = false
	s.properties = &fakeProperties{prop: p}
	u := arriendatario()
	u.Rol = model.RolPropietario
	s.users = &fakeUsers{user: u}

	assert.Equal(t, ReasonPropiedadNoDisponible, reasonOf(t, s.validarNueva(context.Background(), 1, 2)))
}

// txService builds a SolicitudService over a sqlmock database with the
// gate set up to pass.
func txService(t *testing.T) (*SolicitudService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	solicitudes := repository.NewSolicitudRepo(db)
	registros := NewRegistroService(repository.NewRegistroRepo(db), solicitudes)
	s := NewSolicitudService(
		solicitudes, registros,
		&fakeUsers{user: arriendatario()},
		&fakeProperties{prop: propiedadDisponible()},
		&fakeDocuments{approved: true},
		3,
	)
	// The fakes stand in for the gate's repository reads too.
	s.counts = &fakeCounts{}
	return s, mock
}

func solicitudRow(id int64, estado model.EstadoSolicitud) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "usuario_id", "propiedad_id", "estado", "fecha_solicitud"}).
		AddRow(id, 1, 2, string(estado), time.Now().UTC())
}

func TestCrearInsertaPendiente(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO solicitudes").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	sol, err := s.Crear(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sol.ID)
	assert.Equal(t, model.SolicitudPendiente, sol.Estado)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Two requests race past the gate for the same (usuario, propiedad)
// pair; the snapshot reads in both gates see no PENDIENTE row, so the
// loser is stopped by the unique key on (usuario_id, propiedad_id,
// pendiente) and the collision is reported as a duplicate, not as a
// second PENDIENTE row.
func TestCrearPierdeCarreraContraDuplicada(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO solicitudes").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2-1' for key 'uk_solicitud_pendiente'"})
	mock.ExpectRollback()

	_, err := s.Crear(context.Background(), 1, 2)
	assert.Equal(t, ReasonSolicitudDuplicada, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrearPierdeCarreraContraMaximo(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO solicitudes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.Crear(context.Background(), 1, 2)
	assert.Equal(t, ReasonMaxSolicitudesActivas, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAceptarAbreRegistroEnLaMismaTransaccion(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectQuery("FROM solicitudes WHERE id = ").
		WillReturnRows(solicitudRow(5, model.SolicitudPendiente))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(solicitudRow(5, model.SolicitudPendiente))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE solicitudes SET estado = ?, pendiente = NULL WHERE id = ? AND estado = ?")).
		WithArgs(string(model.SolicitudAceptada), int64(5), string(model.SolicitudPendiente)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO registros_arriendo").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	sol, reg, err := s.Aceptar(context.Background(), 5, AperturaRegistro{})
	require.NoError(t, err)
	assert.Equal(t, model.SolicitudAceptada, sol.Estado)
	assert.Equal(t, int64(7), reg.ID)
	assert.True(t, reg.Activo)
	// Monto omitted in the request: resolved from the property service.
	assert.Equal(t, 350000.0, reg.MontoMensual)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAceptarRechazaEstadoTerminal(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectQuery("FROM solicitudes WHERE id = ").
		WillReturnRows(solicitudRow(5, model.SolicitudRechazada))

	_, _, err := s.Aceptar(context.Background(), 5, AperturaRegistro{})
	assert.Equal(t, ReasonEstadoInvalido, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The accept path re-checks the state under the row lock: a solicitud
// resolved between the fast-fail read and the lock is refused and the
// transaction rolled back.
func TestAceptarRechazaResolucionConcurrente(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectQuery("FROM solicitudes WHERE id = ").
		WillReturnRows(solicitudRow(5, model.SolicitudPendiente))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(solicitudRow(5, model.SolicitudAceptada))
	mock.ExpectRollback()

	_, _, err := s.Aceptar(context.Background(), 5, AperturaRegistro{})
	assert.Equal(t, ReasonEstadoInvalido, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// When the property service is down and the request did not carry a
// monto the acceptance must not happen at all.
func TestAceptarSinMontoConPropiedadInalcanzable(t *testing.T) {
	s, mock := txService(t)
	s.properties = &fakeProperties{err: &client.CommunicationError{Service: "property-service", Err: errors.New("down")}}

	mock.ExpectQuery("FROM solicitudes WHERE id = ").
		WillReturnRows(solicitudRow(5, model.SolicitudPendiente))

	_, _, err := s.Aceptar(context.Background(), 5, AperturaRegistro{})
	var ce *client.CommunicationError
	require.ErrorAs(t, err, &ce)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRechazarTransicionaPendiente(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(solicitudRow(5, model.SolicitudPendiente))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE solicitudes SET estado = ?, pendiente = NULL WHERE id = ? AND estado = ?")).
		WithArgs(string(model.SolicitudRechazada), int64(5), string(model.SolicitudPendiente)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sol, err := s.Rechazar(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.SolicitudRechazada, sol.Estado)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRechazarInexistenteDevuelveNotFound(t *testing.T) {
	s, mock := txService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "propiedad_id", "estado", "fecha_solicitud"}))
	mock.ExpectRollback()

	_, err := s.Rechazar(context.Background(), 99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(99), nf.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
