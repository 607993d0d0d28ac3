package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/repository"
)

func mensajeService(t *testing.T, users *fakeUsers) (*MensajeService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMensajeService(repository.NewMensajeRepo(db), users), mock
}

func TestCrearMensajeDeInvitado(t *testing.T) {
	s, mock := mensajeService(t, &fakeUsers{})
	mock.ExpectExec("INSERT INTO mensajes_contacto").
		WillReturnResult(sqlmock.NewResult(1, 1))

	m, err := s.Crear(context.Background(), NuevoMensaje{
		Nombre: "Pedro", Email: "pedro@example.com", Asunto: "Consulta", Mensaje: "Hola",
	})
	require.NoError(t, err)
	assert.Nil(t, m.UsuarioID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrearMensajeRechazaUsuarioInexistente(t *testing.T) {
	s, _ := mensajeService(t, &fakeUsers{user: nil})
	id := int64(9)
	_, err := s.Crear(context.Background(), NuevoMensaje{
		UsuarioID: &id, Nombre: "Pedro", Email: "pedro@example.com", Mensaje: "Hola",
	})
	assert.Equal(t, ReasonUsuarioNoExiste, reasonOf(t, err))
}

// The contact form stays usable when the user service is down: the
// account reference is dropped instead of failing the request.
func TestCrearMensajeDegradaFalloDeUsuario(t *testing.T) {
	s, mock := mensajeService(t, &fakeUsers{err: &client.CommunicationError{Service: "user-service", Err: errors.New("down")}})
	mock.ExpectExec("INSERT INTO mensajes_contacto").
		WillReturnResult(sqlmock.NewResult(2, 1))

	id := int64(9)
	m, err := s.Crear(context.Background(), NuevoMensaje{
		UsuarioID: &id, Nombre: "Pedro", Email: "pedro@example.com", Mensaje: "Hola",
	})
	require.NoError(t, err)
	assert.Nil(t, m.UsuarioID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResponderSoloUnaVez(t *testing.T) {
	s, mock := mensajeService(t, &fakeUsers{})

	// CAS update affects zero rows; the re-read finds the message, so
	// the failure is "already answered" rather than "not found".
	mock.ExpectExec("UPDATE mensajes_contacto").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM mensajes_contacto WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "nombre", "email", "asunto", "mensaje", "respondido", "respuesta", "fcreacion"}).
			AddRow(3, nil, "Pedro", "pedro@example.com", "Consulta", "Hola", true, "Gracias", time.Now().UTC()))

	_, err := s.Responder(context.Background(), 3, "Gracias de nuevo")
	assert.Equal(t, ReasonMensajeYaRespondido, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}
