package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
	"github.com/rentify/rental-services/internal/utils"
)

func usuarioService(t *testing.T) (*UsuarioService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// Minimum bcrypt cost keeps the hashing in tests fast.
	return NewUsuarioService(repository.NewUsuarioRepo(db), 4), mock
}

func registroValido() RegistroUsuario {
	return RegistroUsuario{
		Pnombre:     "Ana",
		Papellido:   "Rojas",
		Fnacimiento: time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Email:       "ana@example.com",
		Rut:         "12.345.678-9",
		Clave:       "secreta123",
	}
}

func expectSinDuplicados(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
}

func TestRegistrarCreaCuentaConClaveHasheada(t *testing.T) {
	s, mock := usuarioService(t)
	expectSinDuplicados(mock)
	mock.ExpectExec("INSERT INTO usuarios").
		WillReturnResult(sqlmock.NewResult(3, 1))

	u, err := s.Registrar(context.Background(), registroValido())
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, model.RolArriendatario, u.Rol)
	assert.Equal(t, model.UsuarioActivo, u.Estado)
	assert.NotEqual(t, "secreta123", u.Clave)
	assert.True(t, utils.VerifyPassword(u.Clave, "secreta123"))
	assert.NotEmpty(t, u.CodigoRef)
	assert.False(t, u.DuocVip)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrarMarcaVipPorDominioDuoc(t *testing.T) {
	s, mock := usuarioService(t)
	expectSinDuplicados(mock)
	mock.ExpectExec("INSERT INTO usuarios").
		WillReturnResult(sqlmock.NewResult(4, 1))

	in := registroValido()
	in.Email = "Ana@duoc.cl"
	u, err := s.Registrar(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "ana@duoc.cl", u.Email)
	assert.True(t, u.DuocVip)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrarRechazaMenoresDeEdad(t *testing.T) {
	s, _ := usuarioService(t)
	in := registroValido()
	in.Fnacimiento = time.Now().UTC().AddDate(-17, 0, 0)

	_, err := s.Registrar(context.Background(), in)
	assert.Equal(t, ReasonEdadMinima, reasonOf(t, err))
}

func TestRegistrarRechazaRolDesconocido(t *testing.T) {
	s, _ := usuarioService(t)
	in := registroValido()
	in.Rol = "SUPERVISOR"

	_, err := s.Registrar(context.Background(), in)
	assert.Equal(t, ReasonRolInvalido, reasonOf(t, err))
}

func TestRegistrarRechazaEmailDuplicado(t *testing.T) {
	s, mock := usuarioService(t)
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.Registrar(context.Background(), registroValido())
	assert.Equal(t, ReasonEmailDuplicado, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrarRechazaRutDuplicado(t *testing.T) {
	s, mock := usuarioService(t)
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.Registrar(context.Background(), registroValido())
	assert.Equal(t, ReasonRutDuplicado, reasonOf(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEdadCuentaAniosCumplidos(t *testing.T) {
	hoy := time.Now().UTC()
	assert.Equal(t, 18, edad(hoy.AddDate(-18, 0, 0)))
	assert.Equal(t, 17, edad(hoy.AddDate(-18, 0, 1)))
	assert.Equal(t, 30, edad(hoy.AddDate(-30, 0, 0)))
}
