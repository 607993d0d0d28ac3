package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

func propiedadService(t *testing.T, owner *client.Usuario) (*PropiedadService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPropiedadService(repository.NewPropiedadRepo(db), &fakeUsers{user: owner}), mock
}

func propietario() *client.Usuario {
	return &client.Usuario{ID: 9, Rol: model.RolPropietario, Estado: model.UsuarioActivo}
}

func nuevaPropiedadValida() NuevaPropiedad {
	return NuevaPropiedad{
		Codigo:        "PROP-001",
		Titulo:        "Departamento en Ñuñoa",
		Direccion:     "Av. Irarrázaval 1234",
		PrecioMensual: 350000,
		M2:            62.5,
		NHabitaciones: 2,
		NBanos:        1,
		PetFriendly:   true,
		Tipo:          "DEPARTAMENTO",
		Comuna:        "Ñuñoa",
		Region:        "Metropolitana",
		PropietarioID: 9,
	}
}

func propiedadRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "codigo", "titulo", "direccion", "precio_mensual", "divisa",
		"m2", "n_habit", "n_banos", "pet_friendly", "tipo", "comuna", "region",
		"disponible", "propietario_id", "fcreacion",
	}).AddRow(id, "PROP-001", "Departamento en Ñuñoa", "Av. Irarrázaval 1234", 350000.0, "CLP",
		62.5, 2, 1, true, "DEPARTAMENTO", "Ñuñoa", "Metropolitana",
		true, int64(9), time.Now().UTC())
}

func TestCrearPropiedadPersisteTodosLosAtributos(t *testing.T) {
	s, mock := propiedadService(t, propietario())
	in := nuevaPropiedadValida()

	mock.ExpectExec("INSERT INTO propiedades").
		WithArgs(
			in.Codigo, in.Titulo, in.Direccion, in.PrecioMensual, "CLP",
			in.M2, in.NHabitaciones, in.NBanos, in.PetFriendly, in.Tipo, in.Comuna, in.Region,
			true, in.PropietarioID, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(3, 1))

	p, err := s.Crear(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "CLP", p.Divisa) // defaulted
	assert.Equal(t, 62.5, p.M2)
	assert.True(t, p.PetFriendly)
	assert.True(t, p.Disponible)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrearPropiedadExigeTipoYComuna(t *testing.T) {
	s, _ := propiedadService(t, propietario())

	in := nuevaPropiedadValida()
	in.Tipo = ""
	assert.Equal(t, ReasonDatosInvalidos, reasonOf(t, errOf(s.Crear(context.Background(), in))))

	in = nuevaPropiedadValida()
	in.Comuna = ""
	assert.Equal(t, ReasonDatosInvalidos, reasonOf(t, errOf(s.Crear(context.Background(), in))))
}

func TestCrearPropiedadRechazaM2NoPositivo(t *testing.T) {
	s, _ := propiedadService(t, propietario())

	in := nuevaPropiedadValida()
	in.M2 = 0
	assert.Equal(t, ReasonDatosInvalidos, reasonOf(t, errOf(s.Crear(context.Background(), in))))
}

func TestCrearPropiedadRechazaRolArriendatario(t *testing.T) {
	s, _ := propiedadService(t, arriendatario())

	_, err := s.Crear(context.Background(), nuevaPropiedadValida())
	assert.Equal(t, ReasonRolNoPermitido, reasonOf(t, err))
}

func TestActualizarPropiedadCambiaAtributosDescriptivos(t *testing.T) {
	s, mock := propiedadService(t, propietario())

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(propiedadRow(3))
	mock.ExpectExec("UPDATE propiedades").
		WillReturnResult(sqlmock.NewResult(0, 1))

	m2 := 80.0
	pet := false
	comuna := "Providencia"
	p, err := s.Actualizar(context.Background(), 3, ActualizacionPropiedad{M2: &m2, PetFriendly: &pet, Comuna: &comuna})
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.M2)
	assert.False(t, p.PetFriendly)
	assert.Equal(t, "Providencia", p.Comuna)
	require.NoError(t, mock.ExpectationsWereMet())
}

// errOf drops the value from a (value, error) return so the error can
// feed reasonOf inline.
func errOf(_ any, err error) error { return err }
