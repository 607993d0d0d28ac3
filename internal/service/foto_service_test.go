package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/repository"
)

func fotoService(t *testing.T) (*FotoService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFotoService(repository.NewFotoRepo(db), repository.NewPropiedadRepo(db)), mock
}

func TestAgregarFotoCreaElRegistro(t *testing.T) {
	s, mock := fotoService(t)

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(propiedadRow(3))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec("INSERT INTO fotos").
		WithArgs(int64(3), "fachada", "https://cdn.rentify.cl/p/3/fachada.jpg", 1).
		WillReturnResult(sqlmock.NewResult(21, 1))

	f, err := s.Agregar(context.Background(), 3, NuevaFoto{Nombre: "fachada", URL: "https://cdn.rentify.cl/p/3/fachada.jpg", Orden: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(21), f.ID)
	assert.Equal(t, int64(3), f.PropiedadID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAgregarFotoAPropiedadInexistente(t *testing.T) {
	s, mock := fotoService(t)

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Agregar(context.Background(), 99, NuevaFoto{Nombre: "fachada", URL: "https://x"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "propiedad", nf.Recurso)
}

func TestAgregarFotoExigeNombreYURL(t *testing.T) {
	s, mock := fotoService(t)

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(propiedadRow(3))

	_, err := s.Agregar(context.Background(), 3, NuevaFoto{Nombre: " ", URL: ""})
	assert.Equal(t, ReasonDatosInvalidos, reasonOf(t, err))
}

func TestAgregarFotoRespetaElMaximoPorPropiedad(t *testing.T) {
	s, mock := fotoService(t)

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(propiedadRow(3))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	_, err := s.Agregar(context.Background(), 3, NuevaFoto{Nombre: "extra", URL: "https://x"})
	assert.Equal(t, ReasonMaxFotos, reasonOf(t, err))
}

func TestPorPropiedadDevuelveFotosOrdenadas(t *testing.T) {
	s, mock := fotoService(t)

	mock.ExpectQuery("FROM propiedades WHERE id = ").
		WillReturnRows(propiedadRow(3))
	mock.ExpectQuery("FROM fotos WHERE propiedad_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "propiedad_id", "nombre", "url", "sort_order"}).
			AddRow(21, 3, "fachada", "https://x/1", 0).
			AddRow(22, 3, "cocina", "https://x/2", 1))

	fs, err := s.PorPropiedad(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "fachada", fs[0].Nombre)
	assert.Equal(t, 1, fs[1].Orden)
	require.NoError(t, mock.ExpectationsWereMet())
}
