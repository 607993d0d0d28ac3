package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentify/rental-services/internal/model"
)

// MySQL reports zero affected rows both for an unknown id and for an
// update that leaves every column unchanged.  A same-state re-submit
// must stay a no-op success; only a truly unknown id is ErrNoRows.
func TestUpdateEstadoSinCambiosEsNoOp(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentoRepo(db)

	mock.ExpectExec("UPDATE documentos SET estado = ").
		WithArgs(string(model.DocumentoAceptado), "ok", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM documentos WHERE id = ").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.UpdateEstado(context.Background(), 7, model.DocumentoAceptado, "ok")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEstadoConIDDesconocidoEsErrNoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentoRepo(db)

	mock.ExpectExec("UPDATE documentos SET estado = ").
		WithArgs(string(model.DocumentoRechazado), "ilegible", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM documentos WHERE id = ").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	err := repo.UpdateEstado(context.Background(), 99, model.DocumentoRechazado, "ilegible")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
