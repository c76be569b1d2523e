package data

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nardonidigital/agency-api/internal/errors"
)

func TestMapWriteErr_SubstitutesSentinels(t *testing.T) {
	notFound := errors.New("thing not found")
	conflict := errors.New("thing already exists")

	got := mapWriteErr(pgx.ErrNoRows, notFound, conflict)
	assert.ErrorIs(t, got, notFound)

	unique := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: `Key (number)=(INV-001) already exists.`,
	}
	got = mapWriteErr(unique, notFound, conflict)
	assert.ErrorIs(t, got, conflict)
}

func TestMapWriteErr_NilSentinelKeepsClassifiedError(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	got := mapWriteErr(unique, nil, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, got, &appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestMapWriteErr_ForeignKeySurfacesAppError(t *testing.T) {
	fk := &pgconn.PgError{
		Code:   pgerrcode.ForeignKeyViolation,
		Detail: `Key (client_id)=(abc) is not present in table "clients".`,
	}

	got := mapWriteErr(fk, errors.New("nf"), errors.New("cf"))
	var appErr *apperrors.AppError
	require.ErrorAs(t, got, &appErr)
	assert.Equal(t, apperrors.ErrCodeForeignKey, appErr.Code)
	assert.Contains(t, appErr.Message, "client")
}

func TestMapWriteErr_PassesThroughUnknownErrors(t *testing.T) {
	assert.NoError(t, mapWriteErr(nil, nil, nil))

	plain := errors.New("connection refused")
	assert.ErrorIs(t, mapWriteErr(plain, errors.New("nf"), errors.New("cf")), plain)
}
