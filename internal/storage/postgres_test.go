package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresLoadHit(t *testing.T) {
	db, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	backend := NewPostgres(db)
	rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"S001"}]`)
	mock.ExpectQuery("SELECT value FROM school_snapshots").
		WithArgs("cc_students").
		WillReturnRows(rows)

	value, ok, err := backend.Load(context.Background(), "cc_students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"S001"}]`, string(value))
}

func TestPostgresLoadMiss(t *testing.T) {
	db, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	backend := NewPostgres(db)
	mock.ExpectQuery("SELECT value FROM school_snapshots").
		WithArgs("cc_school_logo").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := backend.Load(context.Background(), "cc_school_logo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresSaveUpsertsInTransaction(t *testing.T) {
	db, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	backend := NewPostgres(db)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO school_snapshots").
		WithArgs("cc_students", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := backend.Save(context.Background(), map[string][]byte{"cc_students": []byte(`[]`)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	backend := NewPostgres(db)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO school_snapshots").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := backend.Save(context.Background(), map[string][]byte{"cc_students": []byte(`[]`)})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
