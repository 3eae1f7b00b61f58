package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := NewSessionRepository(&DB{DB: db, errorClassificator: NewSQLiteErrorClassifier(), logger: l}, l).(*sessionRepository)
	repo.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return repo, mock
}

func TestSessionRepository_Get_Success(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT token FROM session WHERE id = ?")).
		WithArgs(sessionRowID).
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("h.p.s"))

	token, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "h.p.s", token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Get_NoRows(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectQuery("SELECT token FROM session").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Get_DBError(t *testing.T) {
	repo, mock := newTestSessionRepo(t)
	dbErr := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT token FROM session").
		WillReturnError(dbErr)

	_, err := repo.Get(context.Background())

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_Set(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session (id,token,updated_at) VALUES (?,?,?) ON CONFLICT(id)")).
		WithArgs(sessionRowID, "a.b.c", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "a.b.c"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Set_Error(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("INSERT INTO session").
		WillReturnError(errors.New("database is locked"))

	err := repo.Set(context.Background(), "a.b.c")

	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSessionRepository_Clear(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session WHERE id = ?")).
		WithArgs(sessionRowID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Clear_Error(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("DELETE FROM session").
		WillReturnError(errors.New("boom"))

	err := repo.Clear(context.Background())

	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSessionRepository_Set_RetriesBusyDatabase(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("INSERT INTO session").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectExec("INSERT INTO session").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "a.b.c"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Clear_ConstraintNotRetried(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("DELETE FROM session").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

	err := repo.Clear(context.Background())

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
