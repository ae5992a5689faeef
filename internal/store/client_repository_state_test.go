package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateRepo(t *testing.T) (*clientStateRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	repo := &clientStateRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
		now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return repo, mock, db
}

func TestLoadClientState_Success(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"session_id", "payload"}).
		AddRow("sess-1", `{"selections":{"client":"42"},"active_subjects":["a"]}`)
	mock.ExpectQuery("SELECT session_id, payload FROM client_state WHERE id = ?").
		WithArgs(clientStateRowID).
		WillReturnRows(rows)

	state, sessionID, err := repo.LoadClientState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
	assert.Equal(t, "42", state.Selections["client"])
	assert.Equal(t, []string{"a"}, state.ActiveSubjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadClientState_NotFound(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, payload FROM client_state").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "payload"}))

	_, _, err := repo.LoadClientState(context.Background())
	assert.ErrorIs(t, err, ErrClientStateNotFound)
}

func TestLoadClientState_QueryError(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, payload FROM client_state").
		WillReturnError(errors.New("database is locked"))

	_, _, err := repo.LoadClientState(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestLoadClientState_CorruptPayload(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, payload FROM client_state").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "payload"}).AddRow("s", "{not json"))

	_, _, err := repo.LoadClientState(context.Background())
	assert.ErrorIs(t, err, ErrEncodingState)
}

func TestSaveClientState_Upsert(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	state := models.ClientState{ActiveWorkflows: []string{"wf-1"}}
	mock.ExpectExec("INSERT INTO client_state").
		WithArgs(clientStateRowID, "sess-1", `{"active_workflows":["wf-1"]}`, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveClientState(context.Background(), "sess-1", state))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveClientState_ExecError(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO client_state").
		WillReturnError(errors.New("readonly database"))

	err := repo.SaveClientState(context.Background(), "sess-1", models.ClientState{})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
