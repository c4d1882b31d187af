package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerapi/internal/owner/apperr"
	"ownerapi/internal/owner/repository"
	"ownerapi/internal/owner/schema"
	"ownerapi/socket"
)

const (
	selectOwnerQuery = `SELECT id, owner, password, creation_time, heading, description FROM app_owners WHERE id = $1`
	insertOwnerQuery = `INSERT INTO app_owners (owner, password, heading, description) VALUES ($1, $2, $3, $4) RETURNING id, creation_time`
	updateOwnerQuery = `UPDATE app_owners SET owner = $1, password = $2, heading = $3, description = $4 WHERE id = $5`
	deleteOwnerQuery = `DELETE FROM app_owners WHERE id = $1`
)

var creationTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	events []socket.Event
}

func (n *recordingNotifier) Publish(event socket.Event) {
	n.events = append(n.events, event)
}

func newTestService(t *testing.T) (*OwnerService, sqlmock.Sqlmock, *recordingNotifier) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &recordingNotifier{}
	return NewOwnerService(repository.NewOwnerRepository(db), notifier), mock, notifier
}

func ownerRows(id int64, owner, passwordDigest string, heading, description any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner", "password", "creation_time", "heading", "description"}).
		AddRow(id, owner, passwordDigest, creationTime, heading, description)
}

func TestCreateOwner(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertOwnerQuery)).
		WithArgs("alice", HashPassword("longenough1"), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creation_time"}).AddRow(1, creationTime))

	id, err := svc.Create(context.Background(), &schema.CreatePayload{Owner: "alice", Password: "longenough1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, socket.OwnerCreated, notifier.events[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOwnerDigestsBeforeInsert(t *testing.T) {
	svc, mock, _ := newTestService(t)

	// The plaintext must never reach the store.
	mock.ExpectQuery(regexp.QuoteMeta(insertOwnerQuery)).
		WithArgs("alice", "482c811da5d5b4bc6d497ffa98491e38", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creation_time"}).AddRow(1, creationTime))

	_, err := svc.Create(context.Background(), &schema.CreatePayload{Owner: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOwnerConflict(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertOwnerQuery)).
		WithArgs("alice", HashPassword("longenough1"), nil, nil).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.Create(context.Background(), &schema.CreatePayload{Owner: "alice", Password: "longenough1"})

	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "alice", conflict.Name)
	assert.Equal(t, "alice is busy", conflict.Error())
	assert.Empty(t, notifier.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwner(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(1)).
		WillReturnRows(ownerRows(1, "alice", HashPassword("longenough1"), nil, nil))

	proj, err := svc.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), proj.ID)
	assert.Equal(t, "alice", proj.Owner)
	assert.Equal(t, creationTime, proj.CreationTime)
	assert.Nil(t, proj.Heading)
	assert.Nil(t, proj.Description)
	assert.Empty(t, notifier.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwnerNotFound(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "password", "creation_time", "heading", "description"}))

	_, err := svc.Fetch(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchOwnerHeadingOnly(t *testing.T) {
	svc, mock, notifier := newTestService(t)
	digest := HashPassword("longenough1")

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(7)).
		WillReturnRows(ownerRows(7, "alice", digest, nil, nil))
	// Owner, digest, and description must pass through unchanged.
	mock.ExpectExec(regexp.QuoteMeta(updateOwnerQuery)).
		WithArgs("alice", digest, "fresh heading", nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	heading := "fresh heading"
	proj, err := svc.Patch(context.Background(), 7, &schema.PatchPayload{Heading: &heading})
	require.NoError(t, err)
	assert.Equal(t, int64(7), proj.ID)
	assert.Equal(t, "alice", proj.Owner)
	assert.Equal(t, creationTime, proj.CreationTime)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, socket.OwnerUpdated, notifier.events[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchOwnerRenameAndPassword(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(7)).
		WillReturnRows(ownerRows(7, "alice", HashPassword("longenough1"), "keep", "keep too"))
	mock.ExpectExec(regexp.QuoteMeta(updateOwnerQuery)).
		WithArgs("bob", HashPassword("longenough2"), "keep", "keep too", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	owner, password := "bob", "longenough2"
	proj, err := svc.Patch(context.Background(), 7, &schema.PatchPayload{Owner: &owner, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "bob", proj.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchOwnerEmptyPayloadIsNoOp(t *testing.T) {
	svc, mock, _ := newTestService(t)
	digest := HashPassword("longenough1")

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(3)).
		WillReturnRows(ownerRows(3, "alice", digest, nil, nil))
	mock.ExpectExec(regexp.QuoteMeta(updateOwnerQuery)).
		WithArgs("alice", digest, nil, nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	proj, err := svc.Patch(context.Background(), 3, &schema.PatchPayload{})
	require.NoError(t, err)
	assert.Equal(t, "alice", proj.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchOwnerNotFound(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "password", "creation_time", "heading", "description"}))

	owner := "bob"
	_, err := svc.Patch(context.Background(), 42, &schema.PatchPayload{Owner: &owner})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, notifier.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchOwnerConflict(t *testing.T) {
	svc, mock, _ := newTestService(t)
	digest := HashPassword("longenough1")

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(7)).
		WillReturnRows(ownerRows(7, "alice", digest, nil, nil))
	mock.ExpectExec(regexp.QuoteMeta(updateOwnerQuery)).
		WithArgs("bob", digest, nil, nil, int64(7)).
		WillReturnError(&pq.Error{Code: "23505"})

	owner := "bob"
	_, err := svc.Patch(context.Background(), 7, &schema.PatchPayload{Owner: &owner})

	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "bob", conflict.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwner(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteOwnerQuery)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(context.Background(), 1))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, socket.OwnerDeleted, notifier.events[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwnerNotFound(t *testing.T) {
	svc, mock, notifier := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteOwnerQuery)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, notifier.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailureSurfacesAsIs(t *testing.T) {
	svc, mock, _ := newTestService(t)
	storeErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerQuery)).
		WithArgs(int64(1)).
		WillReturnError(storeErr)

	_, err := svc.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
