package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

var selectUser = regexp.QuoteMeta(`SELECT * FROM "app_users" WHERE auth_uid = $1`)

func TestUserStore_FindBySubject_NotFound(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery(selectUser).
		WillReturnRows(sqlmock.NewRows([]string{"id", "auth_uid", "email", "created_at"}))

	user, err := NewUserStore(db).FindBySubject(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindBySubject_Found(t *testing.T) {
	db, mock := mockDB(t)
	id := uuid.New()
	created := time.Date(2026, 2, 3, 4, 5, 6, 789000, time.UTC)
	mock.ExpectQuery(selectUser).
		WillReturnRows(sqlmock.NewRows([]string{"id", "auth_uid", "email", "created_at"}).
			AddRow(id.String(), "sub-1", "a@example.com", created))

	user, err := NewUserStore(db).FindBySubject(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "sub-1", user.AuthSubjectID)
	assert.True(t, created.Equal(user.CreatedAt))
}

func TestUserStore_FindBySubject_QueryError(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery(selectUser).WillReturnError(errors.New("connection reset"))

	user, err := NewUserStore(db).FindBySubject(context.Background(), "sub-1")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestUserStore_Create_SetsIDAndMicrosecondTimestamp(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "app_users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	user := &models.AppUser{AuthSubjectID: "sub-1"}
	require.NoError(t, NewUserStore(db).Create(context.Background(), user))

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
	assert.Equal(t, user.CreatedAt, user.CreatedAt.Truncate(time.Microsecond))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Create_DuplicateSubject(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "app_users"`)).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_app_users_auth_uid"`))

	err := NewUserStore(db).Create(context.Background(), &models.AppUser{AuthSubjectID: "sub-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestCreateGuards_RefuseMissingOwner(t *testing.T) {
	db, mock := mockDB(t)
	ctx := context.Background()

	err := NewContactStore(db).Create(ctx, &models.Contact{TargetName: "Ada"})
	assert.Error(t, err)

	err = NewMessageStore(db).Create(ctx, &models.Message{ContactID: uuid.New()})
	assert.Error(t, err)

	err = NewMessageStore(db).Create(ctx, &models.Message{UserID: uuid.New()})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageStore_ListWithContacts_SkipsMalformedRows(t *testing.T) {
	db, mock := mockDB(t)
	userID := uuid.New()
	good := uuid.New()
	contactID := uuid.New()
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	cols := []string{"id", "contact_id", "goal_prompt", "generated_message", "created_at", "target_name", "target_role", "linkedin_url"}
	mock.ExpectQuery(regexp.QuoteMeta("JOIN contacts ON contacts.id = messages.contact_id")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(good.String(), contactID.String(), "goal", "hello", now, "Ada", "CTO", "https://linkedin.com/in/ada").
			AddRow(uuid.Nil.String(), contactID.String(), "goal", "orphan", now, "Ada", "CTO", "https://linkedin.com/in/ada"))

	rows, err := NewMessageStore(db).ListWithContacts(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, good, rows[0].ID)
	assert.Equal(t, "https://linkedin.com/in/ada", rows[0].LinkedInURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropMalformed(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logging.NewContextHandler(slog.NewJSONHandler(&buf, nil))))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ok := models.MessageWithContact{ID: uuid.New(), ContactID: uuid.New()}
	rows := []models.MessageWithContact{
		{ID: uuid.Nil, ContactID: uuid.New()},
		ok,
		{ID: uuid.New(), ContactID: uuid.Nil},
	}

	ctx := logging.WithRequestID(context.Background(), "req-42")
	got := dropMalformed(ctx, uuid.New(), rows)

	assert.Equal(t, []models.MessageWithContact{ok}, got)
	assert.Contains(t, buf.String(), "skipping malformed history row")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.NotNil(t, dropMalformed(ctx, uuid.New(), nil))
}
