package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_CreateAndGetTransaction(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := factory.CreateUser(t, "buyer@example.com", "Buyer", "hashedpassword", "user")

	created, err := storage.CreateTransaction(context.Background(), userUID, "Pro", 19.0)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, userUID, created.UserUID)
	assert.Equal(t, "Pro", created.PlanName)
	assert.Equal(t, 19.0, created.Price)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := storage.GetTransaction(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PlanName, got.PlanName)
}

func TestStorage_GetTransaction_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetTransaction(context.Background(), "11111111-1111-1111-1111-111111111111")
	require.Error(t, err)
	assert.True(t, IsNoRows(err))
}

func TestStorage_RemoveTransaction(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := factory.CreateUser(t, "buyer@example.com", "Buyer", "hashedpassword", "user")
	id := factory.CreateTransaction(t, userUID, "Plus", 5.0)

	count, err := storage.RemoveTransaction(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verification := NewTestVerification(storage)
	verification.VerifyTransactionRemoved(t, id)

	// Повторное удаление не трогает ни одной строки
	count, err = storage.RemoveTransaction(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListTransactionsByOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "Owner", "hashedpassword", "user")
	otherUID := factory.CreateUser(t, "other@example.com", "Other", "hashedpassword", "user")

	first, err := storage.CreateTransaction(context.Background(), ownerUID, "Plus", 5.0)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	second, err := storage.CreateTransaction(context.Background(), ownerUID, "Pro", 19.0)
	require.NoError(t, err)
	_, err = storage.CreateTransaction(context.Background(), otherUID, "Business", 39.5)
	require.NoError(t, err)

	got, err := storage.ListTransactionsByOwner(context.Background(), ownerUID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Новые первыми
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestStorage_ListAllTransactions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := factory.CreateUser(t, "owner@example.com", "Owner", "hashedpassword", "user")
	adminUID := factory.CreateUser(t, "admin@example.com", "Admin", "hashedpassword", "admin")
	factory.CreateTransaction(t, userUID, "Plus", 5.0)
	factory.CreateTransaction(t, adminUID, "Pro", 19.0)

	got, err := storage.ListAllTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tx := range got {
		assert.NotEmpty(t, tx.OwnerEmail)
		assert.NotEmpty(t, tx.OwnerRole)
	}
}

func TestStorage_CountTransactionsAndPlanStats(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := factory.CreateUser(t, "owner@example.com", "Owner", "hashedpassword", "user")
	factory.CreateTransaction(t, userUID, "Plus", 5.0)
	factory.CreateTransaction(t, userUID, "Plus", 5.0)
	factory.CreateTransaction(t, userUID, "Pro", 19.0)

	total, revenue, err := storage.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.InDelta(t, 29.0, revenue, 0.001)

	stats, err := storage.PlanStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	// Сортировка по числу покупок по убыванию
	assert.Equal(t, "Plus", stats[0].PlanName)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "Pro", stats[1].PlanName)
	assert.Equal(t, 1, stats[1].Count)
}

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	uid, err := storage.CreateUser(context.Background(), sampleUser("new@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	got, err := storage.GetUserByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	assert.Equal(t, "New User", got.Name)
	assert.Equal(t, "user", got.Role)
	assert.False(t, got.AutoReportEnabled)

	byUID, err := storage.GetUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, got.Email, byUID.Email)
}

func TestStorage_UpsertUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	first, err := storage.UpsertUserByEmail(context.Background(), "google@example.com", "Google User")
	require.NoError(t, err)
	require.NotEmpty(t, first.UID)
	assert.Equal(t, "user", first.Role)

	// Повторный вход не создает дубликата, но обновляет имя
	second, err := storage.UpsertUserByEmail(context.Background(), "google@example.com", "Renamed User")
	require.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)
	assert.Equal(t, "Renamed User", second.Name)

	var count int
	err = storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", "google@example.com").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_UpdateUserRole(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "promote@example.com", "Promote Me", "hashedpassword", "user")

	updated, err := storage.UpdateUserRole(context.Background(), uid, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)

	verification := NewTestVerification(storage)
	verification.VerifyUserRole(t, uid, "admin")

	_, err = storage.UpdateUserRole(context.Background(), "22222222-2222-2222-2222-222222222222", "admin")
	require.Error(t, err)
	assert.True(t, IsNoRows(err))
}

func TestStorage_SetAutoReport(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "reports@example.com", "Reporter", "hashedpassword", "user")

	count, err := storage.SetAutoReport(context.Background(), uid, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetUser(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, got.AutoReportEnabled)

	count, err = storage.SetAutoReport(context.Background(), "33333333-3333-3333-3333-333333333333", true)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_CountUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "u1@example.com", "U1", "hashedpassword", "user")
	factory.CreateUser(t, "u2@example.com", "U2", "hashedpassword", "user")
	factory.CreateUser(t, "a1@example.com", "A1", "hashedpassword", "admin")

	total, admins, err := storage.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, admins)
}

func TestStorage_CreateAndGetMeeting(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	meeting := sampleMeeting("owner@example.com", "convenor@example.com")

	id, err := storage.CreateMeeting(context.Background(), meeting)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := storage.GetMeeting(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, meeting.Title, got.Title)
	assert.Equal(t, meeting.OwnerEmail, got.OwnerEmail)
	assert.Equal(t, meeting.Speakers, got.Speakers)
	assert.Equal(t, meeting.Attendees, got.Attendees)
	require.Len(t, got.Transcript, 2)
	assert.Equal(t, "Let's get started", got.Transcript[0].Content)
	assert.InDelta(t, 600.5, got.SpeakerDuration["Alice"], 0.001)
	require.Len(t, got.Screenshots, 1)
	assert.Equal(t, "shot-001.png", got.Screenshots[0].Filename)
}

func TestStorage_ListMeetingsByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	older := factory.CreateMeeting(t, "someone@example.com", "me@example.com", "Owned capture", base)
	newer := factory.CreateMeeting(t, "me@example.com", "other@example.com", "Convened meeting", base.Add(24*time.Hour))
	factory.CreateMeeting(t, "x@example.com", "y@example.com", "Unrelated", base)

	got, err := storage.ListMeetingsByEmail(context.Background(), "me@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Новые первыми
	assert.Equal(t, newer, got[0].ID)
	assert.Equal(t, older, got[1].ID)
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, storage.CheckDatabaseReady(context.Background()))

	_, err := storage.DB.Exec("DROP TABLE transactions CASCADE")
	require.NoError(t, err)
	require.Error(t, storage.CheckDatabaseReady(context.Background()))
}
