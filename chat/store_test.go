package chat

import (
	"fmt"
	"testing"

	"github.com/framestack/framestack_backend/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, ids ...uint) {
	t.Helper()
	for _, id := range ids {
		user := models.User{
			ID:           id,
			Name:         "User",
			Email:        fmt.Sprintf("user%d@example.com", id),
			BusinessName: "Biz",
			Password:     "x",
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("failed to seed user %d: %v", id, err)
		}
	}
}

func TestAppendAssignsTimestampAndDefaultsUnread(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2)
	store := NewMessageStore(db)

	msg, err := store.Append(1, 2, "hello")
	assert.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
	assert.False(t, msg.Read)
}

func TestAppendRejectsUnknownUsers(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1)
	store := NewMessageStore(db)

	_, err := store.Append(1, 99, "hello")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = store.Append(99, 1, "hello")
	assert.ErrorIs(t, err, ErrUnknownUser)

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestHistoryIsSymmetricAndAscending(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2, 3)
	store := NewMessageStore(db)

	_, err := store.Append(1, 2, "first")
	assert.NoError(t, err)
	_, err = store.Append(2, 1, "second")
	assert.NoError(t, err)
	_, err = store.Append(1, 2, "third")
	assert.NoError(t, err)
	_, err = store.Append(1, 3, "other conversation")
	assert.NoError(t, err)

	forward, err := store.History(1, 2)
	assert.NoError(t, err)
	backward, err := store.History(2, 1)
	assert.NoError(t, err)

	assert.Equal(t, forward, backward)
	assert.Len(t, forward, 3)
	for i := 1; i < len(forward); i++ {
		assert.False(t, forward[i].Timestamp.Before(forward[i-1].Timestamp))
	}
	assert.Equal(t, "first", forward[0].Content)
	assert.Equal(t, "third", forward[2].Content)
}

func TestUnreadCountOnlyCountsReceiverUnread(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2)
	store := NewMessageStore(db)

	_, err := store.Append(1, 2, "one")
	assert.NoError(t, err)
	msg, err := store.Append(1, 2, "two")
	assert.NoError(t, err)
	_, err = store.Append(2, 1, "reply")
	assert.NoError(t, err)

	count, err := store.UnreadCount(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	db.Model(&models.Message{}).Where("id = ?", msg.ID).Update("read", true)

	count, err = store.UnreadCount(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.UnreadCount(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
