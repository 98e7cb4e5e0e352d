package chat

import (
	"errors"
	"time"

	"github.com/framestack/framestack_backend/models"
	"gorm.io/gorm"
)

// ErrUnknownUser is returned by Append when either participant id does not
// resolve to a user row.
var ErrUnknownUser = errors.New("unknown user")

// MessageStore is the single writer-of-record for direct messages.
type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append durably records a message and assigns its timestamp. The returned
// row carries the canonical "when" for the broadcast event.
func (s *MessageStore) Append(senderID, receiverID uint, content string) (*models.Message, error) {
	var sender, receiver models.User
	if err := s.db.First(&sender, senderID).Error; err != nil {
		return nil, ErrUnknownUser
	}
	if err := s.db.First(&receiver, receiverID).Error; err != nil {
		return nil, ErrUnknownUser
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// History returns every message exchanged between the two users, ascending by
// timestamp. The sequence is identical whichever participant asks.
func (s *MessageStore) History(a, b uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp asc").
		Find(&msgs).Error
	return msgs, err
}

func (s *MessageStore) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
