package chat

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/framestack/framestack_backend/models"
)

// InboundFrame is the only client payload the session understands. Anything
// that doesn't unmarshal into it is dropped.
type InboundFrame struct {
	Content string `json:"content"`
}

// Session is the per-connection state machine between an authenticated user
// and one fixed peer. It joins the canonical room on Join, persists then
// publishes inbound messages, and leaves the room on Close. Room membership
// never changes mid-connection.
type Session struct {
	user  *models.User
	peer  *models.User
	room  string
	relay *Relay
	store *MessageStore
	sub   *Subscriber
}

func NewSession(user, peer *models.User, relay *Relay, store *MessageStore) *Session {
	return &Session{
		user:  user,
		peer:  peer,
		room:  RoomName(user.ID, peer.ID),
		relay: relay,
		store: store,
		sub:   NewSubscriber(),
	}
}

func (s *Session) Room() string {
	return s.room
}

// Frames yields everything published to the session's room, the user's own
// messages included (echo).
func (s *Session) Frames() <-chan Frame {
	return s.sub.frames
}

func (s *Session) Join() {
	s.relay.Join(s.room, s.sub)
}

// Close removes the session from the relay. Idempotent; must run on every
// exit path so a dead connection never lingers as a delivery target.
func (s *Session) Close() {
	s.relay.Leave(s.room, s.sub)
}

// HandleInbound processes one raw client frame. Malformed payloads and
// blank content are dropped silently; the session stays open either way.
// Persistence strictly precedes publication — a failed append suppresses the
// broadcast so no subscriber ever sees a phantom message.
func (s *Session) HandleInbound(raw []byte) {
	var in InboundFrame
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Printf("Dropping malformed frame in room %s: %v", s.room, err)
		return
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return
	}

	msg, err := s.store.Append(s.user.ID, s.peer.ID, content)
	if err != nil {
		log.Printf("Failed to persist message from user %d in room %s: %v", s.user.ID, s.room, err)
		return
	}

	s.relay.Publish(s.room, Frame{
		Content:    content,
		SenderID:   s.user.ID,
		ReceiverID: s.peer.ID,
		Timestamp:  msg.Timestamp.Format(time.RFC3339),
	})
}
