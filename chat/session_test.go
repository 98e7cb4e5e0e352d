package chat

import (
	"testing"
	"time"

	"github.com/framestack/framestack_backend/models"
	"github.com/stretchr/testify/assert"
)

func newTestSession(t *testing.T, relay *Relay) (*Session, *MessageStore) {
	t.Helper()
	db := newTestDB(t)
	seedUsers(t, db, 3, 7)
	store := NewMessageStore(db)

	var user, peer models.User
	db.First(&user, 3)
	db.First(&peer, 7)

	sess := NewSession(&user, &peer, relay, store)
	sess.Join()
	return sess, store
}

func TestSessionEchoesToSenderAndPeer(t *testing.T) {
	relay := NewRelay()
	sess, _ := newTestSession(t, relay)
	defer sess.Close()

	peerSub := NewSubscriber()
	relay.Join(sess.Room(), peerSub)

	sess.HandleInbound([]byte(`{"content": "hello"}`))

	senderFrames := drainSession(sess)
	peerFrames := drain(peerSub)

	assert.Len(t, senderFrames, 1)
	assert.Len(t, peerFrames, 1)
	assert.Equal(t, "hello", senderFrames[0].Content)
	assert.Equal(t, uint(3), senderFrames[0].SenderID)
	assert.Equal(t, uint(7), senderFrames[0].ReceiverID)

	_, err := time.Parse(time.RFC3339, senderFrames[0].Timestamp)
	assert.NoError(t, err, "timestamp must be ISO-8601")
}

func TestSessionDropsBlankContent(t *testing.T) {
	relay := NewRelay()
	sess, store := newTestSession(t, relay)
	defer sess.Close()

	sess.HandleInbound([]byte(`{"content": "   "}`))
	sess.HandleInbound([]byte(`{"content": ""}`))

	assert.Empty(t, drainSession(sess))
	history, err := store.History(3, 7)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestSessionDropsMalformedFrames(t *testing.T) {
	relay := NewRelay()
	sess, store := newTestSession(t, relay)
	defer sess.Close()

	sess.HandleInbound([]byte(`not json`))
	sess.HandleInbound([]byte(`42`))
	sess.HandleInbound([]byte(`{"content": 42}`))

	assert.Empty(t, drainSession(sess))
	history, err := store.History(3, 7)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestSessionSuppressesPublishWhenPersistenceFails(t *testing.T) {
	relay := NewRelay()
	db := newTestDB(t)
	seedUsers(t, db, 3)
	store := NewMessageStore(db)

	// Peer 7 was never created, so Append fails with ErrUnknownUser.
	user := models.User{ID: 3}
	peer := models.User{ID: 7}
	sess := NewSession(&user, &peer, relay, store)
	sess.Join()
	defer sess.Close()

	watcher := NewSubscriber()
	relay.Join(sess.Room(), watcher)

	sess.HandleInbound([]byte(`{"content": "phantom"}`))

	assert.Empty(t, drainSession(sess))
	assert.Empty(t, drain(watcher))
}

func TestSessionPersistsBeforePublishing(t *testing.T) {
	relay := NewRelay()
	sess, store := newTestSession(t, relay)
	defer sess.Close()

	sess.HandleInbound([]byte(`{"content": "durable"}`))

	frames := drainSession(sess)
	assert.Len(t, frames, 1)

	history, err := store.History(3, 7)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "durable", history[0].Content)
	assert.Equal(t, history[0].Timestamp.Format(time.RFC3339), frames[0].Timestamp)
}

func TestSessionCloseStopsDelivery(t *testing.T) {
	relay := NewRelay()
	sess, _ := newTestSession(t, relay)

	sess.Close()
	sess.Close() // idempotent

	relay.Publish(sess.Room(), Frame{Content: "late"})
	assert.Empty(t, drainSession(sess))
}

func drainSession(s *Session) []Frame {
	return drain(s.sub)
}
