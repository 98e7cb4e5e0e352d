package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/framestack/framestack_backend/chat"
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/gofiber/contrib/websocket"
)

const chatWriteWait = 5 * time.Second

// ServeChatWs runs one chat connection. The access token rides on the query
// string because browser WebSocket handshakes cannot carry custom headers;
// auth or peer resolution failure closes the connection before any frame is
// sent or any room is joined.
func ServeChatWs(relay *chat.Relay, store *chat.MessageStore) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		user := chat.AuthenticateToken(database.DB, c.Query("token"))
		if user == nil {
			log.Println("Chat handshake refused: anonymous connection")
			return
		}

		peerID, err := strconv.ParseUint(c.Params("peerId"), 10, 32)
		if err != nil || uint(peerID) == user.ID {
			log.Printf("Chat handshake refused for user %d: invalid peer %q", user.ID, c.Params("peerId"))
			return
		}
		var peer models.User
		if err := database.DB.First(&peer, uint(peerID)).Error; err != nil {
			log.Printf("Chat handshake refused for user %d: unknown peer %d", user.ID, peerID)
			return
		}

		sess := chat.NewSession(user, &peer, relay, store)
		sess.Join()
		defer sess.Close()
		log.Printf("Chat session joined: user %d, room %s", user.ID, sess.Room())

		quit := make(chan struct{})
		defer close(quit)

		go func() {
			for {
				select {
				case frame := <-sess.Frames():
					_ = c.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := c.WriteJSON(frame); err != nil {
						log.Printf("Chat write failed in room %s: %v", sess.Room(), err)
						return
					}
				case <-quit:
					return
				}
			}
		}()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("Chat session closed: user %d, room %s", user.ID, sess.Room())
				} else {
					log.Printf("Chat read error for user %d: %v", user.ID, err)
				}
				return
			}
			sess.HandleInbound(raw)
		}
	}
}
