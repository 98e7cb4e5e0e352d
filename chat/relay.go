package chat

import (
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Frame is the event fanned out to every subscriber of a room, the sender's
// own connection included.
type Frame struct {
	Content    string `json:"content"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Timestamp  string `json:"timestamp"`
}

const subscriberBuffer = 32

// Subscriber is a live connection's delivery handle. The relay only ever
// enqueues frames on it; the owning connection drains them.
type Subscriber struct {
	frames chan Frame
}

func NewSubscriber() *Subscriber {
	return &Subscriber{frames: make(chan Frame, subscriberBuffer)}
}

func (s *Subscriber) Frames() <-chan Frame {
	return s.frames
}

// Relay is the process-wide room registry. It never persists anything; rooms
// exist only while they have subscribers.
type Relay struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscriber]struct{}

	bridge *redisBridge
}

func NewRelay() *Relay {
	return &Relay{rooms: make(map[string]map[*Subscriber]struct{})}
}

// NewRelayWithBridge links the relay to other instances over Redis pub/sub.
// Frames published locally are mirrored to the bus; frames arriving from
// other instances are delivered to local subscribers only.
func NewRelayWithBridge(rdb *redis.Client) *Relay {
	r := NewRelay()
	r.bridge = newRedisBridge(rdb, r)
	return r
}

// Join is idempotent.
func (r *Relay) Join(room string, s *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.rooms[room]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		r.rooms[room] = subs
	}
	subs[s] = struct{}{}
}

// Leave is idempotent and forgets rooms on last leave. Once Leave returns, no
// later Publish can reach the subscriber.
func (r *Relay) Leave(room string, s *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(subs, s)
	if len(subs) == 0 {
		delete(r.rooms, room)
	}
}

// Publish delivers the frame to every current subscriber of the room,
// best-effort per handle, and mirrors it to the bridge when one is
// configured.
func (r *Relay) Publish(room string, f Frame) {
	r.deliver(room, f)

	if r.bridge != nil {
		r.bridge.publish(room, f)
	}
}

// deliver enqueues under the read lock with non-blocking sends, so a slow
// consumer drops frames instead of stalling the publisher, and a completed
// Leave strictly precedes any later delivery.
func (r *Relay) deliver(room string, f Frame) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for s := range r.rooms[room] {
		select {
		case s.frames <- f:
		default:
			log.Printf("Dropping frame for slow subscriber in room %s", room)
		}
	}
}

func (r *Relay) Shutdown() {
	if r.bridge != nil {
		r.bridge.close()
	}
}
