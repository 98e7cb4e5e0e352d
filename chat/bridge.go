package chat

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bridgeChannel = "framestack:chat"

type bridgeEnvelope struct {
	Instance string `json:"instance"`
	Room     string `json:"room"`
	Frame    Frame  `json:"frame"`
}

// redisBridge mirrors published frames across relay instances. Each envelope
// carries the publishing instance's id so an instance never re-delivers its
// own traffic.
type redisBridge struct {
	instance string
	rdb      *redis.Client
	pubsub   *redis.PubSub
}

func newRedisBridge(rdb *redis.Client, relay *Relay) *redisBridge {
	b := &redisBridge{
		instance: uuid.NewString(),
		rdb:      rdb,
		pubsub:   rdb.Subscribe(context.Background(), bridgeChannel),
	}

	go b.run(relay)
	log.Printf("✅ Relay bridge connected as instance %s", b.instance)
	return b
}

func (b *redisBridge) publish(room string, f Frame) {
	payload, err := json.Marshal(bridgeEnvelope{Instance: b.instance, Room: room, Frame: f})
	if err != nil {
		log.Printf("Failed to marshal bridge envelope: %v", err)
		return
	}
	if err := b.rdb.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		log.Printf("Failed to publish frame to relay bridge: %v", err)
	}
}

func (b *redisBridge) run(relay *Relay) {
	for msg := range b.pubsub.Channel() {
		var env bridgeEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("Dropping malformed bridge envelope: %v", err)
			continue
		}
		if env.Instance == b.instance {
			continue
		}
		relay.deliver(env.Room, env.Frame)
	}
}

func (b *redisBridge) close() {
	_ = b.pubsub.Close()
}
