package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(s *Subscriber) []Frame {
	var frames []Frame
	for {
		select {
		case f := <-s.frames:
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func TestRelayPublishReachesAllSubscribersIncludingSender(t *testing.T) {
	relay := NewRelay()
	a := NewSubscriber()
	b := NewSubscriber()
	relay.Join("chat_3_7", a)
	relay.Join("chat_3_7", b)

	relay.Publish("chat_3_7", Frame{Content: "hello", SenderID: 3, ReceiverID: 7})

	framesA := drain(a)
	framesB := drain(b)
	assert.Len(t, framesA, 1)
	assert.Len(t, framesB, 1)
	assert.Equal(t, "hello", framesA[0].Content)
	assert.Equal(t, framesA[0], framesB[0])
}

func TestRelayPublishIsScopedToRoom(t *testing.T) {
	relay := NewRelay()
	a := NewSubscriber()
	b := NewSubscriber()
	relay.Join("chat_1_2", a)
	relay.Join("chat_1_3", b)

	relay.Publish("chat_1_2", Frame{Content: "scoped", SenderID: 1, ReceiverID: 2})

	assert.Len(t, drain(a), 1)
	assert.Empty(t, drain(b))
}

func TestRelayLeaveThenPublishExclusion(t *testing.T) {
	relay := NewRelay()
	a := NewSubscriber()
	b := NewSubscriber()
	relay.Join("chat_1_2", a)
	relay.Join("chat_1_2", b)

	relay.Leave("chat_1_2", a)
	relay.Publish("chat_1_2", Frame{Content: "after leave", SenderID: 1, ReceiverID: 2})

	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
}

func TestRelayJoinAndLeaveAreIdempotent(t *testing.T) {
	relay := NewRelay()
	a := NewSubscriber()

	relay.Join("chat_1_2", a)
	relay.Join("chat_1_2", a)
	relay.Publish("chat_1_2", Frame{Content: "once"})
	assert.Len(t, drain(a), 1)

	relay.Leave("chat_1_2", a)
	relay.Leave("chat_1_2", a)
	relay.Leave("chat_9_9", a)
}

func TestRelaySlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	relay := NewRelay()
	a := NewSubscriber()
	relay.Join("chat_1_2", a)

	for i := 0; i < subscriberBuffer+10; i++ {
		relay.Publish("chat_1_2", Frame{Content: fmt.Sprintf("msg %d", i)})
	}

	// Publisher never blocked; the buffer holds exactly its capacity.
	assert.Len(t, drain(a), subscriberBuffer)
}

func TestRelayConcurrentJoinLeavePublish(t *testing.T) {
	relay := NewRelay()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := NewSubscriber()
			room := RoomName(uint(i%5), uint(i%5+1))
			for j := 0; j < 100; j++ {
				relay.Join(room, s)
				relay.Publish(room, Frame{Content: "c"})
				relay.Leave(room, s)
				// A completed leave must exclude the handle from later
				// publishes.
				drain(s)
				relay.Publish(room, Frame{Content: "after"})
				assert.Empty(t, drain(s))
			}
		}(i)
	}
	wg.Wait()
}
