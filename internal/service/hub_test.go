package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/impostor-server/internal/domain"
)

func TestHub_BroadcastReachesRoomSubscribers(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	a := hub.Subscribe("ROOM01")
	b := hub.Subscribe("ROOM01")
	other := hub.Subscribe("ROOM02")

	hub.Broadcast("ROOM01", domain.RoomEvent{Type: domain.EventPlayersChanged, Room: "ROOM01"})

	for _, sub := range []*Subscriber{a, b} {
		select {
		case ev := <-sub.Events:
			assert.Equal(t, domain.EventPlayersChanged, ev.Type)
		default:
			t.Fatal("expected an event")
		}
	}

	select {
	case <-other.Events:
		t.Fatal("event leaked into another room")
	default:
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sub := hub.Subscribe("ROOM01")

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Broadcast("ROOM01", domain.RoomEvent{Type: domain.EventGameChanged, Room: "ROOM01"})
	}

	assert.Len(t, sub.Events, subscriberBuffer)
}

func TestHub_BroadcastConcurrentWithUnsubscribe(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	// A close racing a send must never panic; sends hold the read lock while
	// Unsubscribe closes under the write lock.
	for i := 0; i < 500; i++ {
		sub := hub.Subscribe("ROOM01")
		done := make(chan struct{})
		go func() {
			hub.Broadcast("ROOM01", domain.RoomEvent{Type: domain.EventVotesChanged, Room: "ROOM01"})
			close(done)
		}()
		hub.Unsubscribe("ROOM01", sub.ID)
		<-done
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sub := hub.Subscribe("ROOM01")

	hub.Unsubscribe("ROOM01", sub.ID)

	_, open := <-sub.Events
	require.False(t, open)

	hub.Unsubscribe("ROOM01", sub.ID)
	hub.Broadcast("ROOM01", domain.RoomEvent{Type: domain.EventRoomChanged, Room: "ROOM01"})
}
