package service

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

const subscriberBuffer = 16

// Subscriber is one connected shell's event feed for a room.
type Subscriber struct {
	ID     uuid.UUID
	Events chan domain.RoomEvent
}

// Hub fans change hints out to every shell subscribed to a room. Events are
// hints only; a slow consumer that drops one recovers on the next snapshot
// fetch, so sends never block.
type Hub struct {
	log   *slog.Logger
	mu    sync.RWMutex
	rooms map[string]map[uuid.UUID]*Subscriber
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:   log,
		rooms: make(map[string]map[uuid.UUID]*Subscriber),
	}
}

func (h *Hub) Subscribe(roomCode string) *Subscriber {
	sub := &Subscriber{
		ID:     uuid.New(),
		Events: make(chan domain.RoomEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomCode]
	if !ok {
		subs = make(map[uuid.UUID]*Subscriber)
		h.rooms[roomCode] = subs
	}
	subs[sub.ID] = sub
	return sub
}

func (h *Hub) Unsubscribe(roomCode string, id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	sub, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.rooms, roomCode)
	}
	close(sub.Events)
}

// Broadcast sends under the read lock: Unsubscribe closes channels under the
// write lock, so a send can never hit a closed channel.
func (h *Hub) Broadcast(roomCode string, event domain.RoomEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.rooms[roomCode] {
		select {
		case sub.Events <- event:
		default:
			h.log.Debug("dropping room event",
				slog.String("room", roomCode),
				slog.String("type", string(event.Type)),
			)
		}
	}
}
