package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player is a human participant bound to a room. The ClientID is a stable
// per-device identity supplied by the shell; it survives reconnects, so a
// player who rejoins with the same client id is the same player.
type Player struct {
	ID       uuid.UUID
	RoomID   uuid.UUID
	ClientID string
	Name     string
	JoinedAt time.Time
}

func NewPlayer(roomID uuid.UUID, clientID, name string) *Player {
	return &Player{
		ID:       uuid.New(),
		RoomID:   roomID,
		ClientID: clientID,
		Name:     name,
		JoinedAt: time.Now().UTC(),
	}
}
