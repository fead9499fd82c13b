package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a lobby chat line. Chat never influences the game state
// machine; it is stored so late joiners can catch up.
type ChatMessage struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	PlayerID  uuid.UUID
	Name      string
	Content   string
	CreatedAt time.Time
}

func NewChatMessage(roomID uuid.UUID, player *Player, content string) *ChatMessage {
	msg := &ChatMessage{
		ID:        uuid.New(),
		RoomID:    roomID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if player != nil {
		msg.PlayerID = player.ID
		msg.Name = player.Name
	}
	return msg
}
