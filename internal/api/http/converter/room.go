package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

type RoomResponse struct {
	ID           uuid.UUID         `json:"id"`
	Code         string            `json:"code"`
	HostID       string            `json:"host_id"`
	Status       domain.RoomStatus `json:"status"`
	RoundCounter int               `json:"round_counter"`
	CreatedAt    time.Time         `json:"created_at"`
}

type PlayerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

type ChatMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func RoomToAPI(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:           r.ID,
		Code:         r.Code,
		HostID:       r.HostID,
		Status:       r.Status,
		RoundCounter: r.RoundCounter,
		CreatedAt:    r.CreatedAt,
	}
}

func PlayersToAPI(players []*domain.Player) []PlayerResponse {
	result := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		result = append(result, PlayerResponse{
			ID:       p.ID,
			Name:     p.Name,
			JoinedAt: p.JoinedAt,
		})
	}
	return result
}

func ChatToAPI(msgs []*domain.ChatMessage) []ChatMessageResponse {
	result := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, ChatMessageResponse{
			ID:        m.ID,
			PlayerID:  m.PlayerID,
			Name:      m.Name,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return result
}
