package domain

type EventType string

const (
	EventRoomChanged    EventType = "room_changed"
	EventPlayersChanged EventType = "players_changed"
	EventGameChanged    EventType = "game_changed"
	EventRoundChanged   EventType = "round_changed"
	EventVotesChanged   EventType = "votes_changed"
	EventChatMessage    EventType = "chat_message"
)

// RoomEvent is the change hint pushed to subscribed shells. It is not
// authoritative data: on receipt a shell re-fetches the room snapshot and
// re-derives its phase from that.
type RoomEvent struct {
	Type    EventType      `json:"type"`
	Room    string         `json:"room"`
	Payload map[string]any `json:"payload,omitempty"`
}
