package domain

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusPlaying  RoomStatus = "playing"
	RoomStatusFinished RoomStatus = "game_finished"
)

const codeLength = 6

// codeAlphabet leaves out characters that read ambiguously on a shared screen.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Room is a lobby that groups players for one session. A session may span
// several games; the room outlives each of them until the host ends it or the
// last player leaves.
type Room struct {
	ID           uuid.UUID
	Code         string
	HostID       string
	Status       RoomStatus
	CurrentWord  string
	RoundCounter int
	CreatedAt    time.Time
}

// NewRoom constructs a waiting room with a freshly generated code. The host is
// identified by the opaque client id supplied by the caller.
func NewRoom(hostID string) *Room {
	return &Room{
		ID:        uuid.New(),
		Code:      generateCode(),
		HostID:    hostID,
		Status:    RoomStatusWaiting,
		CreatedAt: time.Now().UTC(),
	}
}

// IsHost reports whether the given client id may issue privileged calls.
func (r *Room) IsHost(clientID string) bool {
	return r != nil && clientID != "" && r.HostID == clientID
}

// NormalizeCode maps user input onto the stored room code form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
