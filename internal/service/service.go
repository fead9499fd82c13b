package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

// Snapshot is the full per-client view of a room. Shells re-fetch it on every
// change notification and re-derive their phase from it instead of trusting
// event payloads.
type Snapshot struct {
	Room         *domain.Room
	Players      []*domain.Player
	Game         *domain.Game
	GamePlayers  []*domain.GamePlayer
	CurrentRound *domain.Round
	Votes        []*domain.Vote
	You          *domain.GamePlayer
	Phase        domain.Phase
	ImpostorWon  *bool
}

// VoteChoice is one ballot: exactly one of the fields must be set.
type VoteChoice struct {
	TargetPlayerID *uuid.UUID
	Action         *domain.MajorityAction
}

type RoomInteractor interface {
	CreateRoom(ctx context.Context, hostClientID, hostName string) (*domain.Room, *domain.Player, error)
	GetRoom(ctx context.Context, code string) (*domain.Room, []*domain.Player, error)
	JoinRoom(ctx context.Context, code, clientID, name string) (*domain.Room, *domain.Player, error)
	LeaveRoom(ctx context.Context, code, clientID string) error
	Snapshot(ctx context.Context, code, clientID string) (*Snapshot, error)
	PostChatMessage(ctx context.Context, code, clientID, content string) (*domain.ChatMessage, error)
	ListChat(ctx context.Context, code string) ([]*domain.ChatMessage, error)
}

type GameInteractor interface {
	StartGame(ctx context.Context, code, clientID string) (*domain.Game, error)
	AcknowledgeRole(ctx context.Context, code, clientID string) error
	SubmitVote(ctx context.Context, code, clientID string, choice VoteChoice) error
	ResolveRound(ctx context.Context, code, clientID string) (*domain.Outcome, error)
	ProceedFromConclusion(ctx context.Context, code, clientID string) error
	EndGame(ctx context.Context, code, clientID string) error
	PlayAgain(ctx context.Context, code, clientID string) (*domain.Game, error)
	EndSession(ctx context.Context, code, clientID string) error
}

type StatsInteractor interface {
	SessionStats(ctx context.Context, code string) (*domain.SessionStats, error)
}
