package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomCodeExists     = errors.New("room code already exists")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerExists       = errors.New("client already joined room")
	ErrGameNotFound       = errors.New("game not found")
	ErrGamePlayerNotFound = errors.New("game player not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrRoundExists        = errors.New("round number already exists for game")
	ErrVoteExists         = errors.New("voter already voted in round")
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByCode(ctx context.Context, code string) (*domain.Room, error)
	UpdateStatus(ctx context.Context, roomID uuid.UUID, status domain.RoomStatus) error
	SetCurrentWord(ctx context.Context, roomID uuid.UUID, word string) error
	IncrementRoundCounter(ctx context.Context, roomID uuid.UUID) error
	// Delete removes the room and everything it owns: votes first, then
	// rounds, game players, games, players, chat.
	Delete(ctx context.Context, roomID uuid.UUID) error
	SaveChatMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListChatMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.ChatMessage, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByClientID(ctx context.Context, roomID uuid.UUID, clientID string) (*domain.Player, error)
	// ListByRoom returns players ordered by join time ascending. Everything
	// that needs a deterministic player order relies on this.
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Player, error)
	Delete(ctx context.Context, playerID uuid.UUID) error
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	// GetActive returns the most recently created game for the room.
	GetActive(ctx context.Context, roomID uuid.UUID) (*domain.Game, error)
	UpdateStatus(ctx context.Context, gameID uuid.UUID, status domain.GameStatus) error
	UpdateRound(ctx context.Context, gameID uuid.UUID, roundNumber int) error
	CreateGamePlayers(ctx context.Context, gamePlayers []*domain.GamePlayer) error
	ListGamePlayers(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error)
	ListGamePlayersByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.GamePlayer, error)
	AcknowledgeRole(ctx context.Context, gamePlayerID uuid.UUID) error
}

type RoundRepository interface {
	Create(ctx context.Context, round *domain.Round) error
	GetByNumber(ctx context.Context, gameID uuid.UUID, roundNumber int) (*domain.Round, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.Round, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Round, error)
	SetEliminated(ctx context.Context, roundID, playerID uuid.UUID) error
	SetMajorityAction(ctx context.Context, roundID uuid.UUID, action domain.MajorityAction) error
}

type VoteRepository interface {
	// Create fails with ErrVoteExists when the voter already has a ballot in
	// the round; the stored row stays authoritative.
	Create(ctx context.Context, vote *domain.Vote) error
	ListByRound(ctx context.Context, roundID uuid.UUID) ([]*domain.Vote, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Vote, error)
}
