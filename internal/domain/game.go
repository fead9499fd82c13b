package domain

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusReveal         GameStatus = "reveal"
	GameStatusVoting         GameStatus = "voting"
	GameStatusVoteResult     GameStatus = "vote_result"
	GameStatusVoteConclusion GameStatus = "vote_conclusion"
	GameStatusOver           GameStatus = "game_over"
)

// Game is one match inside a room: one secret word, one impostor assignment.
// A room accumulates games sequentially via play-again; the most recently
// created game is the active one.
type Game struct {
	ID                 uuid.UUID
	RoomID             uuid.UUID
	Word               string
	Status             GameStatus
	CurrentRoundNumber int
	CreatedAt          time.Time
}

func NewGame(roomID uuid.UUID, word string) *Game {
	return &Game{
		ID:                 uuid.New(),
		RoomID:             roomID,
		Word:               word,
		Status:             GameStatusReveal,
		CurrentRoundNumber: 1,
		CreatedAt:          time.Now().UTC(),
	}
}

// GamePlayer binds a player to one game: their role and whether they have
// confirmed seeing it. Exactly one game player per game is the impostor.
type GamePlayer struct {
	ID               uuid.UUID
	GameID           uuid.UUID
	PlayerID         uuid.UUID
	IsImpostor       bool
	RoleAcknowledged bool
}

func NewGamePlayer(gameID, playerID uuid.UUID) *GamePlayer {
	return &GamePlayer{
		ID:       uuid.New(),
		GameID:   gameID,
		PlayerID: playerID,
	}
}
