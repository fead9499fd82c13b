package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"size:16;uniqueIndex;not null"`
	HostID       string    `gorm:"size:64;not null"`
	Status       string    `gorm:"size:32;not null"`
	CurrentWord  string    `gorm:"size:64"`
	RoundCounter int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`

	Players []Player      `gorm:"constraint:OnDelete:CASCADE"`
	Games   []Game        `gorm:"constraint:OnDelete:CASCADE"`
	Chat    []ChatMessage `gorm:"constraint:OnDelete:CASCADE"`
}

type Player struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_players_room_client"`
	ClientID  string    `gorm:"size:64;not null;uniqueIndex:idx_players_room_client"`
	Name      string    `gorm:"size:255;not null"`
	JoinedAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

type Game struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID             uuid.UUID `gorm:"type:uuid;index;not null"`
	Word               string    `gorm:"size:64;not null"`
	Status             string    `gorm:"size:32;not null"`
	CurrentRoundNumber int       `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`

	GamePlayers []GamePlayer `gorm:"constraint:OnDelete:CASCADE"`
	Rounds      []Round      `gorm:"constraint:OnDelete:CASCADE"`
}

type GamePlayer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_players_game_player"`
	PlayerID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_players_game_player"`
	IsImpostor       bool      `gorm:"not null;default:false"`
	RoleAcknowledged bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Round struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GameID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rounds_game_number"`
	RoundNumber        int        `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	EliminatedPlayerID *uuid.UUID `gorm:"type:uuid"`
	MajorityAction     *string    `gorm:"size:32"`
	CreatedAt          time.Time

	Votes []Vote `gorm:"constraint:OnDelete:CASCADE"`
}

type Vote struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoundID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_round_voter"`
	VoterID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_round_voter"`
	TargetPlayerID *uuid.UUID `gorm:"type:uuid"`
	IsActionVote   bool       `gorm:"not null;default:false"`
	ActionVote     string     `gorm:"size:32"`
	CreatedAt      time.Time  `gorm:"not null"`
}

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;index;not null"`
	PlayerID  uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"size:255;not null"`
	Content   string    `gorm:"size:2000;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
