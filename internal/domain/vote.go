package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one ballot cast by one player in one round: either an accusation
// against a target player or a procedural action vote, never both. A voter
// gets one vote per round; the store enforces this with a unique key and the
// first write wins.
type Vote struct {
	ID             uuid.UUID
	RoundID        uuid.UUID
	VoterID        uuid.UUID
	TargetPlayerID *uuid.UUID
	IsActionVote   bool
	ActionVote     MajorityAction
	CreatedAt      time.Time
}

func NewPlayerVote(roundID, voterID, targetPlayerID uuid.UUID) *Vote {
	return &Vote{
		ID:             uuid.New(),
		RoundID:        roundID,
		VoterID:        voterID,
		TargetPlayerID: &targetPlayerID,
		CreatedAt:      time.Now().UTC(),
	}
}

func NewActionVote(roundID, voterID uuid.UUID, action MajorityAction) *Vote {
	return &Vote{
		ID:           uuid.New(),
		RoundID:      roundID,
		VoterID:      voterID,
		IsActionVote: true,
		ActionVote:   action,
		CreatedAt:    time.Now().UTC(),
	}
}
