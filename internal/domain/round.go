package domain

import "github.com/google/uuid"

// MajorityAction is the non-elimination outcome recorded on a round when
// procedural votes prevail.
type MajorityAction string

const (
	ActionNextRound MajorityAction = "next_round"
	ActionEndGame   MajorityAction = "end_game"
)

// Round is one voting cycle within a game. At most one of EliminatedPlayerID
// and MajorityAction is set once the round has been resolved; both are nil
// while voting is still open.
type Round struct {
	ID                 uuid.UUID
	GameID             uuid.UUID
	RoundNumber        int
	EliminatedPlayerID *uuid.UUID
	MajorityAction     *MajorityAction
}

func NewRound(gameID uuid.UUID, roundNumber int) *Round {
	return &Round{
		ID:          uuid.New(),
		GameID:      gameID,
		RoundNumber: roundNumber,
	}
}

// Resolved reports whether an outcome has been written onto the round.
func (r *Round) Resolved() bool {
	return r != nil && (r.EliminatedPlayerID != nil || r.MajorityAction != nil)
}
