package converter

import (
	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/service"
)

type GameResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Status             domain.GameStatus `json:"status"`
	CurrentRoundNumber int               `json:"current_round_number"`
}

type RoundResponse struct {
	RoundNumber        int                    `json:"round_number"`
	EliminatedPlayerID *uuid.UUID             `json:"eliminated_player_id,omitempty"`
	MajorityAction     *domain.MajorityAction `json:"majority_action,omitempty"`
}

type VoteResponse struct {
	VoterID        uuid.UUID              `json:"voter_id"`
	TargetPlayerID *uuid.UUID             `json:"target_player_id,omitempty"`
	Action         *domain.MajorityAction `json:"action,omitempty"`
}

type YouResponse struct {
	PlayerID         uuid.UUID `json:"player_id"`
	IsImpostor       bool      `json:"is_impostor"`
	RoleAcknowledged bool      `json:"role_acknowledged"`
	// Word is only filled in for non-impostors.
	Word string `json:"word,omitempty"`
}

type SnapshotResponse struct {
	Room           *RoomResponse    `json:"room"`
	Players        []PlayerResponse `json:"players"`
	Game           *GameResponse    `json:"game,omitempty"`
	CurrentRound   *RoundResponse   `json:"current_round,omitempty"`
	Votes          []VoteResponse   `json:"votes,omitempty"`
	VotedPlayerIDs []uuid.UUID      `json:"voted_player_ids,omitempty"`
	AckedCount     int              `json:"acked_count"`
	You            *YouResponse     `json:"you,omitempty"`
	Phase          domain.Phase     `json:"phase"`
	ImpostorWon    *bool            `json:"impostor_won,omitempty"`
}

// SnapshotToAPI shapes a snapshot for one client. Ballot contents stay hidden
// until the tally phase; before that only the set of players who have voted
// is visible.
func SnapshotToAPI(snap *service.Snapshot) *SnapshotResponse {
	resp := &SnapshotResponse{
		Room:    RoomToAPI(snap.Room),
		Players: PlayersToAPI(snap.Players),
		Phase:   snap.Phase,
	}

	if snap.Game == nil {
		return resp
	}

	resp.Game = &GameResponse{
		ID:                 snap.Game.ID,
		Status:             snap.Game.Status,
		CurrentRoundNumber: snap.Game.CurrentRoundNumber,
	}
	resp.ImpostorWon = snap.ImpostorWon

	for _, gp := range snap.GamePlayers {
		if gp.RoleAcknowledged {
			resp.AckedCount++
		}
	}

	if snap.CurrentRound != nil {
		resp.CurrentRound = &RoundResponse{
			RoundNumber:        snap.CurrentRound.RoundNumber,
			EliminatedPlayerID: snap.CurrentRound.EliminatedPlayerID,
			MajorityAction:     snap.CurrentRound.MajorityAction,
		}
	}

	tallyVisible := snap.Game.Status == domain.GameStatusVoteResult ||
		snap.Game.Status == domain.GameStatusVoteConclusion ||
		snap.Game.Status == domain.GameStatusOver
	for _, v := range snap.Votes {
		resp.VotedPlayerIDs = append(resp.VotedPlayerIDs, v.VoterID)
		if !tallyVisible {
			continue
		}
		vote := VoteResponse{VoterID: v.VoterID, TargetPlayerID: v.TargetPlayerID}
		if v.IsActionVote {
			action := v.ActionVote
			vote.Action = &action
		}
		resp.Votes = append(resp.Votes, vote)
	}

	if snap.You != nil {
		you := &YouResponse{
			PlayerID:         snap.You.PlayerID,
			IsImpostor:       snap.You.IsImpostor,
			RoleAcknowledged: snap.You.RoleAcknowledged,
		}
		if !snap.You.IsImpostor {
			you.Word = snap.Game.Word
		}
		resp.You = you
	}

	return resp
}
