package domain

import "github.com/google/uuid"

type OutcomeAction string

const (
	OutcomeEliminate OutcomeAction = "eliminate"
	OutcomeNextRound OutcomeAction = "next_round"
	OutcomeEndGame   OutcomeAction = "end_game"
	OutcomeNoVotes   OutcomeAction = "no_votes"
)

// Outcome is the resolution of one round of votes. EliminatedPlayerID and
// EliminatedImpostor are only meaningful when Action is OutcomeEliminate.
type Outcome struct {
	Action             OutcomeAction
	EliminatedPlayerID uuid.UUID
	EliminatedImpostor bool
}

// ImpostorWon reports the winner of a game from its persisted rounds: the
// impostor loses if and only if some round eliminated them.
func ImpostorWon(gamePlayers []*GamePlayer, rounds []*Round) bool {
	var impostorID uuid.UUID
	for _, gp := range gamePlayers {
		if gp.IsImpostor {
			impostorID = gp.PlayerID
			break
		}
	}
	for _, r := range rounds {
		if r.EliminatedPlayerID != nil && *r.EliminatedPlayerID == impostorID {
			return false
		}
	}
	return true
}

// ResolveVotes tallies a round and decides its resolution. Pure and
// deterministic: the same ballots always produce the same outcome.
//
// Tie-break priority, highest first:
//  1. end_game beats every equal tally
//  2. next_round beats equal accusation tallies
//  3. a single leading accusation eliminates that player
//  4. accusations tied between two or more players fall back to next_round
//
// An empty ballot set resolves to OutcomeNoVotes rather than falling through
// the priority chain; the caller's coverage precondition keeps this case out
// of normal play.
func ResolveVotes(votes []*Vote, gamePlayers []*GamePlayer) Outcome {
	if len(votes) == 0 {
		return Outcome{Action: OutcomeNoVotes}
	}

	playerVotes := make(map[uuid.UUID]int)
	var nextRoundVotes, endGameVotes int

	for _, v := range votes {
		switch {
		case v.IsActionVote && v.ActionVote == ActionEndGame:
			endGameVotes++
		case v.IsActionVote && v.ActionVote == ActionNextRound:
			nextRoundVotes++
		case v.TargetPlayerID != nil:
			playerVotes[*v.TargetPlayerID]++
		}
	}

	maxPlayerVotes := 0
	for _, n := range playerVotes {
		if n > maxPlayerVotes {
			maxPlayerVotes = n
		}
	}

	var tiedPlayers []uuid.UUID
	for id, n := range playerVotes {
		if n == maxPlayerVotes && n > 0 {
			tiedPlayers = append(tiedPlayers, id)
		}
	}

	absoluteMax := maxPlayerVotes
	if nextRoundVotes > absoluteMax {
		absoluteMax = nextRoundVotes
	}
	if endGameVotes > absoluteMax {
		absoluteMax = endGameVotes
	}

	switch {
	case endGameVotes == absoluteMax:
		return Outcome{Action: OutcomeEndGame}
	case nextRoundVotes == absoluteMax:
		return Outcome{Action: OutcomeNextRound}
	case len(tiedPlayers) == 1:
		target := tiedPlayers[0]
		out := Outcome{Action: OutcomeEliminate, EliminatedPlayerID: target}
		for _, gp := range gamePlayers {
			if gp.PlayerID == target {
				out.EliminatedImpostor = gp.IsImpostor
				break
			}
		}
		return out
	default:
		return Outcome{Action: OutcomeNextRound}
	}
}
