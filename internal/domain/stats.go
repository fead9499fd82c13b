package domain

import (
	"sort"

	"github.com/google/uuid"
)

type AwardName string

const (
	AwardBestDetective    AwardName = "best_detective"
	AwardMasterOfDisguise AwardName = "master_of_disguise"
	AwardMostIndecisive   AwardName = "most_indecisive"
	AwardMostSuspicious   AwardName = "most_suspicious"
	AwardMostAccused      AwardName = "most_accused"
)

// ScoringConfig holds the per-event point values that feed a player's score.
// The values are configuration, not rules; any stable assignment works for
// ranking.
type ScoringConfig struct {
	CorrectVote           int `yaml:"correct_vote" env-default:"10"`
	ImpostorRoundSurvived int `yaml:"impostor_round_survived" env-default:"5"`
}

func DefaultScoring() ScoringConfig {
	return ScoringConfig{CorrectVote: 10, ImpostorRoundSurvived: 5}
}

// PlayerStats are the per-player performance metrics over a whole session.
type PlayerStats struct {
	PlayerID                 uuid.UUID
	Name                     string
	GamesPlayed              int
	TimesImpostor            int
	CorrectVotes             int
	PassedRounds             int
	TimesEliminated          int
	VotesReceived            int
	RoundsSurvivedAsImpostor int
	Score                    int
}

// Award is a session superlative with a single winner.
type Award struct {
	Name     AwardName
	PlayerID uuid.UUID
	Value    int
}

// SessionStats is the end-of-session summary: final ranking plus awards.
// An award whose metric is zero for every player is omitted.
type SessionStats struct {
	Ranking []*PlayerStats
	Awards  []Award
}

// AggregateStats computes session statistics from a room's full history.
// Pure given its inputs; players must be ordered by join time ascending, which
// also serves as the deterministic tie-break for awards and ranking.
func AggregateStats(players []*Player, gamePlayers []*GamePlayer, rounds []*Round, votes []*Vote, scoring ScoringConfig) *SessionStats {
	stats := make(map[uuid.UUID]*PlayerStats, len(players))
	ordered := make([]*PlayerStats, 0, len(players))
	for _, p := range players {
		ps := &PlayerStats{PlayerID: p.ID, Name: p.Name}
		stats[p.ID] = ps
		ordered = append(ordered, ps)
	}

	roundsByID := make(map[uuid.UUID]*Round, len(rounds))
	roundsByGame := make(map[uuid.UUID][]*Round)
	for _, r := range rounds {
		roundsByID[r.ID] = r
		roundsByGame[r.GameID] = append(roundsByGame[r.GameID], r)
	}

	// (game, player) -> role, to check accusation correctness per game.
	impostorByGame := make(map[uuid.UUID]uuid.UUID)
	for _, gp := range gamePlayers {
		if ps, ok := stats[gp.PlayerID]; ok {
			ps.GamesPlayed++
			if gp.IsImpostor {
				ps.TimesImpostor++
			}
		}
		if gp.IsImpostor {
			impostorByGame[gp.GameID] = gp.PlayerID
		}
	}

	for _, v := range votes {
		voter := stats[v.VoterID]
		if v.IsActionVote {
			if voter != nil {
				voter.PassedRounds++
			}
			continue
		}
		if v.TargetPlayerID == nil {
			continue
		}
		if target, ok := stats[*v.TargetPlayerID]; ok {
			target.VotesReceived++
		}
		round := roundsByID[v.RoundID]
		if voter != nil && round != nil && impostorByGame[round.GameID] == *v.TargetPlayerID {
			voter.CorrectVotes++
		}
	}

	for _, r := range rounds {
		if r.EliminatedPlayerID == nil {
			continue
		}
		if ps, ok := stats[*r.EliminatedPlayerID]; ok {
			ps.TimesEliminated++
		}
	}

	// Rounds survived as impostor: everything strictly before the impostor's
	// own elimination round, or every round of the game if never eliminated.
	for gameID, impostorID := range impostorByGame {
		ps, ok := stats[impostorID]
		if !ok {
			continue
		}
		eliminatedAt := 0
		for _, r := range roundsByGame[gameID] {
			if r.EliminatedPlayerID != nil && *r.EliminatedPlayerID == impostorID {
				eliminatedAt = r.RoundNumber
			}
		}
		for _, r := range roundsByGame[gameID] {
			if eliminatedAt == 0 || r.RoundNumber < eliminatedAt {
				ps.RoundsSurvivedAsImpostor++
			}
		}
	}

	for _, ps := range ordered {
		ps.Score = ps.CorrectVotes*scoring.CorrectVote +
			ps.RoundsSurvivedAsImpostor*scoring.ImpostorRoundSurvived
	}

	ranking := make([]*PlayerStats, len(ordered))
	copy(ranking, ordered)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	result := &SessionStats{Ranking: ranking}
	for _, def := range []struct {
		name   AwardName
		metric func(*PlayerStats) int
	}{
		{AwardBestDetective, func(ps *PlayerStats) int { return ps.CorrectVotes }},
		{AwardMasterOfDisguise, func(ps *PlayerStats) int { return ps.RoundsSurvivedAsImpostor }},
		{AwardMostIndecisive, func(ps *PlayerStats) int { return ps.PassedRounds }},
		{AwardMostSuspicious, func(ps *PlayerStats) int { return ps.TimesEliminated }},
		{AwardMostAccused, func(ps *PlayerStats) int { return ps.VotesReceived }},
	} {
		if award, ok := pickAward(def.name, ordered, def.metric); ok {
			result.Awards = append(result.Awards, award)
		}
	}

	return result
}

// pickAward finds the single winner for one superlative. Candidates arrive in
// join order, and strict comparison keeps the earliest joiner on ties. No
// winner is declared when every candidate sits at zero.
func pickAward(name AwardName, candidates []*PlayerStats, metric func(*PlayerStats) int) (Award, bool) {
	var winner *PlayerStats
	best := 0
	for _, ps := range candidates {
		if v := metric(ps); v > best {
			best = v
			winner = ps
		}
	}
	if winner == nil {
		return Award{}, false
	}
	return Award{Name: name, PlayerID: winner.PlayerID, Value: best}, true
}
