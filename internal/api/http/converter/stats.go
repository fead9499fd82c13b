package converter

import (
	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

type PlayerStatsResponse struct {
	PlayerID                 uuid.UUID `json:"player_id"`
	Name                     string    `json:"name"`
	GamesPlayed              int       `json:"games_played"`
	TimesImpostor            int       `json:"times_impostor"`
	CorrectVotes             int       `json:"correct_votes"`
	PassedRounds             int       `json:"passed_rounds"`
	TimesEliminated          int       `json:"times_eliminated"`
	VotesReceived            int       `json:"votes_received"`
	RoundsSurvivedAsImpostor int       `json:"rounds_survived_as_impostor"`
	Score                    int       `json:"score"`
}

type AwardResponse struct {
	Name     domain.AwardName `json:"name"`
	PlayerID uuid.UUID        `json:"player_id"`
	Value    int              `json:"value"`
}

type SessionStatsResponse struct {
	Ranking []PlayerStatsResponse `json:"ranking"`
	Awards  []AwardResponse       `json:"awards"`
}

func StatsToAPI(stats *domain.SessionStats) *SessionStatsResponse {
	resp := &SessionStatsResponse{
		Ranking: make([]PlayerStatsResponse, 0, len(stats.Ranking)),
		Awards:  make([]AwardResponse, 0, len(stats.Awards)),
	}
	for _, ps := range stats.Ranking {
		resp.Ranking = append(resp.Ranking, PlayerStatsResponse{
			PlayerID:                 ps.PlayerID,
			Name:                     ps.Name,
			GamesPlayed:              ps.GamesPlayed,
			TimesImpostor:            ps.TimesImpostor,
			CorrectVotes:             ps.CorrectVotes,
			PassedRounds:             ps.PassedRounds,
			TimesEliminated:          ps.TimesEliminated,
			VotesReceived:            ps.VotesReceived,
			RoundsSurvivedAsImpostor: ps.RoundsSurvivedAsImpostor,
			Score:                    ps.Score,
		})
	}
	for _, a := range stats.Awards {
		resp.Awards = append(resp.Awards, AwardResponse{
			Name:     a.Name,
			PlayerID: a.PlayerID,
			Value:    a.Value,
		})
	}
	return resp
}
