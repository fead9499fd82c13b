package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSession assembles a two-game history for three players:
//
// Game 1 (impostor Bob): round 1 eliminates Carol after two accusations while
// Carol passes; round 2 eliminates Bob on Alice's accusation while Bob accuses
// Alice back. Game 2 (impostor Alice): a single round ends the game early, Bob
// and Carol pass, Alice accuses Bob.
func buildSession(t *testing.T) (players []*Player, gamePlayers []*GamePlayer, rounds []*Round, votes []*Vote) {
	t.Helper()

	roomID := uuid.New()
	alice := NewPlayer(roomID, "c-alice", "Alice")
	bob := NewPlayer(roomID, "c-bob", "Bob")
	carol := NewPlayer(roomID, "c-carol", "Carol")
	players = []*Player{alice, bob, carol}

	game1 := NewGame(roomID, "lighthouse")
	for _, p := range players {
		gp := NewGamePlayer(game1.ID, p.ID)
		gp.IsImpostor = p.ID == bob.ID
		gamePlayers = append(gamePlayers, gp)
	}

	r1 := NewRound(game1.ID, 1)
	r1.EliminatedPlayerID = &carol.ID
	r2 := NewRound(game1.ID, 2)
	r2.EliminatedPlayerID = &bob.ID
	rounds = append(rounds, r1, r2)

	votes = append(votes,
		NewPlayerVote(r1.ID, alice.ID, carol.ID),
		NewPlayerVote(r1.ID, bob.ID, carol.ID),
		NewActionVote(r1.ID, carol.ID, ActionNextRound),
		NewPlayerVote(r2.ID, alice.ID, bob.ID),
		NewPlayerVote(r2.ID, bob.ID, alice.ID),
	)

	game2 := NewGame(roomID, "orchard")
	for _, p := range players {
		gp := NewGamePlayer(game2.ID, p.ID)
		gp.IsImpostor = p.ID == alice.ID
		gamePlayers = append(gamePlayers, gp)
	}

	g2r1 := NewRound(game2.ID, 1)
	action := ActionEndGame
	g2r1.MajorityAction = &action
	rounds = append(rounds, g2r1)

	votes = append(votes,
		NewActionVote(g2r1.ID, bob.ID, ActionEndGame),
		NewActionVote(g2r1.ID, carol.ID, ActionEndGame),
		NewPlayerVote(g2r1.ID, alice.ID, bob.ID),
	)

	return players, gamePlayers, rounds, votes
}

func TestAggregateStats_Metrics(t *testing.T) {
	players, gamePlayers, rounds, votes := buildSession(t)

	result := AggregateStats(players, gamePlayers, rounds, votes, DefaultScoring())
	require.Len(t, result.Ranking, 3)

	byName := make(map[string]*PlayerStats)
	for _, ps := range result.Ranking {
		byName[ps.Name] = ps
	}

	alice := byName["Alice"]
	require.NotNil(t, alice)
	assert.Equal(t, 2, alice.GamesPlayed)
	assert.Equal(t, 1, alice.TimesImpostor)
	assert.Equal(t, 1, alice.CorrectVotes)
	assert.Equal(t, 0, alice.PassedRounds)
	assert.Equal(t, 0, alice.TimesEliminated)
	assert.Equal(t, 1, alice.VotesReceived)
	assert.Equal(t, 1, alice.RoundsSurvivedAsImpostor)
	assert.Equal(t, 15, alice.Score)

	bob := byName["Bob"]
	require.NotNil(t, bob)
	assert.Equal(t, 1, bob.TimesImpostor)
	assert.Equal(t, 0, bob.CorrectVotes)
	assert.Equal(t, 1, bob.PassedRounds)
	assert.Equal(t, 1, bob.TimesEliminated)
	assert.Equal(t, 2, bob.VotesReceived)
	assert.Equal(t, 1, bob.RoundsSurvivedAsImpostor)
	assert.Equal(t, 5, bob.Score)

	carol := byName["Carol"]
	require.NotNil(t, carol)
	assert.Equal(t, 0, carol.TimesImpostor)
	assert.Equal(t, 2, carol.PassedRounds)
	assert.Equal(t, 1, carol.TimesEliminated)
	assert.Equal(t, 2, carol.VotesReceived)
	assert.Equal(t, 0, carol.Score)

	totalGames := alice.GamesPlayed + bob.GamesPlayed + carol.GamesPlayed
	assert.Equal(t, 2*len(players), totalGames)
}

func TestAggregateStats_RankingOrder(t *testing.T) {
	players, gamePlayers, rounds, votes := buildSession(t)

	result := AggregateStats(players, gamePlayers, rounds, votes, DefaultScoring())
	require.Len(t, result.Ranking, 3)

	assert.Equal(t, "Alice", result.Ranking[0].Name)
	assert.Equal(t, "Bob", result.Ranking[1].Name)
	assert.Equal(t, "Carol", result.Ranking[2].Name)

	for i := 1; i < len(result.Ranking); i++ {
		assert.GreaterOrEqual(t, result.Ranking[i-1].Score, result.Ranking[i].Score)
	}
}

func TestAggregateStats_Awards(t *testing.T) {
	players, gamePlayers, rounds, votes := buildSession(t)

	result := AggregateStats(players, gamePlayers, rounds, votes, DefaultScoring())

	byName := make(map[string]*PlayerStats)
	for _, ps := range result.Ranking {
		byName[ps.Name] = ps
	}

	awards := make(map[AwardName]Award)
	for _, a := range result.Awards {
		awards[a.Name] = a
		assert.Positive(t, a.Value, "award %s must have a non-zero metric", a.Name)
	}

	require.Contains(t, awards, AwardBestDetective)
	assert.Equal(t, byName["Alice"].PlayerID, awards[AwardBestDetective].PlayerID)

	// Alice and Bob both survived one impostor round; the earlier joiner keeps
	// the award on a tie.
	require.Contains(t, awards, AwardMasterOfDisguise)
	assert.Equal(t, byName["Alice"].PlayerID, awards[AwardMasterOfDisguise].PlayerID)

	require.Contains(t, awards, AwardMostIndecisive)
	assert.Equal(t, byName["Carol"].PlayerID, awards[AwardMostIndecisive].PlayerID)
	assert.Equal(t, 2, awards[AwardMostIndecisive].Value)

	require.Contains(t, awards, AwardMostSuspicious)
	assert.Equal(t, byName["Bob"].PlayerID, awards[AwardMostSuspicious].PlayerID)

	require.Contains(t, awards, AwardMostAccused)
	assert.Equal(t, byName["Bob"].PlayerID, awards[AwardMostAccused].PlayerID)
	assert.Equal(t, 2, awards[AwardMostAccused].Value)
}

func TestAggregateStats_NoHistoryOmitsAwards(t *testing.T) {
	roomID := uuid.New()
	players := []*Player{
		NewPlayer(roomID, "c-1", "One"),
		NewPlayer(roomID, "c-2", "Two"),
	}

	result := AggregateStats(players, nil, nil, nil, DefaultScoring())

	require.Len(t, result.Ranking, 2)
	assert.Empty(t, result.Awards)
	assert.Equal(t, "One", result.Ranking[0].Name)
	assert.Equal(t, "Two", result.Ranking[1].Name)
}

func TestAggregateStats_CustomScoring(t *testing.T) {
	players, gamePlayers, rounds, votes := buildSession(t)

	result := AggregateStats(players, gamePlayers, rounds, votes, ScoringConfig{CorrectVote: 3, ImpostorRoundSurvived: 7})

	byName := make(map[string]*PlayerStats)
	for _, ps := range result.Ranking {
		byName[ps.Name] = ps
	}

	assert.Equal(t, 10, byName["Alice"].Score)
	assert.Equal(t, 7, byName["Bob"].Score)
	assert.Equal(t, 0, byName["Carol"].Score)
}
