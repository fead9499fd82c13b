package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository"
)

type testEnv struct {
	rooms   repository.RoomRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	rounds  repository.RoundRepository
	votes   repository.VoteRepository

	roomSvc  *RoomService
	gameSvc  *GameService
	statsSvc *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()

	env := &testEnv{
		rooms:   repository.NewMemoryRoomRepository(store),
		players: repository.NewMemoryPlayerRepository(store),
		games:   repository.NewMemoryGameRepository(store),
		rounds:  repository.NewMemoryRoundRepository(store),
		votes:   repository.NewMemoryVoteRepository(store),
	}

	hub := NewHub(log)
	env.roomSvc = NewRoomService(env.rooms, env.players, env.games, env.rounds, env.votes, hub, log)
	env.gameSvc = NewGameService(env.rooms, env.players, env.games, env.rounds, env.votes, hub, GameConfig{MinPlayers: 3}, log)
	env.statsSvc = NewStatsService(env.rooms, env.players, env.games, env.rounds, env.votes, domain.DefaultScoring(), log)
	return env
}

// setupRoom creates a room with n players. The host is players[0] with client
// id "client-0".
func (e *testEnv) setupRoom(t *testing.T, n int) (*domain.Room, []*domain.Player) {
	t.Helper()
	ctx := context.Background()

	room, host, err := e.roomSvc.CreateRoom(ctx, "client-0", "Player 0")
	require.NoError(t, err)

	players := []*domain.Player{host}
	for i := 1; i < n; i++ {
		_, p, err := e.roomSvc.JoinRoom(ctx, room.Code, clientID(i), playerName(i))
		require.NoError(t, err)
		players = append(players, p)
	}
	return room, players
}

// startGame starts a game, acknowledges every role, and reports which player
// drew the impostor.
func (e *testEnv) startGame(t *testing.T, room *domain.Room, players []*domain.Player) (*domain.Game, *domain.Player) {
	t.Helper()
	ctx := context.Background()

	game, err := e.gameSvc.StartGame(ctx, room.Code, "client-0")
	require.NoError(t, err)

	for _, p := range players {
		require.NoError(t, e.gameSvc.AcknowledgeRole(ctx, room.Code, p.ClientID))
	}

	return game, e.findImpostor(t, game, players)
}

func (e *testEnv) findImpostor(t *testing.T, game *domain.Game, players []*domain.Player) *domain.Player {
	t.Helper()

	gamePlayers, err := e.games.ListGamePlayers(context.Background(), game.ID)
	require.NoError(t, err)

	byID := make(map[uuid.UUID]*domain.Player)
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, gp := range gamePlayers {
		if gp.IsImpostor {
			require.Contains(t, byID, gp.PlayerID)
			return byID[gp.PlayerID]
		}
	}
	t.Fatal("no impostor assigned")
	return nil
}

func clientID(i int) string   { return "client-" + string(rune('0'+i)) }
func playerName(i int) string { return "Player " + string(rune('0'+i)) }

func accuseChoice(target uuid.UUID) VoteChoice {
	return VoteChoice{TargetPlayerID: &target}
}

func actionChoice(a domain.MajorityAction) VoteChoice {
	return VoteChoice{Action: &a}
}

func TestStartGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)

	_, err := env.gameSvc.StartGame(ctx, room.Code, players[1].ClientID)
	assert.ErrorIs(t, err, ErrNotHost)

	game, err := env.gameSvc.StartGame(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusReveal, game.Status)
	assert.Equal(t, 1, game.CurrentRoundNumber)
	assert.NotEmpty(t, game.Word)

	stored, err := env.rooms.GetByCode(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusPlaying, stored.Status)
	assert.Equal(t, game.Word, stored.CurrentWord)

	gamePlayers, err := env.games.ListGamePlayers(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, gamePlayers, 4)
	impostors := 0
	for _, gp := range gamePlayers {
		if gp.IsImpostor {
			impostors++
		}
	}
	assert.Equal(t, 1, impostors)

	round, err := env.rounds.GetByNumber(ctx, game.ID, 1)
	require.NoError(t, err)
	assert.False(t, round.Resolved())

	_, err = env.gameSvc.StartGame(ctx, room.Code, "client-0")
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestStartGame_NotEnoughPlayers(t *testing.T) {
	env := newTestEnv(t)
	room, _ := env.setupRoom(t, 2)

	_, err := env.gameSvc.StartGame(context.Background(), room.Code, "client-0")
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestAcknowledgeRole_TransitionsToVoting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)

	_, err := env.gameSvc.StartGame(ctx, room.Code, "client-0")
	require.NoError(t, err)

	require.NoError(t, env.gameSvc.AcknowledgeRole(ctx, room.Code, players[0].ClientID))
	require.NoError(t, env.gameSvc.AcknowledgeRole(ctx, room.Code, players[0].ClientID))

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusReveal, stored.Status)

	require.NoError(t, env.gameSvc.AcknowledgeRole(ctx, room.Code, players[1].ClientID))
	require.NoError(t, env.gameSvc.AcknowledgeRole(ctx, room.Code, players[2].ClientID))

	stored, err = env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusVoting, stored.Status)

	err = env.gameSvc.AcknowledgeRole(ctx, room.Code, players[0].ClientID)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestEliminateImpostorEndsGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	_, impostor := env.startGame(t, room, players)

	var bystander *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			bystander = p
			break
		}
	}

	for _, p := range players {
		choice := accuseChoice(impostor.ID)
		if p.ID == impostor.ID {
			choice = accuseChoice(bystander.ID)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEliminate, outcome.Action)
	assert.Equal(t, impostor.ID, outcome.EliminatedPlayerID)
	assert.True(t, outcome.EliminatedImpostor)

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusVoteConclusion, stored.Status)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	stored, err = env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusOver, stored.Status)

	snap, err := env.roomSvc.Snapshot(ctx, room.Code, impostor.ClientID)
	require.NoError(t, err)
	require.NotNil(t, snap.ImpostorWon)
	assert.False(t, *snap.ImpostorWon)
	assert.Equal(t, domain.PhaseGameOver, snap.Phase)
}

func TestImpostorWinsWhenTwoRemain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	_, impostor := env.startGame(t, room, players)

	var victim *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			victim = p
			break
		}
	}

	for _, p := range players {
		choice := accuseChoice(victim.ID)
		if p.ID == victim.ID {
			choice = accuseChoice(impostor.ID)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeEliminate, outcome.Action)
	assert.Equal(t, victim.ID, outcome.EliminatedPlayerID)
	assert.False(t, outcome.EliminatedImpostor)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	snap, err := env.roomSvc.Snapshot(ctx, room.Code, impostor.ClientID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseGameOver, snap.Phase)
	require.NotNil(t, snap.ImpostorWon)
	assert.True(t, *snap.ImpostorWon)
}

func TestTiedVoteOpensNextRound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	game, impostor := env.startGame(t, room, players)

	var a, b *domain.Player
	for _, p := range players {
		if p.ID == impostor.ID {
			continue
		}
		if a == nil {
			a = p
		} else if b == nil {
			b = p
		}
	}

	for i, p := range players {
		target := a.ID
		if i%2 == 0 {
			target = b.ID
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, accuseChoice(target)))
	}

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNextRound, outcome.Action)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusVoting, stored.Status)
	assert.Equal(t, 2, stored.CurrentRoundNumber)

	round, err := env.rounds.GetByNumber(ctx, game.ID, 2)
	require.NoError(t, err)
	assert.False(t, round.Resolved())
}

func TestMajorityEndGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	env.startGame(t, room, players)

	for _, p := range players {
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, actionChoice(domain.ActionEndGame)))
	}

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEndGame, outcome.Action)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusOver, stored.Status)
}

func TestDuplicateVoteIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	game, _ := env.startGame(t, room, players)

	voter := players[0]
	first := players[1]
	second := players[2]

	require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, voter.ClientID, accuseChoice(first.ID)))
	require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, voter.ClientID, accuseChoice(second.ID)))

	round, err := env.rounds.GetByNumber(ctx, game.ID, 1)
	require.NoError(t, err)
	votes, err := env.votes.ListByRound(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.NotNil(t, votes[0].TargetPlayerID)
	assert.Equal(t, first.ID, *votes[0].TargetPlayerID)
}

func TestResolveRequiresAllVotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	env.startGame(t, room, players)

	_, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	assert.ErrorIs(t, err, ErrVotesIncomplete)

	require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, players[0].ClientID, actionChoice(domain.ActionNextRound)))

	_, err = env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	assert.ErrorIs(t, err, ErrVotesIncomplete)

	_, err = env.gameSvc.ResolveRound(ctx, room.Code, players[1].ClientID)
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestResolveRound_RetryAfterStatusWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	_, impostor := env.startGame(t, room, players)

	var bystander *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			bystander = p
			break
		}
	}
	for _, p := range players {
		choice := accuseChoice(impostor.ID)
		if p.ID == impostor.ID {
			choice = accuseChoice(bystander.ID)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}

	// A resolve attempt that got as far as the tally status and then died
	// leaves the game in vote_result with the round still unresolved.
	game, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	require.NoError(t, env.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoteResult))

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEliminate, outcome.Action)
	assert.Equal(t, impostor.ID, outcome.EliminatedPlayerID)
	assert.True(t, outcome.EliminatedImpostor)

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusVoteConclusion, stored.Status)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))
}

func TestResolveRound_RetryAfterOutcomeWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	game, impostor := env.startGame(t, room, players)

	var victim *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			victim = p
			break
		}
	}
	for _, p := range players {
		choice := accuseChoice(victim.ID)
		if p.ID == victim.ID {
			choice = accuseChoice(impostor.ID)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}

	// This attempt additionally wrote the outcome before dying.
	round, err := env.rounds.GetByNumber(ctx, game.ID, 1)
	require.NoError(t, err)
	require.NoError(t, env.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoteResult))
	require.NoError(t, env.rounds.SetEliminated(ctx, round.ID, victim.ID))

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEliminate, outcome.Action)
	assert.Equal(t, victim.ID, outcome.EliminatedPlayerID)
	assert.False(t, outcome.EliminatedImpostor)

	// The round keeps its single outcome and the game continues normally.
	round, err = env.rounds.GetByNumber(ctx, game.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, round.EliminatedPlayerID)
	assert.Equal(t, victim.ID, *round.EliminatedPlayerID)
	assert.Nil(t, round.MajorityAction)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusVoting, stored.Status)
	assert.Equal(t, 2, stored.CurrentRoundNumber)

	// A resolve after the conclusion has been consumed is still rejected.
	_, err = env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	assert.ErrorIs(t, err, ErrVotesIncomplete)
}

func TestEliminatedPlayerCannotVote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	_, impostor := env.startGame(t, room, players)

	var victim *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			victim = p
			break
		}
	}

	for _, p := range players {
		choice := accuseChoice(victim.ID)
		if p.ID == victim.ID {
			choice = actionChoice(domain.ActionNextRound)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}

	outcome, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeEliminate, outcome.Action)
	assert.Equal(t, victim.ID, outcome.EliminatedPlayerID)

	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))

	err = env.gameSvc.SubmitVote(ctx, room.Code, victim.ClientID, actionChoice(domain.ActionNextRound))
	assert.ErrorIs(t, err, ErrVoterEliminated)

	// Round 2 needs only the three remaining ballots.
	for _, p := range players {
		if p.ID == victim.ID {
			continue
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, actionChoice(domain.ActionNextRound)))
	}
	outcome, err = env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNextRound, outcome.Action)
}

func TestSubmitVote_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	env.startGame(t, room, players)

	err := env.gameSvc.SubmitVote(ctx, room.Code, players[0].ClientID, VoteChoice{})
	assert.ErrorIs(t, err, ErrInvalidVote)

	action := domain.ActionNextRound
	target := players[1].ID
	err = env.gameSvc.SubmitVote(ctx, room.Code, players[0].ClientID, VoteChoice{TargetPlayerID: &target, Action: &action})
	assert.ErrorIs(t, err, ErrInvalidVote)

	bad := domain.MajorityAction("abstain")
	err = env.gameSvc.SubmitVote(ctx, room.Code, players[0].ClientID, VoteChoice{Action: &bad})
	assert.ErrorIs(t, err, ErrInvalidVote)

	stranger := uuid.New()
	err = env.gameSvc.SubmitVote(ctx, room.Code, players[0].ClientID, accuseChoice(stranger))
	assert.ErrorIs(t, err, ErrInvalidVote)
}

func TestEndGameIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	env.startGame(t, room, players)

	require.NoError(t, env.gameSvc.EndGame(ctx, room.Code, "client-0"))
	require.NoError(t, env.gameSvc.EndGame(ctx, room.Code, "client-0"))

	stored, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameStatusOver, stored.Status)

	err = env.gameSvc.EndGame(ctx, room.Code, players[1].ClientID)
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestPlayAgain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	first, _ := env.startGame(t, room, players)

	_, err := env.gameSvc.PlayAgain(ctx, room.Code, "client-0")
	assert.ErrorIs(t, err, ErrGameNotOver)

	require.NoError(t, env.gameSvc.EndGame(ctx, room.Code, "client-0"))

	second, err := env.gameSvc.PlayAgain(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.GameStatusReveal, second.Status)
	assert.Equal(t, 1, second.CurrentRoundNumber)

	active, err := env.games.GetActive(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	// The first game's rows stay in place for the session summary.
	firstRounds, err := env.rounds.ListByGame(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, firstRounds, 1)

	stats, err := env.statsSvc.SessionStats(ctx, room.Code)
	require.NoError(t, err)
	require.Len(t, stats.Ranking, 3)
	for _, ps := range stats.Ranking {
		assert.Equal(t, 2, ps.GamesPlayed)
	}
}

func TestEndSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 3)
	env.startGame(t, room, players)

	err := env.gameSvc.EndSession(ctx, room.Code, players[1].ClientID)
	assert.ErrorIs(t, err, ErrNotHost)

	require.NoError(t, env.gameSvc.EndSession(ctx, room.Code, "client-0"))
	require.NoError(t, env.gameSvc.EndSession(ctx, room.Code, "client-0"))

	stored, err := env.rooms.GetByCode(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusFinished, stored.Status)

	snap, err := env.roomSvc.Snapshot(ctx, room.Code, "client-0")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSessionEnded, snap.Phase)

	_, _, err = env.roomSvc.JoinRoom(ctx, room.Code, "client-9", "Late")
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestSessionStats_AfterFullGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, players := env.setupRoom(t, 4)
	_, impostor := env.startGame(t, room, players)

	var bystander *domain.Player
	for _, p := range players {
		if p.ID != impostor.ID {
			bystander = p
			break
		}
	}

	for _, p := range players {
		choice := accuseChoice(impostor.ID)
		if p.ID == impostor.ID {
			choice = accuseChoice(bystander.ID)
		}
		require.NoError(t, env.gameSvc.SubmitVote(ctx, room.Code, p.ClientID, choice))
	}
	_, err := env.gameSvc.ResolveRound(ctx, room.Code, "client-0")
	require.NoError(t, err)
	require.NoError(t, env.gameSvc.ProceedFromConclusion(ctx, room.Code, "client-0"))
	require.NoError(t, env.gameSvc.EndSession(ctx, room.Code, "client-0"))

	stats, err := env.statsSvc.SessionStats(ctx, room.Code)
	require.NoError(t, err)
	require.Len(t, stats.Ranking, 4)

	byID := make(map[uuid.UUID]*domain.PlayerStats)
	for _, ps := range stats.Ranking {
		byID[ps.PlayerID] = ps
	}

	for _, p := range players {
		ps := byID[p.ID]
		require.NotNil(t, ps)
		if p.ID == impostor.ID {
			assert.Equal(t, 1, ps.TimesImpostor)
			assert.Equal(t, 0, ps.CorrectVotes)
			assert.Equal(t, 1, ps.TimesEliminated)
			assert.Equal(t, 3, ps.VotesReceived)
		} else {
			assert.Equal(t, 1, ps.CorrectVotes)
			assert.Equal(t, domain.DefaultScoring().CorrectVote, ps.Score)
		}
	}

	awards := make(map[domain.AwardName]domain.Award)
	for _, a := range stats.Awards {
		awards[a.Name] = a
	}
	require.Contains(t, awards, domain.AwardMostAccused)
	assert.Equal(t, impostor.ID, awards[domain.AwardMostAccused].PlayerID)
	require.Contains(t, awards, domain.AwardMostSuspicious)
	assert.Equal(t, impostor.ID, awards[domain.AwardMostSuspicious].PlayerID)
}
