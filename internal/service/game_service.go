package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository"
	"github.com/parlorgames/impostor-server/lib/logger/sl"
)

var (
	ErrNotHost          = errors.New("only the host may do this")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrWrongPhase       = errors.New("operation not valid in current phase")
	ErrGameNotOver      = errors.New("current game is not over")
	ErrVoterEliminated  = errors.New("eliminated players cannot vote")
	ErrVotesIncomplete  = errors.New("not every active player has voted")
	ErrInvalidVote      = errors.New("vote must name a target player or an action")
)

// GameConfig are the game-rule knobs. MinPlayers is lowered in dev setups to
// make a session testable alone.
type GameConfig struct {
	MinPlayers int
	Words      []string
}

// GameService executes phase transitions for rooms and games. Every operation
// validates the stored state before writing and writes nothing on failure;
// phase-advancing operations additionally require the caller to be the room's
// host, which keeps the multi-client setup single-writer per room.
type GameService struct {
	rooms   repository.RoomRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	rounds  repository.RoundRepository
	votes   repository.VoteRepository
	hub     *Hub
	cfg     GameConfig
	log     *slog.Logger
}

func NewGameService(
	rooms repository.RoomRepository,
	players repository.PlayerRepository,
	games repository.GameRepository,
	rounds repository.RoundRepository,
	votes repository.VoteRepository,
	hub *Hub,
	cfg GameConfig,
	log *slog.Logger,
) *GameService {
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = 3
	}
	if log == nil {
		log = slog.Default()
	}
	return &GameService{
		rooms:   rooms,
		players: players,
		games:   games,
		rounds:  rounds,
		votes:   votes,
		hub:     hub,
		cfg:     cfg,
		log:     log,
	}
}

// StartGame moves a waiting room into play: one player becomes the impostor,
// a secret word is drawn, and round 1 opens in the reveal phase.
func (s *GameService) StartGame(ctx context.Context, code, clientID string) (*domain.Game, error) {
	const op = "service.game.start"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !room.IsHost(clientID) {
		return nil, ErrNotHost
	}
	if room.Status != domain.RoomStatusWaiting {
		return nil, ErrWrongPhase
	}

	players, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(players) < s.cfg.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	game, err := s.createGame(ctx, room, players)
	if err != nil {
		log.Error("failed to create game", sl.Err(err))
		return nil, err
	}

	if err := s.rooms.UpdateStatus(ctx, room.ID, domain.RoomStatusPlaying); err != nil {
		return nil, err
	}

	log.Info("game started",
		slog.String("game_id", game.ID.String()),
		slog.Int("players", len(players)),
	)
	s.broadcast(room.Code, domain.EventGameChanged)
	s.broadcast(room.Code, domain.EventRoomChanged)
	return game, nil
}

// AcknowledgeRole records that the calling player has seen their role. When
// the last game player acknowledges, the game moves to voting. The transition
// re-checks the stored status so duplicate acknowledgements are harmless.
func (s *GameService) AcknowledgeRole(ctx context.Context, code, clientID string) error {
	room, game, player, err := s.roomGamePlayer(ctx, code, clientID)
	if err != nil {
		return err
	}
	if game.Status != domain.GameStatusReveal {
		return ErrWrongPhase
	}

	gamePlayers, err := s.games.ListGamePlayers(ctx, game.ID)
	if err != nil {
		return err
	}

	var own *domain.GamePlayer
	for _, gp := range gamePlayers {
		if gp.PlayerID == player.ID {
			own = gp
			break
		}
	}
	if own == nil {
		return repository.ErrGamePlayerNotFound
	}

	if !own.RoleAcknowledged {
		if err := s.games.AcknowledgeRole(ctx, own.ID); err != nil {
			return err
		}
		own.RoleAcknowledged = true
	}

	allAcked := true
	for _, gp := range gamePlayers {
		if !gp.RoleAcknowledged {
			allAcked = false
			break
		}
	}
	if allAcked {
		if err := s.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoting); err != nil {
			return err
		}
	}

	s.broadcast(room.Code, domain.EventGameChanged)
	return nil
}

// SubmitVote writes one ballot into the current round. A duplicate ballot
// from the same voter is a benign no-op: the stored row is the truth.
func (s *GameService) SubmitVote(ctx context.Context, code, clientID string, choice VoteChoice) error {
	const op = "service.game.vote"
	log := s.log.With(slog.String("op", op))

	if (choice.TargetPlayerID == nil) == (choice.Action == nil) {
		return ErrInvalidVote
	}

	room, game, player, err := s.roomGamePlayer(ctx, code, clientID)
	if err != nil {
		return err
	}
	if game.Status != domain.GameStatusVoting {
		return ErrWrongPhase
	}

	round, err := s.rounds.GetByNumber(ctx, game.ID, game.CurrentRoundNumber)
	if err != nil {
		return err
	}

	rounds, err := s.rounds.ListByGame(ctx, game.ID)
	if err != nil {
		return err
	}
	for _, r := range rounds {
		if r.EliminatedPlayerID != nil && *r.EliminatedPlayerID == player.ID {
			return ErrVoterEliminated
		}
	}

	var vote *domain.Vote
	if choice.TargetPlayerID != nil {
		gamePlayers, err := s.games.ListGamePlayers(ctx, game.ID)
		if err != nil {
			return err
		}
		found := false
		for _, gp := range gamePlayers {
			if gp.PlayerID == *choice.TargetPlayerID {
				found = true
				break
			}
		}
		if !found {
			return ErrInvalidVote
		}
		vote = domain.NewPlayerVote(round.ID, player.ID, *choice.TargetPlayerID)
	} else {
		if *choice.Action != domain.ActionNextRound && *choice.Action != domain.ActionEndGame {
			return ErrInvalidVote
		}
		vote = domain.NewActionVote(round.ID, player.ID, *choice.Action)
	}

	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			log.Debug("duplicate vote ignored",
				slog.String("round_id", round.ID.String()),
				slog.String("voter_id", player.ID.String()),
			)
			return nil
		}
		return err
	}

	s.broadcast(room.Code, domain.EventVotesChanged)
	return nil
}

// ResolveRound closes the current round once every active player has voted:
// the tally becomes visible (vote_result), the outcome is written onto the
// round, and the game settles in vote_conclusion for the host to proceed.
// Safe to re-run: a retry after an interrupted attempt picks up from the
// stored status and round outcome instead of re-resolving.
func (s *GameService) ResolveRound(ctx context.Context, code, clientID string) (*domain.Outcome, error) {
	const op = "service.game.resolve"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !room.IsHost(clientID) {
		return nil, ErrNotHost
	}

	game, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if game.Status != domain.GameStatusVoting && game.Status != domain.GameStatusVoteResult {
		return nil, ErrWrongPhase
	}

	round, err := s.rounds.GetByNumber(ctx, game.ID, game.CurrentRoundNumber)
	if err != nil {
		return nil, err
	}
	gamePlayers, err := s.games.ListGamePlayers(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.rounds.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, err
	}

	active := len(gamePlayers) - countEliminated(rounds)
	if len(votes) == 0 || len(votes) < active {
		return nil, ErrVotesIncomplete
	}

	// Tally first, so every shell can show it before the conclusion lands.
	if game.Status == domain.GameStatusVoting {
		if err := s.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoteResult); err != nil {
			return nil, err
		}
		s.broadcast(room.Code, domain.EventGameChanged)
	}

	var outcome domain.Outcome
	if round.Resolved() {
		// A previous attempt already wrote the outcome; rebuild it from the
		// round instead of resolving again.
		outcome = outcomeFromRound(round, gamePlayers)
	} else {
		outcome = domain.ResolveVotes(votes, gamePlayers)
		switch outcome.Action {
		case domain.OutcomeEliminate:
			if err := s.rounds.SetEliminated(ctx, round.ID, outcome.EliminatedPlayerID); err != nil {
				return nil, err
			}
		case domain.OutcomeNextRound:
			if err := s.rounds.SetMajorityAction(ctx, round.ID, domain.ActionNextRound); err != nil {
				return nil, err
			}
		case domain.OutcomeEndGame:
			if err := s.rounds.SetMajorityAction(ctx, round.ID, domain.ActionEndGame); err != nil {
				return nil, err
			}
		default:
			// Unreachable while the coverage precondition holds.
			return nil, ErrVotesIncomplete
		}
	}

	if err := s.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoteConclusion); err != nil {
		return nil, err
	}

	log.Info("round resolved",
		slog.Int("round", round.RoundNumber),
		slog.String("action", string(outcome.Action)),
	)
	s.broadcast(room.Code, domain.EventRoundChanged)
	s.broadcast(room.Code, domain.EventGameChanged)
	return &outcome, nil
}

// ProceedFromConclusion decides end-or-continue strictly from stored rows, so
// any host, including one that just reconnected, reaches the same decision.
func (s *GameService) ProceedFromConclusion(ctx context.Context, code, clientID string) error {
	const op = "service.game.proceed"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if !room.IsHost(clientID) {
		return ErrNotHost
	}

	game, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		return err
	}
	if game.Status != domain.GameStatusVoteConclusion {
		return ErrWrongPhase
	}

	round, err := s.rounds.GetByNumber(ctx, game.ID, game.CurrentRoundNumber)
	if err != nil {
		return err
	}
	gamePlayers, err := s.games.ListGamePlayers(ctx, game.ID)
	if err != nil {
		return err
	}
	rounds, err := s.rounds.ListByGame(ctx, game.ID)
	if err != nil {
		return err
	}

	if round.EliminatedPlayerID != nil && isImpostor(gamePlayers, *round.EliminatedPlayerID) {
		log.Info("impostor caught", slog.Int("round", round.RoundNumber))
		return s.finishGame(ctx, room, game)
	}

	remaining := len(gamePlayers) - countEliminated(rounds)
	if remaining <= 2 {
		log.Info("too few players remain, impostor wins", slog.Int("remaining", remaining))
		return s.finishGame(ctx, room, game)
	}

	if round.MajorityAction != nil && *round.MajorityAction == domain.ActionEndGame {
		log.Info("majority voted to end the game")
		return s.finishGame(ctx, room, game)
	}

	next := game.CurrentRoundNumber + 1
	if _, err := s.rounds.GetByNumber(ctx, game.ID, next); errors.Is(err, repository.ErrRoundNotFound) {
		if err := s.rounds.Create(ctx, domain.NewRound(game.ID, next)); err != nil && !errors.Is(err, repository.ErrRoundExists) {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := s.games.UpdateRound(ctx, game.ID, next); err != nil {
		return err
	}
	if err := s.games.UpdateStatus(ctx, game.ID, domain.GameStatusVoting); err != nil {
		return err
	}
	if err := s.rooms.IncrementRoundCounter(ctx, room.ID); err != nil {
		return err
	}

	log.Info("next round opened", slog.Int("round", next))
	s.broadcast(room.Code, domain.EventRoundChanged)
	s.broadcast(room.Code, domain.EventGameChanged)
	return nil
}

// EndGame forces the active game over. Idempotent: a finished game stays
// finished with no further writes.
func (s *GameService) EndGame(ctx context.Context, code, clientID string) error {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if !room.IsHost(clientID) {
		return ErrNotHost
	}

	game, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		return err
	}
	if game.Status == domain.GameStatusOver {
		return nil
	}
	return s.finishGame(ctx, room, game)
}

// PlayAgain starts a fresh game in the same room: new word, new impostor
// drawn from the current roster, round 1. History of previous games stays in
// place for session statistics.
func (s *GameService) PlayAgain(ctx context.Context, code, clientID string) (*domain.Game, error) {
	const op = "service.game.playAgain"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !room.IsHost(clientID) {
		return nil, ErrNotHost
	}
	if room.Status != domain.RoomStatusPlaying {
		return nil, ErrWrongPhase
	}

	previous, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if previous.Status != domain.GameStatusOver {
		return nil, ErrGameNotOver
	}

	players, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(players) < s.cfg.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	game, err := s.createGame(ctx, room, players)
	if err != nil {
		log.Error("failed to create game", sl.Err(err))
		return nil, err
	}

	log.Info("rematch started", slog.String("game_id", game.ID.String()))
	s.broadcast(room.Code, domain.EventGameChanged)
	return game, nil
}

// EndSession closes the room for good. Terminal and idempotent; statistics
// are computed over the full history from here on.
func (s *GameService) EndSession(ctx context.Context, code, clientID string) error {
	const op = "service.game.endSession"

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if !room.IsHost(clientID) {
		return ErrNotHost
	}
	if room.Status == domain.RoomStatusFinished {
		return nil
	}

	if err := s.rooms.UpdateStatus(ctx, room.ID, domain.RoomStatusFinished); err != nil {
		return err
	}

	s.log.Info("session ended",
		slog.String("op", op),
		slog.String("room_id", room.ID.String()),
	)
	s.broadcast(room.Code, domain.EventRoomChanged)
	return nil
}

func (s *GameService) createGame(ctx context.Context, room *domain.Room, players []*domain.Player) (*domain.Game, error) {
	word := domain.RandomWord(s.cfg.Words)
	game := domain.NewGame(room.ID, word)
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}

	impostor := rand.Intn(len(players))
	gamePlayers := make([]*domain.GamePlayer, 0, len(players))
	for i, p := range players {
		gp := domain.NewGamePlayer(game.ID, p.ID)
		gp.IsImpostor = i == impostor
		gamePlayers = append(gamePlayers, gp)
	}
	if err := s.games.CreateGamePlayers(ctx, gamePlayers); err != nil {
		return nil, err
	}

	if err := s.rounds.Create(ctx, domain.NewRound(game.ID, 1)); err != nil {
		return nil, err
	}
	if err := s.rooms.SetCurrentWord(ctx, room.ID, word); err != nil {
		return nil, err
	}
	if err := s.rooms.IncrementRoundCounter(ctx, room.ID); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) finishGame(ctx context.Context, room *domain.Room, game *domain.Game) error {
	if err := s.games.UpdateStatus(ctx, game.ID, domain.GameStatusOver); err != nil {
		return err
	}
	s.broadcast(room.Code, domain.EventGameChanged)
	return nil
}

func (s *GameService) roomGamePlayer(ctx context.Context, code, clientID string) (*domain.Room, *domain.Game, *domain.Player, error) {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, nil, err
	}
	game, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	player, err := s.players.GetByClientID(ctx, room.ID, clientID)
	if err != nil {
		return nil, nil, nil, err
	}
	return room, game, player, nil
}

func (s *GameService) broadcast(code string, eventType domain.EventType) {
	s.hub.Broadcast(code, domain.RoomEvent{Type: eventType, Room: code})
}

// outcomeFromRound rebuilds the outcome a previous resolve attempt already
// wrote onto the round.
func outcomeFromRound(round *domain.Round, gamePlayers []*domain.GamePlayer) domain.Outcome {
	if round.EliminatedPlayerID != nil {
		id := *round.EliminatedPlayerID
		return domain.Outcome{
			Action:             domain.OutcomeEliminate,
			EliminatedPlayerID: id,
			EliminatedImpostor: isImpostor(gamePlayers, id),
		}
	}
	if round.MajorityAction != nil && *round.MajorityAction == domain.ActionEndGame {
		return domain.Outcome{Action: domain.OutcomeEndGame}
	}
	return domain.Outcome{Action: domain.OutcomeNextRound}
}

func countEliminated(rounds []*domain.Round) int {
	seen := make(map[uuid.UUID]bool)
	for _, r := range rounds {
		if r.EliminatedPlayerID != nil {
			seen[*r.EliminatedPlayerID] = true
		}
	}
	return len(seen)
}

func isImpostor(gamePlayers []*domain.GamePlayer, playerID uuid.UUID) bool {
	for _, gp := range gamePlayers {
		if gp.PlayerID == playerID {
			return gp.IsImpostor
		}
	}
	return false
}
