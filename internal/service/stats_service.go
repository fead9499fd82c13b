package service

import (
	"context"
	"log/slog"

	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository"
)

// StatsService fetches a room's full history and hands it to the pure
// aggregator. It has no write path.
type StatsService struct {
	rooms   repository.RoomRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	rounds  repository.RoundRepository
	votes   repository.VoteRepository
	scoring domain.ScoringConfig
	log     *slog.Logger
}

func NewStatsService(
	rooms repository.RoomRepository,
	players repository.PlayerRepository,
	games repository.GameRepository,
	rounds repository.RoundRepository,
	votes repository.VoteRepository,
	scoring domain.ScoringConfig,
	log *slog.Logger,
) *StatsService {
	if scoring == (domain.ScoringConfig{}) {
		scoring = domain.DefaultScoring()
	}
	if log == nil {
		log = slog.Default()
	}
	return &StatsService{
		rooms:   rooms,
		players: players,
		games:   games,
		rounds:  rounds,
		votes:   votes,
		scoring: scoring,
		log:     log,
	}
}

func (s *StatsService) SessionStats(ctx context.Context, code string) (*domain.SessionStats, error) {
	const op = "service.stats.session"

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	players, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	gamePlayers, err := s.games.ListGamePlayersByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.rounds.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("aggregating session stats",
		slog.String("op", op),
		slog.String("room_id", room.ID.String()),
		slog.Int("players", len(players)),
		slog.Int("rounds", len(rounds)),
		slog.Int("votes", len(votes)),
	)
	return domain.AggregateStats(players, gamePlayers, rounds, votes, s.scoring), nil
}
