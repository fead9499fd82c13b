package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository"
	"github.com/parlorgames/impostor-server/lib/logger/sl"
)

var (
	ErrSessionEnded   = errors.New("session has ended")
	ErrGameInProgress = errors.New("game already in progress")
)

const maxChatMessageLength = 2000

type RoomService struct {
	rooms   repository.RoomRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	rounds  repository.RoundRepository
	votes   repository.VoteRepository
	hub     *Hub
	log     *slog.Logger
}

func NewRoomService(
	rooms repository.RoomRepository,
	players repository.PlayerRepository,
	games repository.GameRepository,
	rounds repository.RoundRepository,
	votes repository.VoteRepository,
	hub *Hub,
	log *slog.Logger,
) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms:   rooms,
		players: players,
		games:   games,
		rounds:  rounds,
		votes:   votes,
		hub:     hub,
		log:     log,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, hostClientID, hostName string) (*domain.Room, *domain.Player, error) {
	const op = "service.room.create"
	log := s.log.With(slog.String("op", op))

	if hostClientID == "" {
		return nil, nil, errors.New("client id is required")
	}
	if strings.TrimSpace(hostName) == "" {
		return nil, nil, errors.New("name is required")
	}

	var room *domain.Room
	for {
		room = domain.NewRoom(hostClientID)
		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, repository.ErrRoomCodeExists) {
				continue
			}
			return nil, nil, err
		}
		break
	}

	host := domain.NewPlayer(room.ID, hostClientID, strings.TrimSpace(hostName))
	if err := s.players.Create(ctx, host); err != nil {
		log.Error("failed to create host player", sl.Err(err))
		return nil, nil, err
	}

	log.Info("room created",
		slog.String("room_id", room.ID.String()),
		slog.String("code", room.Code),
	)
	return room, host, nil
}

func (s *RoomService) GetRoom(ctx context.Context, code string) (*domain.Room, []*domain.Player, error) {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, err
	}
	return room, players, nil
}

// JoinRoom adds a player to a waiting room. A client id that already belongs
// to the room gets its existing player back regardless of room status, which
// is what makes reconnects work.
func (s *RoomService) JoinRoom(ctx context.Context, code, clientID, name string) (*domain.Room, *domain.Player, error) {
	const op = "service.room.join"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	if clientID == "" {
		return nil, nil, errors.New("client id is required")
	}

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	if existing, err := s.players.GetByClientID(ctx, room.ID, clientID); err == nil {
		return room, existing, nil
	} else if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, nil, err
	}

	switch room.Status {
	case domain.RoomStatusFinished:
		return nil, nil, ErrSessionEnded
	case domain.RoomStatusPlaying:
		return nil, nil, ErrGameInProgress
	}

	if strings.TrimSpace(name) == "" {
		return nil, nil, errors.New("name is required")
	}

	player := domain.NewPlayer(room.ID, clientID, strings.TrimSpace(name))
	if err := s.players.Create(ctx, player); err != nil {
		if errors.Is(err, repository.ErrPlayerExists) {
			// Lost a race against our own duplicate join; the stored row wins.
			return s.rejoin(ctx, room, clientID)
		}
		log.Error("failed to create player", sl.Err(err))
		return nil, nil, err
	}

	log.Info("player joined", slog.String("player_id", player.ID.String()))
	s.hub.Broadcast(room.Code, domain.RoomEvent{Type: domain.EventPlayersChanged, Room: room.Code})
	return room, player, nil
}

func (s *RoomService) rejoin(ctx context.Context, room *domain.Room, clientID string) (*domain.Room, *domain.Player, error) {
	player, err := s.players.GetByClientID(ctx, room.ID, clientID)
	if err != nil {
		return nil, nil, err
	}
	return room, player, nil
}

// LeaveRoom removes a player. When the last player leaves the room is deleted
// along with everything it owns.
func (s *RoomService) LeaveRoom(ctx context.Context, code, clientID string) error {
	const op = "service.room.leave"
	log := s.log.With(slog.String("op", op), slog.String("code", domain.NormalizeCode(code)))

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	player, err := s.players.GetByClientID(ctx, room.ID, clientID)
	if err != nil {
		return err
	}

	if err := s.players.Delete(ctx, player.ID); err != nil {
		return err
	}

	remaining, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		log.Info("last player left, deleting room", slog.String("room_id", room.ID.String()))
		if err := s.rooms.Delete(ctx, room.ID); err != nil && !errors.Is(err, repository.ErrRoomNotFound) {
			return err
		}
		return nil
	}

	s.hub.Broadcast(room.Code, domain.RoomEvent{Type: domain.EventPlayersChanged, Room: room.Code})
	return nil
}

// Snapshot assembles the caller's full view of the room from current stored
// state. Phase is derived here, never read from anywhere.
func (s *RoomService) Snapshot(ctx context.Context, code, clientID string) (*Snapshot, error) {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Room: room, Players: players}

	game, err := s.games.GetActive(ctx, room.ID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			snap.Phase = domain.DerivePhase(room, nil, nil, nil, false)
			return snap, nil
		}
		return nil, err
	}
	snap.Game = game

	gamePlayers, err := s.games.ListGamePlayers(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	snap.GamePlayers = gamePlayers

	if clientID != "" {
		for _, p := range players {
			if p.ClientID != clientID {
				continue
			}
			for _, gp := range gamePlayers {
				if gp.PlayerID == p.ID {
					snap.You = gp
				}
			}
		}
	}

	round, err := s.rounds.GetByNumber(ctx, game.ID, game.CurrentRoundNumber)
	if err != nil && !errors.Is(err, repository.ErrRoundNotFound) {
		return nil, err
	}
	if round != nil {
		snap.CurrentRound = round
		votes, err := s.votes.ListByRound(ctx, round.ID)
		if err != nil {
			return nil, err
		}
		snap.Votes = votes
	}

	if game.Status == domain.GameStatusOver {
		rounds, err := s.rounds.ListByGame(ctx, game.ID)
		if err != nil {
			return nil, err
		}
		won := domain.ImpostorWon(gamePlayers, rounds)
		snap.ImpostorWon = &won
	}

	clientAcked := snap.You != nil && snap.You.RoleAcknowledged
	snap.Phase = domain.DerivePhase(room, game, snap.CurrentRound, gamePlayers, clientAcked)
	return snap, nil
}

func (s *RoomService) PostChatMessage(ctx context.Context, code, clientID, content string) (*domain.ChatMessage, error) {
	const op = "service.room.chat"
	log := s.log.With(slog.String("op", op))

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("chat message cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxChatMessageLength {
		return nil, errors.New("chat message is too long")
	}

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	player, err := s.players.GetByClientID(ctx, room.ID, clientID)
	if err != nil {
		return nil, err
	}

	msg := domain.NewChatMessage(room.ID, player, content)
	if err := s.rooms.SaveChatMessage(ctx, msg); err != nil {
		log.Error("failed to save chat message", sl.Err(err))
		return nil, err
	}

	s.hub.Broadcast(room.Code, domain.RoomEvent{
		Type: domain.EventChatMessage,
		Room: room.Code,
		Payload: map[string]any{
			"id":     msg.ID.String(),
			"sender": msg.Name,
		},
	})
	return msg, nil
}

func (s *RoomService) ListChat(ctx context.Context, code string) ([]*domain.ChatMessage, error) {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.rooms.ListChatMessages(ctx, room.ID)
}
