package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
)

// MemoryStore keeps the whole relation set in one struct so the repositories
// that need cross-table scans (history by room) can share it. It backs tests
// and DSN-less local runs.
type MemoryStore struct {
	mu          sync.RWMutex
	rooms       map[uuid.UUID]*domain.Room
	players     []*domain.Player
	games       []*domain.Game
	gamePlayers []*domain.GamePlayer
	rounds      []*domain.Round
	votes       []*domain.Vote
	chat        []*domain.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[uuid.UUID]*domain.Room)}
}

type MemoryRoomRepository struct{ store *MemoryStore }

func NewMemoryRoomRepository(store *MemoryStore) *MemoryRoomRepository {
	return &MemoryRoomRepository{store: store}
}

func (r *MemoryRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.Code == room.Code {
			return ErrRoomCodeExists
		}
	}

	c := *room
	s.rooms[room.ID] = &c
	return nil
}

func (r *MemoryRoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	code = domain.NormalizeCode(code)
	for _, room := range s.rooms {
		if room.Code == code {
			c := *room
			return &c, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (r *MemoryRoomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status domain.RoomStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.Status = status
	return nil
}

func (r *MemoryRoomRepository) SetCurrentWord(ctx context.Context, roomID uuid.UUID, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.CurrentWord = word
	return nil
}

func (r *MemoryRoomRepository) IncrementRoundCounter(ctx context.Context, roomID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.RoundCounter++
	return nil
}

func (r *MemoryRoomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}

	gameIDs := make(map[uuid.UUID]bool)
	for _, g := range s.games {
		if g.RoomID == roomID {
			gameIDs[g.ID] = true
		}
	}
	roundIDs := make(map[uuid.UUID]bool)
	for _, rd := range s.rounds {
		if gameIDs[rd.GameID] {
			roundIDs[rd.ID] = true
		}
	}

	votes := s.votes[:0]
	for _, v := range s.votes {
		if !roundIDs[v.RoundID] {
			votes = append(votes, v)
		}
	}
	s.votes = votes

	rounds := s.rounds[:0]
	for _, rd := range s.rounds {
		if !gameIDs[rd.GameID] {
			rounds = append(rounds, rd)
		}
	}
	s.rounds = rounds

	gamePlayers := s.gamePlayers[:0]
	for _, gp := range s.gamePlayers {
		if !gameIDs[gp.GameID] {
			gamePlayers = append(gamePlayers, gp)
		}
	}
	s.gamePlayers = gamePlayers

	games := s.games[:0]
	for _, g := range s.games {
		if g.RoomID != roomID {
			games = append(games, g)
		}
	}
	s.games = games

	chat := s.chat[:0]
	for _, m := range s.chat {
		if m.RoomID != roomID {
			chat = append(chat, m)
		}
	}
	s.chat = chat

	players := s.players[:0]
	for _, p := range s.players {
		if p.RoomID != roomID {
			players = append(players, p)
		}
	}
	s.players = players

	delete(s.rooms, roomID)
	return nil
}

func (r *MemoryRoomRepository) SaveChatMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *msg
	s.chat = append(s.chat, &c)
	return nil
}

func (r *MemoryRoomRepository) ListChatMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ChatMessage, 0)
	for _, m := range s.chat {
		if m.RoomID == roomID {
			c := *m
			result = append(result, &c)
		}
	}
	return result, nil
}

type MemoryPlayerRepository struct{ store *MemoryStore }

func NewMemoryPlayerRepository(store *MemoryStore) *MemoryPlayerRepository {
	return &MemoryPlayerRepository{store: store}
}

func (r *MemoryPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if p.RoomID == player.RoomID && p.ClientID == player.ClientID {
			return ErrPlayerExists
		}
	}

	c := *player
	s.players = append(s.players, &c)
	return nil
}

func (r *MemoryPlayerRepository) GetByClientID(ctx context.Context, roomID uuid.UUID, clientID string) (*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		if p.RoomID == roomID && p.ClientID == clientID {
			c := *p
			return &c, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (r *MemoryPlayerRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Players are appended on join, so insertion order is join order.
	result := make([]*domain.Player, 0)
	for _, p := range s.players {
		if p.RoomID == roomID {
			c := *p
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryPlayerRepository) Delete(ctx context.Context, playerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.players {
		if p.ID == playerID {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

type MemoryGameRepository struct{ store *MemoryStore }

func NewMemoryGameRepository(store *MemoryStore) *MemoryGameRepository {
	return &MemoryGameRepository{store: store}
}

func (r *MemoryGameRepository) Create(ctx context.Context, game *domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *game
	s.games = append(s.games, &c)
	return nil
}

func (r *MemoryGameRepository) GetActive(ctx context.Context, roomID uuid.UUID) (*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.games) - 1; i >= 0; i-- {
		if s.games[i].RoomID == roomID {
			c := *s.games[i]
			return &c, nil
		}
	}
	return nil, ErrGameNotFound
}

func (r *MemoryGameRepository) UpdateStatus(ctx context.Context, gameID uuid.UUID, status domain.GameStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games {
		if g.ID == gameID {
			g.Status = status
			return nil
		}
	}
	return ErrGameNotFound
}

func (r *MemoryGameRepository) UpdateRound(ctx context.Context, gameID uuid.UUID, roundNumber int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games {
		if g.ID == gameID {
			g.CurrentRoundNumber = roundNumber
			return nil
		}
	}
	return ErrGameNotFound
}

func (r *MemoryGameRepository) CreateGamePlayers(ctx context.Context, gamePlayers []*domain.GamePlayer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, gp := range gamePlayers {
		c := *gp
		s.gamePlayers = append(s.gamePlayers, &c)
	}
	return nil
}

func (r *MemoryGameRepository) ListGamePlayers(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.GamePlayer, 0)
	for _, gp := range s.gamePlayers {
		if gp.GameID == gameID {
			c := *gp
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryGameRepository) ListGamePlayersByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.GamePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	gameIDs := make(map[uuid.UUID]bool)
	for _, g := range s.games {
		if g.RoomID == roomID {
			gameIDs[g.ID] = true
		}
	}

	result := make([]*domain.GamePlayer, 0)
	for _, gp := range s.gamePlayers {
		if gameIDs[gp.GameID] {
			c := *gp
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryGameRepository) AcknowledgeRole(ctx context.Context, gamePlayerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, gp := range s.gamePlayers {
		if gp.ID == gamePlayerID {
			gp.RoleAcknowledged = true
			return nil
		}
	}
	return ErrGamePlayerNotFound
}

type MemoryRoundRepository struct{ store *MemoryStore }

func NewMemoryRoundRepository(store *MemoryStore) *MemoryRoundRepository {
	return &MemoryRoundRepository{store: store}
}

func (r *MemoryRoundRepository) Create(ctx context.Context, round *domain.Round) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rd := range s.rounds {
		if rd.GameID == round.GameID && rd.RoundNumber == round.RoundNumber {
			return ErrRoundExists
		}
	}

	c := cloneRound(round)
	s.rounds = append(s.rounds, c)
	return nil
}

func (r *MemoryRoundRepository) GetByNumber(ctx context.Context, gameID uuid.UUID, roundNumber int) (*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rd := range s.rounds {
		if rd.GameID == gameID && rd.RoundNumber == roundNumber {
			return cloneRound(rd), nil
		}
	}
	return nil, ErrRoundNotFound
}

func (r *MemoryRoundRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Round, 0)
	for _, rd := range s.rounds {
		if rd.GameID == gameID {
			result = append(result, cloneRound(rd))
		}
	}
	return result, nil
}

func (r *MemoryRoundRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	gameIDs := make(map[uuid.UUID]bool)
	for _, g := range s.games {
		if g.RoomID == roomID {
			gameIDs[g.ID] = true
		}
	}

	result := make([]*domain.Round, 0)
	for _, rd := range s.rounds {
		if gameIDs[rd.GameID] {
			result = append(result, cloneRound(rd))
		}
	}
	return result, nil
}

func (r *MemoryRoundRepository) SetEliminated(ctx context.Context, roundID, playerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rd := range s.rounds {
		if rd.ID == roundID {
			id := playerID
			rd.EliminatedPlayerID = &id
			return nil
		}
	}
	return ErrRoundNotFound
}

func (r *MemoryRoundRepository) SetMajorityAction(ctx context.Context, roundID uuid.UUID, action domain.MajorityAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rd := range s.rounds {
		if rd.ID == roundID {
			a := action
			rd.MajorityAction = &a
			return nil
		}
	}
	return ErrRoundNotFound
}

type MemoryVoteRepository struct{ store *MemoryStore }

func NewMemoryVoteRepository(store *MemoryStore) *MemoryVoteRepository {
	return &MemoryVoteRepository{store: store}
}

func (r *MemoryVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.votes {
		if v.RoundID == vote.RoundID && v.VoterID == vote.VoterID {
			return ErrVoteExists
		}
	}

	s.votes = append(s.votes, cloneVote(vote))
	return nil
}

func (r *MemoryVoteRepository) ListByRound(ctx context.Context, roundID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Vote, 0)
	for _, v := range s.votes {
		if v.RoundID == roundID {
			result = append(result, cloneVote(v))
		}
	}
	return result, nil
}

func (r *MemoryVoteRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	gameIDs := make(map[uuid.UUID]bool)
	for _, g := range s.games {
		if g.RoomID == roomID {
			gameIDs[g.ID] = true
		}
	}
	roundIDs := make(map[uuid.UUID]bool)
	for _, rd := range s.rounds {
		if gameIDs[rd.GameID] {
			roundIDs[rd.ID] = true
		}
	}

	result := make([]*domain.Vote, 0)
	for _, v := range s.votes {
		if roundIDs[v.RoundID] {
			result = append(result, cloneVote(v))
		}
	}
	return result, nil
}

func cloneRound(round *domain.Round) *domain.Round {
	c := *round
	if round.EliminatedPlayerID != nil {
		id := *round.EliminatedPlayerID
		c.EliminatedPlayerID = &id
	}
	if round.MajorityAction != nil {
		a := *round.MajorityAction
		c.MajorityAction = &a
	}
	return &c
}

func cloneVote(vote *domain.Vote) *domain.Vote {
	c := *vote
	if vote.TargetPlayerID != nil {
		id := *vote.TargetPlayerID
		c.TargetPlayerID = &id
	}
	return &c
}
