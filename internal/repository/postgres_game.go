package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository/model"
	"gorm.io/gorm"
)

type PostgresGameRepository struct {
	db *gorm.DB
}

func NewPostgresGameRepository(db *gorm.DB) *PostgresGameRepository {
	return &PostgresGameRepository{db: db}
}

func (r *PostgresGameRepository) Create(ctx context.Context, game *domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if game == nil {
		return errors.New("game is nil")
	}

	return r.db.WithContext(ctx).Create(toModelGame(game)).Error
}

func (r *PostgresGameRepository) GetActive(ctx context.Context, roomID uuid.UUID) (*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var game model.Game
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	return toDomainGame(&game), nil
}

func (r *PostgresGameRepository) UpdateStatus(ctx context.Context, gameID uuid.UUID, status domain.GameStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ?", gameID).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (r *PostgresGameRepository) UpdateRound(ctx context.Context, gameID uuid.UUID, roundNumber int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ?", gameID).
		Update("current_round_number", roundNumber)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (r *PostgresGameRepository) CreateGamePlayers(ctx context.Context, gamePlayers []*domain.GamePlayer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(gamePlayers) == 0 {
		return nil
	}

	rows := make([]model.GamePlayer, 0, len(gamePlayers))
	for _, gp := range gamePlayers {
		rows = append(rows, *toModelGamePlayer(gp))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresGameRepository) ListGamePlayers(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.GamePlayer
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GamePlayer, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainGamePlayer(&rows[i]))
	}
	return result, nil
}

func (r *PostgresGameRepository) ListGamePlayersByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.GamePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.GamePlayer
	err := r.db.WithContext(ctx).
		Joins("JOIN games ON games.id = game_players.game_id").
		Where("games.room_id = ?", roomID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GamePlayer, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainGamePlayer(&rows[i]))
	}
	return result, nil
}

func (r *PostgresGameRepository) AcknowledgeRole(ctx context.Context, gamePlayerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.GamePlayer{}).
		Where("id = ?", gamePlayerID).
		Update("role_acknowledged", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGamePlayerNotFound
	}
	return nil
}

type PostgresRoundRepository struct {
	db *gorm.DB
}

func NewPostgresRoundRepository(db *gorm.DB) *PostgresRoundRepository {
	return &PostgresRoundRepository{db: db}
}

func (r *PostgresRoundRepository) Create(ctx context.Context, round *domain.Round) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if round == nil {
		return errors.New("round is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelRound(round)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRoundExists
		}
		return err
	}
	return nil
}

func (r *PostgresRoundRepository) GetByNumber(ctx context.Context, gameID uuid.UUID, roundNumber int) (*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var round model.Round
	err := r.db.WithContext(ctx).
		First(&round, "game_id = ? AND round_number = ?", gameID, roundNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	return toDomainRound(&round), nil
}

func (r *PostgresRoundRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rounds []model.Round
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("round_number ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Round, 0, len(rounds))
	for i := range rounds {
		result = append(result, toDomainRound(&rounds[i]))
	}
	return result, nil
}

func (r *PostgresRoundRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rounds []model.Round
	err := r.db.WithContext(ctx).
		Joins("JOIN games ON games.id = rounds.game_id").
		Where("games.room_id = ?", roomID).
		Order("rounds.round_number ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Round, 0, len(rounds))
	for i := range rounds {
		result = append(result, toDomainRound(&rounds[i]))
	}
	return result, nil
}

func (r *PostgresRoundRepository) SetEliminated(ctx context.Context, roundID, playerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("id = ?", roundID).
		Update("eliminated_player_id", playerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoundNotFound
	}
	return nil
}

func (r *PostgresRoundRepository) SetMajorityAction(ctx context.Context, roundID uuid.UUID, action domain.MajorityAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("id = ?", roundID).
		Update("majority_action", string(action))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoundNotFound
	}
	return nil
}

type PostgresVoteRepository struct {
	db *gorm.DB
}

func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

func (r *PostgresVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if vote == nil {
		return errors.New("vote is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelVote(vote)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrVoteExists
		}
		return err
	}
	return nil
}

func (r *PostgresVoteRepository) ListByRound(ctx context.Context, roundID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Vote, 0, len(votes))
	for i := range votes {
		result = append(result, toDomainVote(&votes[i]))
	}
	return result, nil
}

func (r *PostgresVoteRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Joins("JOIN rounds ON rounds.id = votes.round_id").
		Joins("JOIN games ON games.id = rounds.game_id").
		Where("games.room_id = ?", roomID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Vote, 0, len(votes))
	for i := range votes {
		result = append(result, toDomainVote(&votes[i]))
	}
	return result, nil
}

func toModelGame(game *domain.Game) *model.Game {
	return &model.Game{
		ID:                 game.ID,
		RoomID:             game.RoomID,
		Word:               game.Word,
		Status:             string(game.Status),
		CurrentRoundNumber: game.CurrentRoundNumber,
		CreatedAt:          game.CreatedAt.UTC(),
	}
}

func toDomainGame(game *model.Game) *domain.Game {
	return &domain.Game{
		ID:                 game.ID,
		RoomID:             game.RoomID,
		Word:               game.Word,
		Status:             domain.GameStatus(game.Status),
		CurrentRoundNumber: game.CurrentRoundNumber,
		CreatedAt:          game.CreatedAt.UTC(),
	}
}

func toModelGamePlayer(gp *domain.GamePlayer) *model.GamePlayer {
	return &model.GamePlayer{
		ID:               gp.ID,
		GameID:           gp.GameID,
		PlayerID:         gp.PlayerID,
		IsImpostor:       gp.IsImpostor,
		RoleAcknowledged: gp.RoleAcknowledged,
	}
}

func toDomainGamePlayer(gp *model.GamePlayer) *domain.GamePlayer {
	return &domain.GamePlayer{
		ID:               gp.ID,
		GameID:           gp.GameID,
		PlayerID:         gp.PlayerID,
		IsImpostor:       gp.IsImpostor,
		RoleAcknowledged: gp.RoleAcknowledged,
	}
}

func toModelRound(round *domain.Round) *model.Round {
	var action *string
	if round.MajorityAction != nil {
		s := string(*round.MajorityAction)
		action = &s
	}
	return &model.Round{
		ID:                 round.ID,
		GameID:             round.GameID,
		RoundNumber:        round.RoundNumber,
		EliminatedPlayerID: round.EliminatedPlayerID,
		MajorityAction:     action,
	}
}

func toDomainRound(round *model.Round) *domain.Round {
	var action *domain.MajorityAction
	if round.MajorityAction != nil {
		a := domain.MajorityAction(*round.MajorityAction)
		action = &a
	}
	return &domain.Round{
		ID:                 round.ID,
		GameID:             round.GameID,
		RoundNumber:        round.RoundNumber,
		EliminatedPlayerID: round.EliminatedPlayerID,
		MajorityAction:     action,
	}
}

func toModelVote(vote *domain.Vote) *model.Vote {
	return &model.Vote{
		ID:             vote.ID,
		RoundID:        vote.RoundID,
		VoterID:        vote.VoterID,
		TargetPlayerID: vote.TargetPlayerID,
		IsActionVote:   vote.IsActionVote,
		ActionVote:     string(vote.ActionVote),
		CreatedAt:      vote.CreatedAt.UTC(),
	}
}

func toDomainVote(vote *model.Vote) *domain.Vote {
	return &domain.Vote{
		ID:             vote.ID,
		RoundID:        vote.RoundID,
		VoterID:        vote.VoterID,
		TargetPlayerID: vote.TargetPlayerID,
		IsActionVote:   vote.IsActionVote,
		ActionVote:     domain.MajorityAction(vote.ActionVote),
		CreatedAt:      vote.CreatedAt.UTC(),
	}
}
