package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository/model"
	"gorm.io/gorm"
)

type PostgresRoomRepository struct {
	db *gorm.DB
}

func NewPostgresRoomRepository(db *gorm.DB) *PostgresRoomRepository {
	return &PostgresRoomRepository{db: db}
}

func (r *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil {
		return errors.New("room is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelRoom(room)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRoomCodeExists
		}
		return err
	}
	return nil
}

func (r *PostgresRoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room model.Room
	err := r.db.WithContext(ctx).First(&room, "code = ?", domain.NormalizeCode(code)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return toDomainRoom(&room), nil
}

func (r *PostgresRoomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status domain.RoomStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) SetCurrentWord(ctx context.Context, roomID uuid.UUID, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("current_word", word)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) IncrementRoundCounter(ctx context.Context, roomID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("round_counter", gorm.Expr("round_counter + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Deletion order honors the foreign keys: votes hang off rounds, rounds
	// and game players off games, everything else off the room.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gameIDs := tx.Model(&model.Game{}).Select("id").Where("room_id = ?", roomID)
		roundIDs := tx.Model(&model.Round{}).Select("id").Where("game_id IN (?)", gameIDs)

		if err := tx.Where("round_id IN (?)", roundIDs).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN (?)", gameIDs).Delete(&model.Round{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN (?)", gameIDs).Delete(&model.GamePlayer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Game{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Player{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Room{}, "id = ?", roomID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}

func (r *PostgresRoomRepository) SaveChatMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg == nil {
		return errors.New("chat message is nil")
	}

	return r.db.WithContext(ctx).Create(&model.ChatMessage{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		PlayerID:  msg.PlayerID,
		Name:      msg.Name,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UTC(),
	}).Error
}

func (r *PostgresRoomRepository) ListChatMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ChatMessage, 0, len(msgs))
	for i := range msgs {
		m := msgs[i]
		result = append(result, &domain.ChatMessage{
			ID:        m.ID,
			RoomID:    m.RoomID,
			PlayerID:  m.PlayerID,
			Name:      m.Name,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC(),
		})
	}
	return result, nil
}

type PostgresPlayerRepository struct {
	db *gorm.DB
}

func NewPostgresPlayerRepository(db *gorm.DB) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

func (r *PostgresPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if player == nil {
		return errors.New("player is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelPlayer(player)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPlayerExists
		}
		return err
	}
	return nil
}

func (r *PostgresPlayerRepository) GetByClientID(ctx context.Context, roomID uuid.UUID, clientID string) (*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var player model.Player
	err := r.db.WithContext(ctx).
		First(&player, "room_id = ? AND client_id = ?", roomID, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return toDomainPlayer(&player), nil
}

func (r *PostgresPlayerRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var players []model.Player
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Player, 0, len(players))
	for i := range players {
		result = append(result, toDomainPlayer(&players[i]))
	}
	return result, nil
}

func (r *PostgresPlayerRepository) Delete(ctx context.Context, playerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Player{}, "id = ?", playerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func toModelRoom(room *domain.Room) *model.Room {
	return &model.Room{
		ID:           room.ID,
		Code:         room.Code,
		HostID:       room.HostID,
		Status:       string(room.Status),
		CurrentWord:  room.CurrentWord,
		RoundCounter: room.RoundCounter,
		CreatedAt:    room.CreatedAt.UTC(),
	}
}

func toDomainRoom(room *model.Room) *domain.Room {
	return &domain.Room{
		ID:           room.ID,
		Code:         room.Code,
		HostID:       room.HostID,
		Status:       domain.RoomStatus(room.Status),
		CurrentWord:  room.CurrentWord,
		RoundCounter: room.RoundCounter,
		CreatedAt:    room.CreatedAt.UTC(),
	}
}

func toModelPlayer(player *domain.Player) *model.Player {
	return &model.Player{
		ID:       player.ID,
		RoomID:   player.RoomID,
		ClientID: player.ClientID,
		Name:     player.Name,
		JoinedAt: player.JoinedAt.UTC(),
	}
}

func toDomainPlayer(player *model.Player) *domain.Player {
	return &domain.Player{
		ID:       player.ID,
		RoomID:   player.RoomID,
		ClientID: player.ClientID,
		Name:     player.Name,
		JoinedAt: player.JoinedAt.UTC(),
	}
}
