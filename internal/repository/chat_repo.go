package repository

import (
	"context"
	"errors"

	"rentdesk/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) WithTx(tx *gorm.DB) *ChatRepository {
	return &ChatRepository{db: tx}
}

// FindRoom returns the request's room for the pair, matching the participants
// in either order. Returns nil when absent.
func (r *ChatRepository) FindRoom(ctx context.Context, maintenanceID, a, b string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.WithContext(ctx).
		Where("maintenance_id = ?", maintenanceID).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		Order("created_at ASC").First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms returns the request's rooms. A non-empty participant keeps only
// the rooms that user is part of.
func (r *ChatRepository) ListRooms(ctx context.Context, maintenanceID, participant string) ([]models.ChatRoom, error) {
	q := r.db.WithContext(ctx).Where("maintenance_id = ?", maintenanceID)
	if participant != "" {
		q = q.Where("user1_id = ? OR user2_id = ?", participant, participant)
	}
	var list []models.ChatRoom
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ChatRepository) GetRoom(ctx context.Context, id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListMessages returns the rooms' messages oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, roomIDs ...string) ([]models.Message, error) {
	list := []models.Message{}
	if len(roomIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("chat_room_id IN ?", roomIDs).Order("created_at ASC").Find(&list).Error
	return list, err
}
