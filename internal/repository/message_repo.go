package repository

import (
	"context"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (domain.MessageID, error)
	GetByID(ctx context.Context, id domain.MessageID) (*domain.Message, error)
	// Все списки — newest first.
	ListByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Message, error)
	ListByUser(ctx context.Context, userID domain.UserID) ([]domain.Message, error)
	// Лента активности: сообщения комнат, чей топик содержит query.
	ListByTopicQuery(ctx context.Context, query string) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id domain.MessageID) error
}
