package repository

import (
	"context"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (domain.RoomID, error)
	GetByID(ctx context.Context, id domain.RoomID) (*domain.Room, error)
	// query — icontains по имени топика, имени комнаты или описанию (OR);
	// пустая строка — все комнаты. Без пагинации.
	Search(ctx context.Context, query string) ([]domain.Room, error)
	ListByHost(ctx context.Context, hostID domain.UserID) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	// Удаление каскадно снимает сообщения и участников (FK).
	Delete(ctx context.Context, id domain.RoomID) error
}

type ParticipantRepository interface {
	// Идемпотентно: повторное добавление не ошибка.
	Add(ctx context.Context, p *domain.Participant) error
	ListByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Participant, error)
}
