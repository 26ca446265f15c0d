package repository

import (
	"context"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (domain.UserID, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Обновляет собственный профиль (username/email)
	UpdateProfile(ctx context.Context, id domain.UserID, username string, email *string, now time.Time) error
}
