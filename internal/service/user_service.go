package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
)

type UserService struct {
	users     repository.UserRepository
	roomRepo  repository.RoomRepository
	topicRepo repository.TopicRepository
	msgRepo   repository.MessageRepository

	now func() time.Time
}

func NewUserService(
	users repository.UserRepository,
	roomRepo repository.RoomRepository,
	topicRepo repository.TopicRepository,
	msgRepo repository.MessageRepository,
	now func() time.Time,
) *UserService {
	if now == nil {
		now = time.Now
	}

	return &UserService{
		users:     users,
		roomRepo:  roomRepo,
		topicRepo: topicRepo,
		msgRepo:   msgRepo,
		now:       now,
	}
}

// ProfilePage — пользователь, его комнаты, его сообщения и все топики.
type ProfilePage struct {
	User     *domain.User
	Rooms    []domain.Room
	Messages []domain.Message
	Topics   []domain.TopicWithCount
}

func (s *UserService) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, id domain.UserID) (*ProfilePage, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListByHost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.ListByHost: %w", err)
	}

	msgs, err := s.msgRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.ListByUser: %w", err)
	}

	topics, err := s.topicRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("topicRepo.List: %w", err)
	}

	return &ProfilePage{User: u, Rooms: rooms, Messages: msgs, Topics: topics}, nil
}

// UpdateProfile обновляет собственный профиль. Username проходит ту же
// нормализацию, что и при регистрации; действующие сессии не трогаем.
func (s *UserService) UpdateProfile(ctx context.Context, actorID domain.UserID, username string, email *string) (*domain.User, error) {
	u, err := s.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := u.SetUsername(username, now); err != nil {
		return nil, err
	}
	u.SetEmail(email, now)

	if err := s.users.UpdateProfile(ctx, u.ID, u.Username, u.Email, u.UpdatedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("users.UpdateProfile: %w", err)
	}

	return u, nil
}
