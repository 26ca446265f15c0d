package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
)

type MessageService struct {
	msgRepo  repository.MessageRepository
	roomRepo repository.RoomRepository
	partRepo repository.ParticipantRepository

	now func() time.Time
}

func NewMessageService(
	msgRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	partRepo repository.ParticipantRepository,
	now func() time.Time,
) *MessageService {
	if now == nil {
		now = time.Now
	}

	return &MessageService{
		msgRepo:  msgRepo,
		roomRepo: roomRepo,
		partRepo: partRepo,
		now:      now,
	}
}

// Post создаёт сообщение и добавляет автора в участники комнаты.
// Добавление идемпотентно, так что автор N-го сообщения остаётся
// одним участником.
func (s *MessageService) Post(ctx context.Context, actorID domain.UserID, roomID domain.RoomID, body string) (*domain.Message, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	now := s.now()
	msg, err := domain.NewMessage(roomID, actorID, body, now)
	if err != nil {
		return nil, err
	}

	id, err := s.msgRepo.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.Create: %w", err)
	}
	msg.ID = id
	msg.RoomName = room.Name

	p := &domain.Participant{RoomID: roomID, UserID: actorID, JoinedAt: now}
	if err := s.partRepo.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("partRepo.Add: %w", err)
	}

	return msg, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

// Delete — только автор. Участие в комнате при этом не снимается,
// даже если это было последнее сообщение автора.
func (s *MessageService) Delete(ctx context.Context, actorID domain.UserID, id domain.MessageID) (*domain.Message, error) {
	msg, err := s.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !msg.IsAuthoredBy(actorID) {
		return nil, domain.ErrNotMessageAuthor
	}

	if err := s.msgRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("msgRepo.Delete: %w", err)
	}

	return msg, nil
}

// Activity — все сообщения сайта, новые сверху.
func (s *MessageService) Activity(ctx context.Context) ([]domain.Message, error) {
	return s.msgRepo.ListAll(ctx)
}
