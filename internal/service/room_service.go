package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
)

type RoomService struct {
	roomRepo  repository.RoomRepository
	topicRepo repository.TopicRepository
	partRepo  repository.ParticipantRepository
	msgRepo   repository.MessageRepository

	now func() time.Time
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	topicRepo repository.TopicRepository,
	partRepo repository.ParticipantRepository,
	msgRepo repository.MessageRepository,
	now func() time.Time,
) *RoomService {
	if now == nil {
		now = time.Now
	}

	return &RoomService{
		roomRepo:  roomRepo,
		topicRepo: topicRepo,
		partRepo:  partRepo,
		msgRepo:   msgRepo,
		now:       now,
	}
}

// HomePage — комнаты по запросу, все топики и лента сообщений для сайдбара.
type HomePage struct {
	Rooms  []domain.Room
	Topics []domain.TopicWithCount
	Feed   []domain.Message
}

// Search: комната попадает в выдачу, если q входит (без учета регистра)
// в имя топика, имя комнаты или описание; пустой q возвращает все.
func (s *RoomService) Search(ctx context.Context, query string) (*HomePage, error) {
	query = strings.TrimSpace(query)

	rooms, err := s.roomRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.Search: %w", err)
	}

	// топики в сайдбаре не фильтруются
	topics, err := s.topicRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("topicRepo.List: %w", err)
	}

	feed, err := s.msgRepo.ListByTopicQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.ListByTopicQuery: %w", err)
	}

	return &HomePage{Rooms: rooms, Topics: topics, Feed: feed}, nil
}

// RoomPage — комната, её сообщения (новые сверху) и участники.
type RoomPage struct {
	Room         *domain.Room
	Messages     []domain.Message
	Participants []domain.Participant
}

func (s *RoomService) GetRoomPage(ctx context.Context, id domain.RoomID) (*RoomPage, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	msgs, err := s.msgRepo.ListByRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.ListByRoom: %w", err)
	}

	parts, err := s.partRepo.ListByRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("partRepo.ListByRoom: %w", err)
	}

	return &RoomPage{Room: room, Messages: msgs, Participants: parts}, nil
}

// GetRoom возвращает комнату по ID.
func (s *RoomService) GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListRooms — все комнаты, без пагинации.
func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.roomRepo.Search(ctx, "")
}

func (s *RoomService) ListTopics(ctx context.Context, query string) ([]domain.TopicWithCount, error) {
	return s.topicRepo.List(ctx, strings.TrimSpace(query))
}

// CreateRoom создаёт комнату; хост всегда текущий пользователь,
// топик получается атомарным get-or-create по имени.
func (s *RoomService) CreateRoom(ctx context.Context, hostID domain.UserID, topicName, name, description string) (*domain.Room, error) {
	topic, err := s.getOrCreateTopic(ctx, topicName)
	if err != nil {
		return nil, err
	}

	now := s.now()
	room, err := domain.NewRoom(hostID, topic.ID, name, description, now)
	if err != nil {
		return nil, err
	}

	id, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.Create: %w", err)
	}
	room.ID = id
	room.TopicName = topic.Name

	return room, nil
}

// UpdateRoom — только хост; хост при этом не меняется.
func (s *RoomService) UpdateRoom(ctx context.Context, actorID domain.UserID, roomID domain.RoomID, topicName, name, description string) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsHostedBy(actorID) {
		return nil, domain.ErrNotRoomHost
	}

	topic, err := s.getOrCreateTopic(ctx, topicName)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyRoomName
	}

	room.TopicID = topic.ID
	room.TopicName = topic.Name
	room.Name = name
	room.Description = strings.TrimSpace(description)
	room.UpdatedAt = s.now()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("roomRepo.Update: %w", err)
	}

	return room, nil
}

// DeleteRoom — только хост; сообщения и участники уходят каскадом.
// Проверка владения здесь такая же, как на update.
func (s *RoomService) DeleteRoom(ctx context.Context, actorID domain.UserID, roomID domain.RoomID) error {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsHostedBy(actorID) {
		return domain.ErrNotRoomHost
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrRoomNotFound
		}
		return fmt.Errorf("roomRepo.Delete: %w", err)
	}

	return nil
}

func (s *RoomService) getOrCreateTopic(ctx context.Context, name string) (*domain.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyTopicName
	}

	topic, err := s.topicRepo.GetOrCreate(ctx, name, s.now())
	if err != nil {
		return nil, fmt.Errorf("topicRepo.GetOrCreate: %w", err)
	}

	return topic, nil
}
