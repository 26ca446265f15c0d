package http

import (
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

// RoomItem — единый DTO комнаты для страниц и /api.
type RoomItem struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"hostId"`
	HostName    string    `json:"hostName"`
	TopicID     int64     `json:"topicId"`
	TopicName   string    `json:"topicName"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRoomItem(r *domain.Room) RoomItem {
	return RoomItem{
		ID:          int64(r.ID),
		HostID:      int64(r.HostID),
		HostName:    r.HostName,
		TopicID:     int64(r.TopicID),
		TopicName:   r.TopicName,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRoomItems(rooms []domain.Room) []RoomItem {
	out := make([]RoomItem, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomItem(&rooms[i]))
	}
	return out
}

type TopicItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	RoomCount int64  `json:"roomCount"`
}

func toTopicItems(topics []domain.TopicWithCount) []TopicItem {
	out := make([]TopicItem, 0, len(topics))
	for _, t := range topics {
		out = append(out, TopicItem{ID: int64(t.ID), Name: t.Name, RoomCount: t.RoomCount})
	}
	return out
}

type MessageItem struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	RoomName  string    `json:"roomName"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageItems(msgs []domain.Message) []MessageItem {
	out := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageItem{
			ID:        int64(m.ID),
			RoomID:    int64(m.RoomID),
			RoomName:  m.RoomName,
			UserID:    int64(m.UserID),
			Username:  m.Username,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

type ParticipantItem struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func toParticipantItems(parts []domain.Participant) []ParticipantItem {
	out := make([]ParticipantItem, 0, len(parts))
	for _, p := range parts {
		out = append(out, ParticipantItem{UserID: int64(p.UserID), Username: p.Username})
	}
	return out
}

type UserItem struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

func toUserItem(u *domain.User) UserItem {
	return UserItem{ID: int64(u.ID), Username: u.Username, Email: u.Email}
}
