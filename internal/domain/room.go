package domain

import (
	"strings"
	"time"
)

type RoomID int64

type Room struct {
	ID          RoomID
	HostID      UserID // неизменяем после создания
	TopicID     TopicID
	TopicName   string
	HostName    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewRoom(hostID UserID, topicID TopicID, name, description string, now time.Time) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}

	return &Room{
		HostID:      hostID,
		TopicID:     topicID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsHostedBy — единственная проверка владения комнатой.
func (r *Room) IsHostedBy(userID UserID) bool {
	return r.HostID == userID
}

type Participant struct {
	RoomID   RoomID
	UserID   UserID
	Username string
	JoinedAt time.Time
}
