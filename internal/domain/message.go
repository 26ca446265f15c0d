package domain

import (
	"strings"
	"time"
)

type MessageID int64

type Message struct {
	ID        MessageID
	RoomID    RoomID
	UserID    UserID
	Username  string
	RoomName  string
	Body      string
	CreatedAt time.Time
}

func NewMessage(roomID RoomID, userID UserID, body string, now time.Time) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessageBody
	}

	return &Message{
		RoomID:    roomID,
		UserID:    userID,
		Body:      body,
		CreatedAt: now,
	}, nil
}

// IsAuthoredBy — единственная проверка владения сообщением.
func (m *Message) IsAuthoredBy(userID UserID) bool {
	return m.UserID == userID
}
