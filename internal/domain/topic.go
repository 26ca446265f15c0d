package domain

import "time"

type TopicID int64

type Topic struct {
	ID        TopicID
	Name      string
	CreatedAt time.Time
}

// TopicWithCount — топик вместе с числом комнат; для сайдбара и /topics.
type TopicWithCount struct {
	Topic
	RoomCount int64
}
