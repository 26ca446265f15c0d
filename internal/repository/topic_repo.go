package repository

import (
	"context"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

type TopicRepository interface {
	// Атомарный get-or-create по имени: один upsert, никакой гонки
	// check-then-create между конкурентными писателями.
	GetOrCreate(ctx context.Context, name string, now time.Time) (*domain.Topic, error)
	// Топики с числом комнат; query — icontains-фильтр по имени, пустая строка — все.
	List(ctx context.Context, query string) ([]domain.TopicWithCount, error)
}
