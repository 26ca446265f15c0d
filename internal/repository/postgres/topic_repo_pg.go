package postgres

import (
	"context"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository/queries"
)

type TopicRepo struct {
	q querier
}

func NewTopicRepoFromPool(q querier) *TopicRepo {
	return &TopicRepo{q: q}
}

func (r *TopicRepo) GetOrCreate(ctx context.Context, name string, now time.Time) (*domain.Topic, error) {
	var t domain.Topic
	err := r.q.QueryRow(ctx, queries.QueryUpsertTopic, name, now).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}

	return &t, nil
}

func (r *TopicRepo) List(ctx context.Context, query string) ([]domain.TopicWithCount, error) {
	rows, err := r.q.Query(ctx, queries.QueryListTopics, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.TopicWithCount
	for rows.Next() {
		var t domain.TopicWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.RoomCount); err != nil {
			return nil, err
		}
		list = append(list, t)
	}

	return list, rows.Err()
}
