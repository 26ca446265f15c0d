package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
	"github.com/cwrk-planet/forum-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
)

type MessageRepo struct {
	q querier
}

func NewMessageRepoFromPool(q querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func NewMessageRepoFromTx(tx pgx.Tx) *MessageRepo {
	return &MessageRepo{q: tx}
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) (domain.MessageID, error) {
	var id int64
	err := r.q.QueryRow(
		ctx,
		queries.QueryCreateMessage,
		m.RoomID,
		m.UserID,
		m.Body,
		m.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}

	return domain.MessageID(id), nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	var m domain.Message
	err := r.q.QueryRow(ctx, queries.QueryGetMessageByID, id).Scan(
		&m.ID, &m.RoomID, &m.UserID, &m.Username, &m.RoomName, &m.Body, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}

	return &m, nil
}

func (r *MessageRepo) ListByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Message, error) {
	return r.list(ctx, queries.QueryListMessagesByRoom, roomID)
}

func (r *MessageRepo) ListByUser(ctx context.Context, userID domain.UserID) ([]domain.Message, error) {
	return r.list(ctx, queries.QueryListMessagesByUser, userID)
}

func (r *MessageRepo) ListByTopicQuery(ctx context.Context, query string) ([]domain.Message, error) {
	return r.list(ctx, queries.QueryListMessagesByTopicQuery, query)
}

func (r *MessageRepo) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.list(ctx, queries.QueryListAllMessages)
}

func (r *MessageRepo) Delete(ctx context.Context, id domain.MessageID) error {
	tag, err := r.q.Exec(ctx, queries.QueryDeleteMessage, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *MessageRepo) list(ctx context.Context, sql string, args ...any) ([]domain.Message, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID, &m.RoomID, &m.UserID, &m.Username, &m.RoomName, &m.Body, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, m)
	}

	return list, rows.Err()
}
