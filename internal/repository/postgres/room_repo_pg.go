package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
	"github.com/cwrk-planet/forum-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
)

type RoomRepo struct {
	q querier
}

func NewRoomRepoFromPool(q querier) *RoomRepo {
	return &RoomRepo{q: q}
}

func NewRoomRepoFromTx(tx pgx.Tx) *RoomRepo {
	return &RoomRepo{q: tx}
}

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) (domain.RoomID, error) {
	var id int64
	err := r.q.QueryRow(
		ctx,
		queries.QueryCreateRoom,
		room.HostID,
		room.TopicID,
		room.Name,
		room.Description,
		room.CreatedAt,
		room.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}

	return domain.RoomID(id), nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	var rm domain.Room
	err := r.q.QueryRow(ctx, queries.QueryGetRoomByID, id).Scan(
		&rm.ID, &rm.HostID, &rm.TopicID, &rm.TopicName, &rm.HostName,
		&rm.Name, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}

	return &rm, nil
}

func (r *RoomRepo) Search(ctx context.Context, query string) ([]domain.Room, error) {
	return r.list(ctx, queries.QuerySearchRooms, query)
}

func (r *RoomRepo) ListByHost(ctx context.Context, hostID domain.UserID) ([]domain.Room, error) {
	return r.list(ctx, queries.QueryListRoomsByHost, hostID)
}

func (r *RoomRepo) Update(ctx context.Context, room *domain.Room) error {
	tag, err := r.q.Exec(
		ctx,
		queries.QueryUpdateRoom,
		room.ID,
		room.TopicID,
		room.Name,
		room.Description,
		room.UpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *RoomRepo) Delete(ctx context.Context, id domain.RoomID) error {
	tag, err := r.q.Exec(ctx, queries.QueryDeleteRoom, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *RoomRepo) list(ctx context.Context, sql string, arg any) ([]domain.Room, error) {
	rows, err := r.q.Query(ctx, sql, arg)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(
			&rm.ID, &rm.HostID, &rm.TopicID, &rm.TopicName, &rm.HostName,
			&rm.Name, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, rm)
	}

	return list, rows.Err()
}

type ParticipantRepo struct {
	q querier
}

func NewParticipantRepoFromPool(q querier) *ParticipantRepo {
	return &ParticipantRepo{q: q}
}

// Add — идемпотентно за счёт ON CONFLICT DO NOTHING.
func (r *ParticipantRepo) Add(ctx context.Context, p *domain.Participant) error {
	_, err := r.q.Exec(ctx, queries.QueryAddParticipant, p.RoomID, p.UserID, p.JoinedAt)
	if err != nil {
		return mapPgError(err)
	}

	return nil
}

func (r *ParticipantRepo) ListByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Participant, error) {
	rows, err := r.q.Query(ctx, queries.QueryListParticipantsByRoom, roomID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.RoomID, &p.UserID, &p.Username, &p.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	return list, rows.Err()
}
