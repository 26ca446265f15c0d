// Package memory — in-memory реализация репозиториев. Используется в
// тестах сервисов и транспорта; семантика повторяет postgres-реализации:
// ErrNotFound/ErrAlreadyExists, newest first, каскадное удаление по комнате.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users    map[domain.UserID]*domain.User
	topics   map[domain.TopicID]*domain.Topic
	rooms    map[domain.RoomID]*domain.Room
	msgs     map[domain.MessageID]*domain.Message
	parts    map[domain.RoomID]map[domain.UserID]*domain.Participant
	sessions map[domain.SessionID]*domain.Session

	nextUser    domain.UserID
	nextTopic   domain.TopicID
	nextRoom    domain.RoomID
	nextMsg     domain.MessageID
	nextSession domain.SessionID
}

func NewStore() *Store {
	return &Store{
		users:    make(map[domain.UserID]*domain.User),
		topics:   make(map[domain.TopicID]*domain.Topic),
		rooms:    make(map[domain.RoomID]*domain.Room),
		msgs:     make(map[domain.MessageID]*domain.Message),
		parts:    make(map[domain.RoomID]map[domain.UserID]*domain.Participant),
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{st: s} }
func (s *Store) Topics() repository.TopicRepository             { return &topicRepo{st: s} }
func (s *Store) Rooms() repository.RoomRepository               { return &roomRepo{st: s} }
func (s *Store) Participants() repository.ParticipantRepository { return &participantRepo{st: s} }
func (s *Store) Messages() repository.MessageRepository         { return &messageRepo{st: s} }
func (s *Store) Sessions() repository.SessionRepository         { return &sessionRepo{st: s} }

// SessionCount — для проверок в тестах.
func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func icontains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}

// --- users ---

type userRepo struct{ st *Store }

func (r *userRepo) Create(_ context.Context, u *domain.User) (domain.UserID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, exist := range r.st.users {
		if exist.Username == u.Username {
			return 0, repository.ErrAlreadyExists
		}
	}
	r.st.nextUser++
	cp := *u
	cp.ID = r.st.nextUser
	r.st.users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *userRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	username = domain.NormalizeUsername(username)
	for _, u := range r.st.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) UpdateProfile(_ context.Context, id domain.UserID, username string, email *string, now time.Time) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range r.st.users {
		if otherID != id && other.Username == username {
			return repository.ErrAlreadyExists
		}
	}
	u.Username = username
	u.Email = email
	u.UpdatedAt = now
	return nil
}

// --- topics ---

type topicRepo struct{ st *Store }

func (r *topicRepo) GetOrCreate(_ context.Context, name string, now time.Time) (*domain.Topic, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, t := range r.st.topics {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	r.st.nextTopic++
	t := &domain.Topic{ID: r.st.nextTopic, Name: name, CreatedAt: now}
	r.st.topics[t.ID] = t
	cp := *t
	return &cp, nil
}

func (r *topicRepo) List(_ context.Context, query string) ([]domain.TopicWithCount, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.TopicWithCount
	for _, t := range r.st.topics {
		if query != "" && !icontains(t.Name, query) {
			continue
		}
		var count int64
		for _, room := range r.st.rooms {
			if room.TopicID == t.ID {
				count++
			}
		}
		out = append(out, domain.TopicWithCount{Topic: *t, RoomCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- rooms ---

type roomRepo struct{ st *Store }

func (r *roomRepo) Create(_ context.Context, room *domain.Room) (domain.RoomID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.nextRoom++
	cp := *room
	cp.ID = r.st.nextRoom
	r.st.rooms[cp.ID] = &cp
	return cp.ID, nil
}

func (r *roomRepo) GetByID(_ context.Context, id domain.RoomID) (*domain.Room, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	room, ok := r.st.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := r.st.decorateRoom(room)
	return &cp, nil
}

func (r *roomRepo) Search(_ context.Context, query string) ([]domain.Room, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Room
	for _, room := range r.st.rooms {
		d := r.st.decorateRoom(room)
		if query == "" || icontains(d.TopicName, query) || icontains(d.Name, query) || icontains(d.Description, query) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *roomRepo) ListByHost(_ context.Context, hostID domain.UserID) ([]domain.Room, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Room
	for _, room := range r.st.rooms {
		if room.HostID == hostID {
			out = append(out, r.st.decorateRoom(room))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *roomRepo) Update(_ context.Context, room *domain.Room) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	exist, ok := r.st.rooms[room.ID]
	if !ok {
		return repository.ErrNotFound
	}
	exist.TopicID = room.TopicID
	exist.Name = room.Name
	exist.Description = room.Description
	exist.UpdatedAt = room.UpdatedAt
	return nil
}

func (r *roomRepo) Delete(_ context.Context, id domain.RoomID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.rooms, id)
	// каскад, как FK в схеме
	for msgID, m := range r.st.msgs {
		if m.RoomID == id {
			delete(r.st.msgs, msgID)
		}
	}
	delete(r.st.parts, id)
	return nil
}

func (st *Store) decorateRoom(room *domain.Room) domain.Room {
	cp := *room
	if t, ok := st.topics[room.TopicID]; ok {
		cp.TopicName = t.Name
	}
	if u, ok := st.users[room.HostID]; ok {
		cp.HostName = u.Username
	}
	return cp
}

// --- participants ---

type participantRepo struct{ st *Store }

func (r *participantRepo) Add(_ context.Context, p *domain.Participant) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	byUser, ok := r.st.parts[p.RoomID]
	if !ok {
		byUser = make(map[domain.UserID]*domain.Participant)
		r.st.parts[p.RoomID] = byUser
	}
	if _, ok := byUser[p.UserID]; ok {
		return nil // ON CONFLICT DO NOTHING
	}
	cp := *p
	byUser[p.UserID] = &cp
	return nil
}

func (r *participantRepo) ListByRoom(_ context.Context, roomID domain.RoomID) ([]domain.Participant, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.st.parts[roomID] {
		cp := *p
		if u, ok := r.st.users[p.UserID]; ok {
			cp.Username = u.Username
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// --- messages ---

type messageRepo struct{ st *Store }

func (r *messageRepo) Create(_ context.Context, m *domain.Message) (domain.MessageID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.rooms[m.RoomID]; !ok {
		return 0, repository.ErrNotFound
	}
	r.st.nextMsg++
	cp := *m
	cp.ID = r.st.nextMsg
	r.st.msgs[cp.ID] = &cp
	return cp.ID, nil
}

func (r *messageRepo) GetByID(_ context.Context, id domain.MessageID) (*domain.Message, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	m, ok := r.st.msgs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := r.st.decorateMsg(m)
	return &cp, nil
}

func (r *messageRepo) ListByRoom(_ context.Context, roomID domain.RoomID) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool { return m.RoomID == roomID })
}

func (r *messageRepo) ListByUser(_ context.Context, userID domain.UserID) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool { return m.UserID == userID })
}

func (r *messageRepo) ListByTopicQuery(_ context.Context, query string) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool {
		room, ok := r.st.rooms[m.RoomID]
		if !ok {
			return false
		}
		t, ok := r.st.topics[room.TopicID]
		if !ok {
			return false
		}
		return query == "" || icontains(t.Name, query)
	})
}

func (r *messageRepo) ListAll(_ context.Context) ([]domain.Message, error) {
	return r.list(func(*domain.Message) bool { return true })
}

func (r *messageRepo) Delete(_ context.Context, id domain.MessageID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.msgs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.msgs, id)
	return nil
}

func (r *messageRepo) list(keep func(*domain.Message) bool) ([]domain.Message, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Message
	for _, m := range r.st.msgs {
		if keep(m) {
			out = append(out, r.st.decorateMsg(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (st *Store) decorateMsg(m *domain.Message) domain.Message {
	cp := *m
	if u, ok := st.users[m.UserID]; ok {
		cp.Username = u.Username
	}
	if room, ok := st.rooms[m.RoomID]; ok {
		cp.RoomName = room.Name
	}
	return cp
}

// --- sessions ---

type sessionRepo struct{ st *Store }

func (r *sessionRepo) Create(_ context.Context, s *domain.Session) (domain.SessionID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, exist := range r.st.sessions {
		if exist.TokenHash == s.TokenHash {
			return 0, repository.ErrAlreadyExists
		}
	}
	r.st.nextSession++
	cp := *s
	cp.ID = r.st.nextSession
	r.st.sessions[cp.ID] = &cp
	return cp.ID, nil
}

func (r *sessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, s := range r.st.sessions {
		if s.TokenHash == tokenHash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepo) DeleteByID(_ context.Context, id domain.SessionID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.sessions, id)
	return nil
}

func (r *sessionRepo) DeleteByUser(_ context.Context, userID domain.UserID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for id, s := range r.st.sessions {
		if s.UserID == userID {
			delete(r.st.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *sessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for id, s := range r.st.sessions {
		if s.IsExpired(now) {
			delete(r.st.sessions, id)
			n++
		}
	}
	return n, nil
}
