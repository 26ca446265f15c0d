package domain

import (
	"strings"
	"time"
)

type UserID int64

type User struct {
	ID           UserID
	Username     string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Создает нового пользователя
// Ожидает уже посчитанный хеш пароля
func NewUser(username, passwordHash string, now time.Time, opts ...UserOption) (*User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrEmptyPasswordHash
	}

	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(user)
	}

	return user, nil
}

func (u *User) SetUsername(username string, now time.Time) error {
	username = NormalizeUsername(username)
	if username == "" {
		return ErrInvalidUsername
	}
	u.Username = username
	u.UpdatedAt = now

	return nil
}

func (u *User) SetEmail(email *string, now time.Time) {
	u.Email = trimPtr(email)
	u.UpdatedAt = now
}

// Options конструктора
type UserOption func(*User)

func WithEmail(email string) UserOption {
	return func(u *User) { u.Email = trimPtr(&email) }
}

// NormalizeUsername — usernames хранятся строго в нижнем регистре.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil
	}

	return &t
}
