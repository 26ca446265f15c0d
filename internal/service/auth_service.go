package service

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
	"github.com/cwrk-planet/forum-service/internal/security"
)

type AuthResult struct {
	User         *domain.User
	SessionToken string
}

// Метаданные для записи сессии
type LoginMeta struct {
	UserAgent *string
	IP        *netip.Addr
}

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	passPolicy security.BcryptConfig
	now        func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	sessionTTL time.Duration,
	passPolicy security.BcryptConfig,
	now func() time.Time,
) *AuthService {
	if now == nil {
		now = time.Now
	}

	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		passPolicy: passPolicy,
		now:        now,
	}
}

func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// Register создает пользователя (username приводится к нижнему регистру)
// и сразу открывает сессию.
func (s *AuthService) Register(ctx context.Context, username, password, confirm string, meta *LoginMeta) (*AuthResult, error) {
	if password != confirm {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := security.HashPassword(password, &s.passPolicy)
	if err != nil {
		slog.Error("auth.register.hashPassword failed", slog.Any("err", err))
		return nil, err
	}

	now := s.now()
	u, err := domain.NewUser(username, hash, now)
	if err != nil {
		slog.Error("auth.register.newUser failed", slog.Any("err", err))
		return nil, err
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		slog.Error("auth.register.createUser failed", slog.Any("err", err))
		return nil, err
	}
	u.ID = id

	token, err := s.startSession(ctx, u.ID, meta)
	if err != nil {
		slog.Error("auth.register.startSession failed", slog.Any("err", err))
		return nil, err
	}

	return &AuthResult{User: u, SessionToken: token}, nil
}

// Login аутентифицирует по username+пароль и открывает сессию.
// Неизвестный username и неверный пароль дают один и тот же
// ErrInvalidCredentials: существование аккаунта не раскрывается.
func (s *AuthService) Login(ctx context.Context, username, password string, meta *LoginMeta) (*AuthResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		slog.Error("auth.login.getByUsername failed", slog.Any("err", err))
		return nil, err
	}

	if err := security.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, u.ID, meta)
	if err != nil {
		slog.Error("auth.login.startSession failed", slog.Any("err", err))
		return nil, err
	}

	return &AuthResult{User: u, SessionToken: token}, nil
}

// Logout удаляет сессию по токену. Отсутствующая или чужая сессия не
// ошибка: выход всегда успешен.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	hash := security.SHA256HexOfString(token)
	sess, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		slog.Error("auth.logout.getByTokenHash failed", slog.Any("err", err))
		return err
	}

	if err := s.sessions.DeleteByID(ctx, sess.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		slog.Error("auth.logout.deleteSession failed", slog.Any("err", err))
		return err
	}

	return nil
}

// UserFromSessionToken резолвит cookie-токен в пользователя.
// Просроченная сессия удаляется и считается отсутствующей.
func (s *AuthService) UserFromSessionToken(ctx context.Context, token string) (*domain.User, error) {
	hash := security.SHA256HexOfString(token)
	sess, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	if sess.IsExpired(s.now()) {
		_ = s.sessions.DeleteByID(ctx, sess.ID)
		return nil, domain.ErrSessionExpired
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	return u, nil
}

// startSession: выпускает opaque-токен, в БД хранится только его хеш
func (s *AuthService) startSession(ctx context.Context, userID domain.UserID, meta *LoginMeta) (string, error) {
	token, err := security.RandomStringURLSafe(32)
	if err != nil {
		return "", err
	}

	now := s.now()
	sess, err := domain.NewSession(userID, security.SHA256HexOfString(token), now.Add(s.sessionTTL), now)
	if err != nil {
		return "", err
	}

	if meta != nil {
		if meta.UserAgent != nil && *meta.UserAgent != "" {
			sess.UserAgent = meta.UserAgent
		}
		if meta.IP != nil {
			sess.IP = meta.IP
		}
	}

	if _, err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}

	return token, nil
}
