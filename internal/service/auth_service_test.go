package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
	"github.com/cwrk-planet/forum-service/internal/repository/memory"
	"github.com/cwrk-planet/forum-service/internal/security"
)

func TestRegister_LowercasesUsernameAndOpensSession(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	res, err := fx.auth.Register(ctx, "  Alice  ", "sekret123", "sekret123", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Username != "alice" {
		t.Fatalf("username = %q, want alice", res.User.Username)
	}
	if res.SessionToken == "" {
		t.Fatal("register returned empty session token")
	}

	u, err := fx.auth.UserFromSessionToken(ctx, res.SessionToken)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if u.ID != res.User.ID {
		t.Fatalf("session resolves to user %d, want %d", u.ID, res.User.ID)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	fx := newFixture()

	_, err := fx.auth.Register(context.Background(), "bob", "sekret123", "sekret124", nil)
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	if _, err := fx.auth.Register(ctx, "carol", "sekret123", "sekret123", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// регистр не спасает: Carol и carol — один username
	_, err := fx.auth.Register(ctx, "Carol", "sekret123", "sekret123", nil)
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	if _, err := fx.auth.Register(ctx, "dave", "sekret123", "sekret123", nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errUnknown := fx.auth.Login(ctx, "nosuchuser", "sekret123", nil)
	_, errWrongPass := fx.auth.Login(ctx, "dave", "wrongpass", nil)

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", errWrongPass)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	reg, err := fx.auth.Register(ctx, "erin", "sekret123", "sekret123", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := fx.auth.Login(ctx, "erin", "sekret123", nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("login user %d, want %d", res.User.ID, reg.User.ID)
	}
	if res.SessionToken == reg.SessionToken {
		t.Fatal("login reused the register session token")
	}
}

func TestLogout_InvalidatesSessionAndIsIdempotent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	res, err := fx.auth.Register(ctx, "frank", "sekret123", "sekret123", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := fx.auth.Logout(ctx, res.SessionToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := fx.auth.UserFromSessionToken(ctx, res.SessionToken); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("resolve after logout err = %v, want ErrSessionExpired", err)
	}
	// повторный logout того же токена — не ошибка
	if err := fx.auth.Logout(ctx, res.SessionToken); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestUserFromSessionToken_Expired(t *testing.T) {
	st := memory.NewStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	auth := NewAuthService(st.Users(), st.Sessions(), time.Hour,
		security.BcryptConfig{Cost: 4, MinLength: 6}, clock)

	res, err := auth.Register(context.Background(), "gail", "sekret123", "sekret123", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now = now.Add(2 * time.Hour)

	if _, err := auth.UserFromSessionToken(context.Background(), res.SessionToken); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	// просроченная запись удаляется
	if n := st.SessionCount(); n != 0 {
		t.Fatalf("expired session still stored: %d records", n)
	}
}
