package service

import (
	"time"

	"github.com/cwrk-planet/forum-service/internal/repository/memory"
	"github.com/cwrk-planet/forum-service/internal/security"
)

// Фикстура: все сервисы поверх одного in-memory store с замороженными часами.
type fixture struct {
	st *memory.Store

	auth  *AuthService
	rooms *RoomService
	msgs  *MessageService
	profs *UserService

	now time.Time
}

func newFixture() *fixture {
	st := memory.NewStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	return &fixture{
		st: st,
		auth: NewAuthService(st.Users(), st.Sessions(), 24*time.Hour,
			security.BcryptConfig{Cost: 4, MinLength: 6}, clock),
		rooms: NewRoomService(st.Rooms(), st.Topics(), st.Participants(), st.Messages(), clock),
		msgs:  NewMessageService(st.Messages(), st.Rooms(), st.Participants(), clock),
		profs: NewUserService(st.Users(), st.Rooms(), st.Topics(), st.Messages(), clock),
		now:   now,
	}
}
