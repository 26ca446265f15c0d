package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

func (fx *fixture) mustUser(t *testing.T, username string) *domain.User {
	t.Helper()
	res, err := fx.auth.Register(context.Background(), username, "sekret123", "sekret123", nil)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return res.User
}

func (fx *fixture) mustRoom(t *testing.T, hostID domain.UserID, topic, name, desc string) *domain.Room {
	t.Helper()
	room, err := fx.rooms.CreateRoom(context.Background(), hostID, topic, name, desc)
	if err != nil {
		t.Fatalf("create room %s: %v", name, err)
	}
	return room
}

func TestCreateRoom_ReusesExistingTopic(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")

	r1 := fx.mustRoom(t, host.ID, "Go", "learn go", "")
	r2 := fx.mustRoom(t, host.ID, "Go", "go help", "")

	if r1.TopicID != r2.TopicID {
		t.Fatalf("same topic name produced two topics: %d и %d", r1.TopicID, r2.TopicID)
	}

	topics, err := fx.rooms.ListTopics(context.Background(), "")
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 1 {
		t.Fatalf("got %d topics, want 1", len(topics))
	}
	if topics[0].RoomCount != 2 {
		t.Fatalf("room count = %d, want 2", topics[0].RoomCount)
	}
}

func TestCreateRoom_EmptyNames(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")
	ctx := context.Background()

	if _, err := fx.rooms.CreateRoom(ctx, host.ID, "  ", "room", ""); !errors.Is(err, domain.ErrEmptyTopicName) {
		t.Fatalf("empty topic err = %v, want ErrEmptyTopicName", err)
	}
	if _, err := fx.rooms.CreateRoom(ctx, host.ID, "Go", "  ", ""); !errors.Is(err, domain.ErrEmptyRoomName) {
		t.Fatalf("empty name err = %v, want ErrEmptyRoomName", err)
	}
}

func TestSearch_MatchesTopicNameAndDescription(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")

	byTopic := fx.mustRoom(t, host.ID, "Python", "snakes", "")
	byName := fx.mustRoom(t, host.ID, "Go", "python tips", "")
	byDesc := fx.mustRoom(t, host.ID, "Go", "misc", "we discuss Python here")
	fx.mustRoom(t, host.ID, "Rust", "ownership", "borrow checker")

	page, err := fx.rooms.Search(context.Background(), "pyth")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	got := map[domain.RoomID]bool{}
	for _, r := range page.Rooms {
		got[r.ID] = true
	}
	for _, want := range []*domain.Room{byTopic, byName, byDesc} {
		if !got[want.ID] {
			t.Errorf("room %q missing from results", want.Name)
		}
	}
	if len(page.Rooms) != 3 {
		t.Fatalf("got %d rooms, want 3", len(page.Rooms))
	}
	// топики в сайдбаре запросом не фильтруются
	if len(page.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(page.Topics))
	}
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")
	fx.mustRoom(t, host.ID, "Go", "a", "")
	fx.mustRoom(t, host.ID, "Rust", "b", "")

	page, err := fx.rooms.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(page.Rooms))
	}
}

func TestUpdateRoom_HostOnly(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")
	other := fx.mustUser(t, "other")
	room := fx.mustRoom(t, host.ID, "Go", "old name", "old desc")
	ctx := context.Background()

	if _, err := fx.rooms.UpdateRoom(ctx, other.ID, room.ID, "Go", "hacked", ""); !errors.Is(err, domain.ErrNotRoomHost) {
		t.Fatalf("stranger update err = %v, want ErrNotRoomHost", err)
	}

	updated, err := fx.rooms.UpdateRoom(ctx, host.ID, room.ID, "Golang", "new name", "new desc")
	if err != nil {
		t.Fatalf("host update: %v", err)
	}
	if updated.Name != "new name" || updated.Description != "new desc" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.TopicName != "Golang" {
		t.Fatalf("topic = %q, want Golang", updated.TopicName)
	}
	if updated.HostID != host.ID {
		t.Fatalf("host changed on update: %d", updated.HostID)
	}
}

func TestDeleteRoom_HostOnlyAndCascades(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")
	other := fx.mustUser(t, "other")
	room := fx.mustRoom(t, host.ID, "Go", "doomed", "")
	ctx := context.Background()

	if _, err := fx.msgs.Post(ctx, other.ID, room.ID, "hello"); err != nil {
		t.Fatalf("post: %v", err)
	}

	if err := fx.rooms.DeleteRoom(ctx, other.ID, room.ID); !errors.Is(err, domain.ErrNotRoomHost) {
		t.Fatalf("stranger delete err = %v, want ErrNotRoomHost", err)
	}
	if err := fx.rooms.DeleteRoom(ctx, host.ID, room.ID); err != nil {
		t.Fatalf("host delete: %v", err)
	}

	if _, err := fx.rooms.GetRoomPage(ctx, room.ID); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("get after delete err = %v, want ErrRoomNotFound", err)
	}
	feed, err := fx.msgs.Activity(ctx)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("messages survived room delete: %d", len(feed))
	}
}

func TestGetRoomPage_NotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.rooms.GetRoomPage(context.Background(), 404)
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestGetRoomPage_NewestMessageFirst(t *testing.T) {
	fx := newFixture()
	host := fx.mustUser(t, "host")
	room := fx.mustRoom(t, host.ID, "Go", "chat", "")
	ctx := context.Background()

	if _, err := fx.msgs.Post(ctx, host.ID, room.ID, "first"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := fx.msgs.Post(ctx, host.ID, room.ID, "second"); err != nil {
		t.Fatalf("post: %v", err)
	}

	page, err := fx.rooms.GetRoomPage(ctx, room.ID)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(page.Messages))
	}
	if page.Messages[0].Body != "second" {
		t.Fatalf("first message = %q, want newest", page.Messages[0].Body)
	}
	if len(page.Participants) != 1 {
		t.Fatalf("got %d participants, want 1", len(page.Participants))
	}
}
