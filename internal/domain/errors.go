package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrNotRoomHost      = errors.New("user is not the host of the room")
	ErrNotMessageAuthor = errors.New("user is not the author of the message")

	ErrInvalidUsername    = errors.New("invalid username")
	ErrEmptyPasswordHash  = errors.New("empty password hash")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmptyTokenHash = errors.New("empty token hash")
	ErrPastExpiry     = errors.New("expires_at is in the past")
	ErrSessionExpired = errors.New("session expired")

	ErrEmptyRoomName    = errors.New("empty room name")
	ErrEmptyTopicName   = errors.New("empty topic name")
	ErrEmptyMessageBody = errors.New("empty message body")
)
