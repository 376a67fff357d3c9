package session

import "errors"

var (
	ErrGameAlreadyStarted = errors.New("game already started in this channel")
	ErrNotInRoom          = errors.New("client is not part of this room")
	ErrNotConnected       = errors.New("first message must be a Connect request")
	ErrAlreadyConnected   = errors.New("client is already connected to a room")
	ErrInvalidConnect     = errors.New("connect requires a username and a channel")
)
