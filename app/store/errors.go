package store

import "errors"

// errors returned by TaskStore, wrapped together with the engine cause
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidID          = errors.New("invalid task id")
	ErrSerialization      = errors.New("can't encode task")
	ErrDeserialization    = errors.New("can't decode task")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrStorageRead        = errors.New("storage read failed")
	ErrClosed             = errors.New("store is closed")
)
