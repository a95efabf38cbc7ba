package store

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	log "github.com/go-pkgz/lgr"
)

// marshal encodes records, replaced in tests
var marshal = json.Marshal

//go:generate moq -out mocks/engine.go -pkg mocks -skip-ensure -fmt goimports . Engine

// Engine defines an ordered key-value storage used by TaskStore. Keys are ordered by raw bytes.
// Implementations must be safe for concurrent use and apply writes durably before returning.
type Engine interface {
	Set(key, value []byte) error
	Last() (key, value []byte, err error) // empty key for empty storage
	Delete(key []byte) (existed bool, err error)
	Len() (int, error)
	Compact() error
	Close() error
}

// EngineKind names supported engine implementations
type EngineKind string

// enum of engines
const (
	EngineBadger EngineKind = "badger"
	EngineSQLite EngineKind = "sqlite"
)

// Task is a unit of proof-generation work received from coordinator
type Task struct {
	UUID         string `json:"uuid"`
	ID           string `json:"id"`
	TaskType     int    `json:"task_type"`
	TaskData     string `json:"task_data"`
	HardForkName string `json:"hard_fork_name"`
}

// Record is a persisted task along with the time prover got it from coordinator
type Record struct {
	Task        Task  `json:"task"`
	GetTaskTime int64 `json:"get_task_time"`
}

// TaskStore keeps task records keyed by task id. All methods are synchronous and safe for
// concurrent use, so a single *TaskStore is shared by pointer between producers and evictor.
// The owner opens and closes it, other users never close it. A call racing with Close may pass
// the closed check and get the engine's own error wrapped in ErrStorageWrite or ErrStorageRead
// instead of ErrClosed.
type TaskStore struct {
	engine   Engine
	location string
	closed   atomic.Bool
}

// Open makes TaskStore with engine of the given kind rooted at location directory.
// Errors are wrapped with ErrStorageUnavailable and should be treated as fatal by the caller.
func Open(location string, kind EngineKind) (*TaskStore, error) {
	var engine Engine
	var err error
	switch kind {
	case EngineBadger, "":
		kind = EngineBadger
		engine, err = NewBadger(location)
	case EngineSQLite:
		engine, err = NewSQLite(location)
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrStorageUnavailable, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: can't open %s at %s: %w", ErrStorageUnavailable, kind, location, err)
	}
	return New(engine, location), nil
}

// New makes TaskStore on top of already opened engine
func New(engine Engine, location string) *TaskStore {
	return &TaskStore{engine: engine, location: location}
}

// Put inserts or replaces the record stored under rec.Task.ID
func (s *TaskStore) Put(rec Record) error {
	if s.closed.Load() {
		return ErrClosed
	}
	id := rec.Task.ID
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: %q is not valid utf-8", ErrInvalidID, id)
	}

	data, err := marshal(rec)
	if err != nil {
		return fmt.Errorf("%w, task %s: %w", ErrSerialization, id, err)
	}
	if err := s.engine.Set([]byte(id), data); err != nil {
		return fmt.Errorf("%w, task %s: %w", ErrStorageWrite, id, err)
	}
	return nil
}

// GetLast returns the record with the greatest task id, nil if store is empty
func (s *TaskStore) GetLast() (*Record, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	key, value, err := s.engine.Last()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	if len(key) == 0 {
		return nil, nil
	}
	if !utf8.Valid(key) {
		return nil, fmt.Errorf("%w: key %q is not valid utf-8", ErrDeserialization, key)
	}

	id := string(key)
	rec := Record{}
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("%w, task %s: %w", ErrDeserialization, id, err)
	}
	log.Printf("[INFO] get last task, task_id: %s", id)
	return &rec, nil
}

// Delete removes the record for id. Missing id is not an error, existed reports if it was stored.
func (s *TaskStore) Delete(id string) (existed bool, err error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	if existed, err = s.engine.Delete([]byte(id)); err != nil {
		return false, fmt.Errorf("%w, task %s: %w", ErrStorageWrite, id, err)
	}
	return existed, nil
}

// Len returns number of stored records
func (s *TaskStore) Len() (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	n, err := s.engine.Len()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	return n, nil
}

// Compact reclaims space left by replaced and deleted records
func (s *TaskStore) Compact() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.engine.Compact(); err != nil {
		return fmt.Errorf("%w: compact: %w", ErrStorageWrite, err)
	}
	return nil
}

// Location returns directory of the store
func (s *TaskStore) Location() string {
	return s.location
}

// Close releases the engine. Repeated calls are no-op.
func (s *TaskStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.engine.Close()
}

func (s *TaskStore) String() string {
	return fmt.Sprintf("location:%s, closed:%v", s.location, s.closed.Load())
}

// SequenceID formats seq as a zero-padded id, so byte order of ids matches numeric order
func SequenceID(seq uint64) string {
	return fmt.Sprintf("%020d", seq)
}
