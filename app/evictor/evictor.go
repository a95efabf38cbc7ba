// Package evictor removes cached tasks once coordinator confirms their proofs were submitted
package evictor

import (
	log "github.com/go-pkgz/lgr"

	"github.com/umputun/taskcache/app/coordinator"
)

//go:generate moq -out mocks/task_deleter.go -pkg mocks -skip-ensure -fmt goimports . TaskDeleter

// TaskDeleter removes a task by id, implemented by store.TaskStore
type TaskDeleter interface {
	Delete(id string) (existed bool, err error)
}

// Evictor is a coordinator.Listener deleting the submitted task from the task store.
// It doesn't own the store and never closes it. Delete failures are logged and dropped,
// a stale record is harmless and submission flow must not depend on cache cleanup.
type Evictor struct {
	store  TaskDeleter
	logger log.L
}

// New makes Evictor for the store, nil logger means default lgr logger
func New(store TaskDeleter, logger log.L) *Evictor {
	if logger == nil {
		logger = log.Default()
	}
	return &Evictor{store: store, logger: logger}
}

// OnProofSubmitted deletes the task from req
func (e *Evictor) OnProofSubmitted(req *coordinator.SubmitProofRequest) {
	existed, err := e.store.Delete(req.TaskID)
	if err != nil {
		e.logger.Logf("[ERROR] delete task %s from task cache failed, %v", req.TaskID, err)
		return
	}
	if !existed {
		e.logger.Logf("[DEBUG] task %s was not in task cache", req.TaskID)
	}
	e.logger.Logf("[INFO] delete task from task cache successfully, task_id: %s", req.TaskID)
}
