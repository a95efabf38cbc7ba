// Package coordinator delivers coordinator notifications to registered listeners
package coordinator

import (
	"context"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"
)

// SubmitProofRequest is sent by coordinator once a proof for the task was submitted and accepted
type SubmitProofRequest struct {
	UUID        string `json:"uuid"`
	TaskID      string `json:"task_id" jsonschema:"required,minLength=1"`
	TaskType    int    `json:"task_type"`
	Status      int    `json:"status"`
	Proof       string `json:"proof,omitempty"`
	FailureType int    `json:"failure_type,omitempty"`
	FailureMsg  string `json:"failure_msg,omitempty"`
}

// Listener gets coordinator notifications. The request must not be modified or retained.
type Listener interface {
	OnProofSubmitted(req *SubmitProofRequest)
}

// ListenerFunc adapts a func to Listener
type ListenerFunc func(req *SubmitProofRequest)

// OnProofSubmitted calls f(req)
func (f ListenerFunc) OnProofSubmitted(req *SubmitProofRequest) { f(req) }

// Dispatcher passes every notification to all registered listeners. Listeners called concurrently,
// up to Concurrency at a time, and OnProofSubmitted returns after all of them are done.
type Dispatcher struct {
	Concurrency int

	mu        sync.RWMutex
	listeners []Listener
}

// Register adds listener
func (d *Dispatcher) Register(l Listener) {
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// OnProofSubmitted delivers req to all listeners, panic in a listener is logged and doesn't affect others
func (d *Dispatcher) OnProofSubmitted(req *SubmitProofRequest) {
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	concur := d.Concurrency
	if concur <= 0 {
		concur = 1
	}

	gr := syncs.NewSizedGroup(concur)
	for _, l := range listeners {
		gr.Go(func(context.Context) {
			defer func() {
				if x := recover(); x != nil {
					log.Printf("[WARN] listener panic on proof submitted for task %s, %v", req.TaskID, x)
				}
			}()
			l.OnProofSubmitted(req)
		})
	}
	gr.Wait()
}

// Len returns number of registered listeners
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}
