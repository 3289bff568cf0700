package client

import (
	"fmt"
	"sync"
)

type WorkflowState int

const (
	Idle WorkflowState = iota
	Editing
	Submitting
	Succeeded
	Failed
)

func (s WorkflowState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("WorkflowState(%d)", int(s))
	}
}

var transitions = map[WorkflowState][]WorkflowState{
	Idle:       {Editing},
	Editing:    {Submitting, Idle},
	Submitting: {Succeeded, Failed},
	Succeeded:  {Idle},
	Failed:     {Editing, Idle},
}

// Workflow tracks one form from opening to submission. Controls bound to it
// are disabled while Busy.
type Workflow struct {
	Name string

	mu    sync.Mutex
	state WorkflowState
	err   error
}

func NewWorkflow(name string) *Workflow {
	return &Workflow{Name: name}
}

func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) Busy() bool { return w.State() == Submitting }

// Err is the failure from the last submission, if it failed.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Workflow) transition(to WorkflowState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, allowed := range transitions[w.state] {
		if allowed == to {
			w.state = to
			if to != Failed {
				w.err = nil
			}
			return nil
		}
	}
	return fmt.Errorf("workflow %s: cannot go from %s to %s", w.Name, w.state, to)
}

func (w *Workflow) Open() error  { return w.transition(Editing) }
func (w *Workflow) Close() error { return w.transition(Idle) }

// Submit runs fn while the workflow is Submitting and settles in Succeeded or
// Failed depending on its result. The returned error is fn's.
func (w *Workflow) Submit(fn func() error) error {
	if err := w.transition(Submitting); err != nil {
		return err
	}
	if err := fn(); err != nil {
		w.mu.Lock()
		w.state, w.err = Failed, err
		w.mu.Unlock()
		return err
	}
	return w.transition(Succeeded)
}
