package shell

import (
	"sync"
	"sync/atomic"

	"smallsh/internal/job"
)

// State is the shell-wide mutable state. foregroundOnly is written by
// the signal goroutine and read at every launch.
type State struct {
	foregroundOnly atomic.Bool

	mu         sync.Mutex
	lastStatus Status
	running    bool

	Jobs *job.Table
}

func NewState(jobs *job.Table) *State {
	return &State{
		running: true,
		Jobs:    jobs,
	}
}

func (s *State) ForegroundOnly() bool {
	return s.foregroundOnly.Load()
}

// ToggleForegroundOnly flips the mode and returns the new value.
func (s *State) ToggleForegroundOnly() bool {
	for {
		old := s.foregroundOnly.Load()
		if s.foregroundOnly.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// LastStatus is the status of the most recent foreground child.
func (s *State) LastStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

func (s *State) SetLastStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = st
}

func (s *State) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}
