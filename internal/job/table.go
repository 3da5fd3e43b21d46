// Package job tracks the background children the shell has not yet reaped.
package job

import (
	"container/list"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

var ErrDuplicate = errors.New("job already tracked")

// KillFunc delivers sig to pid.
type KillFunc func(pid int, sig unix.Signal) error

// Table keeps job ids in launch order with constant-time removal.
type Table struct {
	mu    sync.Mutex
	order *list.List
	index map[int]*list.Element
	kill  KillFunc
}

func NewTable() *Table {
	return NewTableWithKill(unix.Kill)
}

func NewTableWithKill(kill KillFunc) *Table {
	return &Table{
		order: list.New(),
		index: make(map[int]*list.Element),
		kill:  kill,
	}
}

func (t *Table) Add(pid int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index[pid]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicate, pid)
	}
	t.index[pid] = t.order.PushBack(pid)
	return nil
}

// Remove drops pid and reports whether it was tracked.
func (t *Table) Remove(pid int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	elem, ok := t.index[pid]
	if !ok {
		return false
	}
	t.order.Remove(elem)
	delete(t.index, pid)
	return true
}

func (t *Table) Contains(pid int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.index[pid]
	return ok
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.index)
}

// IDs returns the tracked ids oldest first.
func (t *Table) IDs() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, 0, len(t.index))
	for e := t.order.Front(); e != nil; e = e.Next() {
		ids = append(ids, e.Value.(int))
	}
	return ids
}

// TerminateAll sends sig to every tracked job and empties the table.
// Jobs that already exited (ESRCH) are not errors.
func (t *Table) TerminateAll(sig unix.Signal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	for e := t.order.Front(); e != nil; e = e.Next() {
		pid := e.Value.(int)
		if err := t.kill(pid, sig); err != nil && !errors.Is(err, unix.ESRCH) {
			errs = append(errs, fmt.Errorf("signalling job %d: %w", pid, err))
		}
	}
	t.order.Init()
	clear(t.index)
	return errors.Join(errs...)
}
