package shell

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

type wait4Func func(pid int, ws *unix.WaitStatus, options int, rusage *unix.Rusage) (int, error)

// Reaper collects finished background children without blocking.
type Reaper struct {
	state *State
	out   io.Writer
	wait4 wait4Func
	log   *zap.Logger
}

func NewReaper(state *State, out io.Writer, log *zap.Logger) *Reaper {
	return &Reaper{
		state: state,
		out:   out,
		wait4: unix.Wait4,
		log:   log,
	}
}

// Sweep reaps every child that has terminated, reports each one and
// drops it from the job table. It returns the number reaped. The last
// foreground status is left untouched.
func (r *Reaper) Sweep() int {
	reaped := 0
	for {
		var ws unix.WaitStatus
		pid, err := r.wait4(-1, &ws, unix.WNOHANG, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || pid <= 0 {
			// ECHILD: nothing left to wait for.
			return reaped
		}
		reaped++

		status := FromWaitStatus(ws)
		tracked := r.state.Jobs.Remove(pid)
		fmt.Fprintf(r.out, "background pid %d is done: %s\n", pid, status)
		r.log.Debug("reaped",
			zap.Int("pid", pid),
			zap.Stringer("status", status),
			zap.Bool("tracked", tracked),
		)
	}
}
