package shell

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Status is how a child ended: an exit code or a terminating signal.
type Status struct {
	signaled bool
	code     int
}

func Exited(code int) Status {
	return Status{code: code}
}

func Signaled(sig unix.Signal) Status {
	return Status{signaled: true, code: int(sig)}
}

func FromWaitStatus(ws unix.WaitStatus) Status {
	if ws.Signaled() {
		return Signaled(ws.Signal())
	}
	return Exited(ws.ExitStatus())
}

func (s Status) Signaled() bool {
	return s.signaled
}

// Code is the exit code, or the signal number when Signaled.
func (s Status) Code() int {
	return s.code
}

func (s Status) String() string {
	if s.signaled {
		return fmt.Sprintf("terminated by signal %d", s.code)
	}
	return fmt.Sprintf("exit value %d", s.code)
}
