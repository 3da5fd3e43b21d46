package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"smallsh/internal/parser"
)

// FailureCode is the status recorded when a child could not be started.
const FailureCode = 1

var (
	ErrRedirect = errors.New("cannot open redirect target")
	ErrNotFound = errors.New("command not found")
)

// RedirectError reports a redirect target that could not be opened.
type RedirectError struct {
	Path string
	Dir  string
	Err  error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("cannot open %s for %s", e.Path, e.Dir)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

func (e *RedirectError) Is(target error) bool {
	return target == ErrRedirect
}

// Terminal is the shell's own standard streams.
type Terminal struct {
	In  *os.File
	Out *os.File
	Err *os.File
}

// Process is a started child that has not been waited on yet.
type Process struct {
	Pid  int
	proc *os.Process
}

// Wait blocks until the child terminates. A child stopped by the
// terminal is resumed and waited on again.
func (p *Process) Wait() (Status, error) {
	defer p.proc.Release()

	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(p.Pid, &ws, unix.WUNTRACED, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return Status{}, fmt.Errorf("waiting for %d: %w", p.Pid, err)
		}
		if ws.Stopped() {
			if err := unix.Kill(p.Pid, unix.SIGCONT); err != nil {
				return Status{}, fmt.Errorf("resuming %d: %w", p.Pid, err)
			}
			continue
		}
		return FromWaitStatus(ws), nil
	}
}

type stdio struct {
	in, out *os.File
	opened  []*os.File
}

func (s *stdio) close() {
	for _, f := range s.opened {
		f.Close()
	}
}

// Launcher starts external programs in the foreground or background.
type Launcher struct {
	state      *State
	term       Terminal
	out        io.Writer
	nullDevice string
	log        *zap.Logger
}

func NewLauncher(state *State, term Terminal, nullDevice string, log *zap.Logger) *Launcher {
	return &Launcher{
		state:      state,
		term:       term,
		out:        term.Out,
		nullDevice: nullDevice,
		log:        log,
	}
}

// Launch runs cmd. Foreground-only mode turns a background request into
// a foreground run; the flag is read here, once per command.
func (l *Launcher) Launch(cmd *parser.Command) error {
	background := cmd.Background && !l.state.ForegroundOnly()

	proc, err := l.Start(cmd, background)
	if err != nil {
		fmt.Fprintln(l.out, err)
		l.log.Debug("launch failed", zap.String("cmd", cmd.String()), zap.Error(err))
		if !background {
			l.state.SetLastStatus(Exited(FailureCode))
		}
		return err
	}

	l.log.Debug("launched",
		zap.Int("pid", proc.Pid),
		zap.String("cmd", cmd.String()),
		zap.Bool("background", background),
	)

	if background {
		if err := l.state.Jobs.Add(proc.Pid); err != nil {
			l.log.Warn("tracking background job", zap.Error(err))
		}
		fmt.Fprintf(l.out, "background pid is %d\n", proc.Pid)
		proc.proc.Release()
		return nil
	}

	return l.waitForeground(proc)
}

// waitForeground blocks on proc and records its status. A failed wait is
// reported and leaves the last status as it was.
func (l *Launcher) waitForeground(proc *Process) error {
	status, err := proc.Wait()
	if err != nil {
		fmt.Fprintf(l.out, "smallsh: %v\n", err)
		l.log.Error("foreground wait", zap.Int("pid", proc.Pid), zap.Error(err))
		return err
	}
	l.state.SetLastStatus(status)
	if status.Signaled() {
		fmt.Fprintln(l.out, status)
	}
	l.log.Debug("foreground done", zap.Int("pid", proc.Pid), zap.Stringer("status", status))
	return nil
}

// Start spawns cmd with the redirection policy of the given mode and
// returns without waiting. Redirect files are closed in the shell once
// the child holds them.
func (l *Launcher) Start(cmd *parser.Command, background bool) (*Process, error) {
	streams, err := l.openStdio(cmd, background)
	if err != nil {
		return nil, err
	}
	defer streams.close()

	c := exec.Command(cmd.Name(), cmd.Args[1:]...)
	if c.Err != nil {
		if errors.Is(c.Err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", cmd.Name(), ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", cmd.Name(), c.Err)
	}
	c.Stdin = streams.in
	c.Stdout = streams.out
	c.Stderr = l.term.Err

	if err := c.Start(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return &Process{Pid: c.Process.Pid, proc: c.Process}, nil
}

// openStdio applies explicit redirects. In the background, streams
// without one go to the null device instead of the terminal.
func (l *Launcher) openStdio(cmd *parser.Command, background bool) (*stdio, error) {
	s := &stdio{in: l.term.In, out: l.term.Out}

	inPath := cmd.Input
	if inPath == "" && background {
		inPath = l.nullDevice
	}
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, &RedirectError{Path: inPath, Dir: "input", Err: err}
		}
		s.in = f
		s.opened = append(s.opened, f)
	}

	outPath := cmd.Output
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if outPath == "" && background {
		outPath = l.nullDevice
		flags = os.O_WRONLY
	}
	if outPath != "" {
		f, err := os.OpenFile(outPath, flags, 0o666)
		if err != nil {
			s.close()
			return nil, &RedirectError{Path: outPath, Dir: "output", Err: err}
		}
		s.out = f
		s.opened = append(s.opened, f)
	}

	return s, nil
}
