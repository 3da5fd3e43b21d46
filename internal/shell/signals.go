package shell

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

const (
	enterForegroundOnly = "\nEntering foreground-only mode (& is ignored)\n"
	exitForegroundOnly  = "\nExiting foreground-only mode\n"
)

// SignalManager owns the shell's SIGINT and SIGTSTP handling. SIGINT is
// caught and dropped rather than ignored, so exec restores the default
// disposition in every child. SIGTSTP toggles foreground-only mode.
type SignalManager struct {
	state  *State
	notify func(msg string)
	log    *zap.Logger

	signalChan chan os.Signal
	done       chan struct{}
}

func NewSignalManager(state *State, notify func(string), log *zap.Logger) *SignalManager {
	return &SignalManager{
		state:  state,
		notify: notify,
		log:    log,
	}
}

func (m *SignalManager) Start() {
	m.signalChan = make(chan os.Signal, 1)
	m.done = make(chan struct{})
	signal.Notify(m.signalChan, syscall.SIGINT, syscall.SIGTSTP)
	go m.handleSignals()
}

// Stop restores default handling and waits for the handler to exit.
func (m *SignalManager) Stop() {
	if m.signalChan == nil {
		return
	}
	signal.Stop(m.signalChan)
	close(m.signalChan)
	<-m.done
	m.signalChan = nil
}

func (m *SignalManager) handleSignals() {
	defer close(m.done)
	for sig := range m.signalChan {
		switch sig {
		case syscall.SIGINT:
			m.log.Debug("interrupt ignored")
		case syscall.SIGTSTP:
			m.Toggle()
		}
	}
}

// Toggle flips foreground-only mode and announces the change.
func (m *SignalManager) Toggle() bool {
	on := m.state.ToggleForegroundOnly()
	if on {
		m.notify(enterForegroundOnly)
	} else {
		m.notify(exitForegroundOnly)
	}
	m.log.Info("foreground-only mode changed", zap.Bool("enabled", on))
	return on
}
