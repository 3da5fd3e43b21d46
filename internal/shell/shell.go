package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"smallsh/internal/config"
	"smallsh/internal/history"
	"smallsh/internal/job"
	"smallsh/internal/parser"
)

type Shell struct {
	config   *config.Config
	history  *history.History
	state    *State
	parser   *parser.Parser
	launcher *Launcher
	reaper   *Reaper
	signals  *SignalManager
	reader   LineReader
	out      io.Writer
	log      *zap.Logger
}

// New builds a shell on the given terminal. The line editor is used only
// when the terminal's input is a tty and plain mode is off.
func New(cfg *config.Config, t Terminal, log *zap.Logger) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile, cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	var reader LineReader
	if !cfg.Plain && term.IsTerminal(int(t.In.Fd())) {
		reader, err = newReadlineReader(cfg.Prompt, hist.GetAll(), cfg.HistorySize)
		if err != nil {
			return nil, err
		}
	} else {
		reader = newPlainReader(cfg.Prompt, t.In, t.Out)
	}

	return newShell(cfg, hist, reader, t, log), nil
}

func newShell(cfg *config.Config, hist *history.History, reader LineReader, t Terminal, log *zap.Logger) *Shell {
	state := NewState(job.NewTable())
	return &Shell{
		config:   cfg,
		history:  hist,
		state:    state,
		parser:   parser.New(os.Getpid(), cfg.MaxArgs, cfg.MaxLine),
		launcher: NewLauncher(state, t, cfg.NullDevice, log),
		reaper:   NewReaper(state, t.Out, log),
		signals:  NewSignalManager(state, reader.Notify, log),
		reader:   reader,
		out:      t.Out,
		log:      log,
	}
}

func (s *Shell) State() *State {
	return s.state
}

// Run is the prompt loop. It returns the process exit code once the exit
// builtin runs or input ends.
func (s *Shell) Run() int {
	s.signals.Start()
	defer s.signals.Stop()
	defer s.reader.Close()

	for s.state.Running() {
		line, err := s.reader.Readline()
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			s.exit()
		case err != nil:
			s.log.Error("reading input", zap.Error(err))
			s.exit()
		default:
			s.Execute(line)
		}
		s.reaper.Sweep()
	}
	return 0
}

// Execute handles a single input line: builtins run in-process, anything
// else is launched as a child.
func (s *Shell) Execute(line string) {
	if strings.TrimSpace(line) != "" {
		if err := s.history.Add(line); err != nil {
			s.log.Warn("saving history", zap.Error(err))
		}
	}

	cmd, err := s.parser.Parse(line)
	if err != nil {
		fmt.Fprintf(s.out, "smallsh: %v\n", err)
		return
	}
	if cmd == nil {
		return
	}

	if s.executeBuiltin(cmd) {
		return
	}
	_ = s.launcher.Launch(cmd)
}
