package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"smallsh/internal/parser"
)

func (s *Shell) executeBuiltin(cmd *parser.Command) bool {
	switch cmd.Name() {
	case "cd":
		s.changeDirectory(cmd.Args[1:])
	case "status":
		fmt.Fprintln(s.out, s.state.LastStatus())
	case "exit":
		s.exit()
	default:
		return false
	}
	return true
}

func (s *Shell) changeDirectory(args []string) {
	dir := s.config.HomeDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		dir = filepath.Join(s.config.HomeDir, dir[1:])
	}

	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(s.out, "%s: directory not found\n", dir)
		s.log.Debug("cd failed", zap.String("dir", dir), zap.Error(err))
	}
}

// exit terminates every tracked job and ends the main loop.
func (s *Shell) exit() {
	pids := s.state.Jobs.IDs()
	if err := s.state.Jobs.TerminateAll(unix.SIGTERM); err != nil {
		s.log.Warn("terminating jobs", zap.Error(err))
	}
	s.log.Debug("exiting", zap.Ints("terminated", pids))
	s.state.Stop()
}
