package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"smallsh/internal/config"
	"smallsh/internal/logging"
	"smallsh/internal/shell"
)

type options struct {
	configFile string
	logLevel   string
	logFile    string
	plain      bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("smallsh", pflag.ContinueOnError)
	fs.StringVarP(&opts.configFile, "config", "c", config.DefaultPath(), "path to the YAML config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&opts.plain, "plain", false,
		"read input without the line editor; use it when interactive programs lose their first keystroke")
	return fs
}

// apply lets command-line values override the config file.
func (o *options) apply(cfg *config.Config) {
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.plain {
		cfg.Plain = true
	}
}

func main() {
	var opts options
	if err := newFlagSet(&opts).Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	opts.apply(cfg)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("session", uuid.NewString()))

	s, err := shell.New(cfg, shell.Terminal{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing shell: %v\n", err)
		os.Exit(1)
	}

	code := s.Run()
	_ = logger.Sync()
	os.Exit(code)
}
