// Package parser turns one input line into a Command.
//
// Tokens are separated by whitespace only. The tokens "<" and ">" take the
// following token as a redirect path, a final "&" requests background
// execution, and every "$$" in the raw line becomes the shell's pid.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

const (
	PidPlaceholder = "$$"
	CommentMarker  = "#"

	redirectIn  = "<"
	redirectOut = ">"
	background  = "&"
)

var (
	ErrMissingInput  = errors.New("missing input filename")
	ErrMissingOutput = errors.New("missing output filename")
	ErrTooManyArgs   = errors.New("number of arguments exceeded buffer")
	ErrLineTooLong   = errors.New("input exceeded buffer size")
)

// Command is a single parsed request. Args[0] is the program name.
type Command struct {
	Args       []string
	Input      string
	Output     string
	Background bool
}

func (c *Command) Name() string {
	return c.Args[0]
}

func (c *Command) String() string {
	s := shellquote.Join(c.Args...)
	if c.Input != "" {
		s += " < " + shellquote.Join(c.Input)
	}
	if c.Output != "" {
		s += " > " + shellquote.Join(c.Output)
	}
	if c.Background {
		s += " &"
	}
	return s
}

// Parser holds the values a line is parsed against.
type Parser struct {
	Pid     int
	MaxArgs int
	MaxLine int
}

func New(pid, maxArgs, maxLine int) *Parser {
	return &Parser{Pid: pid, MaxArgs: maxArgs, MaxLine: maxLine}
}

// Expand replaces every "$$" in line with the pid.
func (p *Parser) Expand(line string) string {
	return strings.ReplaceAll(line, PidPlaceholder, strconv.Itoa(p.Pid))
}

// Parse returns nil and no error for blank lines and comments.
func (p *Parser) Parse(line string) (*Command, error) {
	if p.MaxLine > 0 && len(line) > p.MaxLine {
		return nil, ErrLineTooLong
	}

	tokens := strings.Fields(p.Expand(line))
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], CommentMarker) {
		return nil, nil
	}

	cmd := &Command{}
	if n := len(tokens); n > 1 && tokens[n-1] == background {
		cmd.Background = true
		tokens = tokens[:n-1]
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case redirectIn:
			if i+1 >= len(tokens) {
				return nil, ErrMissingInput
			}
			i++
			cmd.Input = tokens[i]
		case redirectOut:
			if i+1 >= len(tokens) {
				return nil, ErrMissingOutput
			}
			i++
			cmd.Output = tokens[i]
		default:
			cmd.Args = append(cmd.Args, tokens[i])
			if p.MaxArgs > 0 && len(cmd.Args) > p.MaxArgs {
				return nil, ErrTooManyArgs
			}
		}
	}

	// "< in &" leaves nothing to run.
	if len(cmd.Args) == 0 {
		return nil, nil
	}
	return cmd, nil
}
