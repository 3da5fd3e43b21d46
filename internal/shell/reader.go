package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"golang.org/x/sys/unix"
)

// LineReader prompts for and returns one input line at a time.
type LineReader interface {
	// Readline returns io.EOF when input ends.
	Readline() (string, error)
	// Notify writes an asynchronous message without corrupting the prompt.
	Notify(msg string)
	Close() error
}

type readlineReader struct {
	rl *readline.Instance
}

// newReadlineReader seeds the editor with past lines. Ctrl-Z never
// reaches the editor; it is raised as SIGTSTP so the signal manager
// sees it like any other stop request.
func newReadlineReader(prompt string, past []string, limit int) (*readlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt,
		HistoryLimit: limit,
		FuncFilterInputRune: func(r rune) (rune, bool) {
			if r == readline.CharCtrlZ {
				_ = unix.Kill(unix.Getpid(), unix.SIGTSTP)
				return r, false
			}
			return r, true
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}
	for _, line := range past {
		_ = rl.SaveHistory(line)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) Readline() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

func (r *readlineReader) Notify(msg string) {
	fmt.Fprint(r.rl.Stdout(), strings.TrimPrefix(msg, "\n"))
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// plainReader is used when input is not a terminal.
type plainReader struct {
	prompt string
	in     *bufio.Reader
	out    io.Writer
	mu     sync.Mutex
}

func newPlainReader(prompt string, in io.Reader, out io.Writer) *plainReader {
	return &plainReader{
		prompt: prompt,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (r *plainReader) Readline() (string, error) {
	r.mu.Lock()
	fmt.Fprint(r.out, r.prompt)
	r.mu.Unlock()

	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Notify reprints the prompt after msg.
func (r *plainReader) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, msg+r.prompt)
}

func (r *plainReader) Close() error {
	return nil
}
