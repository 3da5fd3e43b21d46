package shell

import (
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"smallsh/internal/job"
)

type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) add(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notices) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.msgs...)
}

func TestToggleForegroundOnly(t *testing.T) {
	state := NewState(job.NewTable())
	var n notices
	m := NewSignalManager(state, n.add, zap.NewNop())

	require.True(t, m.Toggle())
	require.True(t, state.ForegroundOnly())
	require.False(t, m.Toggle())
	require.False(t, state.ForegroundOnly())

	require.Equal(t, []string{
		"\nEntering foreground-only mode (& is ignored)\n",
		"\nExiting foreground-only mode\n",
	}, n.all())
}

func TestSignalDelivery(t *testing.T) {
	state := NewState(job.NewTable())
	var n notices
	m := NewSignalManager(state, n.add, zap.NewNop())
	m.Start()
	defer m.Stop()

	// The shell survives an interrupt and its state is unchanged.
	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGINT))
	time.Sleep(50 * time.Millisecond)
	require.False(t, state.ForegroundOnly())
	require.Empty(t, n.all())

	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGTSTP))
	require.Eventually(t, state.ForegroundOnly, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(n.all()) == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestPlainReaderNotifyReprintsPrompt(t *testing.T) {
	ts := newTestShell(t, "")
	ts.reader.Notify(exitForegroundOnly)
	require.Equal(t, "\nExiting foreground-only mode\n: ", ts.output(t))
}

func TestChildrenGetDefaultInterrupt(t *testing.T) {
	ts := newTestShell(t, "")
	ts.signals.Start()
	defer ts.signals.Stop()

	require.NoError(t, ts.launcher.Launch(shCommand("kill -INT $$; exit 0")))
	require.Equal(t, Signaled(unix.SIGINT), ts.state.LastStatus())
	require.Equal(t, "terminated by signal 2\n", ts.output(t))

	cmd := shCommand("kill -INT $$; exit 0")
	cmd.Background = true
	require.NoError(t, ts.launcher.Launch(cmd))
	ids := ts.state.Jobs.IDs()
	require.Len(t, ids, 1)
	pid := ids[0]

	require.Eventually(t, func() bool {
		ts.reaper.Sweep()
		return !ts.state.Jobs.Contains(pid)
	}, 5*time.Second, 10*time.Millisecond)
	require.Contains(t, ts.output(t),
		"background pid "+strconv.Itoa(pid)+" is done: terminated by signal 2\n")
}
