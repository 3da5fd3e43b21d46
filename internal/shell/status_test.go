package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestStatusFromWaitStatus(t *testing.T) {
	testCases := []struct {
		name     string
		ws       unix.WaitStatus
		expected string
		signaled bool
	}{
		{"clean exit", unix.WaitStatus(0), "exit value 0", false},
		{"exit code", unix.WaitStatus(2 << 8), "exit value 2", false},
		{"killed", unix.WaitStatus(unix.SIGKILL), "terminated by signal 9", true},
		{"interrupted", unix.WaitStatus(unix.SIGINT), "terminated by signal 2", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := FromWaitStatus(tc.ws)
			require.Equal(t, tc.expected, st.String())
			require.Equal(t, tc.signaled, st.Signaled())
		})
	}
}

func TestStateToggle(t *testing.T) {
	state := NewState(nil)
	require.True(t, state.Running())
	require.False(t, state.ForegroundOnly())
	require.True(t, state.ToggleForegroundOnly())
	require.False(t, state.ToggleForegroundOnly())

	state.Stop()
	require.False(t, state.Running())
}
