package adb

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pkgmigrate/internal/testutil"
)

func TestExecRunner_CapturesStdout(t *testing.T) {
	bin := testutil.WriteScript(t, t.TempDir(), "adb", `echo "args: $@"`)

	var trace bytes.Buffer
	out, err := ExecRunner{Trace: &trace}.Run(context.Background(), bin, "-s", "SERIAL1", "shell", "pm", "path", "com.a")
	require.NoError(t, err)
	require.Equal(t, "args: -s SERIAL1 shell pm path com.a\n", string(out))
	require.Contains(t, trace.String(), "-s SERIAL1 shell pm path com.a")
}

func TestExecRunner_WrapsFailure(t *testing.T) {
	bin := testutil.WriteScript(t, t.TempDir(), "adb", `echo "error: device 'X' not found" >&2
exit 1`)

	_, err := ExecRunner{}.Run(context.Background(), bin, "-s", "X", "pull", "/a", "/b")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "error: device 'X' not found", cmdErr.Stderr)
	require.Equal(t, []string{bin, "-s", "X", "pull", "/a", "/b"}, cmdErr.Args)
	require.Contains(t, err.Error(), "not found")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
}

func TestExecRunner_Timeout(t *testing.T) {
	bin := testutil.WriteScript(t, t.TempDir(), "adb", "exec sleep 5")

	_, err := ExecRunner{Timeout: 50 * time.Millisecond}.Run(context.Background(), bin, "wait-for-device")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_WithExecRunner(t *testing.T) {
	bin := testutil.WriteScript(t, t.TempDir(), "adb", `printf 'package:com.a\npackage:com.b\n'`)
	c := NewClient(bin, ExecRunner{})

	out, err := c.ListPackages(context.Background(), "SERIAL1", true)
	require.NoError(t, err)
	require.Equal(t, "package:com.a\npackage:com.b\n", out)
}
