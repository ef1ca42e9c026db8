package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todometer/internal/app"
	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/testutil"
)

func execute(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(cli.WithApp(context.Background(), a))
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"tasklist", "task", "checklist", "watch"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_EndToEnd(t *testing.T) {
	a := app.New(testutil.SetupTestDB(t))
	defer func() { _ = a.Close() }()

	out, err := execute(t, a, "tasklist", "create", "--name", "Trip", "--quiet")
	require.NoError(t, err)
	listID := strings.TrimSpace(out)

	_, err = execute(t, a, "tasklist", "select", "Trip")
	require.NoError(t, err)

	out, err = execute(t, a, "task", "create", "--title", "Pack", "--item", "socks", "--quiet")
	require.NoError(t, err)
	taskID := strings.TrimSpace(out)

	out, err = execute(t, a, "task", "ls", "--list", listID, "--quiet")
	require.NoError(t, err)
	assert.Equal(t, taskID, strings.TrimSpace(out))

	out, err = execute(t, a, "checklist", "ls", taskID, "--quiet")
	require.NoError(t, err)
	itemID := strings.TrimSpace(out)

	_, err = execute(t, a, "checklist", "check", itemID)
	require.NoError(t, err)

	out, err = execute(t, a, "task", "show", taskID, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"effective_state":"in_progress"`)
}

func TestRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	a := app.New(testutil.SetupTestDB(t))
	defer func() { _ = a.Close() }()

	_, err := execute(t, a, "task", "ls", "--bogus")
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
