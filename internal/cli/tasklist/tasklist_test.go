package tasklist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipkg "github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/testutil"
	"github.com/thenoetrevino/todometer/internal/testutil/cli"
	"github.com/thenoetrevino/todometer/internal/types"
)

func TestCreateTaskList(t *testing.T) {
	db, app := cli.SetupCLITest(t)

	t.Run("quiet prints the id", func(t *testing.T) {
		out, _, err := cli.ExecuteCLICommand(t, app, CreateCmd(), "--name", "Groceries", "--quiet")
		require.NoError(t, err)

		id := strings.TrimSpace(out)
		var name string
		require.NoError(t, db.QueryRowContext(context.Background(),
			"SELECT name FROM task_lists WHERE id = ?", id).Scan(&name))
		assert.Equal(t, "Groceries", name)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := cli.ExecuteCLICommand(t, app, CreateCmd(), "--name", "Work", "--json")
		require.NoError(t, err)
		assert.NotEmpty(t, cli.JSONData(t, out)["id"])
	})

	t.Run("description from stdin", func(t *testing.T) {
		out, _, err := cli.ExecuteCLICommandWithInput(t, app, CreateCmd(), "from stdin\n",
			"--name", "Piped", "--description", "-", "--quiet")
		require.NoError(t, err)

		var description string
		require.NoError(t, db.QueryRowContext(context.Background(),
			"SELECT description FROM task_lists WHERE id = ?", strings.TrimSpace(out)).Scan(&description))
		assert.Equal(t, "from stdin", description)
	})

	t.Run("missing name", func(t *testing.T) {
		_, stderr, err := cli.ExecuteCLICommand(t, app, CreateCmd())
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitValidation, clipkg.ExitCode(err))
		assert.Contains(t, stderr, "name must not be empty")
		assert.Contains(t, stderr, "Suggestion:")
	})

	t.Run("unexpected argument", func(t *testing.T) {
		_, _, err := cli.ExecuteCLICommand(t, app, CreateCmd(), "extra", "--name", "X")
		assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))
	})
}

func TestListTaskLists(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	defaultID := testutil.DefaultTaskListID(t, db)
	testutil.CreateTestTaskList(t, db, "Work")

	out, _, err := cli.ExecuteCLICommand(t, app, ListCmd(), "--json")
	require.NoError(t, err)

	lists := cli.JSONList(t, out)
	require.Len(t, lists, 2)
	first := lists[0].(map[string]any)
	assert.Equal(t, defaultID.String(), first["id"])
	assert.Equal(t, true, first["selected"])
	assert.Equal(t, false, lists[1].(map[string]any)["selected"])

	out, _, err = cli.ExecuteCLICommand(t, app, ListCmd(), "--quiet")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 2)

	out, _, err = cli.ExecuteCLICommand(t, app, ListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 task lists")
	assert.Contains(t, out, "* ")
}

func TestListTaskLists_Empty(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	_, err := db.ExecContext(context.Background(), "DELETE FROM task_lists")
	require.NoError(t, err)

	out, _, err := cli.ExecuteCLICommand(t, app, ListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No task lists found")
}

func TestShowTaskList(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	listID := testutil.CreateTestTaskList(t, db, "Work")
	testutil.CreateTestTask(t, db, listID, "Ship it")

	out, _, err := cli.ExecuteCLICommand(t, app, ShowCmd(), "work", "--json")
	require.NoError(t, err)

	data := cli.JSONData(t, out)
	assert.Equal(t, "Work", data["name"])
	tasks := data["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship it", tasks[0].(map[string]any)["title"])

	out, _, err = cli.ExecuteCLICommand(t, app, ShowCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Default")
	assert.Contains(t, out, "No tasks")
}

func TestShowTaskList_NotFound(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	_, stderr, err := cli.ExecuteCLICommand(t, app, ShowCmd(), "missing")
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitNotFound, clipkg.ExitCode(err))
	assert.ErrorIs(t, err, repository.ErrTaskListNotFound)
	assert.Contains(t, stderr, "tasklist ls")
}

func TestUpdateTaskList(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	listID := testutil.CreateTestTaskList(t, db, "Work")

	_, _, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), listID.String(), "--name", "Job")
	require.NoError(t, err)

	var name, description string
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT name, description FROM task_lists WHERE id = ?", listID.String()).Scan(&name, &description))
	assert.Equal(t, "Job", name)
	assert.Equal(t, "Test description", description, "description untouched when not given")

	_, _, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), listID.String())
	assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))

	_, _, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), listID.String(), "--name", " ")
	assert.Equal(t, clipkg.ExitValidation, clipkg.ExitCode(err))
}

func TestDeleteTaskList(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	listID := testutil.CreateTestTaskList(t, db, "Work")
	testutil.CreateTestTask(t, db, listID, "Ship it")

	out, _, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), "Work", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, listID.String(), strings.TrimSpace(out))

	var count int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM tasks WHERE task_list_id = ?", listID.String()).Scan(&count))
	assert.Zero(t, count)

	_, _, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), "Work")
	assert.Equal(t, clipkg.ExitNotFound, clipkg.ExitCode(err))
}

func TestSelectTaskList(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	listID := testutil.CreateTestTaskList(t, db, "Work")

	out, _, err := cli.ExecuteCLICommand(t, app, SelectCmd(), "Work", "--json")
	require.NoError(t, err)
	assert.Equal(t, true, cli.JSONData(t, out)["selected"])

	selected, err := repository.Once(context.Background(), app.UseCases.GetTaskListSelected.Execute).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, listID, selected.ID)

	_, _, err = cli.ExecuteCLICommand(t, app, SelectCmd(), types.NewTaskListID().String())
	assert.Equal(t, clipkg.ExitNotFound, clipkg.ExitCode(err))
}
