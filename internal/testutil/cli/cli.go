// Package cli holds helpers for running cobra commands against a test database
package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/app"
	clipkg "github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := app.New(db)
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Logf("Warning: failed to close app: %v", err)
		}
	})
	return db, a
}

// ExecuteCLICommand runs cmd with args against testApp and returns what it
// wrote to stdout and stderr
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, testApp, cmd, "", args...)
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with stdin content
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err = cmd.ExecuteContext(clipkg.WithApp(context.Background(), testApp))
	return out.String(), errOut.String(), err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// JSONData returns the "data" object of a successful JSON response
func JSONData(t *testing.T, output string) map[string]any {
	t.Helper()
	result := ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success response, got: %s", output)
	}
	data, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected data object, got: %s", output)
	}
	return data
}

// JSONList returns the "data" array of a successful JSON response
func JSONList(t *testing.T, output string) []any {
	t.Helper()
	result := ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success response, got: %s", output)
	}
	data, ok := result["data"].([]any)
	if !ok {
		t.Fatalf("Expected data array, got: %s", output)
	}
	return data
}
