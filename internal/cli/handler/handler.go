// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
)

// Env is what a command body runs against
type Env struct {
	CLI       *cli.CLI
	Formatter *cli.OutputFormatter
	Cmd       *cobra.Command
	Args      []string
}

// Func is the body of a command. Returned errors are reported through the
// formatter; the body only prints on success.
type Func func(ctx context.Context, env *Env) error

// suggested attaches a hint shown next to the error message
type suggested struct {
	err        error
	suggestion string
}

func (s *suggested) Error() string { return s.err.Error() }
func (s *suggested) Unwrap() error { return s.err }

// Suggest attaches a suggestion to err
func Suggest(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &suggested{err: err, suggestion: suggestion}
}

// Command wraps common command execution logic: it opens the CLI, runs fn
// and reports a failure under errCode.
// Returns a cobra RunE compatible function
func Command(errCode string, fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		formatter := cli.NewFormatter(cmd)

		c, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Fail("INITIALIZATION_ERROR", err, "")
		}
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("error closing CLI", "error", err)
			}
		}()

		err = fn(ctx, &Env{CLI: c, Formatter: formatter, Cmd: cmd, Args: args})
		if err == nil {
			return nil
		}

		suggestion := ""
		var s *suggested
		if errors.As(err, &s) {
			suggestion = s.suggestion
		}
		return formatter.Fail(errCode, err, suggestion)
	}
}
