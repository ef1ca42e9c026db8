package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/repository"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// IDer is implemented by data that has an identifier to print in quiet mode
type IDer interface {
	GetID() string
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// NewFormatter builds a formatter from the output flags of cmd, writing to
// the command's output streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Human reports whether decorated, human-readable output is wanted
func (f *OutputFormatter) Human() bool {
	return !f.JSON && !f.Quiet
}

// Success outputs a successful operation result. Human output is written by
// human, which may be nil for data printed with %+v.
func (f *OutputFormatter) Success(data any, human func(w io.Writer)) error {
	if f.Quiet {
		if ider, ok := data.(IDer); ok {
			_, err := fmt.Fprintln(f.out(), ider.GetID())
			return err
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if human != nil {
		human(f.out())
		return nil
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped with its exit code. Errors that
// already carry an exit code keep it; not-found errors exit with ExitNotFound.
func (f *OutputFormatter) Fail(code string, err error, suggestion string) error {
	exit := ExitError
	var exitErr *ExitCodeError
	switch {
	case errors.As(err, &exitErr):
		exit = exitErr.Code
		err = exitErr.Err
	case repository.IsNotFound(err):
		exit = ExitNotFound
		code = "NOT_FOUND"
	}

	reported := &ExitCodeError{Code: exit, Err: err, Reported: true}
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		reported.Reported = false
		return errors.Join(reported, fmtErr)
	}
	return reported
}
