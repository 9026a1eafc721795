package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Replay completed
	ExitFailure      = 1 // Replay hit an invariant violation
	ExitCommandError = 2 // Unreadable file, malformed script, replay that could not finish
)

// Error codes reported in output.
const (
	ErrCodeRead      = "E_READ"
	ErrCodeParse     = "E_PARSE"
	ErrCodeInvariant = "E_INVARIANT"
	ErrCodeReplay    = "E_REPLAY"
)

// ExitError is a command failure carrying its process exit code. One built
// by [OutputFormatter.Fail] has already been written to the command output.
type ExitError struct {
	Code     int    // process exit code
	ErrCode  string // E_* code shown to the user
	Err      error
	reported bool
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", e.ErrCode, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Reported reports whether err was already written through an
// OutputFormatter, so the caller should not print it again.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output; defaults to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope for every command result.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data as an "ok" envelope in JSON mode. In text mode the
// caller prints its own report and Success writes nothing.
func (f *OutputFormatter) Success(data any) error {
	if f.Format != "json" {
		return nil
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Fail writes err in the configured format and returns an *ExitError with
// exit code exitCode that is marked as reported.
func (f *OutputFormatter) Fail(exitCode int, errCode string, err error, details any) error {
	if f.Format == "json" {
		if encErr := f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: errCode, Message: err.Error(), Details: details},
		}); encErr != nil {
			return &ExitError{Code: exitCode, ErrCode: errCode, Err: errors.Join(err, encErr)}
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %v\n", errCode, err)
		if f.Verbose && details != nil {
			fmt.Fprintf(f.Writer, "Details: %v\n", details)
		}
	}
	return &ExitError{Code: exitCode, ErrCode: errCode, Err: err, reported: true}
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// VerboseLog writes a diagnostic line in verbose mode. It goes to
// ErrWriter so JSON output on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
