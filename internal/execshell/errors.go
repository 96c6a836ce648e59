package execshell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New("logger not configured")

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a command runner.
var ErrCommandRunnerNotConfigured = errors.New("command runner not configured")

const (
	commandFailedErrorTemplateConstant          = "%s exited with code %d"
	commandFailedWithStderrTemplateConstant     = "%s exited with code %d: %s"
	commandExecutionFailedErrorTemplateConstant = "%s could not be executed: %v"
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trimmed standard error output.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithStderrTemplateConstant, failure.Command.Name, failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or finished.
type CommandExecutionError struct {
	Command ShellCommand
	Err     error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedErrorTemplateConstant, failure.Command.Name, failure.Err)
}

// Unwrap exposes the underlying execution failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Err
}
