package execshell

import (
	"context"

	"go.uber.org/zap"
)

const (
	commandStartedMessageConstant   = "external command started"
	commandCompletedMessageConstant = "external command completed"
	commandFailedMessageConstant    = "external command failed"
	logFieldCommandConstant         = "command"
	logFieldArgumentsConstant       = "arguments"
	logFieldExitCodeConstant        = "exit_code"
	logFieldStandardErrorConstant   = "standard_error"
)

// ShellExecutor runs external commands with structured logging and observer notifications.
type ShellExecutor struct {
	logger   *zap.Logger
	runner   CommandRunner
	observer CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor after validating its collaborators.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	var observer CommandEventObserver = noopCommandEventObserver{}
	for _, candidateObserver := range observers {
		if candidateObserver != nil {
			observer = candidateObserver
			break
		}
	}

	return &ShellExecutor{logger: logger, runner: runner, observer: observer}, nil
}

// Execute runs the supplied command, translating non-zero exits into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		commandStartedMessageConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
	)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		executionError := CommandExecutionError{Command: command, Err: runError}
		executor.logger.Error(
			commandFailedMessageConstant,
			zap.String(logFieldCommandConstant, string(command.Name)),
			zap.Error(runError),
		)
		return ExecutionResult{}, executionError
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			commandFailedMessageConstant,
			zap.String(logFieldCommandConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedMessageConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}

// ExecuteExecutable runs a command for the supplied executable path and invocation details.
func (executor *ShellExecutor) ExecuteExecutable(executionContext context.Context, executablePath string, details CommandDetails) (ExecutionResult, error) {
	command := ShellCommand{Name: CommandName(executablePath), Details: details}
	return executor.Execute(executionContext, command)
}
