package spider

import (
	"strings"

	"go.uber.org/zap"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted spider command configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-format logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilderBase carries the dependencies shared by the spider-facing command builders.
type CommandBuilderBase struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	Executor                     Executor
	HumanReadableLoggingProvider HumanReadableLoggingProvider
}

func (base *CommandBuilderBase) resolveLogger() *zap.Logger {
	if base.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := base.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (base *CommandBuilderBase) resolveConfiguration() CommandConfiguration {
	configuration := CommandConfiguration{}
	if base.ConfigurationProvider != nil {
		configuration = base.ConfigurationProvider()
	}
	return configuration.sanitize()
}

func (base *CommandBuilderBase) humanReadableLogging() bool {
	if base.HumanReadableLoggingProvider == nil {
		return false
	}
	return base.HumanReadableLoggingProvider()
}

func (base *CommandBuilderBase) resolveService(logger *zap.Logger, configuration CommandConfiguration, binaryOverride string) (*Service, error) {
	executor, executorError := ResolveExecutor(base.Executor, logger, base.humanReadableLogging())
	if executorError != nil {
		return nil, executorError
	}

	binaryPath := configuration.Binary
	if len(strings.TrimSpace(binaryOverride)) > 0 {
		binaryPath = strings.TrimSpace(binaryOverride)
	}

	return NewService(logger, executor, binaryPath)
}
