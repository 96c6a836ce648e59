package spider

import (
	"go.uber.org/zap"

	"github.com/temirov/sfreport/internal/execshell"
	"github.com/temirov/sfreport/internal/ui"
)

// ResolveExecutor returns the provided executor or constructs a shell-backed
// default. When human-readable logging is active the executor echoes command
// lifecycle events to the console.
func ResolveExecutor(existing Executor, logger *zap.Logger, humanReadableLogging bool) (Executor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutor(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}
