package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/temirov/sfreport/internal/utils/path"
)

const (
	commandNameConstant             = "report"
	commandShortDescriptionConstant = "Generate an Excel report from existing crawl CSV exports"
	commandLongDescriptionConstant  = "report consolidates the CSV exports of a completed crawl into a single workbook with summary sheets, a hyperlinked page index, and one sheet per unique finding set."
	outputFlagNameConstant          = "output"
	outputFlagShorthandConstant     = "o"
	outputFlagUsageConstant         = "Output Excel file path."
	notADirectoryTemplateConstant   = "%s is not a directory"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted report command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the report cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the cobra command generating reports from export directories.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	exportDirectory := pathutils.NewHomeExpander().Expand(arguments[0])

	directoryInfo, statError := os.Stat(exportDirectory)
	if statError != nil {
		return statError
	}
	if !directoryInfo.IsDir() {
		return fmt.Errorf(notADirectoryTemplateConstant, exportDirectory)
	}

	outputPath := builder.resolveOutputPath(command)

	generator := NewGenerator(builder.resolveLogger())
	_, generationError := generator.Generate(exportDirectory, outputPath)
	return generationError
}

func (builder *CommandBuilder) resolveOutputPath(command *cobra.Command) string {
	outputFlagValue, _ := command.Flags().GetString(outputFlagNameConstant)
	if len(outputFlagValue) > 0 {
		return pathutils.NewHomeExpander().Expand(outputFlagValue)
	}

	configuration := CommandConfiguration{}
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return pathutils.NewHomeExpander().Expand(configuration.ResolvedOutputPath())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
