package spider

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/sfreport/internal/report"
	pathutils "github.com/temirov/sfreport/internal/utils/path"
)

const (
	fromDatabaseCommandNameConstant             = "from-db"
	fromDatabaseCommandShortDescriptionConstant = "Generate an Excel report from a saved crawl database"
	fromDatabaseCommandLongDescriptionConstant  = "from-db loads a previously saved crawl file, re-exports its issue, accessibility, and internal-page CSVs, and consolidates them into a single Excel workbook."
)

// FromDatabaseCommandBuilder assembles the from-db cobra command.
type FromDatabaseCommandBuilder struct {
	CommandBuilderBase
	ReportConfigurationProvider func() report.CommandConfiguration
}

// Build constructs the cobra command re-exporting a saved crawl and rendering the workbook.
func (builder *FromDatabaseCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   fromDatabaseCommandNameConstant,
		Short: fromDatabaseCommandShortDescriptionConstant,
		Long:  fromDatabaseCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagUsageConstant)
	command.Flags().String(spiderBinaryFlagNameConstant, "", spiderBinaryFlagUsageConstant)

	return command, nil
}

func (builder *FromDatabaseCommandBuilder) run(command *cobra.Command, arguments []string) error {
	crawlFilePath := pathutils.NewHomeExpander().Expand(arguments[0])
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	exportDirectory := filepath.Join(configuration.ExportsRoot, crawlFileStem(crawlFilePath))

	binaryOverride, _ := command.Flags().GetString(spiderBinaryFlagNameConstant)
	service, serviceError := builder.resolveService(logger, configuration, binaryOverride)
	if serviceError != nil {
		return serviceError
	}

	if exportError := service.ExportFromCrawlFile(command.Context(), crawlFilePath, exportDirectory); exportError != nil {
		return exportError
	}

	generator := report.NewGenerator(logger)
	_, generationError := generator.Generate(exportDirectory, builder.resolveOutputPath(command))
	return generationError
}

func (builder *FromDatabaseCommandBuilder) resolveOutputPath(command *cobra.Command) string {
	outputFlagValue, _ := command.Flags().GetString(outputFlagNameConstant)
	if len(outputFlagValue) > 0 {
		return pathutils.NewHomeExpander().Expand(outputFlagValue)
	}

	reportConfiguration := report.CommandConfiguration{}
	if builder.ReportConfigurationProvider != nil {
		reportConfiguration = builder.ReportConfigurationProvider()
	}
	return pathutils.NewHomeExpander().Expand(reportConfiguration.ResolvedOutputPath())
}

func crawlFileStem(crawlFilePath string) string {
	baseName := filepath.Base(crawlFilePath)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}
