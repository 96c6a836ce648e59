package spider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pathutils "github.com/temirov/sfreport/internal/utils/path"
)

const (
	inlinksCommandNameConstant             = "inlinks"
	inlinksCommandShortDescriptionConstant = "Export inlink CSVs from a saved crawl database"
	inlinksCommandLongDescriptionTemplate  = "inlinks loads a previously saved crawl file and exports the pages linking to each crawled URL, filtered by response status (%s) and link scope."

	statusFlagNameConstant      = "status"
	statusFlagShorthandConstant = "s"
	statusFlagUsageConstant     = "Response status filter for the exported inlinks."

	internalScopeFlagNameConstant  = "internal"
	internalScopeFlagUsageConstant = "Export only inlinks from internal pages."

	externalScopeFlagNameConstant  = "external"
	externalScopeFlagUsageConstant = "Export only inlinks from external pages."

	outputDirectoryFlagNameConstant      = "output-dir"
	outputDirectoryFlagShorthandConstant = "o"
	outputDirectoryFlagUsageConstant     = "Directory receiving the exported inlink CSVs."

	statusListSeparatorConstant = ", "
)

// InlinksCommandBuilder assembles the inlinks cobra command.
type InlinksCommandBuilder struct {
	CommandBuilderBase
}

// Build constructs the cobra command exporting inlink reports from a saved crawl.
func (builder *InlinksCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   inlinksCommandNameConstant,
		Short: inlinksCommandShortDescriptionConstant,
		Long:  fmt.Sprintf(inlinksCommandLongDescriptionTemplate, supportedStatusList()),
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(statusFlagNameConstant, statusFlagShorthandConstant, string(InlinkStatusAll), statusFlagUsageConstant)
	command.Flags().Bool(internalScopeFlagNameConstant, false, internalScopeFlagUsageConstant)
	command.Flags().Bool(externalScopeFlagNameConstant, false, externalScopeFlagUsageConstant)
	command.Flags().StringP(outputDirectoryFlagNameConstant, outputDirectoryFlagShorthandConstant, "", outputDirectoryFlagUsageConstant)
	command.Flags().String(spiderBinaryFlagNameConstant, "", spiderBinaryFlagUsageConstant)
	command.MarkFlagsMutuallyExclusive(internalScopeFlagNameConstant, externalScopeFlagNameConstant)

	return command, nil
}

func (builder *InlinksCommandBuilder) run(command *cobra.Command, arguments []string) error {
	crawlFilePath := pathutils.NewHomeExpander().Expand(arguments[0])
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	statusFlagValue, _ := command.Flags().GetString(statusFlagNameConstant)
	status := InlinkStatus(strings.ToLower(strings.TrimSpace(statusFlagValue)))

	internalOnly, _ := command.Flags().GetBool(internalScopeFlagNameConstant)
	externalOnly, _ := command.Flags().GetBool(externalScopeFlagNameConstant)
	scope := InlinkScopeBoth
	switch {
	case internalOnly:
		scope = InlinkScopeInternal
	case externalOnly:
		scope = InlinkScopeExternal
	}

	outputDirectory := builder.resolveOutputDirectory(command, configuration, crawlFilePath)

	binaryOverride, _ := command.Flags().GetString(spiderBinaryFlagNameConstant)
	service, serviceError := builder.resolveService(logger, configuration, binaryOverride)
	if serviceError != nil {
		return serviceError
	}

	return service.ExportInlinks(command.Context(), crawlFilePath, outputDirectory, status, scope)
}

func (builder *InlinksCommandBuilder) resolveOutputDirectory(command *cobra.Command, configuration CommandConfiguration, crawlFilePath string) string {
	outputDirectoryFlagValue, _ := command.Flags().GetString(outputDirectoryFlagNameConstant)
	if len(outputDirectoryFlagValue) > 0 {
		return pathutils.NewHomeExpander().Expand(outputDirectoryFlagValue)
	}
	return filepath.Join(configuration.ExportsRoot, crawlFileStem(crawlFilePath))
}

func supportedStatusList() string {
	var statusNames []string
	for _, status := range InlinkStatuses() {
		statusNames = append(statusNames, string(status))
	}
	return strings.Join(statusNames, statusListSeparatorConstant)
}
