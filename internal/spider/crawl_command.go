package spider

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/sfreport/internal/report"
	pathutils "github.com/temirov/sfreport/internal/utils/path"
)

const (
	crawlCommandNameConstant             = "crawl"
	crawlCommandShortDescriptionConstant = "Crawl a website and generate an Excel report"
	crawlCommandLongDescriptionConstant  = "crawl runs a headless crawl of the URL, exports issue, accessibility, and internal-page CSVs, and consolidates them into a single Excel workbook."

	outputFlagNameConstant      = "output"
	outputFlagShorthandConstant = "o"
	outputFlagUsageConstant     = "Output Excel file path."

	spiderConfigFlagNameConstant  = "spider-config"
	spiderConfigFlagUsageConstant = "Crawler configuration file passed through to the launcher."

	spiderBinaryFlagNameConstant  = "spider-binary"
	spiderBinaryFlagUsageConstant = "Path to the crawler launcher binary."

	keepExportsFlagNameConstant  = "keep-exports"
	keepExportsFlagUsageConstant = "Keep the exported CSVs under the exports root instead of a temporary directory."

	usernameFlagNameConstant      = "user"
	usernameFlagShorthandConstant = "u"
	usernameFlagUsageConstant     = "Basic auth username (falls back to BASIC_AUTH_USERNAME)."

	passwordFlagNameConstant      = "password"
	passwordFlagShorthandConstant = "p"
	passwordFlagUsageConstant     = "Basic auth password (falls back to BASIC_AUTH_PASSWORD)."

	temporaryExportDirectoryPatternConstant = "sfreport_"
	fallbackExportDirectoryNameConstant     = "crawl"

	partialCredentialsMessageConstant = "basic auth requires both a username and a password; ignoring partial credentials"
)

// CrawlCommandBuilder assembles the crawl cobra command.
type CrawlCommandBuilder struct {
	CommandBuilderBase
	ReportConfigurationProvider func() report.CommandConfiguration
}

// Build constructs the cobra command crawling a site and rendering the workbook.
func (builder *CrawlCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   crawlCommandNameConstant,
		Short: crawlCommandShortDescriptionConstant,
		Long:  crawlCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagUsageConstant)
	command.Flags().String(spiderConfigFlagNameConstant, "", spiderConfigFlagUsageConstant)
	command.Flags().String(spiderBinaryFlagNameConstant, "", spiderBinaryFlagUsageConstant)
	command.Flags().Bool(keepExportsFlagNameConstant, false, keepExportsFlagUsageConstant)
	command.Flags().StringP(usernameFlagNameConstant, usernameFlagShorthandConstant, "", usernameFlagUsageConstant)
	command.Flags().StringP(passwordFlagNameConstant, passwordFlagShorthandConstant, "", passwordFlagUsageConstant)

	return command, nil
}

func (builder *CrawlCommandBuilder) run(command *cobra.Command, arguments []string) error {
	crawlURL := arguments[0]
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	credentials := resolveCredentials(command)
	if credentials.IsPartial() {
		logger.Warn(partialCredentialsMessageConstant)
	}

	effectiveCrawlURL := crawlURL
	if credentials.IsComplete() {
		injectedURL, injectionError := InjectCredentials(crawlURL, credentials)
		if injectionError != nil {
			return injectionError
		}
		effectiveCrawlURL = injectedURL
	}

	exportDirectory, cleanupExports, directoryError := builder.resolveExportDirectory(command, configuration, crawlURL)
	if directoryError != nil {
		return directoryError
	}
	defer cleanupExports()

	binaryOverride, _ := command.Flags().GetString(spiderBinaryFlagNameConstant)
	service, serviceError := builder.resolveService(logger, configuration, binaryOverride)
	if serviceError != nil {
		return serviceError
	}

	spiderConfigPath := builder.resolveSpiderConfigPath(command, configuration)
	if crawlError := service.Crawl(command.Context(), effectiveCrawlURL, exportDirectory, spiderConfigPath); crawlError != nil {
		return crawlError
	}

	generator := report.NewGenerator(logger)
	_, generationError := generator.Generate(exportDirectory, builder.resolveOutputPath(command))
	return generationError
}

func (builder *CrawlCommandBuilder) resolveExportDirectory(command *cobra.Command, configuration CommandConfiguration, crawlURL string) (string, func(), error) {
	keepExports, _ := command.Flags().GetBool(keepExportsFlagNameConstant)
	if keepExports {
		exportDirectory := filepath.Join(configuration.ExportsRoot, exportDirectoryNameForURL(crawlURL))
		return exportDirectory, func() {}, nil
	}

	temporaryDirectory, temporaryDirectoryError := os.MkdirTemp("", temporaryExportDirectoryPatternConstant)
	if temporaryDirectoryError != nil {
		return "", nil, temporaryDirectoryError
	}
	return temporaryDirectory, func() { _ = os.RemoveAll(temporaryDirectory) }, nil
}

func (builder *CrawlCommandBuilder) resolveSpiderConfigPath(command *cobra.Command, configuration CommandConfiguration) string {
	spiderConfigFlagValue, _ := command.Flags().GetString(spiderConfigFlagNameConstant)
	if len(spiderConfigFlagValue) > 0 {
		return pathutils.NewHomeExpander().Expand(spiderConfigFlagValue)
	}
	return configuration.ConfigPath
}

func (builder *CrawlCommandBuilder) resolveOutputPath(command *cobra.Command) string {
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

func resolveCredentials(command *cobra.Command) Credentials {
	usernameFlagValue, _ := command.Flags().GetString(usernameFlagNameConstant)
	passwordFlagValue, _ := command.Flags().GetString(passwordFlagNameConstant)

	credentials := Credentials{Username: usernameFlagValue, Password: passwordFlagValue}
	if len(credentials.Username) == 0 {
		credentials.Username = os.Getenv(usernameEnvironmentVariableConstant)
	}
	if len(credentials.Password) == 0 {
		credentials.Password = os.Getenv(passwordEnvironmentVariableConstant)
	}
	return credentials
}

func exportDirectoryNameForURL(crawlURL string) string {
	parsedURL, parseError := url.Parse(crawlURL)
	if parseError != nil || len(parsedURL.Hostname()) == 0 {
		return fallbackExportDirectoryNameConstant
	}
	return parsedURL.Hostname()
}
