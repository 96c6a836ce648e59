package spider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/sfreport/internal/execshell"
)

const (
	headlessFlagConstant     = "--headless"
	crawlFlagConstant        = "--crawl"
	loadCrawlFlagConstant    = "--load-crawl"
	outputFolderFlagConstant = "--output-folder"
	overwriteFlagConstant    = "--overwrite"
	saveReportFlagConstant   = "--save-report"
	bulkExportFlagConstant   = "--bulk-export"
	exportTabsFlagConstant   = "--export-tabs"
	configFlagConstant       = "--config"

	savedReportExportsConstant = "Issues Overview,Accessibility:Accessibility Violations Summary"
	bulkExportsConstant        = "Accessibility:All Violations,Issues:All"
	exportTabsConstant         = "Internal:All"

	inlinkExportEntryTemplateConstant = "Response Codes:%s:%s"
	inlinkExportJoinSeparatorConstant = ","

	crawlStartedMessageConstant     = "crawl started"
	crawlFinishedMessageConstant    = "crawl finished"
	exportStartedMessageConstant    = "crawl export started"
	exportFinishedMessageConstant   = "crawl export finished"
	logFieldCrawlURLConstant        = "url"
	logFieldCrawlFileConstant       = "crawl_file"
	logFieldOutputDirectoryConstant = "output_directory"

	outputDirectoryPermissionsConstant = 0o755
)

// ErrExecutorNotConfigured indicates the service was constructed without an executor.
var ErrExecutorNotConfigured = errors.New("spider executor not configured")

// ErrBinaryNotConfigured indicates the service was constructed without a launcher path.
var ErrBinaryNotConfigured = errors.New("spider binary not configured")

// ErrUnknownInlinkStatus indicates an unsupported inlink status filter.
var ErrUnknownInlinkStatus = errors.New("unknown inlink status filter")

// InlinkStatus filters inlink exports by the linked page's response status.
type InlinkStatus string

// Supported inlink status filters.
const (
	InlinkStatusAll         InlinkStatus = "all"
	InlinkStatusSuccess     InlinkStatus = "2xx"
	InlinkStatusRedirection InlinkStatus = "3xx"
	InlinkStatusClientError InlinkStatus = "4xx"
	InlinkStatusServerError InlinkStatus = "5xx"
)

// InlinkScope restricts inlink exports to internal or external link sources.
type InlinkScope string

// Supported inlink scopes.
const (
	InlinkScopeInternal InlinkScope = "internal"
	InlinkScopeExternal InlinkScope = "external"
	InlinkScopeBoth     InlinkScope = "both"
)

var inlinkStatusExportLabels = map[InlinkStatus]string{
	InlinkStatusAll:         "All Inlinks",
	InlinkStatusSuccess:     "Success (2xx) Inlinks",
	InlinkStatusRedirection: "Redirection (3xx) Inlinks",
	InlinkStatusClientError: "Client Error (4xx) Inlinks",
	InlinkStatusServerError: "Server Error (5xx) Inlinks",
}

// InlinkStatuses lists the supported status filters in display order.
func InlinkStatuses() []InlinkStatus {
	return []InlinkStatus{InlinkStatusAll, InlinkStatusSuccess, InlinkStatusRedirection, InlinkStatusClientError, InlinkStatusServerError}
}

// Executor runs launcher invocations and reports their results.
type Executor interface {
	ExecuteExecutable(executionContext context.Context, executablePath string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Service drives headless launcher invocations for crawls and exports.
type Service struct {
	logger     *zap.Logger
	executor   Executor
	binaryPath string
}

// NewService constructs a Service after validating its collaborators.
func NewService(logger *zap.Logger, executor Executor, binaryPath string) (*Service, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if len(strings.TrimSpace(binaryPath)) == 0 {
		return nil, ErrBinaryNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, executor: executor, binaryPath: binaryPath}, nil
}

// ExportArguments returns the export flags shared between crawls and re-exports.
func ExportArguments(outputDirectory string) []string {
	return []string{
		headlessFlagConstant,
		outputFolderFlagConstant, outputDirectory,
		overwriteFlagConstant,
		saveReportFlagConstant, savedReportExportsConstant,
		bulkExportFlagConstant, bulkExportsConstant,
		exportTabsFlagConstant, exportTabsConstant,
	}
}

// Crawl runs a fresh headless crawl of the URL and exports issue,
// accessibility, and internal-page data into the output directory.
func (service *Service) Crawl(executionContext context.Context, crawlURL string, outputDirectory string, spiderConfigPath string) error {
	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return directoryError
	}

	crawlArguments := []string{crawlFlagConstant, crawlURL}
	crawlArguments = append(crawlArguments, ExportArguments(outputDirectory)...)
	if len(spiderConfigPath) > 0 {
		crawlArguments = append(crawlArguments, configFlagConstant, spiderConfigPath)
	}

	service.logger.Info(crawlStartedMessageConstant, zap.String(logFieldCrawlURLConstant, crawlURL), zap.String(logFieldOutputDirectoryConstant, outputDirectory))

	if _, executionError := service.executor.ExecuteExecutable(executionContext, service.binaryPath, execshell.CommandDetails{Arguments: crawlArguments}); executionError != nil {
		return executionError
	}

	service.logger.Info(crawlFinishedMessageConstant, zap.String(logFieldCrawlURLConstant, crawlURL))
	return nil
}

// ExportFromCrawlFile loads a saved crawl database and re-exports the same data set.
func (service *Service) ExportFromCrawlFile(executionContext context.Context, crawlFilePath string, outputDirectory string) error {
	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return directoryError
	}

	exportArguments := []string{loadCrawlFlagConstant, crawlFilePath}
	exportArguments = append(exportArguments, ExportArguments(outputDirectory)...)

	service.logger.Info(exportStartedMessageConstant, zap.String(logFieldCrawlFileConstant, crawlFilePath), zap.String(logFieldOutputDirectoryConstant, outputDirectory))

	if _, executionError := service.executor.ExecuteExecutable(executionContext, service.binaryPath, execshell.CommandDetails{Arguments: exportArguments}); executionError != nil {
		return executionError
	}

	service.logger.Info(exportFinishedMessageConstant, zap.String(logFieldCrawlFileConstant, crawlFilePath))
	return nil
}

// ExportInlinks loads a saved crawl and exports inlink reports filtered by
// response status and link scope.
func (service *Service) ExportInlinks(executionContext context.Context, crawlFilePath string, outputDirectory string, status InlinkStatus, scope InlinkScope) error {
	exportEntries, entriesError := inlinkExportEntries(status, scope)
	if entriesError != nil {
		return entriesError
	}

	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return directoryError
	}

	inlinkArguments := []string{
		loadCrawlFlagConstant, crawlFilePath,
		headlessFlagConstant,
		outputFolderFlagConstant, outputDirectory,
		overwriteFlagConstant,
		bulkExportFlagConstant, strings.Join(exportEntries, inlinkExportJoinSeparatorConstant),
	}

	service.logger.Info(exportStartedMessageConstant, zap.String(logFieldCrawlFileConstant, crawlFilePath), zap.String(logFieldOutputDirectoryConstant, outputDirectory))

	if _, executionError := service.executor.ExecuteExecutable(executionContext, service.binaryPath, execshell.CommandDetails{Arguments: inlinkArguments}); executionError != nil {
		return executionError
	}

	service.logger.Info(exportFinishedMessageConstant, zap.String(logFieldCrawlFileConstant, crawlFilePath))
	return nil
}

// Passthrough forwards raw arguments to the launcher unchanged.
func (service *Service) Passthrough(executionContext context.Context, arguments []string) (execshell.ExecutionResult, error) {
	return service.executor.ExecuteExecutable(executionContext, service.binaryPath, execshell.CommandDetails{Arguments: arguments})
}

func inlinkExportEntries(status InlinkStatus, scope InlinkScope) ([]string, error) {
	statusLabel, statusKnown := inlinkStatusExportLabels[status]
	if !statusKnown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInlinkStatus, status)
	}

	var scopeSegments []string
	switch scope {
	case InlinkScopeInternal:
		scopeSegments = []string{"Internal"}
	case InlinkScopeExternal:
		scopeSegments = []string{"External"}
	default:
		scopeSegments = []string{"Internal", "External"}
	}

	var exportEntries []string
	for _, scopeSegment := range scopeSegments {
		exportEntries = append(exportEntries, fmt.Sprintf(inlinkExportEntryTemplateConstant, scopeSegment, statusLabel))
	}
	return exportEntries, nil
}
