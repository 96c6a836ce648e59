package report

import (
	"go.uber.org/zap"
)

const (
	issuesSummaryLoadedMessageConstant          = "issues summary loaded"
	issuesOverviewMissingMessageConstant        = "issues overview export missing, skipping sheet"
	accessibilitySummaryLoadedMessageConstant   = "accessibility summary loaded"
	accessibilitySummaryComputedMessageConstant = "accessibility summary computed from violations"
	perPageFindingsMessageConstant              = "per-page findings assembled"
	reportGeneratedMessageConstant              = "report generated"
	logFieldIssueTypeCountConstant              = "issue_types"
	logFieldSummaryRowCountConstant             = "summary_rows"
	logFieldPageCountConstant                   = "pages"
	logFieldUniqueSheetCountConstant            = "unique_sheets"
	logFieldDuplicateCountConstant              = "duplicates_collapsed"
	logFieldOutputPathConstant                  = "output_path"
)

// GenerationSummary reports what a completed report generation produced.
type GenerationSummary struct {
	IssueTypeCount      int
	SummaryRowCount     int
	PageCount           int
	UniqueSheetCount    int
	DuplicatesCollapsed int
	OutputPath          string
}

// Generator drives one report generation from an export directory to a
// finished workbook. Each Generate call is independent and side-effect-free
// except for writing its own output file.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator constructs a Generator logging through the supplied logger.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate consolidates the CSV exports in exportDirectory into a workbook at
// outputPath. Missing exports are tolerated per sheet; a directory yielding
// zero sheets returns NoDataError and writes nothing.
func (generator *Generator) Generate(exportDirectory string, outputPath string) (GenerationSummary, error) {
	issuesOverview := LoadIssuesOverview(exportDirectory)
	accessibilitySummary := LoadAccessibilitySummary(exportDirectory)
	accessibilityViolations := LoadAccessibilityViolations(exportDirectory)
	internalPages := LoadInternalPages(exportDirectory)

	catalog := BuildIssueCatalog(issuesOverview)
	issueFindings := LoadIssueReports(exportDirectory, catalog, internalPages, generator.logger)

	pageFindings := BuildPageFindings(accessibilityViolations, issueFindings, internalPages)
	pageGroups := GroupPagesByFingerprint(pageFindings)

	if issuesOverview == nil && accessibilitySummary == nil && accessibilityViolations == nil && len(pageGroups) == 0 {
		return GenerationSummary{}, NoDataError{ExportDirectory: exportDirectory}
	}

	renderer, rendererError := newWorkbookRenderer()
	if rendererError != nil {
		return GenerationSummary{}, rendererError
	}

	generationSummary := GenerationSummary{OutputPath: outputPath}

	if issuesOverview != nil {
		if sheetError := renderer.addTableSheet(issuesSummarySheetNameConstant, issuesOverview); sheetError != nil {
			return GenerationSummary{}, sheetError
		}
		generationSummary.IssueTypeCount = len(issuesOverview.Rows)
		generator.logger.Info(issuesSummaryLoadedMessageConstant, zap.Int(logFieldIssueTypeCountConstant, generationSummary.IssueTypeCount))
	} else {
		generator.logger.Warn(issuesOverviewMissingMessageConstant)
	}

	switch {
	case accessibilitySummary != nil:
		if sheetError := renderer.addTableSheet(accessibilitySummarySheetNameConstant, accessibilitySummary); sheetError != nil {
			return GenerationSummary{}, sheetError
		}
		generationSummary.SummaryRowCount = len(accessibilitySummary.Rows)
		generator.logger.Info(accessibilitySummaryLoadedMessageConstant, zap.Int(logFieldSummaryRowCountConstant, generationSummary.SummaryRowCount))
	case accessibilityViolations != nil:
		computedSummary := ComputeAccessibilitySummary(accessibilityViolations)
		if computedSummary != nil {
			if sheetError := renderer.addTableSheet(accessibilitySummarySheetNameConstant, computedSummary); sheetError != nil {
				return GenerationSummary{}, sheetError
			}
			generationSummary.SummaryRowCount = len(computedSummary.Rows)
			generator.logger.Info(accessibilitySummaryComputedMessageConstant, zap.Int(logFieldSummaryRowCountConstant, generationSummary.SummaryRowCount))
		}
	}

	if placeholderError := renderer.addPagesIndexPlaceholder(); placeholderError != nil {
		return GenerationSummary{}, placeholderError
	}

	sheetNameAllocator := NewSheetNameAllocator(
		defaultWorkbookSheetNameConstant,
		issuesSummarySheetNameConstant,
		accessibilitySummarySheetNameConstant,
		pagesIndexSheetNameConstant,
	)
	var indexEntries []PageIndexEntry

	for _, pageGroup := range pageGroups {
		sheetName := sheetNameAllocator.Allocate(pageGroup.RepresentativeURL())
		if sheetError := renderer.addPageGroupSheet(sheetName, pageGroup); sheetError != nil {
			return GenerationSummary{}, sheetError
		}

		accessibilityCount, issueCount := countFindingKinds(pageGroup.Rows)
		for _, groupURL := range pageGroup.URLs {
			indexEntries = append(indexEntries, PageIndexEntry{
				URL:                groupURL,
				SheetName:          sheetName,
				AccessibilityCount: accessibilityCount,
				IssueCount:         issueCount,
				GroupSize:          len(pageGroup.URLs),
			})
		}
	}

	if indexError := renderer.fillPagesIndex(indexEntries); indexError != nil {
		return GenerationSummary{}, indexError
	}

	generationSummary.PageCount = len(indexEntries)
	generationSummary.UniqueSheetCount = len(pageGroups)
	generationSummary.DuplicatesCollapsed = generationSummary.PageCount - generationSummary.UniqueSheetCount

	generator.logger.Info(
		perPageFindingsMessageConstant,
		zap.Int(logFieldPageCountConstant, generationSummary.PageCount),
		zap.Int(logFieldUniqueSheetCountConstant, generationSummary.UniqueSheetCount),
		zap.Int(logFieldDuplicateCountConstant, generationSummary.DuplicatesCollapsed),
	)

	if finalizeError := renderer.finalize(outputPath); finalizeError != nil {
		return GenerationSummary{}, finalizeError
	}

	generator.logger.Info(reportGeneratedMessageConstant, zap.String(logFieldOutputPathConstant, outputPath))

	return generationSummary, nil
}

func countFindingKinds(findingRows []FindingRow) (int, int) {
	accessibilityCount := 0
	issueCount := 0
	for _, findingRow := range findingRows {
		switch findingRow.Kind {
		case FindingKindAccessibility:
			accessibilityCount++
		case FindingKindIssue:
			issueCount++
		}
	}
	return accessibilityCount, issueCount
}
