package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	issuesOverviewPrimaryPatternConstant  = "*ssues*verview*.csv"
	issuesOverviewFallbackPatternConstant = "*issues*.csv"
	accessibilityPrimaryPatternConstant   = "*all_violations*.csv"
	accessibilityFallbackPatternConstant  = "*ccessibility*iolation*.csv"
	accessibilitySummaryPatternConstant   = "*ccessibility*ummary*.csv"
	internalPagesPrimaryPatternConstant   = "*internal_all*.csv"
	internalPagesFallbackPatternConstant  = "*nternal*ll*.csv"
	issueReportsDirectoryNameConstant     = "issues_reports"
	addressColumnConstant                 = "Address"
	urlColumnConstant                     = "URL"
	contentTypeColumnConstant             = "Content Type"
	htmlContentTypeFragmentConstant       = "html"
	inlinksFilenameFragmentConstant       = "inlinks"
	indexabilityColumnConstant            = "Indexability"
	indexabilityStatusColumnConstant      = "Indexability Status"
	detailFragmentSeparatorConstant       = ": "
	detailListSeparatorConstant           = "; "
	csvFileExtensionConstant              = ".csv"
	filenameWordSeparatorConstant         = "_"
	issueReportSkippedMessageConstant     = "issue report skipped"
	logFieldIssueReportPathConstant       = "path"
)

// LoadIssuesOverview loads the issue catalog export. The loose filename glob
// can catch unrelated CSVs, so files without an Issue Name column are
// discarded rather than treated as the catalog.
func LoadIssuesOverview(exportDirectory string) *Table {
	csvPath := FindExport(exportDirectory, issuesOverviewPrimaryPatternConstant, issuesOverviewFallbackPatternConstant)
	if len(csvPath) == 0 {
		return nil
	}

	issuesTable, readError := ReadTable(csvPath)
	if readError != nil {
		return nil
	}
	if !issuesTable.HasColumn(issueNameColumnConstant) {
		return nil
	}

	return issuesTable
}

// LoadAccessibilityViolations loads the accessibility violations export,
// canonicalizes its URL column name, and normalizes every URL value.
func LoadAccessibilityViolations(exportDirectory string) *Table {
	csvPath := FindExport(exportDirectory, accessibilityPrimaryPatternConstant, accessibilityFallbackPatternConstant)
	if len(csvPath) == 0 {
		return nil
	}

	violationsTable, readError := ReadTable(csvPath)
	if readError != nil {
		return nil
	}

	urlColumn := violationsTable.FirstColumnNamed(addressColumnConstant, urlColumnConstant)
	if len(urlColumn) == 0 {
		return nil
	}

	violationsTable.RenameColumn(urlColumn, urlColumnConstant)
	violationsTable.TransformColumn(urlColumnConstant, NormalizeURL)

	return violationsTable
}

// LoadAccessibilitySummary loads the crawler's aggregate accessibility report.
// The data is not per-URL, so it passes through without normalization.
func LoadAccessibilitySummary(exportDirectory string) *Table {
	csvPath := FindExport(exportDirectory, accessibilitySummaryPatternConstant)
	if len(csvPath) == 0 {
		return nil
	}

	summaryTable, readError := ReadTable(csvPath)
	if readError != nil {
		return nil
	}

	return summaryTable
}

// LoadInternalPages builds the set of normalized internal HTML page URLs from
// the Internal:All export. Rows keep membership only when the content type
// mentions html and the address does not end in an asset extension, which
// guards against soft-404 responses the crawler mislabels as HTML.
func LoadInternalPages(exportDirectory string) InternalPageSet {
	internalPages := InternalPageSet{}

	csvPath := FindExport(exportDirectory, internalPagesPrimaryPatternConstant, internalPagesFallbackPatternConstant)
	if len(csvPath) == 0 {
		return internalPages
	}

	inventoryTable, readError := ReadTable(csvPath)
	if readError != nil {
		return internalPages
	}
	if !inventoryTable.HasColumn(addressColumnConstant) || !inventoryTable.HasColumn(contentTypeColumnConstant) {
		return internalPages
	}

	for _, inventoryRow := range inventoryTable.Rows {
		pageAddress := strings.TrimSpace(inventoryRow[addressColumnConstant])
		if len(pageAddress) == 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(inventoryRow[contentTypeColumnConstant]), htmlContentTypeFragmentConstant) {
			continue
		}
		if IsAssetAddress(pageAddress) {
			continue
		}
		internalPages[NormalizeURL(pageAddress)] = struct{}{}
	}

	return internalPages
}

// LoadIssueReports iterates the per-issue CSVs under issues_reports/ and
// collects enriched findings keyed by normalized URL.
//
// Inlinks exports describe links pointing at a page rather than the page's
// own issues, so they are skipped by filename. Files that fail to parse are
// logged and skipped; the remaining files still contribute. Every non-empty
// column other than the address and indexability noise survives into the
// free-text detail string.
func LoadIssueReports(exportDirectory string, catalog IssueCatalog, internalPages InternalPageSet, logger *zap.Logger) map[string][]FindingRow {
	if logger == nil {
		logger = zap.NewNop()
	}

	issueFindings := map[string][]FindingRow{}

	issueReportsDirectory := filepath.Join(exportDirectory, issueReportsDirectoryNameConstant)
	directoryEntries, readError := os.ReadDir(issueReportsDirectory)
	if readError != nil {
		return issueFindings
	}

	var csvNames []string
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(directoryEntry.Name()), csvFileExtensionConstant) {
			continue
		}
		csvNames = append(csvNames, directoryEntry.Name())
	}
	sort.Strings(csvNames)

	for _, csvName := range csvNames {
		fileStem := strings.TrimSuffix(csvName, filepath.Ext(csvName))
		if strings.Contains(strings.ToLower(fileStem), inlinksFilenameFragmentConstant) {
			continue
		}

		derivedIssueName := titleWords(strings.ReplaceAll(fileStem, filenameWordSeparatorConstant, wordSeparatorConstant))

		csvPath := filepath.Join(issueReportsDirectory, csvName)
		issueTable, parseError := ReadTable(csvPath)
		if parseError != nil {
			logger.Warn(issueReportSkippedMessageConstant, zap.String(logFieldIssueReportPathConstant, csvPath), zap.Error(parseError))
			continue
		}

		addressColumn := issueTable.FirstColumnNamed(addressColumnConstant, urlColumnConstant)
		if len(addressColumn) == 0 {
			continue
		}

		issueMatch := catalog.Match(derivedIssueName)

		for _, issueRow := range issueTable.Rows {
			pageURL := NormalizeURL(issueRow[addressColumn])
			if len(internalPages) > 0 && !internalPages.Contains(pageURL) {
				continue
			}

			issueFindings[pageURL] = append(issueFindings[pageURL], FindingRow{
				Kind:        FindingKindIssue,
				Issue:       issueMatch.DisplayName,
				Priority:    issueMatch.Entry.Priority,
				Details:     assembleDetails(issueTable, issueRow, addressColumn),
				Description: issueMatch.Entry.Description,
				HowToFix:    issueMatch.Entry.HowToFix,
				HelpURL:     issueMatch.Entry.HelpURL,
			})
		}
	}

	return issueFindings
}

func assembleDetails(issueTable *Table, issueRow map[string]string, addressColumn string) string {
	var detailFragments []string
	for _, columnName := range issueTable.Columns {
		if columnName == addressColumn || columnName == indexabilityColumnConstant || columnName == indexabilityStatusColumnConstant {
			continue
		}
		columnValue := strings.TrimSpace(issueRow[columnName])
		if len(columnValue) == 0 {
			continue
		}
		detailFragments = append(detailFragments, columnName+detailFragmentSeparatorConstant+columnValue)
	}
	return strings.Join(detailFragments, detailListSeparatorConstant)
}
