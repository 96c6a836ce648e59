package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/sfreport/internal/report"
)

func writeExportFixture(testInstance *testing.T, exportDirectory string, fileName string, content string) {
	testInstance.Helper()
	require.NoError(testInstance, os.WriteFile(filepath.Join(exportDirectory, fileName), []byte(content), 0o644))
}

func writeIssueReportFixture(testInstance *testing.T, exportDirectory string, fileName string, content string) {
	testInstance.Helper()
	issueReportsDirectory := filepath.Join(exportDirectory, "issues_reports")
	require.NoError(testInstance, os.MkdirAll(issueReportsDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(issueReportsDirectory, fileName), []byte(content), 0o644))
}

func TestLoadIssuesOverviewRejectsTablesWithoutIssueName(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "issues_overview_report.csv", "Address,Status\nhttps://example.com/,OK\n")

	require.Nil(testInstance, report.LoadIssuesOverview(exportDirectory))
}

func TestLoadIssuesOverviewAcceptsCatalogTables(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "issues_overview_report.csv", "Issue Name,Issue Priority\nMissing Alt Text,High\n")

	issuesOverview := report.LoadIssuesOverview(exportDirectory)
	require.NotNil(testInstance, issuesOverview)
	require.Len(testInstance, issuesOverview.Rows, 1)
}

func TestLoadAccessibilityViolationsCanonicalizesURLColumn(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "accessibility_all_violations.csv", "Address,Issue\nhttp://example.com/pricing,Missing label\n")

	violations := report.LoadAccessibilityViolations(exportDirectory)
	require.NotNil(testInstance, violations)
	require.True(testInstance, violations.HasColumn("URL"))
	require.False(testInstance, violations.HasColumn("Address"))
	require.Equal(testInstance, "https://example.com/pricing", violations.Rows[0]["URL"])
}

func TestLoadInternalPagesFiltersAssetsAndNonHTML(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "internal_all.csv",
		"Address,Content Type\n"+
			"http://example.com/,text/html; charset=UTF-8\n"+
			"https://example.com/pricing,text/html\n"+
			"https://example.com/logo.png,text/html\n"+
			"https://example.com/feed,application/json\n")

	internalPages := report.LoadInternalPages(exportDirectory)
	require.Len(testInstance, internalPages, 2)
	require.True(testInstance, internalPages.Contains("https://example.com/"))
	require.True(testInstance, internalPages.Contains("https://example.com/pricing"))
	require.False(testInstance, internalPages.Contains("https://example.com/logo.png"))
}

func TestLoadIssueReports(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "issues_overview_report.csv",
		"Issue Name,Issue Priority,Description,How To Fix,Help URL,Issue Type\n"+
			"Missing Alt Text,High,Images without alternative text.,Add alt attributes.,https://help.example.com/alt-text,Issue\n")

	writeIssueReportFixture(testInstance, exportDirectory, "missing_alt_text.csv",
		"Address,Indexability,Indexability Status,Occurrences\n"+
			"http://example.com/pricing,Indexable,,3\n"+
			"https://example.com/external-page,Indexable,,1\n")
	writeIssueReportFixture(testInstance, exportDirectory, "missing_alt_text_inlinks.csv",
		"Address,Source\nhttps://example.com/pricing,https://example.com/\n")

	internalPages := report.InternalPageSet{"https://example.com/pricing": {}}
	catalog := report.BuildIssueCatalog(report.LoadIssuesOverview(exportDirectory))

	issueFindings := report.LoadIssueReports(exportDirectory, catalog, internalPages, zap.NewNop())

	require.Len(testInstance, issueFindings, 1)
	findingRows := issueFindings["https://example.com/pricing"]
	require.Len(testInstance, findingRows, 1)

	findingRow := findingRows[0]
	require.Equal(testInstance, report.FindingKindIssue, findingRow.Kind)
	require.Equal(testInstance, "Missing Alt Text", findingRow.Issue)
	require.Equal(testInstance, "High", findingRow.Priority)
	require.Equal(testInstance, "Occurrences: 3", findingRow.Details)
	require.Equal(testInstance, "Add alt attributes.", findingRow.HowToFix)
}

func TestLoadIssueReportsWithoutInternalFilterKeepsAllRows(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeIssueReportFixture(testInstance, exportDirectory, "redirect_chains.csv",
		"Address,Hops\nhttps://example.com/a,2\nhttps://example.com/b,3\n")

	issueFindings := report.LoadIssueReports(exportDirectory, report.IssueCatalog{}, report.InternalPageSet{}, zap.NewNop())

	require.Len(testInstance, issueFindings, 2)
	require.Equal(testInstance, "Redirect Chains", issueFindings["https://example.com/a"][0].Issue)
	require.Equal(testInstance, "Hops: 2", issueFindings["https://example.com/a"][0].Details)
}

func TestLoadIssueReportsTitleCasesUppercaseFilenameStems(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeIssueReportFixture(testInstance, exportDirectory, "MISSING_ALT.csv",
		"Address,Occurrences\nhttps://example.com/,1\n")

	issueFindings := report.LoadIssueReports(exportDirectory, report.IssueCatalog{}, report.InternalPageSet{}, zap.NewNop())

	require.Len(testInstance, issueFindings, 1)
	require.Equal(testInstance, "Missing Alt", issueFindings["https://example.com/"][0].Issue)
}

func TestLoadIssueReportsMissingDirectory(testInstance *testing.T) {
	issueFindings := report.LoadIssueReports(testInstance.TempDir(), report.IssueCatalog{}, report.InternalPageSet{}, zap.NewNop())
	require.Empty(testInstance, issueFindings)
}
