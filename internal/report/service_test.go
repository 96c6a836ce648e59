package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/temirov/sfreport/internal/report"
)

func writeConsolidationFixture(testInstance *testing.T) string {
	testInstance.Helper()
	exportDirectory := testInstance.TempDir()

	writeExportFixture(testInstance, exportDirectory, "issues_overview_report.csv",
		"Issue Name,Issue Priority,Description,How To Fix,Help URL,Issue Type\n"+
			"Missing Alt Text,High,Images without alternative text.,Add alt attributes.,https://help.example.com/alt-text,Issue\n")

	writeExportFixture(testInstance, exportDirectory, "accessibility_all_violations.csv",
		"Address,Issue,Priority,Location on Page,Issue Description,How To Fix,Help URL\n"+
			"http://example.com/,Low contrast,Serious,body,Contrast too low.,Increase contrast.,https://help.example.com/contrast\n"+
			"https://example.com/about,Missing label,Serious,form > input,Form input without a label.,Add a label.,https://help.example.com/labels\n"+
			"https://example.com/contact,Missing label,Serious,form > input,Form input without a label.,Add a label.,https://help.example.com/labels\n")

	writeExportFixture(testInstance, exportDirectory, "internal_all.csv",
		"Address,Content Type\n"+
			"https://example.com/,text/html\n"+
			"https://example.com/about,text/html\n"+
			"https://example.com/contact,text/html\n")

	writeIssueReportFixture(testInstance, exportDirectory, "missing_alt_text.csv",
		"Address,Occurrences\nhttps://example.com/,2\n")

	return exportDirectory
}

func TestGeneratorProducesNavigableWorkbook(testInstance *testing.T) {
	exportDirectory := writeConsolidationFixture(testInstance)
	outputPath := filepath.Join(testInstance.TempDir(), "report.xlsx")

	generator := report.NewGenerator(zap.NewNop())
	generationSummary, generationError := generator.Generate(exportDirectory, outputPath)
	require.NoError(testInstance, generationError)

	require.Equal(testInstance, 1, generationSummary.IssueTypeCount)
	require.Equal(testInstance, 2, generationSummary.SummaryRowCount)
	require.Equal(testInstance, 3, generationSummary.PageCount)
	require.Equal(testInstance, 2, generationSummary.UniqueSheetCount)
	require.Equal(testInstance, 1, generationSummary.DuplicatesCollapsed)
	require.Equal(testInstance, outputPath, generationSummary.OutputPath)

	workbook, openError := excelize.OpenFile(outputPath)
	require.NoError(testInstance, openError)
	defer func() {
		require.NoError(testInstance, workbook.Close())
	}()

	require.Equal(testInstance,
		[]string{"Issues Summary", "Accessibility Summary", "Pages", "home", "about"},
		workbook.GetSheetList(),
	)

	issuesSummaryHeader, headerError := workbook.GetCellValue("Issues Summary", "A1")
	require.NoError(testInstance, headerError)
	require.Equal(testInstance, "Issue Name", issuesSummaryHeader)

	topViolation, topViolationError := workbook.GetCellValue("Accessibility Summary", "A2")
	require.NoError(testInstance, topViolationError)
	require.Equal(testInstance, "Missing label", topViolation)
	topViolationCount, topViolationCountError := workbook.GetCellValue("Accessibility Summary", "B2")
	require.NoError(testInstance, topViolationCountError)
	require.Equal(testInstance, "2", topViolationCount)

	pagesHeader, pagesHeaderError := workbook.GetCellValue("Pages", "A1")
	require.NoError(testInstance, pagesHeaderError)
	require.Equal(testInstance, "URL", pagesHeader)

	firstIndexedURL, firstIndexedURLError := workbook.GetCellValue("Pages", "A2")
	require.NoError(testInstance, firstIndexedURLError)
	require.Equal(testInstance, "https://example.com/", firstIndexedURL)
	firstSheetReference, firstSheetReferenceError := workbook.GetCellValue("Pages", "B2")
	require.NoError(testInstance, firstSheetReferenceError)
	require.Equal(testInstance, "home", firstSheetReference)

	hasSheetLink, sheetLinkTarget, sheetLinkError := workbook.GetCellHyperLink("Pages", "B2")
	require.NoError(testInstance, sheetLinkError)
	require.True(testInstance, hasSheetLink)
	require.Equal(testInstance, "'home'!A1", sheetLinkTarget)

	duplicateAnnotation, duplicateAnnotationError := workbook.GetCellValue("Pages", "E3")
	require.NoError(testInstance, duplicateAnnotationError)
	require.Equal(testInstance, "2", duplicateAnnotation)

	groupedSheetLabel, groupedSheetLabelError := workbook.GetCellValue("about", "B1")
	require.NoError(testInstance, groupedSheetLabelError)
	require.Equal(testInstance, "2 pages with identical issues", groupedSheetLabel)

	homeFirstFindingKind, homeFirstFindingKindError := workbook.GetCellValue("home", "A4")
	require.NoError(testInstance, homeFirstFindingKindError)
	require.Equal(testInstance, "Accessibility", homeFirstFindingKind)
	homeSecondFindingKind, homeSecondFindingKindError := workbook.GetCellValue("home", "A5")
	require.NoError(testInstance, homeSecondFindingKindError)
	require.Equal(testInstance, "Issue", homeSecondFindingKind)
	homeSecondFindingIssue, homeSecondFindingIssueError := workbook.GetCellValue("home", "B5")
	require.NoError(testInstance, homeSecondFindingIssueError)
	require.Equal(testInstance, "Missing Alt Text", homeSecondFindingIssue)
}

func TestGeneratorReturnsNoDataErrorWithoutExports(testInstance *testing.T) {
	emptyDirectory := testInstance.TempDir()
	outputPath := filepath.Join(testInstance.TempDir(), "report.xlsx")

	generator := report.NewGenerator(zap.NewNop())
	_, generationError := generator.Generate(emptyDirectory, outputPath)

	var noDataError report.NoDataError
	require.ErrorAs(testInstance, generationError, &noDataError)
	require.Equal(testInstance, emptyDirectory, noDataError.ExportDirectory)

	_, statError := os.Stat(outputPath)
	require.True(testInstance, os.IsNotExist(statError))
}

func TestGeneratorKeepsPageSheetsApartFromFixedSheets(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "accessibility_all_violations.csv",
		"Address,Issue,Priority\n"+
			"https://example.com/About,Low contrast,Serious\n"+
			"https://example.com/about,Missing label,Serious\n"+
			"https://example.com/pages,Broken skip link,Serious\n")
	outputPath := filepath.Join(testInstance.TempDir(), "report.xlsx")

	generator := report.NewGenerator(zap.NewNop())
	generationSummary, generationError := generator.Generate(exportDirectory, outputPath)
	require.NoError(testInstance, generationError)
	require.Equal(testInstance, 3, generationSummary.UniqueSheetCount)

	workbook, openError := excelize.OpenFile(outputPath)
	require.NoError(testInstance, openError)
	defer func() {
		require.NoError(testInstance, workbook.Close())
	}()

	require.Equal(testInstance,
		[]string{"Accessibility Summary", "Pages", "About", "about (1)", "pages (1)"},
		workbook.GetSheetList(),
	)

	upperCaseIssue, upperCaseIssueError := workbook.GetCellValue("About", "B4")
	require.NoError(testInstance, upperCaseIssueError)
	require.Equal(testInstance, "Low contrast", upperCaseIssue)

	lowerCaseIssue, lowerCaseIssueError := workbook.GetCellValue("about (1)", "B4")
	require.NoError(testInstance, lowerCaseIssueError)
	require.Equal(testInstance, "Missing label", lowerCaseIssue)

	indexedPagesURL, indexedPagesURLError := workbook.GetCellValue("Pages", "A4")
	require.NoError(testInstance, indexedPagesURLError)
	require.Equal(testInstance, "https://example.com/pages", indexedPagesURL)
	indexedPagesSheet, indexedPagesSheetError := workbook.GetCellValue("Pages", "B4")
	require.NoError(testInstance, indexedPagesSheetError)
	require.Equal(testInstance, "pages (1)", indexedPagesSheet)
}

func TestGeneratorToleratesViolationsOnlyExports(testInstance *testing.T) {
	exportDirectory := testInstance.TempDir()
	writeExportFixture(testInstance, exportDirectory, "accessibility_all_violations.csv",
		"Address,Issue,Priority\nhttps://example.com/,Missing label,Serious\n")
	outputPath := filepath.Join(testInstance.TempDir(), "report.xlsx")

	generator := report.NewGenerator(zap.NewNop())
	generationSummary, generationError := generator.Generate(exportDirectory, outputPath)
	require.NoError(testInstance, generationError)

	require.Zero(testInstance, generationSummary.IssueTypeCount)
	require.Equal(testInstance, 1, generationSummary.SummaryRowCount)
	require.Equal(testInstance, 1, generationSummary.PageCount)

	workbook, openError := excelize.OpenFile(outputPath)
	require.NoError(testInstance, openError)
	defer func() {
		require.NoError(testInstance, workbook.Close())
	}()

	require.Equal(testInstance, []string{"Accessibility Summary", "Pages", "home"}, workbook.GetSheetList())
}
