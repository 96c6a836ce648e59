package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	defaultWorkbookSheetNameConstant      = "Sheet1"
	issuesSummarySheetNameConstant        = "Issues Summary"
	accessibilitySummarySheetNameConstant = "Accessibility Summary"
	pagesIndexSheetNameConstant           = "Pages"
	headerFontColorConstant               = "FFFFFF"
	headerFillColorConstant               = "2F5496"
	linkFontColorConstant                 = "0563C1"
	singleUnderlineConstant               = "single"
	patternFillTypeConstant               = "pattern"
	solidFillPatternConstant              = 1
	topVerticalAlignmentConstant          = "top"
	headerFontSizeConstant                = 11
	minimumColumnWidthConstant            = 12
	maximumColumnWidthConstant            = 60
	columnWidthPaddingConstant            = 2
	externalHyperlinkTypeConstant         = "External"
	locationHyperlinkTypeConstant         = "Location"
	sheetLocationTemplateConstant         = "'%s'!A1"
	sheetNameQuoteConstant                = "'"
	sheetNameQuoteEscapeConstant          = "''"
	bottomLeftActivePaneConstant          = "bottomLeft"
	topLeftCellTemplateConstant           = "A%d"
	urlLabelConstant                      = "URL"
	urlsLabelConstant                     = "URLs"
	duplicateGroupLabelTemplateConstant   = "%d pages with identical issues"
	pagesIndexSheetColumnConstant         = "Sheet"
	pagesIndexAccessibilityColumnConstant = "Accessibility"
	pagesIndexIssuesColumnConstant        = "Issues"
	pagesIndexDuplicatesColumnConstant    = "Duplicates"
)

var findingColumnHeaders = []string{
	"Type",
	"Issue",
	"Priority",
	"Details",
	"Description",
	"How To Fix",
	"Help URL",
}

// workbookRenderer owns the excelize workbook and the shared cell styles.
type workbookRenderer struct {
	file          *excelize.File
	headerStyleID int
	linkStyleID   int
	boldStyleID   int
	sheetCount    int
}

func newWorkbookRenderer() (*workbookRenderer, error) {
	workbookFile := excelize.NewFile()

	headerStyleID, headerStyleError := workbookFile.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColorConstant, Size: headerFontSizeConstant},
		Fill:      excelize.Fill{Type: patternFillTypeConstant, Color: []string{headerFillColorConstant}, Pattern: solidFillPatternConstant},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: topVerticalAlignmentConstant},
	})
	if headerStyleError != nil {
		return nil, headerStyleError
	}

	linkStyleID, linkStyleError := workbookFile.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: linkFontColorConstant, Underline: singleUnderlineConstant},
	})
	if linkStyleError != nil {
		return nil, linkStyleError
	}

	boldStyleID, boldStyleError := workbookFile.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if boldStyleError != nil {
		return nil, boldStyleError
	}

	return &workbookRenderer{
		file:          workbookFile,
		headerStyleID: headerStyleID,
		linkStyleID:   linkStyleID,
		boldStyleID:   boldStyleID,
	}, nil
}

// sheetBuilder appends rows to one sheet while tracking content widths.
type sheetBuilder struct {
	renderer     *workbookRenderer
	sheetName    string
	rowCount     int
	columnWidths []int
}

func (renderer *workbookRenderer) newSheet(sheetName string) (*sheetBuilder, error) {
	if _, creationError := renderer.file.NewSheet(sheetName); creationError != nil {
		return nil, creationError
	}
	renderer.sheetCount++
	return &sheetBuilder{renderer: renderer, sheetName: sheetName}, nil
}

func (builder *sheetBuilder) appendRow(cellValues ...string) (int, error) {
	rowNumber := builder.rowCount + 1
	for columnIndex, cellValue := range cellValues {
		cellName, cellNameError := excelize.CoordinatesToCellName(columnIndex+1, rowNumber)
		if cellNameError != nil {
			return 0, cellNameError
		}
		if setError := builder.renderer.file.SetCellValue(builder.sheetName, cellName, cellValue); setError != nil {
			return 0, setError
		}
		builder.trackWidth(columnIndex, cellValue)
	}
	builder.rowCount = rowNumber
	return rowNumber, nil
}

func (builder *sheetBuilder) trackWidth(columnIndex int, cellValue string) {
	for len(builder.columnWidths) <= columnIndex {
		builder.columnWidths = append(builder.columnWidths, 0)
	}
	contentLength := runeLength(cellValue)
	if contentLength > builder.columnWidths[columnIndex] {
		builder.columnWidths[columnIndex] = contentLength
	}
}

func (builder *sheetBuilder) styleHeaderRow(rowNumber int, columnCount int) error {
	if columnCount == 0 {
		return nil
	}
	firstCell, firstCellError := excelize.CoordinatesToCellName(1, rowNumber)
	if firstCellError != nil {
		return firstCellError
	}
	lastCell, lastCellError := excelize.CoordinatesToCellName(columnCount, rowNumber)
	if lastCellError != nil {
		return lastCellError
	}
	return builder.renderer.file.SetCellStyle(builder.sheetName, firstCell, lastCell, builder.renderer.headerStyleID)
}

func (builder *sheetBuilder) styleBoldCell(columnNumber int, rowNumber int) error {
	cellName, cellNameError := excelize.CoordinatesToCellName(columnNumber, rowNumber)
	if cellNameError != nil {
		return cellNameError
	}
	return builder.renderer.file.SetCellStyle(builder.sheetName, cellName, cellName, builder.renderer.boldStyleID)
}

func (builder *sheetBuilder) setExternalLink(columnNumber int, rowNumber int, targetURL string) error {
	cellName, cellNameError := excelize.CoordinatesToCellName(columnNumber, rowNumber)
	if cellNameError != nil {
		return cellNameError
	}
	if linkError := builder.renderer.file.SetCellHyperLink(builder.sheetName, cellName, targetURL, externalHyperlinkTypeConstant); linkError != nil {
		return linkError
	}
	return builder.renderer.file.SetCellStyle(builder.sheetName, cellName, cellName, builder.renderer.linkStyleID)
}

func (builder *sheetBuilder) setSheetLink(columnNumber int, rowNumber int, targetSheetName string) error {
	cellName, cellNameError := excelize.CoordinatesToCellName(columnNumber, rowNumber)
	if cellNameError != nil {
		return cellNameError
	}
	escapedSheetName := strings.ReplaceAll(targetSheetName, sheetNameQuoteConstant, sheetNameQuoteEscapeConstant)
	location := fmt.Sprintf(sheetLocationTemplateConstant, escapedSheetName)
	if linkError := builder.renderer.file.SetCellHyperLink(builder.sheetName, cellName, location, locationHyperlinkTypeConstant); linkError != nil {
		return linkError
	}
	return builder.renderer.file.SetCellStyle(builder.sheetName, cellName, cellName, builder.renderer.linkStyleID)
}

func (builder *sheetBuilder) applyColumnWidths() error {
	for columnIndex, contentWidth := range builder.columnWidths {
		columnName, columnNameError := excelize.ColumnNumberToName(columnIndex + 1)
		if columnNameError != nil {
			return columnNameError
		}
		columnWidth := contentWidth + columnWidthPaddingConstant
		if columnWidth > maximumColumnWidthConstant {
			columnWidth = maximumColumnWidthConstant
		}
		if columnWidth < minimumColumnWidthConstant {
			columnWidth = minimumColumnWidthConstant
		}
		if widthError := builder.renderer.file.SetColWidth(builder.sheetName, columnName, columnName, float64(columnWidth)); widthError != nil {
			return widthError
		}
	}
	return nil
}

func (builder *sheetBuilder) freezeBelowRow(headerRowNumber int) error {
	return builder.renderer.file.SetPanes(builder.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRowNumber,
		TopLeftCell: fmt.Sprintf(topLeftCellTemplateConstant, headerRowNumber+1),
		ActivePane:  bottomLeftActivePaneConstant,
	})
}

// addTableSheet renders a loaded table verbatim with styled headers, clickable
// URL cells, sized columns, and a frozen header row.
func (renderer *workbookRenderer) addTableSheet(sheetName string, table *Table) error {
	builder, sheetError := renderer.newSheet(sheetName)
	if sheetError != nil {
		return sheetError
	}

	if _, headerError := builder.appendRow(table.Columns...); headerError != nil {
		return headerError
	}

	for _, tableRow := range table.Rows {
		cellValues := make([]string, len(table.Columns))
		for columnIndex, columnName := range table.Columns {
			cellValues[columnIndex] = tableRow[columnName]
		}
		rowNumber, rowError := builder.appendRow(cellValues...)
		if rowError != nil {
			return rowError
		}
		for columnIndex, cellValue := range cellValues {
			if IsAbsoluteURL(cellValue) {
				if linkError := builder.setExternalLink(columnIndex+1, rowNumber, cellValue); linkError != nil {
					return linkError
				}
			}
		}
	}

	if styleError := builder.styleHeaderRow(1, len(table.Columns)); styleError != nil {
		return styleError
	}
	if widthError := builder.applyColumnWidths(); widthError != nil {
		return widthError
	}
	return builder.freezeBelowRow(1)
}

// addPageGroupSheet renders one fingerprint group: the URL block, a blank
// separator, and the unified findings table with a clickable Help URL column.
func (renderer *workbookRenderer) addPageGroupSheet(sheetName string, group PageGroup) error {
	builder, sheetError := renderer.newSheet(sheetName)
	if sheetError != nil {
		return sheetError
	}

	if len(group.URLs) == 1 {
		rowNumber, rowError := builder.appendRow(urlLabelConstant, group.URLs[0])
		if rowError != nil {
			return rowError
		}
		if linkError := builder.setExternalLink(2, rowNumber, group.URLs[0]); linkError != nil {
			return linkError
		}
	} else {
		if _, headerError := builder.appendRow(urlsLabelConstant, fmt.Sprintf(duplicateGroupLabelTemplateConstant, len(group.URLs))); headerError != nil {
			return headerError
		}
		for _, groupURL := range group.URLs {
			rowNumber, rowError := builder.appendRow("", groupURL)
			if rowError != nil {
				return rowError
			}
			if linkError := builder.setExternalLink(2, rowNumber, groupURL); linkError != nil {
				return linkError
			}
		}
	}

	if boldError := builder.styleBoldCell(1, 1); boldError != nil {
		return boldError
	}

	if _, separatorError := builder.appendRow(); separatorError != nil {
		return separatorError
	}

	headerRowNumber, headerError := builder.appendRow(findingColumnHeaders...)
	if headerError != nil {
		return headerError
	}

	helpURLColumnNumber := len(findingColumnHeaders)
	for _, findingRow := range group.Rows {
		rowNumber, rowError := builder.appendRow(findingRow.Cells()...)
		if rowError != nil {
			return rowError
		}
		if IsAbsoluteURL(findingRow.HelpURL) {
			if linkError := builder.setExternalLink(helpURLColumnNumber, rowNumber, findingRow.HelpURL); linkError != nil {
				return linkError
			}
		}
	}

	if styleError := builder.styleHeaderRow(headerRowNumber, len(findingColumnHeaders)); styleError != nil {
		return styleError
	}
	if widthError := builder.applyColumnWidths(); widthError != nil {
		return widthError
	}
	return builder.freezeBelowRow(headerRowNumber)
}

// addPagesIndexPlaceholder reserves the Pages sheet position between the
// summary sheets and the per-page sheets. The index rows are filled in later
// once every group sheet has been allocated a name.
func (renderer *workbookRenderer) addPagesIndexPlaceholder() error {
	_, creationError := renderer.file.NewSheet(pagesIndexSheetNameConstant)
	if creationError != nil {
		return creationError
	}
	renderer.sheetCount++
	return nil
}

// fillPagesIndex writes one row per audited URL with external and internal
// hyperlinks. Pages sharing a sheet each get their own row annotated with the
// duplicate-group size.
func (renderer *workbookRenderer) fillPagesIndex(indexEntries []PageIndexEntry) error {
	builder := &sheetBuilder{renderer: renderer, sheetName: pagesIndexSheetNameConstant}

	headers := []string{urlLabelConstant, pagesIndexSheetColumnConstant, pagesIndexAccessibilityColumnConstant, pagesIndexIssuesColumnConstant, pagesIndexDuplicatesColumnConstant}
	if _, headerError := builder.appendRow(headers...); headerError != nil {
		return headerError
	}

	for _, indexEntry := range indexEntries {
		duplicatesValue := ""
		if indexEntry.GroupSize > 1 {
			duplicatesValue = intToString(indexEntry.GroupSize)
		}
		rowNumber, rowError := builder.appendRow(
			indexEntry.URL,
			indexEntry.SheetName,
			intToString(indexEntry.AccessibilityCount),
			intToString(indexEntry.IssueCount),
			duplicatesValue,
		)
		if rowError != nil {
			return rowError
		}
		if linkError := builder.setExternalLink(1, rowNumber, indexEntry.URL); linkError != nil {
			return linkError
		}
		if linkError := builder.setSheetLink(2, rowNumber, indexEntry.SheetName); linkError != nil {
			return linkError
		}
	}

	if styleError := builder.styleHeaderRow(1, len(headers)); styleError != nil {
		return styleError
	}
	if widthError := builder.applyColumnWidths(); widthError != nil {
		return widthError
	}
	return builder.freezeBelowRow(1)
}

// finalize removes the default sheet and writes the workbook atomically: the
// file is saved to a temporary sibling first and renamed into place only on
// success, so a crash mid-write never leaves a partial file at the output
// path.
func (renderer *workbookRenderer) finalize(outputPath string) error {
	if deleteError := renderer.file.DeleteSheet(defaultWorkbookSheetNameConstant); deleteError != nil {
		return deleteError
	}

	outputDirectory := filepath.Dir(outputPath)
	outputExtension := filepath.Ext(outputPath)
	outputStem := strings.TrimSuffix(filepath.Base(outputPath), outputExtension)

	// SaveAs refuses extensions it does not recognize, so the temporary file
	// keeps the output extension.
	temporaryFile, temporaryFileError := os.CreateTemp(outputDirectory, outputStem+".tmp-*"+outputExtension)
	if temporaryFileError != nil {
		return temporaryFileError
	}
	temporaryPath := temporaryFile.Name()
	if closeError := temporaryFile.Close(); closeError != nil {
		return closeError
	}

	if saveError := renderer.file.SaveAs(temporaryPath); saveError != nil {
		_ = os.Remove(temporaryPath)
		return saveError
	}

	if renameError := os.Rename(temporaryPath, outputPath); renameError != nil {
		_ = os.Remove(temporaryPath)
		return renameError
	}

	return nil
}
