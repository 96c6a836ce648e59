package report

import (
	"sort"
	"strconv"
	"strings"
)

const (
	accessibilityIssueColumnConstant       = "Issue"
	accessibilityPriorityColumnConstant    = "Priority"
	accessibilityLocationColumnConstant    = "Location on Page"
	accessibilityDescriptionColumnConstant = "Issue Description"
	violationColumnCandidateConstant       = "violation"
	issueColumnCandidateConstant           = "issue"
	issueNameColumnCandidateConstant       = "issue name"
	summaryCountColumnConstant             = "Count"
	summaryPagesAffectedColumnConstant     = "Pages Affected"
	fingerprintFieldSeparatorConstant      = "\x1f"
	fingerprintRowSeparatorConstant        = "\x1e"
)

// BuildPageFindings merges accessibility violations and per-issue findings
// into one ordered finding list per URL.
//
// Accessibility rows come first in source order, followed by catalog-issue
// rows in the order their source CSVs were processed. Only internal pages
// contribute, and pages with zero findings are dropped entirely.
func BuildPageFindings(violations *Table, issueFindings map[string][]FindingRow, internalPages InternalPageSet) map[string][]FindingRow {
	if violations != nil && len(internalPages) > 0 {
		violations = violations.FilterRows(func(violationRow map[string]string) bool {
			return internalPages.Contains(violationRow[urlColumnConstant])
		})
	}

	pageURLs := map[string]struct{}{}
	if violations != nil {
		for _, violationRow := range violations.Rows {
			pageURLs[violationRow[urlColumnConstant]] = struct{}{}
		}
	}
	for pageURL := range issueFindings {
		pageURLs[pageURL] = struct{}{}
	}

	pageFindings := map[string][]FindingRow{}
	for pageURL := range pageURLs {
		var findingRows []FindingRow
		if violations != nil {
			findingRows = append(findingRows, accessibilityFindingsForURL(violations, pageURL)...)
		}
		findingRows = append(findingRows, issueFindings[pageURL]...)
		if len(findingRows) > 0 {
			pageFindings[pageURL] = findingRows
		}
	}

	return pageFindings
}

func accessibilityFindingsForURL(violations *Table, pageURL string) []FindingRow {
	var findingRows []FindingRow
	for _, violationRow := range violations.Rows {
		if violationRow[urlColumnConstant] != pageURL {
			continue
		}
		findingRows = append(findingRows, FindingRow{
			Kind:        FindingKindAccessibility,
			Issue:       violationRow[accessibilityIssueColumnConstant],
			Priority:    violationRow[accessibilityPriorityColumnConstant],
			Details:     violationRow[accessibilityLocationColumnConstant],
			Description: violationRow[accessibilityDescriptionColumnConstant],
			HowToFix:    violationRow[howToFixColumnConstant],
			HelpURL:     violationRow[helpURLColumnConstant],
		})
	}
	return findingRows
}

// Fingerprint derives the order-independent canonical representation of a
// finding list. Two pages carrying the same multiset of finding field tuples
// share a fingerprint regardless of row order.
func Fingerprint(findingRows []FindingRow) string {
	encodedRows := make([]string, len(findingRows))
	for rowIndex, findingRow := range findingRows {
		encodedRows[rowIndex] = strings.Join(findingRow.Cells(), fingerprintFieldSeparatorConstant)
	}
	sort.Strings(encodedRows)
	return strings.Join(encodedRows, fingerprintRowSeparatorConstant)
}

// GroupPagesByFingerprint clusters URLs whose finding lists share a
// fingerprint. URLs are visited in sorted order so group membership, each
// group's representative URL, and the group sequence are reproducible.
func GroupPagesByFingerprint(pageFindings map[string][]FindingRow) []PageGroup {
	sortedURLs := make([]string, 0, len(pageFindings))
	for pageURL := range pageFindings {
		sortedURLs = append(sortedURLs, pageURL)
	}
	sort.Strings(sortedURLs)

	groupIndexByFingerprint := map[string]int{}
	var pageGroups []PageGroup

	for _, pageURL := range sortedURLs {
		fingerprint := Fingerprint(pageFindings[pageURL])
		if groupIndex, exists := groupIndexByFingerprint[fingerprint]; exists {
			pageGroups[groupIndex].URLs = append(pageGroups[groupIndex].URLs, pageURL)
			continue
		}
		groupIndexByFingerprint[fingerprint] = len(pageGroups)
		pageGroups = append(pageGroups, PageGroup{
			Fingerprint: fingerprint,
			URLs:        []string{pageURL},
			Rows:        pageFindings[pageURL],
		})
	}

	return pageGroups
}

// ComputeAccessibilitySummary aggregates the violations table by issue name
// when the crawler did not export its own summary report. The result carries
// a total count and distinct-page count per issue, sorted by count descending.
func ComputeAccessibilitySummary(violations *Table) *Table {
	issueColumn := ""
	for _, candidateColumn := range violations.Columns {
		loweredColumn := strings.ToLower(candidateColumn)
		if loweredColumn == issueColumnCandidateConstant || loweredColumn == violationColumnCandidateConstant || loweredColumn == issueNameColumnCandidateConstant {
			issueColumn = candidateColumn
			break
		}
	}
	if len(issueColumn) == 0 {
		if len(violations.Columns) < 2 {
			return nil
		}
		issueColumn = violations.Columns[1]
	}

	violationCounts := map[string]int{}
	affectedPages := map[string]map[string]struct{}{}
	for _, violationRow := range violations.Rows {
		issueName := violationRow[issueColumn]
		violationCounts[issueName]++
		if affectedPages[issueName] == nil {
			affectedPages[issueName] = map[string]struct{}{}
		}
		affectedPages[issueName][violationRow[urlColumnConstant]] = struct{}{}
	}

	issueNames := make([]string, 0, len(violationCounts))
	for issueName := range violationCounts {
		issueNames = append(issueNames, issueName)
	}
	sort.Slice(issueNames, func(firstIndex int, secondIndex int) bool {
		if violationCounts[issueNames[firstIndex]] != violationCounts[issueNames[secondIndex]] {
			return violationCounts[issueNames[firstIndex]] > violationCounts[issueNames[secondIndex]]
		}
		return issueNames[firstIndex] < issueNames[secondIndex]
	})

	summaryTable := &Table{Columns: []string{issueColumn, summaryCountColumnConstant, summaryPagesAffectedColumnConstant}}
	for _, issueName := range issueNames {
		summaryTable.Rows = append(summaryTable.Rows, map[string]string{
			issueColumn:                        issueName,
			summaryCountColumnConstant:         intToString(violationCounts[issueName]),
			summaryPagesAffectedColumnConstant: intToString(len(affectedPages[issueName])),
		})
	}

	return summaryTable
}

func intToString(value int) string {
	return strconv.Itoa(value)
}
