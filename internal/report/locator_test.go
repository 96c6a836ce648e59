package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/sfreport/internal/report"
)

const (
	testPatternPriorityCaseNameConstant      = "first_pattern_wins"
	testCaseInsensitiveMatchCaseNameConstant = "case_insensitive_match"
	testSortedMatchCaseNameConstant          = "lexicographically_first_match"
	testNoMatchCaseNameConstant              = "no_match_returns_empty"
)

func TestFindExport(testInstance *testing.T) {
	testCases := []struct {
		name         string
		fileNames    []string
		patterns     []string
		expectedName string
	}{
		{
			name:         testPatternPriorityCaseNameConstant,
			fileNames:    []string{"issues_overview_report.csv", "all_issues.csv"},
			patterns:     []string{"*ssues*verview*.csv", "*issues*.csv"},
			expectedName: "issues_overview_report.csv",
		},
		{
			name:         testCaseInsensitiveMatchCaseNameConstant,
			fileNames:    []string{"Issues_Overview_Report.csv"},
			patterns:     []string{"*ssues*verview*.csv"},
			expectedName: "Issues_Overview_Report.csv",
		},
		{
			name:         testSortedMatchCaseNameConstant,
			fileNames:    []string{"b_all_violations.csv", "a_all_violations.csv"},
			patterns:     []string{"*all_violations*.csv"},
			expectedName: "a_all_violations.csv",
		},
		{
			name:         testNoMatchCaseNameConstant,
			fileNames:    []string{"unrelated.txt"},
			patterns:     []string{"*all_violations*.csv"},
			expectedName: "",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			exportDirectory := testInstance.TempDir()
			for _, fileName := range testCase.fileNames {
				require.NoError(testInstance, os.WriteFile(filepath.Join(exportDirectory, fileName), []byte("Header\n"), 0o644))
			}

			foundPath := report.FindExport(exportDirectory, testCase.patterns...)
			if len(testCase.expectedName) == 0 {
				require.Empty(testInstance, foundPath)
				return
			}
			require.Equal(testInstance, filepath.Join(exportDirectory, testCase.expectedName), foundPath)
		})
	}
}

func TestFindExportMissingDirectory(testInstance *testing.T) {
	missingDirectory := filepath.Join(testInstance.TempDir(), "absent")
	require.Empty(testInstance, report.FindExport(missingDirectory, "*.csv"))
}
