package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindExport scans the directory for files matching the candidate glob
// patterns. Patterns are tried in priority order and matched
// case-insensitively; the first pattern yielding any match wins and the
// lexicographically-first matching file is returned. An empty path signals
// that no candidate matched, which callers treat as missing data rather than
// an error.
func FindExport(directoryPath string, candidatePatterns ...string) string {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return ""
	}

	for _, candidatePattern := range candidatePatterns {
		loweredPattern := strings.ToLower(candidatePattern)

		var matchingNames []string
		for _, directoryEntry := range directoryEntries {
			if directoryEntry.IsDir() {
				continue
			}
			matched, matchError := filepath.Match(loweredPattern, strings.ToLower(directoryEntry.Name()))
			if matchError != nil || !matched {
				continue
			}
			matchingNames = append(matchingNames, directoryEntry.Name())
		}

		if len(matchingNames) > 0 {
			sort.Strings(matchingNames)
			return filepath.Join(directoryPath, matchingNames[0])
		}
	}

	return ""
}
