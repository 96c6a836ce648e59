package report

import (
	"sort"
	"strings"
	"unicode"
)

const (
	issueNameColumnConstant            = "Issue Name"
	issuePriorityColumnConstant        = "Issue Priority"
	descriptionColumnConstant          = "Description"
	howToFixColumnConstant             = "How To Fix"
	helpURLColumnConstant              = "Help URL"
	issueTypeColumnConstant            = "Issue Type"
	accessibilityCatalogPrefixConstant = "accessibility:"
	minimumWordOverlapConstant         = 2
	wordSeparatorConstant              = " "
)

// IssueCatalog keys Issues Overview metadata by lowercase issue name.
type IssueCatalog map[string]IssueCatalogEntry

// BuildIssueCatalog indexes the Issues Overview table for enrichment lookups.
func BuildIssueCatalog(issuesOverview *Table) IssueCatalog {
	catalog := IssueCatalog{}
	if issuesOverview == nil {
		return catalog
	}

	for _, overviewRow := range issuesOverview.Rows {
		issueName := strings.TrimSpace(overviewRow[issueNameColumnConstant])
		if len(issueName) == 0 {
			continue
		}
		catalog[strings.ToLower(issueName)] = IssueCatalogEntry{
			Priority:    overviewRow[issuePriorityColumnConstant],
			Description: overviewRow[descriptionColumnConstant],
			HowToFix:    overviewRow[howToFixColumnConstant],
			HelpURL:     overviewRow[helpURLColumnConstant],
			IssueType:   overviewRow[issueTypeColumnConstant],
		}
	}

	return catalog
}

// IssueMatch reports the display name and enrichment metadata resolved for a
// filename-derived issue name.
type IssueMatch struct {
	DisplayName string
	Entry       IssueCatalogEntry
	Matched     bool
}

// Match resolves a filename-derived issue name against the catalog.
//
// An exact case-insensitive match wins and keeps the derived name for display.
// Otherwise the derived name's word set is scored against every
// non-accessibility catalog key; the highest overlap of at least two words is
// accepted, with ties broken toward the first key in sorted order. Single-word
// overlaps stay unmatched so generic words cannot attach unrelated metadata.
func (catalog IssueCatalog) Match(derivedName string) IssueMatch {
	loweredName := strings.ToLower(derivedName)
	if catalogEntry, exists := catalog[loweredName]; exists {
		return IssueMatch{DisplayName: derivedName, Entry: catalogEntry, Matched: true}
	}

	derivedWords := wordSet(loweredName)
	bestScore := 0
	bestMatch := IssueMatch{DisplayName: derivedName}

	for _, catalogKey := range catalog.sortedKeys() {
		if strings.HasPrefix(catalogKey, accessibilityCatalogPrefixConstant) {
			continue
		}
		overlapCount := wordOverlap(derivedWords, wordSet(catalogKey))
		if overlapCount > bestScore && overlapCount >= minimumWordOverlapConstant {
			bestScore = overlapCount
			bestMatch = IssueMatch{DisplayName: titleWords(catalogKey), Entry: catalog[catalogKey], Matched: true}
		}
	}

	return bestMatch
}

func (catalog IssueCatalog) sortedKeys() []string {
	catalogKeys := make([]string, 0, len(catalog))
	for catalogKey := range catalog {
		catalogKeys = append(catalogKeys, catalogKey)
	}
	sort.Strings(catalogKeys)
	return catalogKeys
}

func wordSet(value string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, word := range strings.Fields(value) {
		words[word] = struct{}{}
	}
	return words
}

func wordOverlap(firstWords map[string]struct{}, secondWords map[string]struct{}) int {
	overlapCount := 0
	for word := range firstWords {
		if _, shared := secondWords[word]; shared {
			overlapCount++
		}
	}
	return overlapCount
}

func titleWords(value string) string {
	words := strings.Split(value, wordSeparatorConstant)
	for wordIndex, word := range words {
		wordRunes := []rune(strings.ToLower(word))
		if len(wordRunes) == 0 {
			continue
		}
		wordRunes[0] = unicode.ToUpper(wordRunes[0])
		words[wordIndex] = string(wordRunes)
	}
	return strings.Join(words, wordSeparatorConstant)
}
