package report

// FindingKind distinguishes the two sources feeding the unified per-page table.
type FindingKind string

// Finding kinds rendered in the Type column of per-page sheets.
const (
	FindingKindIssue         FindingKind = "Issue"
	FindingKindAccessibility FindingKind = "Accessibility"
)

// FindingRow models one row of the unified per-page findings table.
type FindingRow struct {
	Kind        FindingKind
	Issue       string
	Priority    string
	Details     string
	Description string
	HowToFix    string
	HelpURL     string
}

// Cells returns the row formatted for the fixed per-page column layout.
func (row FindingRow) Cells() []string {
	return []string{
		string(row.Kind),
		row.Issue,
		row.Priority,
		row.Details,
		row.Description,
		row.HowToFix,
		row.HelpURL,
	}
}

// IssueCatalogEntry stores the Issues Overview metadata for a single issue type.
type IssueCatalogEntry struct {
	Priority    string
	Description string
	HowToFix    string
	HelpURL     string
	IssueType   string
}

// InternalPageSet holds the normalized URLs classified as internal HTML pages.
type InternalPageSet map[string]struct{}

// Contains reports whether the supplied normalized URL belongs to the set.
func (pageSet InternalPageSet) Contains(pageURL string) bool {
	_, exists := pageSet[pageURL]
	return exists
}

// PageGroup owns the URLs whose combined finding lists share one fingerprint.
type PageGroup struct {
	Fingerprint string
	URLs        []string
	Rows        []FindingRow
}

// RepresentativeURL returns the URL whose findings the group's sheet renders.
func (group PageGroup) RepresentativeURL() string {
	if len(group.URLs) == 0 {
		return ""
	}
	return group.URLs[0]
}

// PageIndexEntry describes one row of the Pages index sheet.
type PageIndexEntry struct {
	URL                string
	SheetName          string
	AccessibilityCount int
	IssueCount         int
	GroupSize          int
}
