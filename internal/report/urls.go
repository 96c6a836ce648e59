package report

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	insecureSchemePrefixConstant    = "http://"
	secureSchemePrefixConstant      = "https://"
	schemeReplacementCountConstant  = 1
	homeSheetNameConstant           = "home"
	fallbackSheetNameConstant       = "page"
	pathSegmentSeparatorConstant    = " - "
	sheetNameTrimCutsetConstant     = " -"
	maximumSheetNameLengthConstant  = 31
	collisionSuffixReservedConstant = 4
	collisionSuffixTemplateConstant = " (%d)"
	urlPathSeparatorConstant        = "/"
)

var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

var invalidSheetNameCharacterPattern = regexp.MustCompile(`[\\/*?\[\]:]`)

// Extensions the crawler sometimes labels text/html despite pointing at assets.
var assetExtensionPattern = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|svg|webp|ico|bmp|tiff` +
	`|pdf|doc|docx|xls|xlsx|ppt|pptx` +
	`|css|js|json|xml|txt|csv` +
	`|woff|woff2|ttf|eot|otf` +
	`|mp4|mp3|wav|avi|mov|webm` +
	`|zip|gz|tar|rar)(?:\?.*)?$`)

// NormalizeURL canonicalizes the http scheme to https so differently-schemed
// URLs compare equal everywhere.
func NormalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, insecureSchemePrefixConstant) {
		return strings.Replace(rawURL, insecureSchemePrefixConstant, secureSchemePrefixConstant, schemeReplacementCountConstant)
	}
	return rawURL
}

// IsAbsoluteURL reports whether the value is a well-formed absolute http(s) URL.
func IsAbsoluteURL(value string) bool {
	return absoluteURLPattern.MatchString(value)
}

// IsAssetAddress reports whether the address ends in a known asset extension.
func IsAssetAddress(address string) bool {
	return assetExtensionPattern.MatchString(address)
}

// SheetNameAllocator derives unique workbook sheet names from page URLs.
// Workbook sheet names are case-insensitive, so collisions are tracked on a
// case-folded key.
type SheetNameAllocator struct {
	seenBaseNames map[string]int
}

// NewSheetNameAllocator constructs an allocator. The supplied reserved sheet
// names are treated as already taken, so page-derived names can never land on
// an existing sheet.
func NewSheetNameAllocator(reservedSheetNames ...string) *SheetNameAllocator {
	seenBaseNames := map[string]int{}
	for _, reservedSheetName := range reservedSheetNames {
		seenBaseNames[strings.ToLower(reservedSheetName)] = 0
	}
	return &SheetNameAllocator{seenBaseNames: seenBaseNames}
}

// Allocate derives a sheet name from the URL path, strips characters Excel
// rejects, keeps the result within the sheet-name length limit, and resolves
// collisions with a numeric suffix.
func (allocator *SheetNameAllocator) Allocate(pageURL string) string {
	sheetName := deriveBaseSheetName(pageURL)

	if runeLength(sheetName) > maximumSheetNameLengthConstant-collisionSuffixReservedConstant {
		sheetName = strings.TrimRight(truncateRunes(sheetName, maximumSheetNameLengthConstant-collisionSuffixReservedConstant), sheetNameTrimCutsetConstant)
	}

	collisionKey := strings.ToLower(sheetName)
	collisionCount, baseSeen := allocator.seenBaseNames[collisionKey]
	if baseSeen {
		allocator.seenBaseNames[collisionKey] = collisionCount + 1
		suffix := collisionSuffix(collisionCount + 1)
		sheetName = truncateRunes(sheetName, maximumSheetNameLengthConstant-runeLength(suffix)) + suffix
	} else {
		allocator.seenBaseNames[collisionKey] = 0
	}

	return sheetName
}

func deriveBaseSheetName(pageURL string) string {
	parsedURL, parseError := url.Parse(pageURL)
	pagePath := ""
	if parseError == nil {
		pagePath = strings.Trim(parsedURL.Path, urlPathSeparatorConstant)
	}

	sheetName := homeSheetNameConstant
	if len(pagePath) > 0 {
		sheetName = strings.ReplaceAll(pagePath, urlPathSeparatorConstant, pathSegmentSeparatorConstant)
	}

	sheetName = strings.TrimSpace(invalidSheetNameCharacterPattern.ReplaceAllString(sheetName, ""))
	if len(sheetName) == 0 {
		sheetName = fallbackSheetNameConstant
	}

	return sheetName
}

func collisionSuffix(collisionNumber int) string {
	return fmt.Sprintf(collisionSuffixTemplateConstant, collisionNumber)
}

func runeLength(value string) int {
	return len([]rune(value))
}

func truncateRunes(value string, limit int) string {
	valueRunes := []rune(value)
	if len(valueRunes) <= limit {
		return value
	}
	return string(valueRunes[:limit])
}
