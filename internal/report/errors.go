package report

import "fmt"

const noDataErrorTemplateConstant = "no usable crawl exports found in %s: expected Issues Overview and/or Accessibility Violations CSVs"

// NoDataError reports that an export directory yielded nothing to report.
//
// Missing individual exports are tolerated sheet by sheet, but a directory
// producing zero sheets signals an invalid export set, so generation aborts
// without finalizing an output file.
type NoDataError struct {
	ExportDirectory string
}

// Error describes the export directory that produced no report content.
func (failure NoDataError) Error() string {
	return fmt.Sprintf(noDataErrorTemplateConstant, failure.ExportDirectory)
}
