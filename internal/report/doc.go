// Package report consolidates Screaming Frog CSV exports into a single Excel
// workbook grouped by page.
//
// It locates loosely-named export files, loads them into normalized tables,
// enriches per-issue findings from the Issues Overview catalog, merges
// accessibility violations and catalog issues per internal HTML page,
// collapses pages with identical findings into shared sheets, and renders a
// styled workbook with summary sheets and a hyperlinked page index. It exposes
// CommandBuilder for wiring the report Cobra command and Generator for driving
// report generation programmatically.
package report
