// Package tables provides financial table detection over recognised page text.
//
// This package turns the noisy, line-oriented output of an OCR engine into
// [model.Table] values: a header line naming the statement followed by rows
// of a description and one or more figures.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [KeywordDetector] - opens tables on financial keywords and parses rows
//     split on whitespace runs
//
// Detectors are registered globally by name; each lookup creates a new one:
//
//	detector := tables.GetDetector("keyword")
//	found := detector.Detect(text, 1)
//
// # Keyword Detection
//
// The [KeywordDetector] scans non-blank lines with a two-state machine:
//
//  1. Idle: a line containing a financial keyword opens a table named by it
//  2. InTable: lines with digits are parsed as rows ([ParseRow])
//  3. InTable: a keyword line closes a table that has rows and opens the next
//  4. At end of page, a table with rows is emitted
//
// A keyword line that contains figures while a table is open is parsed as a
// row of that table before it closes it, so totals such as
// "Total Assets    100    200" stay with the table they end.
//
// # Row Parsing
//
// [ParseRow] splits a line on runs of two or more whitespace characters.
// Comma-grouped figures like "12,998,379.00" are numeric; every other part is
// text and joins the description. Lines that yield no figure or no text are
// dropped, never stored as partial rows.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.Keywords = append(config.Keywords, "Schedule")
//	detector.Configure(config)
//
// Keyword matching is case-sensitive.
package tables
