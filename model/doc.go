// Package model provides the value types produced by statement extraction.
//
// All extraction operations in finscan ultimately produce these types, making
// them the primary API for consuming recognised financial tables.
//
// # Tables
//
// A [Table] is one detected statement region on one page. Its Name is the
// header line that opened it (for example "Balance Sheet as at 31st March 2021")
// and its Data holds the parsed [Row] values in source order:
//
//	for _, row := range table.Data {
//	    fmt.Println(row.Description, row.Values)
//	}
//
// Rows always carry a non-empty description and at least one value; lines that
// cannot be split into both are dropped during extraction rather than stored
// as partial rows.
//
// # Documents
//
// A [Document] gathers the tables of one conversion in page order, together
// with the source path and page count. Export methods [Table.ToMarkdown] and
// [Table.ToCSV] give quick plain renderings; richer formats live in the
// export package.
//
// # Page text
//
// [PageText] carries the raw recognised text of one page between the OCR
// stage and table detection.
package model
