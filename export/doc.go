// Package export writes extracted statement tables to files.
//
// The spreadsheet writer produces one styled sheet per table plus a Summary
// sheet. JSON, CSV, Markdown and HTML writers are provided for pipelines
// that do not need a workbook:
//
//	opts := export.DefaultOptions()
//	opts.Format = export.FormatMarkdown
//	if err := export.WriteFile("out/report.md", doc, opts); err != nil {
//	    // handle error
//	}
package export
