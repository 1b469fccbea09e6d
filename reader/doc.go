// Package reader opens PDF statements to count their pages and, for digitally
// produced PDFs, read the embedded text layer line by line.
//
// Lines are rebuilt from positioned text fragments so that wide horizontal
// gaps become runs of spaces, matching the column layout that OCR output
// shows for scanned pages:
//
//	doc, err := reader.Open("statement.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	lines, err := doc.PageLines(1)
//
// Scanned PDFs have no text layer; their pages report no lines and must go
// through the raster and ocr packages instead.
package reader
