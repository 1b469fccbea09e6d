// Package main provides the entry point for the finscan CLI.
//
// finscan converts scanned financial statements into spreadsheets.
//
// Usage:
//
//	finscan convert statement.pdf
//	finscan convert statement.pdf -o out/statement.md --pages 3-5
//	tesseract page.png - | finscan extract -
//
// See --help for all available options.
package main

func main() {
	Execute()
}
