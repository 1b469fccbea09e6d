package tables

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
	"github.com/tsawler/finscan/model"
)

// KeywordDetector finds statement tables by financial keywords.
//
// Detect is a pure function of its input: the same text and page always give
// the same tables, and concurrent calls on one detector are safe.
type KeywordDetector struct {
	mu     sync.RWMutex
	config Config
}

// NewKeywordDetector creates a detector with the default keywords.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{config: DefaultConfig()}
}

// Name returns the detector name
func (d *KeywordDetector) Name() string {
	return "keyword"
}

// Configure replaces the keyword set.
func (d *KeywordDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config = Config{Keywords: append([]string(nil), config.Keywords...)}
	return nil
}

// Keywords returns a copy of the configured keywords.
func (d *KeywordDetector) Keywords() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.config.Keywords...)
}

// Detect finds tables in the text of one page. Lines that cannot be parsed
// are skipped; a page without keywords yields no tables.
func (d *KeywordDetector) Detect(text string, page int) []model.Table {
	// The matcher keeps per-search state, so each call gets its own.
	m := ahocorasick.NewStringMatcher(d.Keywords())

	s := &scanner{page: page}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.step(line, classify(m, line))
	}
	s.flush()

	return s.tables
}

// lineKind classifies a non-blank line for the scanner.
type lineKind int

const (
	lineOther         lineKind = iota // no keyword, no digit
	lineNumeric                       // digits, no keyword
	lineHeader                        // keyword, no digit
	lineNumericHeader                 // keyword and digits
)

func classify(m *ahocorasick.Matcher, line string) lineKind {
	header := len(m.Match([]byte(line))) > 0
	numeric := hasDigit(line)
	switch {
	case header && numeric:
		return lineNumericHeader
	case header:
		return lineHeader
	case numeric:
		return lineNumeric
	default:
		return lineOther
	}
}

// scanState is the scanner position relative to a table.
type scanState int

const (
	stateIdle scanState = iota
	stateInTable
)

// scanner accumulates tables for one page.
type scanner struct {
	page   int
	state  scanState
	name   string
	rows   []model.Row
	tables []model.Table
}

func (s *scanner) step(line string, kind lineKind) {
	switch s.state {
	case stateIdle:
		// Outside a table only a header matters, even one carrying figures.
		if kind == lineHeader || kind == lineNumericHeader {
			s.open(line)
		}

	case stateInTable:
		switch kind {
		case lineNumeric:
			s.appendRow(line)
		case lineNumericHeader:
			s.appendRow(line)
			s.closeAndReopen(line)
		case lineHeader:
			s.closeAndReopen(line)
		}
	}
}

// open starts a new table named by line.
func (s *scanner) open(line string) {
	s.flush()
	s.name = strings.TrimSpace(line)
	s.state = stateInTable
}

// closeAndReopen ends a table that has rows and opens the next one on line.
// An open table without rows keeps its name.
func (s *scanner) closeAndReopen(line string) {
	if len(s.rows) == 0 {
		return
	}
	s.flush()
	s.name = strings.TrimSpace(line)
	s.state = stateInTable
}

func (s *scanner) appendRow(line string) {
	if row, ok := ParseRow(line); ok {
		s.rows = append(s.rows, row)
	}
}

// flush emits the accumulated rows, if any, under the current name.
func (s *scanner) flush() {
	if len(s.rows) == 0 {
		return
	}
	s.tables = append(s.tables, model.Table{
		Name: s.name,
		Data: s.rows,
		Page: s.page,
	})
	s.rows = nil
}
