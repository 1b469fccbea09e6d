package finscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/finscan/format"
	"github.com/tsawler/finscan/model"
	"github.com/tsawler/finscan/ocr"
	"github.com/tsawler/finscan/raster"
	"github.com/tsawler/finscan/reader"
	"github.com/tsawler/finscan/tables"
)

// Extractor provides a fluent interface for extracting statement tables.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	text     string
	fromText bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		text:     e.text,
		fromText: e.fromText,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	tables, _, err := finscan.Open("report.pdf").Pages(1, 3, 5).Tables(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	for _, p := range pages {
		newExt.options.pages = append(newExt.options.pages, pageSpan{first: p, last: p})
	}
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("%w: range %d-%d", ErrInvalidPage, start, end)
		return newExt
	}
	newExt.options.pages = append(newExt.options.pages, pageSpan{first: start, last: end})
	return newExt
}

// DPI sets the resolution PDF pages are rendered at before OCR.
func (e *Extractor) DPI(dpi int) *Extractor {
	newExt := e.clone()
	newExt.options.dpi = dpi
	return newExt
}

// Workers sets how many pages are processed at the same time.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// Language sets the Tesseract language, e.g. "eng" or "eng+hin".
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocr.Language = lang
	return newExt
}

// PageSegMode sets the Tesseract page segmentation mode.
func (e *Extractor) PageSegMode(mode ocr.PageSegMode) *Extractor {
	newExt := e.clone()
	newExt.options.ocr.PageSegMode = mode
	return newExt
}

// Source selects where PDF page text comes from.
//
// Example:
//
//	tables, _, err := finscan.Open("digital.pdf").Source(finscan.SourceText).Tables(ctx)
func (e *Extractor) Source(s Source) *Extractor {
	newExt := e.clone()
	newExt.options.source = s
	return newExt
}

// Threshold sets the binarisation cut-off applied before OCR.
func (e *Extractor) Threshold(t uint8) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess.Threshold = t
	return newExt
}

// KernelSize sets the morphological opening kernel applied before OCR.
func (e *Extractor) KernelSize(k int) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess.KernelSize = k
	return newExt
}

// Scale enlarges page images by factor before binarisation.
func (e *Extractor) Scale(factor float64) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess.Scale = factor
	return newExt
}

// Detector replaces the keyword table detector.
func (e *Extractor) Detector(d tables.Detector) *Extractor {
	newExt := e.clone()
	newExt.options.detector = d
	return newExt
}

// Logger sets the logger used for per-page progress. Nothing is logged by
// default.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// WithRasterizer replaces the pdftoppm rasterizer. DPI is ignored when a
// rasterizer is supplied.
func (e *Extractor) WithRasterizer(r raster.Rasterizer) *Extractor {
	newExt := e.clone()
	newExt.options.rasterizer = r
	return newExt
}

// WithRecognizer replaces the Tesseract client. The caller keeps ownership
// and must close it.
func (e *Extractor) WithRecognizer(r ocr.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the input.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	in, err := e.openInput()
	if err != nil {
		return 0, err
	}
	defer in.close()
	return in.pages, nil
}

// PageTexts returns the text of each selected page in page order.
// Pages that could not be read are skipped and reported as warnings.
func (e *Extractor) PageTexts(ctx context.Context) ([]model.PageText, []Warning, error) {
	_, texts, warnings, err := e.extract(ctx)
	return texts, warnings, err
}

// Tables returns the tables detected on the selected pages, in page order
// and then detection order.
func (e *Extractor) Tables(ctx context.Context) ([]model.Table, []Warning, error) {
	_, texts, warnings, err := e.extract(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return e.detect(texts), warnings, nil
}

// Document returns the detected tables wrapped with the source name and
// page count.
//
// Example:
//
//	doc, warnings, err := finscan.Open("statement.pdf").Document(ctx)
func (e *Extractor) Document(ctx context.Context) (*model.Document, []Warning, error) {
	total, texts, warnings, err := e.extract(ctx)
	if err != nil {
		return nil, warnings, err
	}

	doc := model.NewDocument(e.filename)
	doc.Pages = total
	doc.AddTables(e.detect(texts)...)
	return doc, warnings, nil
}

func (e *Extractor) detect(texts []model.PageText) []model.Table {
	detector := e.options.tableDetector()
	logger := e.options.log()

	var result []model.Table
	for _, pt := range texts {
		if pt.IsBlank() {
			logger.Debug("blank page", "page", pt.Page)
			continue
		}
		found := detector.Detect(pt.Text, pt.Page)
		logger.Debug("detected tables", "page", pt.Page, "tables", len(found))
		result = append(result, found...)
	}
	return result
}

// extract runs the page pipeline and also returns the input's page count.
func (e *Extractor) extract(ctx context.Context) (int, []model.PageText, []Warning, error) {
	if e.err != nil {
		return 0, nil, nil, e.err
	}
	if err := e.options.validate(); err != nil {
		return 0, nil, nil, err
	}

	in, err := e.openInput()
	if err != nil {
		return 0, nil, nil, err
	}
	defer in.close()

	pageNums, err := e.resolvePages(in.pages)
	if err != nil {
		return 0, nil, nil, err
	}

	run, err := e.newRun(in)
	if err != nil {
		return 0, nil, nil, err
	}
	defer run.close()

	texts, warnings, err := run.pageTexts(ctx, pageNums)
	return in.pages, texts, warnings, err
}

// ============================================================================
// Internal
// ============================================================================

// input is an opened source.
type input struct {
	format format.Format
	pages  int

	// Text input, one entry per page
	texts []string

	// Image input
	image []byte

	// PDF input
	path string
	pdf  *reader.Document
	mu   sync.Mutex
}

func (in *input) close() {
	if in.pdf != nil {
		in.pdf.Close()
	}
}

func (e *Extractor) openInput() (*input, error) {
	if e.fromText {
		texts := splitPages(e.text)
		return &input{format: format.Text, pages: len(texts), texts: texts}, nil
	}
	if e.filename == "" {
		return nil, ErrNoInput
	}

	f, err := e.detectFormat()
	if err != nil {
		return nil, err
	}

	switch {
	case f == format.Text:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.filename, err)
		}
		texts := splitPages(string(data))
		return &input{format: f, pages: len(texts), texts: texts}, nil

	case f.IsImage():
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.filename, err)
		}
		return &input{format: f, pages: 1, image: data}, nil

	case f == format.PDF:
		doc, err := reader.Open(e.filename)
		if err != nil {
			return nil, err
		}
		n := doc.NumPages()
		if n == 0 {
			doc.Close()
			return nil, fmt.Errorf("%w: %s", ErrNoPages, e.filename)
		}
		return &input{format: f, pages: n, path: e.filename, pdf: doc}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.filename)
	}
}

// detectFormat prefers the file's magic bytes and falls back to its
// extension.
func (e *Extractor) detectFormat() (format.Format, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	defer f.Close()

	byMagic, err := format.DetectFromReader(f)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to read %s: %w", e.filename, err)
	}
	byExt := format.Detect(e.filename)

	// Any UTF-8 file sniffs as text; a known binary extension wins over that.
	if byMagic == format.Unknown || (byMagic == format.Text && byExt != format.Unknown) {
		return byExt, nil
	}
	return byMagic, nil
}

// splitPages splits OCR text on form feeds. The trailing form feed Tesseract
// writes after the last page does not start a new page.
func splitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// resolvePages returns the selected 1-indexed pages, or all pages.
func (e *Extractor) resolvePages(total int) ([]int, error) {
	if total == 0 {
		return nil, ErrNoPages
	}
	if len(e.options.pages) == 0 {
		all := make([]int, total)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	// Spans are checked before expansion so a huge range costs nothing.
	for _, s := range e.options.pages {
		if s.first < 1 || s.first > total {
			return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrInvalidPage, s.first, total)
		}
		if s.last > total {
			return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrInvalidPage, s.last, total)
		}
	}

	seen := make([]bool, total+1)
	var result []int
	for _, s := range e.options.pages {
		for p := s.first; p <= s.last; p++ {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}
	return result, nil
}

// run holds the collaborators for one terminal operation.
type run struct {
	in      *input
	opts    ExtractOptions
	logger  *slog.Logger
	raster  raster.Rasterizer
	ocrOnce sync.Once
	ocrErr  error
	ocr     ocr.Recognizer
	ownsOCR bool
	ocrMu   sync.Mutex
}

func (e *Extractor) newRun(in *input) (*run, error) {
	r := &run{
		in:     in,
		opts:   e.options,
		logger: e.options.log(),
		raster: e.options.rasterizer,
		ocr:    e.options.recognizer,
	}
	if r.raster == nil && in.format == format.PDF && e.options.source != SourceText {
		p, err := raster.New(e.options.dpi)
		if err != nil {
			return nil, err
		}
		r.raster = p
	}
	return r, nil
}

func (r *run) close() {
	if r.ownsOCR && r.ocr != nil {
		r.ocr.Close()
	}
}

// recognizer creates the Tesseract client on first use so text-only runs
// never need it.
func (r *run) recognizer() (ocr.Recognizer, error) {
	r.ocrOnce.Do(func() {
		if r.ocr != nil {
			return
		}
		c, err := ocr.New(r.opts.ocr)
		if err != nil {
			r.ocrErr = err
			return
		}
		r.ocr = c
		r.ownsOCR = true
	})
	return r.ocr, r.ocrErr
}

func (r *run) pageTexts(ctx context.Context, pageNums []int) ([]model.PageText, []Warning, error) {
	results := make([]*model.PageText, len(pageNums))
	warns := make([]*Warning, len(pageNums))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers)

	for i, page := range pageNums {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r.logger.Debug("processing page", "page", page, "index", i+1, "total", len(pageNums))
			text, err := r.pageText(ctx, page)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				r.logger.Warn("page skipped", "page", page, "error", err)
				w := pageWarning(page, err)
				warns[i] = &w
				return nil
			}

			results[i] = &model.PageText{Page: page, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, collect(warns), err
	}

	texts := make([]model.PageText, 0, len(results))
	for _, pt := range results {
		if pt != nil {
			texts = append(texts, *pt)
		}
	}
	return texts, collect(warns), nil
}

func collect(warns []*Warning) []Warning {
	var out []Warning
	for _, w := range warns {
		if w != nil {
			out = append(out, *w)
		}
	}
	return out
}

// pageText produces the text of one page according to the input format and
// the configured source.
func (r *run) pageText(ctx context.Context, page int) (string, error) {
	switch {
	case r.in.texts != nil:
		return r.in.texts[page-1], nil
	case r.in.image != nil:
		return r.recognize(r.in.image)
	}

	if r.opts.source != SourceOCR {
		text, err := r.textLayer(page)
		if err != nil && r.opts.source == SourceText {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		if r.opts.source == SourceText {
			return "", errors.New("page has no text layer")
		}
		r.logger.Debug("no text layer, falling back to OCR", "page", page)
	}

	img, err := r.raster.Rasterize(ctx, r.in.path, page)
	if err != nil {
		return "", err
	}
	return r.recognize(img)
}

func (r *run) textLayer(page int) (string, error) {
	r.in.mu.Lock()
	defer r.in.mu.Unlock()
	return r.in.pdf.PageText(page)
}

func (r *run) recognize(img []byte) (string, error) {
	clean, err := ocr.PreprocessBytes(img, r.opts.preprocess)
	if err != nil {
		return "", err
	}

	rec, err := r.recognizer()
	if err != nil {
		return "", err
	}

	r.ocrMu.Lock()
	defer r.ocrMu.Unlock()
	text, err := rec.RecognizeImage(clean)
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}
