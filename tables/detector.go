package tables

import (
	"errors"
	"sort"
	"sync"

	"github.com/tsawler/finscan/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables in the text of one page
	Detect(text string, page int) []model.Table

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Configuration errors returned by Configure.
var (
	ErrNoKeywords   = errors.New("tables: at least one keyword is required")
	ErrEmptyKeyword = errors.New("tables: keywords must not be empty")
)

// DefaultKeywords are the statement terms that open and close tables.
var DefaultKeywords = []string{
	"Balance Sheet",
	"Profit",
	"Loss",
	"Cash Flow",
	"Income",
	"Assets",
	"Liabilities",
	"Equity",
	"Revenue",
	"Expenses",
}

// Config holds detector configuration
type Config struct {
	// Keywords are matched as case-sensitive substrings of a line
	Keywords []string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Keywords: append([]string(nil), DefaultKeywords...),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Keywords) == 0 {
		return ErrNoKeywords
	}
	for _, k := range c.Keywords {
		if k == "" {
			return ErrEmptyKeyword
		}
	}
	return nil
}

// Factory creates a new, unconfigured detector.
type Factory func() Detector

// DetectorRegistry maps detector names to factories. Every Get returns a
// fresh detector, so configuring one never affects another caller.
type DetectorRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under name
func (r *DetectorRegistry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get creates the detector registered as name, or returns nil.
func (r *DetectorRegistry) Get(name string) Detector {
	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()
	if factory == nil {
		return nil
	}
	return factory()
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDetector is the name of the detector used when none is chosen.
const DefaultDetector = "keyword"

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// GetDetector creates a registered detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector(DefaultDetector, func() Detector { return NewKeywordDetector() })
}
