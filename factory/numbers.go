/*
Package factory provides JSON to Go document-number series conversion.

PURPOSE:
  Converts JSON numbering definitions into running document-number
  series (LS-0001, MO-0042, BL-0007). This enables numbering
  configuration without code changes - the office can set prefixes and
  starting counters in JSON, and the factory hands out the next number
  on demand.

WHY JSON?
  - Non-developers can change prefixes and starting points
  - Easy integration with admin UI
  - Version control for numbering schemes

JSON SCHEMA:
  {
    "series": [
      {"kind": "loading_slip", "prefix": "LS-", "pad": 4, "next": 1},
      {"kind": "memo",         "prefix": "MO-", "pad": 4, "next": 1},
      {"kind": "bill",         "prefix": "BL-", "pad": 4, "next": 1}
    ]
  }

KEY FEATURES:
  - Validates JSON structure and sets sensible defaults
  - Observe() bumps a series past externally assigned numbers, so
    imported historical documents never collide with new ones

USAGE:
  nf := factory.NewNumberFactory()

  // From JSON string (optional; defaults cover the three documents)
  nf, err := factory.ParseConfig(jsonString)

  number := nf.Next("memo") // "MO-0001"
  nf.Observe("memo", "MO-0100")
  number = nf.Next("memo")  // "MO-0101"

SEE ALSO:
  - api/handlers.go: Assigns numbers on document creation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Document kinds with a default series.
const (
	KindLoadingSlip = "loading_slip"
	KindMemo        = "memo"
	KindBill        = "bill"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SeriesJSON is the JSON representation of one numbering series.
type SeriesJSON struct {
	Kind   string `json:"kind"`
	Prefix string `json:"prefix"`
	Pad    int    `json:"pad,omitempty"`
	Next   int64  `json:"next,omitempty"`
}

// ConfigJSON is the JSON representation of the full numbering config.
type ConfigJSON struct {
	Series []SeriesJSON `json:"series"`
}

// =============================================================================
// NUMBER FACTORY
// =============================================================================

type series struct {
	prefix string
	pad    int
	next   int64
}

// NumberFactory hands out sequential document numbers per kind.
// Safe for concurrent use.
type NumberFactory struct {
	mu     sync.Mutex
	series map[string]*series
}

// NewNumberFactory creates a factory with the default series for
// loading slips, memos and bills.
func NewNumberFactory() *NumberFactory {
	return &NumberFactory{
		series: map[string]*series{
			KindLoadingSlip: {prefix: "LS-", pad: 4, next: 1},
			KindMemo:        {prefix: "MO-", pad: 4, next: 1},
			KindBill:        {prefix: "BL-", pad: 4, next: 1},
		},
	}
}

// ParseConfig parses a JSON config into a factory. Kinds absent from
// the config keep their defaults.
func ParseConfig(jsonStr string) (*NumberFactory, error) {
	var cfg ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse numbering JSON: %w", err)
	}
	return FromJSON(cfg)
}

// FromJSON converts ConfigJSON to a NumberFactory.
func FromJSON(cfg ConfigJSON) (*NumberFactory, error) {
	nf := NewNumberFactory()
	for _, sj := range cfg.Series {
		if sj.Kind == "" {
			return nil, fmt.Errorf("series without a kind")
		}
		s := &series{prefix: sj.Prefix, pad: sj.Pad, next: sj.Next}
		if s.pad <= 0 {
			s.pad = 4
		}
		if s.next <= 0 {
			s.next = 1
		}
		nf.series[sj.Kind] = s
	}
	return nf, nil
}

// ToJSON exports the current state, including advanced counters.
func (f *NumberFactory) ToJSON() ConfigJSON {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg := ConfigJSON{}
	for kind, s := range f.series {
		cfg.Series = append(cfg.Series, SeriesJSON{
			Kind: kind, Prefix: s.prefix, Pad: s.pad, Next: s.next,
		})
	}
	return cfg
}

// Next returns the next number in the series and advances it.
// An unknown kind gets a bare 4-padded counter.
func (f *NumberFactory) Next(kind string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.series[kind]
	if !ok {
		s = &series{pad: 4, next: 1}
		f.series[kind] = s
	}
	n := s.next
	s.next++
	return s.format(n)
}

// Observe tells the series a number was assigned outside the factory
// (imported historical documents, manual entries). The counter jumps
// past it so Next never collides.
func (f *NumberFactory) Observe(kind, number string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.series[kind]
	if !ok {
		return
	}
	trimmed := strings.TrimPrefix(number, s.prefix)
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return
	}
	if n >= s.next {
		s.next = n + 1
	}
}

func (s *series) format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.prefix, s.pad, n)
}
