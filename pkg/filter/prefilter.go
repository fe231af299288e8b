package filter

import (
	"encoding/json"

	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

//
// Literal prefilter for filter sets. Dùng Aho–Corasick quét một lượt trên
// JSON projection của record: nếu thiếu bất kỳ pattern bắt buộc nào thì
// record không thể qua được cả set, khỏi cần đánh giá đầy đủ.
//
// Only comparators whose target must occur verbatim in any passing record
// contribute patterns: non-negated literal_list contains/contains_only and
// modification has_description. Those all have empty-list => false
// semantics, so a record that lacks the target text can never pass. Scalar
// literal comparators stay out: a quantified extraction can be empty and
// pass vacuously, which would make the skip unsound.
//

// PrefilterStats describes the built automaton.
type PrefilterStats struct {
	// Patterns in the automaton after dedupe.
	PatternCount int `json:"pattern_count"`
	// Filters that contributed at least one pattern.
	FilterCount int `json:"filter_count"`
	// Ước tính selectivity (0.0 = rất chọn lọc, 1.0 = cho qua tất).
	EstimatedSelectivity float64 `json:"estimated_selectivity"`
}

// PrefilterConfig bounds what gets collected.
type PrefilterConfig struct {
	// Patterns shorter than this are skipped.
	MinPatternLength int
	// Hard cap on collected patterns; 0 means no limit.
	MaxPatterns int
	// Công tắc tổng.
	Enabled bool
}

func DefaultPrefilterConfig() PrefilterConfig {
	return PrefilterConfig{MinPatternLength: 3, MaxPatterns: 1000, Enabled: true}
}

// Prefilter rejects records whose JSON projection is missing a required
// literal. Nil or empty prefilters pass everything through.
type Prefilter struct {
	automaton *ac.AhoCorasick
	patterns  []string
	stats     PrefilterStats
}

// NewPrefilter collects patterns from the filters with the default config.
func NewPrefilter(filters []*Filter) *Prefilter {
	return NewPrefilterWithConfig(filters, DefaultPrefilterConfig())
}

func NewPrefilterWithConfig(filters []*Filter, cfg PrefilterConfig) *Prefilter {
	p := &Prefilter{}
	if !cfg.Enabled {
		p.stats.EstimatedSelectivity = 1.0
		return p
	}

	dedupe := make(map[string]int)
	contributors := 0
	for _, f := range filters {
		t, ok := requiredPattern(f)
		if !ok {
			continue
		}
		if len(t) < cfg.MinPatternLength || !jsonSafe(t) {
			continue
		}
		contributors++
		if _, seen := dedupe[t]; !seen {
			if cfg.MaxPatterns > 0 && len(p.patterns) >= cfg.MaxPatterns {
				continue
			}
			dedupe[t] = len(p.patterns)
			p.patterns = append(p.patterns, t)
		}
	}

	p.stats = PrefilterStats{
		PatternCount:         len(p.patterns),
		FilterCount:          contributors,
		EstimatedSelectivity: estimateSelectivity(len(p.patterns)),
	}
	if len(p.patterns) == 0 {
		return p
	}

	// StandardMatch + overlapping iteration: coverage checking needs every
	// pattern occurrence reported, even when one pattern contains another.
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: false,
		MatchKind:            ac.StandardMatch,
	})
	built := builder.Build(p.patterns)
	p.automaton = &built
	return p
}

// requiredPattern reports the literal that must occur in any record passing
// the filter, if the filter pins one down.
func requiredPattern(f *Filter) (string, bool) {
	if f == nil || f.Negated() {
		return "", false
	}
	// per-source refinement can rewrite the value, so nothing is required
	if _, ok := f.Descriptor().(SourceRefiner); ok {
		return "", false
	}
	switch f.Type() {
	case TypeLiteralList:
		if f.Comparator() == CmpContains || f.Comparator() == CmpContainsOnly {
			return f.Target().Literal(), true
		}
	case TypeModification:
		if f.Comparator() == CmpHasDescription {
			return f.Target().Literal(), true
		}
	}
	return "", false
}

// jsonSafe reports whether the pattern survives encoding/json escaping
// unchanged, so searching the raw projection for it is meaningful.
func jsonSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b >= 0x7f {
			return false
		}
		switch b {
		case '"', '\\', '<', '>', '&':
			return false
		}
	}
	return true
}

// Candidate reports whether the record could pass the set. True means "run
// the full evaluation"; only a missing required pattern rejects.
func (p *Prefilter) Candidate(rec report.Record) bool {
	if p == nil || p.automaton == nil {
		return true
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return true
	}
	return p.covers(string(raw))
}

// covers checks that every pattern occurs at least once in the text.
func (p *Prefilter) covers(text string) bool {
	remaining := len(p.patterns)
	found := make([]bool, remaining)
	iter := p.automaton.IterOverlapping(text)
	for m := iter.Next(); m != nil; m = iter.Next() {
		idx := m.Pattern()
		if idx < 0 || idx >= len(found) || found[idx] {
			continue
		}
		found[idx] = true
		remaining--
		if remaining == 0 {
			return true
		}
	}
	return false
}

// Patterns returns the collected patterns, automaton order.
func (p *Prefilter) Patterns() []string {
	return append([]string(nil), p.patterns...)
}

func (p *Prefilter) Stats() PrefilterStats { return p.stats }

func estimateSelectivity(patternCount int) float64 {
	switch {
	case patternCount == 0:
		return 1.0
	case patternCount >= 20:
		return 0.10
	case patternCount >= 10:
		return 0.20
	case patternCount >= 5:
		return 0.40
	default:
		return 0.70
	}
}
