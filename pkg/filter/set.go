package filter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Decision is the outcome of running a whole filter list against one record.
type Decision struct {
	Record report.Record
	Passed bool
	// FailedFilter is the textual form of the first filter that rejected
	// the record; empty when it passed.
	FailedFilter string
	// Err is set when the rejection came from an evaluation error rather
	// than an ordinary non-match.
	Err error
}

// SetStats is a point-in-time snapshot of a Set's counters.
type SetStats struct {
	Evaluated        int64
	Passed           int64
	PrefilterSkipped int64
}

// Set combines filters with AND semantics: a record passes when every filter
// is satisfied. The evaluator itself never composes; this is the caller-side
// policy, kept deliberately flat. Filters run in the order given and the
// first rejection short-circuits. Evaluation errors reject fail-closed.
type Set struct {
	filters []*Filter

	preOnce sync.Once
	pre     *Prefilter

	evaluated atomic.Int64
	passed    atomic.Int64
	skipped   atomic.Int64
}

func NewSet(filters ...*Filter) *Set {
	s := &Set{filters: make([]*Filter, 0, len(filters))}
	for _, f := range filters {
		if f != nil {
			s.filters = append(s.filters, f)
		}
	}
	return s
}

func (s *Set) Len() int { return len(s.filters) }

// Filters returns a copy of the filter list in evaluation order.
func (s *Set) Filters() []*Filter {
	return append([]*Filter(nil), s.filters...)
}

// Strings renders every filter in its textual form, for logs and persistence.
func (s *Set) Strings() []string {
	out := make([]string, len(s.filters))
	for i, f := range s.filters {
		out[i] = f.String()
	}
	return out
}

// EnablePrefilter builds the literal prefilter for this set. Idempotent; the
// prefilter never changes which records pass, only how many get the full
// evaluation.
func (s *Set) EnablePrefilter() {
	s.preOnce.Do(func() {
		s.pre = NewPrefilter(s.filters)
	})
}

// Prefilter returns the set's prefilter, nil when not enabled.
func (s *Set) Prefilter() *Prefilter { return s.pre }

// Decide runs the filters in order against one record.
func (s *Set) Decide(rec report.Record, src report.SourceID) Decision {
	for _, f := range s.filters {
		res := f.Evaluate(rec, src)
		if res.Err != nil {
			return Decision{Record: rec, FailedFilter: f.String(), Err: res.Err}
		}
		if !res.Match {
			return Decision{Record: rec, FailedFilter: f.String()}
		}
	}
	return Decision{Record: rec, Passed: true}
}

// Accepts reports whether the record passes the whole set, counting it in
// the stats. Records the prefilter rules out are rejected without a full
// evaluation.
func (s *Set) Accepts(rec report.Record, src report.SourceID) bool {
	s.evaluated.Add(1)
	if s.pre != nil && !s.pre.Candidate(rec) {
		s.skipped.Add(1)
		return false
	}
	if !s.Decide(rec, src).Passed {
		return false
	}
	s.passed.Add(1)
	return true
}

// Apply filters the records sequentially, preserving order.
func (s *Set) Apply(recs []report.Record, src report.SourceID) []report.Record {
	out := make([]report.Record, 0, len(recs))
	for _, rec := range recs {
		if s.Accepts(rec, src) {
			out = append(out, rec)
		}
	}
	return out
}

// ApplyParallel fans the records out over a worker pool. Output order matches
// the input. Evaluation is stateless, so the same filters are shared by all
// workers.
func (s *Set) ApplyParallel(ctx context.Context, recs []report.Record, src report.SourceID, workers int) ([]report.Record, error) {
	if workers <= 1 || len(recs) <= workers {
		return s.Apply(recs, src), nil
	}

	keep := make([]bool, len(recs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				keep[i] = s.Accepts(recs[i], src)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range recs {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if ctxErr != nil {
		return nil, ctxErr
	}

	out := make([]report.Record, 0, len(recs))
	for i, ok := range keep {
		if ok {
			out = append(out, recs[i])
		}
	}
	return out, nil
}

// Stats snapshots the counters accumulated by Accepts/Apply.
func (s *Set) Stats() SetStats {
	return SetStats{
		Evaluated:        s.evaluated.Load(),
		Passed:           s.passed.Load(),
		PrefilterSkipped: s.skipped.Load(),
	}
}
