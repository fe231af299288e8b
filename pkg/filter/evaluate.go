package filter

import "github.com/PhucNguyen204/proteofilter/pkg/report"

// Result is the outcome of evaluating one filter against one record. Err is
// set for evaluation errors (shape mismatches); those are distinguishable
// from a plain non-match but still count as a rejection.
type Result struct {
	Match bool
	Err   error
}

// Evaluate runs the filter against the record, optionally scoped to one
// input source. The order is fixed: extract, refine, absent check, dispatch.
//
// Giá trị absent không bao giờ thỏa mãn filter, kể cả khi negate bật; phủ
// định chỉ áp dụng sau khi đã có giá trị thật.
func (f *Filter) Evaluate(rec report.Record, src report.SourceID) Result {
	raw := f.desc.Extract(rec)
	if r, ok := f.desc.(SourceRefiner); ok && src != report.SourceOverview {
		raw = r.RefineForSource(src, rec, raw)
	}
	if raw.IsAbsent() {
		return Result{}
	}

	switch f.Type() {
	case TypeBool:
		switch raw.Kind() {
		case KindBool:
			return f.outcome(f.boolBase(raw.Bool()))
		case KindBools:
			return f.allBools(raw.Bools())
		}
	case TypeNumerical:
		switch raw.Kind() {
		case KindNumber:
			return f.outcome(f.numberBase(raw.Number()))
		case KindNumbers:
			return f.allNumbers(raw.Numbers())
		}
	case TypeLiteral:
		switch raw.Kind() {
		case KindLiteral:
			return f.outcome(f.literalBase(raw.Literal()))
		case KindLiterals:
			return f.allLiterals(raw.Literals())
		}
	case TypeLiteralList:
		if raw.Kind() == KindLiterals {
			return f.outcome(f.literalListBase(raw.Literals()))
		}
	case TypeModification:
		if raw.Kind() == KindModifications {
			return f.outcome(f.modificationBase(raw.Modifications()))
		}
	}

	return Result{Err: &ShapeError{Descriptor: f.desc.ShortName(), Type: f.Type(), Got: raw.Kind()}}
}

// Satisfies is the fail-closed boolean surface: evaluation errors reject the
// record no matter what negate says.
func (f *Filter) Satisfies(rec report.Record, src report.SourceID) bool {
	res := f.Evaluate(rec, src)
	return res.Err == nil && res.Match
}

// outcome applies negation to the base verdict. Negation flips exactly here,
// once, never inside element loops or error paths.
func (f *Filter) outcome(base bool, err error) Result {
	if err != nil {
		return Result{Err: err}
	}
	return Result{Match: base != f.negate}
}

// Quantified scalar filters: every element of the collection has to pass the
// base predicate. An empty collection passes vacuously; negate then applies
// to the aggregate like it would to a scalar.

func (f *Filter) allBools(vs []bool) Result {
	all := true
	for _, v := range vs {
		ok, err := f.boolBase(v)
		if err != nil {
			return Result{Err: err}
		}
		if !ok {
			all = false
			break
		}
	}
	return f.outcome(all, nil)
}

func (f *Filter) allNumbers(vs []float64) Result {
	all := true
	for _, v := range vs {
		ok, err := f.numberBase(v)
		if err != nil {
			return Result{Err: err}
		}
		if !ok {
			all = false
			break
		}
	}
	return f.outcome(all, nil)
}

func (f *Filter) allLiterals(vs []string) Result {
	all := true
	for _, v := range vs {
		ok, err := f.literalBase(v)
		if err != nil {
			return Result{Err: err}
		}
		if !ok {
			all = false
			break
		}
	}
	return f.outcome(all, nil)
}
