package filter

import (
	"math"
	"strings"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
	"github.com/PhucNguyen204/proteofilter/pkg/unimod"
)

// Base predicates, negation-free. NewFilter guarantees the comparator fits
// the filter type, so the error returns below are unreachable through the
// public API; they exist so an unsupported pairing can never degrade into a
// silent false.

func (f *Filter) boolBase(v bool) (bool, error) {
	if f.cmp == CmpEqual {
		return v == f.target.Bool(), nil
	}
	return false, &ComparatorError{Cmp: f.cmp, Type: TypeBool}
}

func (f *Filter) numberBase(v float64) (bool, error) {
	t := f.target.Number()
	switch f.cmp {
	case CmpLess:
		return v < t, nil
	case CmpLessEqual:
		return v <= t, nil
	case CmpEqual:
		return v == t, nil
	case CmpGreaterEqual:
		return v >= t, nil
	case CmpGreater:
		return v > t, nil
	}
	return false, &ComparatorError{Cmp: f.cmp, Type: TypeNumerical}
}

func (f *Filter) literalBase(v string) (bool, error) {
	switch f.cmp {
	case CmpEqual:
		return v == f.target.Literal(), nil
	case CmpContains:
		return strings.Contains(v, f.target.Literal()), nil
	case CmpRegex:
		return f.re.MatchString(v), nil
	}
	return false, &ComparatorError{Cmp: f.cmp, Type: TypeLiteral}
}

// literalListBase keeps the legacy whole-list semantics, including the
// first-element gate on the *_only comparators: ["B","A"] with target "A"
// fails at the gate before the all-elements walk ever runs.
func (f *Filter) literalListBase(list []string) (bool, error) {
	switch f.cmp {
	case CmpContains:
		for _, v := range list {
			if v == f.target.Literal() {
				return true, nil
			}
		}
		return false, nil
	case CmpContainsOnly:
		if len(list) == 0 || list[0] != f.target.Literal() {
			return false, nil
		}
		for _, v := range list {
			if v != f.target.Literal() {
				return false, nil
			}
		}
		return true, nil
	case CmpRegex:
		for _, v := range list {
			if f.re.MatchString(v) {
				return true, nil
			}
		}
		return false, nil
	case CmpRegexOnly:
		if len(list) == 0 || !f.re.MatchString(list[0]) {
			return false, nil
		}
		for _, v := range list {
			if !f.re.MatchString(v) {
				return false, nil
			}
		}
		return true, nil
	}
	return false, &ComparatorError{Cmp: f.cmp, Type: TypeLiteralList}
}

func (f *Filter) modificationBase(mods []report.Modification) (bool, error) {
	switch f.cmp {
	case CmpHasAnyModification:
		return len(mods) > 0, nil
	case CmpHasDescription:
		want := f.target.Literal()
		for _, m := range mods {
			// an unknown description never matches, not even target ""
			if m.Description != "" && m.Description == want {
				return true, nil
			}
		}
		return false, nil
	case CmpHasMass:
		for _, m := range mods {
			if math.Abs(m.Mass-f.mass) <= unimod.MassTolerance {
				return true, nil
			}
		}
		return false, nil
	case CmpHasResidue:
		want := f.target.Literal()
		for _, m := range mods {
			if m.Residue != "" && strings.HasPrefix(m.Residue, want) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, &ComparatorError{Cmp: f.cmp, Type: TypeModification}
}
