// Package filter evaluates declarative predicates against proteomics report
// records. A Filter pairs one descriptor with one comparator, a target value
// and an optional negation; everything expensive (regex compilation, mass
// target parsing, comparator validation) happens once when the filter is
// built, so evaluation is cheap and safe to share across goroutines.
package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// Filter is one immutable predicate over report records. Build it with
// NewFilter or Parse; the zero value is not usable.
type Filter struct {
	desc   Descriptor
	cmp    Comparator
	negate bool
	target Value

	// re is the precompiled pattern for regex comparators, anchored so the
	// whole value has to match.
	re *regexp.Regexp
	// mass is the pre-parsed target for has_mass.
	mass float64
}

// NewFilter validates and builds a filter. It rejects comparators outside the
// descriptor's filter type, targets of the wrong kind, unparseable mass
// targets and broken regex patterns, so evaluation never has to.
func NewFilter(desc Descriptor, cmp Comparator, negate bool, target Value) (*Filter, error) {
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	ft := desc.Type()
	if !ft.Allows(cmp) {
		return nil, &ComparatorError{Cmp: cmp, Type: ft}
	}

	f := &Filter{desc: desc, cmp: cmp, negate: negate, target: target}

	switch ft {
	case TypeBool:
		if target.Kind() != KindBool {
			return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a bool, got " + target.Kind().String()}
		}
	case TypeNumerical:
		if target.Kind() != KindNumber {
			return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a number, got " + target.Kind().String()}
		}
	case TypeLiteral, TypeLiteralList:
		if target.Kind() != KindLiteral {
			return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a literal, got " + target.Kind().String()}
		}
		if cmp == CmpRegex || cmp == CmpRegexOnly {
			re, err := compileAnchored(target.Literal())
			if err != nil {
				return nil, &TargetError{Type: ft, Cmp: cmp, Reason: err.Error()}
			}
			f.re = re
		}
	case TypeModification:
		switch cmp {
		case CmpHasAnyModification:
			// target is ignored, keep whatever was given for rendering
			if target.Kind() != KindAbsent && target.Kind() != KindLiteral {
				return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a literal or nothing, got " + target.Kind().String()}
			}
		case CmpHasMass:
			switch target.Kind() {
			case KindNumber:
				f.mass = target.Number()
			case KindLiteral:
				m, err := strconv.ParseFloat(strings.TrimSpace(target.Literal()), 64)
				if err != nil {
					return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "mass target " + strconv.Quote(target.Literal()) + " is not a number"}
				}
				f.mass = m
			default:
				return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a mass, got " + target.Kind().String()}
			}
		default:
			if target.Kind() != KindLiteral {
				return nil, &TargetError{Type: ft, Cmp: cmp, Reason: "want a literal, got " + target.Kind().String()}
			}
		}
	}

	return f, nil
}

// compileAnchored wraps the pattern so MatchString behaves like a full-value
// match instead of Go's default substring search.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)\z`)
}

func (f *Filter) Descriptor() Descriptor { return f.desc }
func (f *Filter) Comparator() Comparator { return f.cmp }
func (f *Filter) Negated() bool          { return f.negate }
func (f *Filter) Target() Value          { return f.target }
func (f *Filter) Type() FilterType       { return f.desc.Type() }

// String renders the filter in its textual form,
// "<shortName> [not] <comparator> <value>". The output parses back through
// Parse against a registry holding the same descriptor.
func (f *Filter) String() string {
	parts := make([]string, 0, 4)
	parts = append(parts, f.desc.ShortName())
	if f.negate {
		parts = append(parts, "not")
	}
	parts = append(parts, f.cmp.String())
	if v := f.target.String(); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}
