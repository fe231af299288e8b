package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a filter from its textual form:
//
//	<shortName> [not] <comparator> <value>
//
// The short name is resolved in the registry, the optional "not" token sets
// negation, and everything after the comparator is the raw target, spaces
// included. The target is coerced by the descriptor's filter type before the
// usual construction-time validation runs.
func Parse(reg *Registry, expression string) (*Filter, error) {
	if reg == nil {
		return nil, fmt.Errorf("nil registry")
	}
	name, rest := splitToken(expression)
	if name == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	d, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown descriptor %q", name)
	}

	tok, rest := splitToken(rest)
	negate := false
	if strings.EqualFold(tok, "not") {
		negate = true
		tok, rest = splitToken(rest)
	}
	if tok == "" {
		return nil, fmt.Errorf("filter %q: missing comparator", expression)
	}
	cmp, err := ParseComparator(tok)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}

	target, err := coerceTarget(d.Type(), cmp, strings.TrimSpace(rest))
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}
	f, err := NewFilter(d, cmp, negate, target)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}
	return f, nil
}

// splitToken cuts the first whitespace-separated token off the front.
func splitToken(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// coerceTarget turns the raw textual value into the Value kind the filter
// type expects.
func coerceTarget(ft FilterType, cmp Comparator, raw string) (Value, error) {
	switch ft {
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("bool value %q: %w", raw, err)
		}
		return Bool(b), nil
	case TypeNumerical:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("numerical value %q: %w", raw, err)
		}
		return Number(n), nil
	case TypeModification:
		if raw == "" {
			if cmp == CmpHasAnyModification {
				return Absent(), nil
			}
			return Value{}, fmt.Errorf("comparator %q needs a value", cmp)
		}
		return Literal(raw), nil
	default:
		return Literal(raw), nil
	}
}
