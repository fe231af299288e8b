package filter

import "fmt"

// FilterType groups descriptors by the shape of value they produce and
// decides which comparators apply to them.
type FilterType uint8

const (
	TypeBool FilterType = iota + 1
	TypeNumerical
	TypeLiteral
	TypeLiteralList
	TypeModification
)

func (t FilterType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeNumerical:
		return "numerical"
	case TypeLiteral:
		return "literal"
	case TypeLiteralList:
		return "literal_list"
	case TypeModification:
		return "modification"
	default:
		return "unknown"
	}
}

// ParseFilterType resolves the textual form used in filter files.
func ParseFilterType(s string) (FilterType, error) {
	switch s {
	case "bool":
		return TypeBool, nil
	case "numerical":
		return TypeNumerical, nil
	case "literal":
		return TypeLiteral, nil
	case "literal_list":
		return TypeLiteralList, nil
	case "modification":
		return TypeModification, nil
	default:
		return 0, fmt.Errorf("unknown filter type: %q", s)
	}
}

// Comparator is the comparison a filter applies to an extracted value.
type Comparator uint8

const (
	CmpLess Comparator = iota + 1
	CmpLessEqual
	CmpEqual
	CmpGreaterEqual
	CmpGreater
	CmpContains
	CmpContainsOnly
	CmpRegex
	CmpRegexOnly
	CmpHasAnyModification
	CmpHasDescription
	CmpHasMass
	CmpHasResidue
)

var comparatorNames = map[Comparator]string{
	CmpLess:               "less",
	CmpLessEqual:          "less_equal",
	CmpEqual:              "equal",
	CmpGreaterEqual:       "greater_equal",
	CmpGreater:            "greater",
	CmpContains:           "contains",
	CmpContainsOnly:       "contains_only",
	CmpRegex:              "regex",
	CmpRegexOnly:          "regex_only",
	CmpHasAnyModification: "has_any_modification",
	CmpHasDescription:     "has_description",
	CmpHasMass:            "has_mass",
	CmpHasResidue:         "has_residue",
}

func (c Comparator) String() string {
	if s, ok := comparatorNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseComparator resolves the textual form used in filter expressions.
func ParseComparator(s string) (Comparator, error) {
	for c, name := range comparatorNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown comparator: %q", s)
}

// comparatorsByType is the closed comparator set per filter type. Anything
// outside it is rejected when the filter is built.
var comparatorsByType = map[FilterType][]Comparator{
	TypeBool:         {CmpEqual},
	TypeNumerical:    {CmpLess, CmpLessEqual, CmpEqual, CmpGreaterEqual, CmpGreater},
	TypeLiteral:      {CmpEqual, CmpContains, CmpRegex},
	TypeLiteralList:  {CmpContains, CmpContainsOnly, CmpRegex, CmpRegexOnly},
	TypeModification: {CmpHasAnyModification, CmpHasDescription, CmpHasMass, CmpHasResidue},
}

// Comparators lists the comparators valid for the filter type.
func (t FilterType) Comparators() []Comparator {
	cs := comparatorsByType[t]
	out := make([]Comparator, len(cs))
	copy(out, cs)
	return out
}

// Allows reports whether the comparator is valid for the filter type.
func (t FilterType) Allows(c Comparator) bool {
	for _, v := range comparatorsByType[t] {
		if v == c {
			return true
		}
	}
	return false
}
