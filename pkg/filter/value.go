package filter

import (
	"strconv"
	"strings"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	// KindAbsent means the descriptor produced nothing for the record.
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindLiteral
	KindBools
	KindNumbers
	KindLiterals
	KindModifications
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindLiteral:
		return "literal"
	case KindBools:
		return "bool list"
	case KindNumbers:
		return "number list"
	case KindLiterals:
		return "literal list"
	case KindModifications:
		return "modification list"
	default:
		return "unknown"
	}
}

// Value is the closed set of shapes a descriptor can extract from a record:
// absent, a scalar, a homogeneous list of scalars, or a modification list.
// Cross-kind mixes are unrepresentable. A nil slice is an empty, present
// list, not an absent value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	bs   []bool
	ns   []float64
	ss   []string
	mods []report.Modification
}

// Absent returns the no-value Value. The zero Value is Absent as well.
func Absent() Value { return Value{} }

func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Number(v float64) Value  { return Value{kind: KindNumber, n: v} }
func Literal(v string) Value  { return Value{kind: KindLiteral, s: v} }
func Bools(v []bool) Value    { return Value{kind: KindBools, bs: v} }
func Numbers(v []float64) Value { return Value{kind: KindNumbers, ns: v} }
func Literals(v []string) Value { return Value{kind: KindLiterals, ss: v} }

func Modifications(v []report.Modification) Value {
	return Value{kind: KindModifications, mods: v}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Accessors return the zero value unless the Value holds the matching kind.

func (v Value) Bool() bool          { return v.b }
func (v Value) Number() float64     { return v.n }
func (v Value) Literal() string     { return v.s }
func (v Value) Bools() []bool       { return v.bs }
func (v Value) Numbers() []float64  { return v.ns }
func (v Value) Literals() []string  { return v.ss }

func (v Value) Modifications() []report.Modification { return v.mods }

// String renders the value the way the textual filter syntax expects it.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindLiteral:
		return v.s
	case KindBools:
		parts := make([]string, len(v.bs))
		for i, b := range v.bs {
			parts[i] = strconv.FormatBool(b)
		}
		return strings.Join(parts, ",")
	case KindNumbers:
		parts := make([]string, len(v.ns))
		for i, n := range v.ns {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return strings.Join(parts, ",")
	case KindLiterals:
		return strings.Join(v.ss, ",")
	case KindModifications:
		parts := make([]string, len(v.mods))
		for i, m := range v.mods {
			parts[i] = m.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
