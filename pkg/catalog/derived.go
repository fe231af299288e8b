package catalog

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// NewDerivedDescriptor compiles an expression into a descriptor. The record
// is exposed to the expression under its level name, so a PSM-level
// expression reads like "psm.MassToCharge * psm.Charge". The program is
// compiled once here; extraction only runs it.
//
// Only scalar filter types are supported. A runtime failure or an output of
// the wrong type extracts to Absent, keeping extraction total.
func NewDerivedDescriptor(short, long string, ft filter.FilterType, lv report.Level, source string) (filter.Descriptor, error) {
	opts := []expr.Option{expr.AllowUndefinedVariables()}
	switch ft {
	case filter.TypeBool:
		opts = append(opts, expr.AsBool())
	case filter.TypeNumerical:
		opts = append(opts, expr.AsFloat64())
	case filter.TypeLiteral:
		// coerced after the run
	default:
		return nil, fmt.Errorf("derived descriptor %q: type %q is not scalar", short, ft)
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, fmt.Errorf("derived descriptor %q: compile %q: %w", short, source, err)
	}
	if long == "" {
		long = source
	}

	extract := func(rec report.Record) filter.Value {
		if rec == nil || rec.Level() != lv {
			return filter.Absent()
		}
		env := map[string]any{lv.String(): rec}
		out, err := vm.Run(program, env)
		if err != nil {
			return filter.Absent()
		}
		switch ft {
		case filter.TypeBool:
			if b, ok := out.(bool); ok {
				return filter.Bool(b)
			}
		case filter.TypeNumerical:
			if n, ok := out.(float64); ok {
				return filter.Number(n)
			}
		case filter.TypeLiteral:
			if s, ok := out.(string); ok {
				return filter.Literal(s)
			}
		}
		return filter.Absent()
	}

	return filter.NewDescriptor(short, long, long, ft, []report.Level{lv}, extract), nil
}
