// Package catalog holds the built-in filter descriptors for PSM, peptide
// and protein reports, plus the dynamic ones: per-score descriptors and
// expression-derived descriptors.
package catalog

import (
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Register adds every built-in descriptor to the registry.
func Register(reg *filter.Registry) error {
	for _, group := range [][]filter.Descriptor{
		psmDescriptors(),
		peptideDescriptors(),
		proteinDescriptors(),
	} {
		for _, d := range group {
			if err := reg.Register(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Default returns a fresh registry with all built-ins registered. The
// built-ins are static, so a failure here is a programming error.
func Default() *filter.Registry {
	reg := filter.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

var (
	psmLevel     = []report.Level{report.LevelPSM}
	peptideLevel = []report.Level{report.LevelPeptide}
	proteinLevel = []report.Level{report.LevelProtein}
)

// The extraction helpers guard the type assertion so descriptors built on
// them stay total: a record of the wrong level extracts to Absent.

func psmValue(fn func(*report.PSM) filter.Value) filter.ExtractFunc {
	return func(rec report.Record) filter.Value {
		p, ok := rec.(*report.PSM)
		if !ok || p == nil {
			return filter.Absent()
		}
		return fn(p)
	}
}

func pepValue(fn func(*report.Peptide) filter.Value) filter.ExtractFunc {
	return func(rec report.Record) filter.Value {
		p, ok := rec.(*report.Peptide)
		if !ok || p == nil {
			return filter.Absent()
		}
		return fn(p)
	}
}

func protValue(fn func(*report.Protein) filter.Value) filter.ExtractFunc {
	return func(rec report.Record) filter.Value {
		p, ok := rec.(*report.Protein)
		if !ok || p == nil {
			return filter.Absent()
		}
		return fn(p)
	}
}
