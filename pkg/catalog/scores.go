package catalog

import (
	"fmt"
	"strings"

	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// NewScoreDescriptor builds a numerical descriptor for one named score. The
// short name is derived from the level and the score short name, e.g.
// "pep_score_xtandem_expect". Peptide score descriptors refine per source;
// a PSM belongs to exactly one source, so its scores never refine. Proteins
// carry a single inference score (see prot_score), so named protein scores
// are rejected.
func NewScoreDescriptor(lv report.Level, scoreShort string) (filter.Descriptor, error) {
	scoreShort = strings.TrimSpace(scoreShort)
	if scoreShort == "" {
		return nil, fmt.Errorf("empty score short name")
	}

	switch lv {
	case report.LevelPSM:
		short := "psm_score_" + scoreShort
		return filter.NewDescriptor(short,
			fmt.Sprintf("PSM score %q", scoreShort), scoreShort,
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				v, ok := p.ScoreValue(scoreShort)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			})), nil

	case report.LevelPeptide:
		short := "pep_score_" + scoreShort
		return filter.NewRefinableDescriptor(short,
			fmt.Sprintf("Peptide score %q", scoreShort), scoreShort,
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				v, ok := p.ScoreValue(report.SourceOverview, scoreShort)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			}),
			func(src report.SourceID, rec report.Record, _ filter.Value) filter.Value {
				p, ok := rec.(*report.Peptide)
				if !ok || p == nil {
					return filter.Absent()
				}
				v, ok := p.ScoreValue(src, scoreShort)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			}), nil

	case report.LevelProtein:
		return nil, fmt.Errorf("protein level carries a single score, use prot_score")
	default:
		return nil, fmt.Errorf("unknown report level %d", lv)
	}
}
