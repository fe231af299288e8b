package catalog

import (
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

func psmDescriptors() []filter.Descriptor {
	return []filter.Descriptor{
		filter.NewDescriptor("psm_charge", "PSM charge state", "Charge",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(float64(p.Charge))
			})),

		filter.NewDescriptor("psm_mz", "PSM experimental m/z", "m/z",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(p.MassToCharge)
			})),

		filter.NewDescriptor("psm_deltamass", "PSM precursor mass error (Da)", "Delta mass",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(p.DeltaMass)
			})),

		filter.NewDescriptor("psm_deltappm", "PSM precursor mass error (ppm)", "Delta ppm",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(p.DeltaPPM)
			})),

		filter.NewDescriptor("psm_retention_time", "PSM retention time (s)", "Retention time",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(p.RetentionTime)
			})),

		filter.NewDescriptor("psm_missed_cleavages", "PSM missed cleavages", "Missed cleavages",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(float64(p.MissedCleavages))
			})),

		filter.NewDescriptor("psm_rank", "PSM identification rank", "Rank",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(float64(p.Rank))
			})),

		filter.NewDescriptor("psm_source_id", "PSM source file id", "Source",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Number(float64(p.SourceID))
			})),

		filter.NewDescriptor("psm_qvalue", "PSM q-value", "q-value",
			filter.TypeNumerical, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				if p.QValue == nil {
					return filter.Absent()
				}
				return filter.Number(*p.QValue)
			})),

		filter.NewDescriptor("psm_decoy", "PSM decoy flag", "Decoy",
			filter.TypeBool, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Bool(p.Decoy)
			})),

		filter.NewDescriptor("psm_unique", "PSM uniqueness flag", "Unique",
			filter.TypeBool, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Bool(p.Unique)
			})),

		filter.NewDescriptor("psm_sequence", "PSM peptide sequence", "Sequence",
			filter.TypeLiteral, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Literal(p.Sequence)
			})),

		filter.NewDescriptor("psm_spectrum_title", "PSM spectrum title", "Spectrum title",
			filter.TypeLiteral, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Literal(p.SpectrumTitle)
			})),

		filter.NewDescriptor("psm_accessions", "PSM protein accessions", "Accessions",
			filter.TypeLiteralList, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Literals(p.Accessions)
			})),

		filter.NewDescriptor("psm_modifications", "PSM modifications", "Modifications",
			filter.TypeModification, psmLevel,
			psmValue(func(p *report.PSM) filter.Value {
				return filter.Modifications(p.Modifications)
			})),
	}
}
