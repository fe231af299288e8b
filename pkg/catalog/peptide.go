package catalog

import (
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

func peptideDescriptors() []filter.Descriptor {
	return []filter.Descriptor{
		filter.NewDescriptor("pep_sequence", "Peptide sequence", "Sequence",
			filter.TypeLiteral, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Literal(p.Sequence)
			})),

		filter.NewDescriptor("pep_accessions", "Peptide protein accessions", "Accessions",
			filter.TypeLiteralList, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Literals(p.Accessions)
			})),

		filter.NewDescriptor("pep_modifications", "Peptide modifications", "Modifications",
			filter.TypeModification, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Modifications(p.Modifications)
			})),

		filter.NewDescriptor("pep_nr_psms", "Number of PSMs for the peptide", "#PSMs",
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Number(float64(p.NrPSMs()))
			})),

		filter.NewDescriptor("pep_nr_spectra", "Number of distinct spectra for the peptide", "#Spectra",
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Number(float64(p.NrSpectra()))
			})),

		filter.NewDescriptor("pep_missed_cleavages", "Peptide missed cleavages", "Missed cleavages",
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				mc, ok := p.MissedCleavages()
				if !ok {
					return filter.Absent()
				}
				return filter.Number(float64(mc))
			})),

		// The next four extract one value per PSM; the quantified evaluation
		// requires every PSM to satisfy the predicate.

		filter.NewDescriptor("pep_charges", "Charge states of the peptide's PSMs", "Charges",
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Numbers(p.Charges())
			})),

		filter.NewDescriptor("pep_decoy", "Decoy flags of the peptide's PSMs", "Decoy",
			filter.TypeBool, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Bools(p.DecoyFlags())
			})),

		filter.NewDescriptor("pep_unique", "Uniqueness flags of the peptide's PSMs", "Unique",
			filter.TypeBool, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Bools(p.UniqueFlags())
			})),

		filter.NewDescriptor("pep_spectrum_titles", "Spectrum titles of the peptide's PSMs", "Spectrum titles",
			filter.TypeLiteral, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				return filter.Literals(p.SpectrumTitles())
			})),

		filter.NewRefinableDescriptor("pep_qvalue", "Peptide q-value", "q-value",
			filter.TypeNumerical, peptideLevel,
			pepValue(func(p *report.Peptide) filter.Value {
				v, ok := p.QValue(report.SourceOverview)
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
				v, ok := p.QValue(src)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			}),
	}
}
