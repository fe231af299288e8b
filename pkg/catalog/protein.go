package catalog

import (
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

func proteinDescriptors() []filter.Descriptor {
	return []filter.Descriptor{
		filter.NewDescriptor("prot_accessions", "Protein group accessions", "Accessions",
			filter.TypeLiteralList, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Literals(p.Accessions)
			})),

		filter.NewDescriptor("prot_description", "Protein description", "Description",
			filter.TypeLiteral, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Literal(p.Description)
			})),

		filter.NewDescriptor("prot_score", "Protein score", "Score",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Number(p.Score)
			})),

		filter.NewDescriptor("prot_qvalue", "Protein q-value", "q-value",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				if p.QValue == nil {
					return filter.Absent()
				}
				return filter.Number(*p.QValue)
			})),

		filter.NewRefinableDescriptor("prot_coverage", "Protein sequence coverage", "Coverage",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				v, ok := p.CoverageFor(report.SourceOverview)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			}),
			func(src report.SourceID, rec report.Record, _ filter.Value) filter.Value {
				p, ok := rec.(*report.Protein)
				if !ok || p == nil {
					return filter.Absent()
				}
				v, ok := p.CoverageFor(src)
				if !ok {
					return filter.Absent()
				}
				return filter.Number(v)
			}),

		filter.NewDescriptor("prot_nr_peptides", "Number of peptides in the group", "#Peptides",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Number(float64(p.NrPeptides()))
			})),

		filter.NewDescriptor("prot_nr_psms", "Number of PSMs in the group", "#PSMs",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Number(float64(p.NrPSMs()))
			})),

		filter.NewDescriptor("prot_nr_spectra", "Number of distinct spectra in the group", "#Spectra",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Number(float64(p.NrSpectra()))
			})),

		filter.NewDescriptor("prot_nr_unique_peptides", "Number of unique peptides in the group", "#Unique peptides",
			filter.TypeNumerical, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Number(float64(p.NrUniquePeptides()))
			})),

		filter.NewDescriptor("prot_decoy", "Protein decoy flag", "Decoy",
			filter.TypeBool, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Bool(p.Decoy)
			})),

		filter.NewDescriptor("prot_sequences", "Peptide sequences in the group", "Peptide sequences",
			filter.TypeLiteralList, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Literals(p.PeptideSequences())
			})),

		filter.NewDescriptor("prot_modifications", "Modifications across the group's peptides", "Modifications",
			filter.TypeModification, proteinLevel,
			protValue(func(p *report.Protein) filter.Value {
				return filter.Modifications(p.AllModifications())
			})),
	}
}
