package report

import "strings"

// Protein is one inferred protein group with the peptide evidence behind it.
type Protein struct {
	Accessions  []string `json:"accessions"`
	Description string   `json:"description,omitempty"`
	Score       float64  `json:"score"`
	Decoy       bool     `json:"decoy"`
	QValue      *float64 `json:"q_value,omitempty"`
	// Coverages maps source -> sequence coverage fraction, with
	// SourceOverview holding the combined coverage.
	Coverages map[SourceID]float64 `json:"coverages,omitempty"`
	Peptides  []*Peptide           `json:"peptides,omitempty"`
}

func (p *Protein) Level() Level { return LevelProtein }

func (p *Protein) Key() string { return strings.Join(p.Accessions, ";") }

func (p *Protein) NrPeptides() int { return len(p.Peptides) }

func (p *Protein) NrPSMs() int {
	n := 0
	for _, pep := range p.Peptides {
		if pep != nil {
			n += len(pep.PSMs)
		}
	}
	return n
}

// NrSpectra counts distinct spectrum titles across the group's PSMs.
func (p *Protein) NrSpectra() int {
	seen := make(map[string]struct{})
	for _, pep := range p.Peptides {
		if pep == nil {
			continue
		}
		for _, m := range pep.PSMs {
			if m != nil {
				seen[m.SpectrumTitle] = struct{}{}
			}
		}
	}
	return len(seen)
}

// NrUniquePeptides counts peptides mapping to exactly one accession.
func (p *Protein) NrUniquePeptides() int {
	n := 0
	for _, pep := range p.Peptides {
		if pep != nil && len(pep.Accessions) == 1 {
			n++
		}
	}
	return n
}

// PeptideSequences lists the sequences of all peptides in the group.
func (p *Protein) PeptideSequences() []string {
	out := make([]string, 0, len(p.Peptides))
	for _, pep := range p.Peptides {
		if pep != nil {
			out = append(out, pep.Sequence)
		}
	}
	return out
}

// AllModifications concatenates the modifications of all peptides.
func (p *Protein) AllModifications() []Modification {
	var out []Modification
	for _, pep := range p.Peptides {
		if pep != nil {
			out = append(out, pep.Modifications...)
		}
	}
	return out
}

// CoverageFor looks up the coverage for one source.
func (p *Protein) CoverageFor(src SourceID) (float64, bool) {
	v, ok := p.Coverages[src]
	return v, ok
}
