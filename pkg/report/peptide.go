package report

// Peptide aggregates the PSMs identifying one peptide sequence across all
// input sources. Per-source results are keyed by SourceID, with
// SourceOverview holding the merged view.
type Peptide struct {
	Sequence      string         `json:"sequence"`
	Accessions    []string       `json:"accessions,omitempty"`
	Modifications []Modification `json:"modifications,omitempty"`
	PSMs          []*PSM         `json:"psms,omitempty"`
	// Scores maps source -> score short name -> value.
	Scores  map[SourceID]map[string]float64 `json:"scores,omitempty"`
	QValues map[SourceID]float64            `json:"q_values,omitempty"`
}

func (p *Peptide) Level() Level { return LevelPeptide }
func (p *Peptide) Key() string  { return p.Sequence }

func (p *Peptide) NrPSMs() int { return len(p.PSMs) }

// NrSpectra counts distinct spectrum titles across the PSMs.
func (p *Peptide) NrSpectra() int {
	seen := make(map[string]struct{}, len(p.PSMs))
	for _, m := range p.PSMs {
		if m != nil {
			seen[m.SpectrumTitle] = struct{}{}
		}
	}
	return len(seen)
}

// MissedCleavages is a property of the sequence, so any PSM carries it.
// Returns false when the peptide has no PSMs.
func (p *Peptide) MissedCleavages() (int, bool) {
	for _, m := range p.PSMs {
		if m != nil {
			return m.MissedCleavages, true
		}
	}
	return 0, false
}

// Charges lists the charge states of all PSMs, one entry per PSM.
func (p *Peptide) Charges() []float64 {
	out := make([]float64, 0, len(p.PSMs))
	for _, m := range p.PSMs {
		if m != nil {
			out = append(out, float64(m.Charge))
		}
	}
	return out
}

// DecoyFlags lists the decoy flag of every PSM.
func (p *Peptide) DecoyFlags() []bool {
	out := make([]bool, 0, len(p.PSMs))
	for _, m := range p.PSMs {
		if m != nil {
			out = append(out, m.Decoy)
		}
	}
	return out
}

// UniqueFlags lists the uniqueness flag of every PSM.
func (p *Peptide) UniqueFlags() []bool {
	out := make([]bool, 0, len(p.PSMs))
	for _, m := range p.PSMs {
		if m != nil {
			out = append(out, m.Unique)
		}
	}
	return out
}

// SpectrumTitles lists the spectrum title of every PSM.
func (p *Peptide) SpectrumTitles() []string {
	out := make([]string, 0, len(p.PSMs))
	for _, m := range p.PSMs {
		if m != nil {
			out = append(out, m.SpectrumTitle)
		}
	}
	return out
}

// ScoreValue looks up one named score for one source.
func (p *Peptide) ScoreValue(src SourceID, short string) (float64, bool) {
	scores, ok := p.Scores[src]
	if !ok {
		return 0, false
	}
	v, ok := scores[short]
	return v, ok
}

// QValue looks up the q-value for one source.
func (p *Peptide) QValue(src SourceID) (float64, bool) {
	v, ok := p.QValues[src]
	return v, ok
}
