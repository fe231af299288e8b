package report

import "fmt"

// PSM is one peptide-spectrum match: a single spectrum identified as a
// peptide sequence in one input source. Optional numeric results use
// pointers so an unset value stays distinguishable from zero.
type PSM struct {
	SourceID        SourceID       `json:"source_id"`
	SpectrumTitle   string         `json:"spectrum_title"`
	Sequence        string         `json:"sequence"`
	Charge          int            `json:"charge"`
	MassToCharge    float64        `json:"mass_to_charge"`
	DeltaMass       float64        `json:"delta_mass"`
	DeltaPPM        float64        `json:"delta_ppm"`
	RetentionTime   float64        `json:"retention_time"`
	MissedCleavages int            `json:"missed_cleavages"`
	Rank            int            `json:"rank"`
	Decoy           bool           `json:"decoy"`
	Unique          bool           `json:"unique"`
	Accessions      []string       `json:"accessions,omitempty"`
	Modifications   []Modification `json:"modifications,omitempty"`
	// Scores maps a score short name to its value for this PSM.
	Scores map[string]float64 `json:"scores,omitempty"`
	QValue *float64           `json:"q_value,omitempty"`
}

func (p *PSM) Level() Level { return LevelPSM }

func (p *PSM) Key() string {
	return fmt.Sprintf("%s|%s|%d", p.SpectrumTitle, p.Sequence, p.Charge)
}

// ScoreValue looks up one named score.
func (p *PSM) ScoreValue(short string) (float64, bool) {
	v, ok := p.Scores[short]
	return v, ok
}
