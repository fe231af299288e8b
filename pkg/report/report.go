// Package report defines the proteomics report records the filter engine
// runs against: peptide-spectrum matches, peptides and protein groups, plus
// the modification entity they all share.
package report

import "fmt"

// Level is the report layer a record belongs to.
type Level uint8

const (
	LevelPSM Level = iota + 1
	LevelPeptide
	LevelProtein
)

func (l Level) String() string {
	switch l {
	case LevelPSM:
		return "psm"
	case LevelPeptide:
		return "peptide"
	case LevelProtein:
		return "protein"
	default:
		return "unknown"
	}
}

// ParseLevel resolves the textual level name.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "psm":
		return LevelPSM, nil
	case "peptide":
		return LevelPeptide, nil
	case "protein":
		return LevelProtein, nil
	default:
		return 0, fmt.Errorf("unknown report level: %q", s)
	}
}

// SourceID identifies one input file of a report. SourceOverview is the
// merged view across all sources; filters evaluated with it never get
// per-source refinement.
type SourceID int64

const SourceOverview SourceID = 0

// Record is one row of a report at some level. Key has to be stable for the
// lifetime of the record; it identifies the row in outputs and persistence.
type Record interface {
	Level() Level
	Key() string
}
