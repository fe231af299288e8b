package report

import (
	"encoding/json"
	"fmt"

	"github.com/PhucNguyen204/proteofilter/pkg/unimod"
)

// DecodeRecords parses a JSON array of records at the given level. Null
// array entries are dropped.
func DecodeRecords(lv Level, data []byte) ([]Record, error) {
	switch lv {
	case LevelPSM:
		var rows []*PSM
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode psm records: %w", err)
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	case LevelPeptide:
		var rows []*Peptide
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode peptide records: %w", err)
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	case LevelProtein:
		var rows []*Protein
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode protein records: %w", err)
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown report level %d", lv)
	}
}

// AnnotateModifications fills empty modification descriptions by looking the
// mass up in the embedded Unimod table. Returns how many descriptions were
// filled. Nested peptides and PSMs are annotated too.
func AnnotateModifications(recs []Record) int {
	n := 0
	for _, rec := range recs {
		switch r := rec.(type) {
		case *PSM:
			n += annotate(r.Modifications)
		case *Peptide:
			n += annotatePeptide(r)
		case *Protein:
			for _, pep := range r.Peptides {
				if pep != nil {
					n += annotatePeptide(pep)
				}
			}
		}
	}
	return n
}

func annotatePeptide(p *Peptide) int {
	n := annotate(p.Modifications)
	for _, m := range p.PSMs {
		if m != nil {
			n += annotate(m.Modifications)
		}
	}
	return n
}

func annotate(mods []Modification) int {
	n := 0
	for i := range mods {
		if mods[i].Description != "" || mods[i].Mass == 0 {
			continue
		}
		if hits := unimod.ByMass(mods[i].Mass); len(hits) > 0 {
			mods[i].Description = hits[0].Title
			n++
		}
	}
	return n
}
