package report

import (
	"fmt"
	"strings"
)

// Modification is a mass shift observed on a peptide sequence. Residue and
// Description may be empty when the upstream pipeline did not resolve them;
// empty values never match has_residue / has_description filters.
type Modification struct {
	Mass float64 `json:"mass"`
	// Position is the 1-based residue index in the peptide, 0 when unknown.
	Position    int    `json:"position,omitempty"`
	Residue     string `json:"residue,omitempty"`
	Description string `json:"description,omitempty"`
}

func (m Modification) String() string {
	var b strings.Builder
	if m.Description != "" {
		b.WriteString(m.Description)
	} else {
		fmt.Fprintf(&b, "%+.4f", m.Mass)
	}
	if m.Residue != "" || m.Position > 0 {
		b.WriteByte('@')
		b.WriteString(m.Residue)
		if m.Position > 0 {
			fmt.Fprintf(&b, "%d", m.Position)
		}
	}
	return b.String()
}
