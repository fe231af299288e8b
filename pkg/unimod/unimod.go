// Package unimod carries a small embedded extract of the Unimod
// modification table and the mass tolerance used when comparing
// modification masses anywhere in this project.
package unimod

import (
	"math"
	"strings"
)

// MassTolerance is the absolute tolerance in Dalton for deciding that two
// modification masses are the same.
const MassTolerance = 0.01

// Entry is one known modification.
type Entry struct {
	Title    string
	MonoMass float64
	Sites    []string
}

// Common modifications seen in bottom-up proteomics data; monoisotopic
// masses from the Unimod database.
var entries = []Entry{
	{Title: "Acetyl", MonoMass: 42.010565, Sites: []string{"K", "N-term"}},
	{Title: "Amidated", MonoMass: -0.984016, Sites: []string{"C-term"}},
	{Title: "Carbamidomethyl", MonoMass: 57.021464, Sites: []string{"C"}},
	{Title: "Deamidated", MonoMass: 0.984016, Sites: []string{"N", "Q"}},
	{Title: "Dehydrated", MonoMass: -18.010565, Sites: []string{"S", "T"}},
	{Title: "Dioxidation", MonoMass: 31.989829, Sites: []string{"M", "W"}},
	{Title: "Gln->pyro-Glu", MonoMass: -17.026549, Sites: []string{"Q"}},
	{Title: "GlyGly", MonoMass: 114.042927, Sites: []string{"K"}},
	{Title: "Methyl", MonoMass: 14.01565, Sites: []string{"K", "R"}},
	{Title: "Oxidation", MonoMass: 15.994915, Sites: []string{"M"}},
	{Title: "Phospho", MonoMass: 79.966331, Sites: []string{"S", "T", "Y"}},
	{Title: "Propionamide", MonoMass: 71.037114, Sites: []string{"C"}},
	{Title: "TMT6plex", MonoMass: 229.162932, Sites: []string{"K", "N-term"}},
	{Title: "Trimethyl", MonoMass: 42.04695, Sites: []string{"K"}},
}

// Entries returns a copy of the embedded table.
func Entries() []Entry {
	return append([]Entry(nil), entries...)
}

// ByTitle looks a modification up by its Unimod title, case-insensitively.
func ByTitle(title string) (Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Title, title) {
			return e, true
		}
	}
	return Entry{}, false
}

// ByMass returns every entry within MassTolerance of the given mass, closest
// first.
func ByMass(mass float64) []Entry {
	var out []Entry
	for _, e := range entries {
		if math.Abs(e.MonoMass-mass) <= MassTolerance {
			out = append(out, e)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && math.Abs(out[j].MonoMass-mass) < math.Abs(out[j-1].MonoMass-mass); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
