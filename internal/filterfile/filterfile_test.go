package filterfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PhucNguyen204/proteofilter/pkg/catalog"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

func writeFilterFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_StringAndStructuredEntries(t *testing.T) {
	p := writeFilterFile(t, t.TempDir(), "psm.yaml", `
level: psm
filters:
  - "psm_charge greater_equal 2"
  - descriptor: psm_sequence
    comparator: contains
    negate: true
    value: DECOY
`)
	def, err := Load(p, catalog.Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Level != report.LevelPSM {
		t.Fatalf("level = %v", def.Level)
	}
	if len(def.Filters) != 2 {
		t.Fatalf("got %d filters, want 2", len(def.Filters))
	}
	if got := def.Filters[0].String(); got != "psm_charge greater_equal 2" {
		t.Fatalf("filter 1 = %q", got)
	}
	if got := def.Filters[1].String(); got != "psm_sequence not contains DECOY" {
		t.Fatalf("filter 2 = %q", got)
	}

	set := def.Set()
	pass := &report.PSM{SpectrumTitle: "s1", Sequence: "PEPTIDEK", Charge: 3}
	fail := &report.PSM{SpectrumTitle: "s2", Sequence: "DECOYPEPTIDE", Charge: 3}
	if !set.Accepts(pass, report.SourceOverview) {
		t.Fatal("charge 3 non-decoy must pass")
	}
	if set.Accepts(fail, report.SourceOverview) {
		t.Fatal("DECOY sequence must be rejected")
	}
}

func TestLoad_RegistersScoresAndDerived(t *testing.T) {
	reg := catalog.Default()
	p := writeFilterFile(t, t.TempDir(), "scored.yml", `
level: psm
scores: [xtandem_expect]
derived:
  - short: psm_mass
    type: numerical
    expr: "psm.MassToCharge * psm.Charge"
filters:
  - "psm_score_xtandem_expect less_equal 0.01"
  - "psm_mass less 2000"
`)
	def, err := Load(p, reg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := reg.Lookup("psm_score_xtandem_expect"); !ok {
		t.Fatal("score descriptor not registered")
	}
	if _, ok := reg.Lookup("psm_mass"); !ok {
		t.Fatal("derived descriptor not registered")
	}

	psm := &report.PSM{
		SpectrumTitle: "s1", Sequence: "PEPTIDEK",
		Charge: 2, MassToCharge: 450.5,
		Scores: map[string]float64{"xtandem_expect": 0.004},
	}
	if !def.Set().Accepts(psm, report.SourceOverview) {
		t.Fatal("psm should pass both score and derived filter")
	}

	// loading the same file twice must not trip over the
	// already registered descriptors
	if _, err := Load(p, reg); err != nil {
		t.Fatalf("second Load: %v", err)
	}
}

func TestLoad_StructuredValueKinds(t *testing.T) {
	p := writeFilterFile(t, t.TempDir(), "kinds.yaml", `
level: psm
filters:
  - descriptor: psm_decoy
    comparator: equal
    value: true
  - descriptor: psm_charge
    comparator: equal
    value: 3
  - descriptor: psm_modifications
    comparator: has_mass
    value: 79.966331
  - descriptor: psm_modifications
    comparator: has_any_modification
  - descriptor: psm_sequence
    comparator: contains
    value: 123
`)
	def, err := Load(p, catalog.Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{
		"psm_decoy equal true",
		"psm_charge equal 3",
		"psm_modifications has_mass 79.966331",
		"psm_modifications has_any_modification",
		"psm_sequence contains 123",
	}
	for i, w := range want {
		if got := def.Filters[i].String(); got != w {
			t.Fatalf("filter %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"broken yaml", "level: [psm", "parse filter file"},
		{"bad level", "level: spectrum\nfilters: [\"psm_charge equal 2\"]", "unknown report level"},
		{"no filters", "level: psm\n", "no filters defined"},
		{"unknown descriptor", "level: psm\nfilters: [\"nope equal 2\"]", "filter 1"},
		{"missing value", "level: psm\nfilters:\n  - descriptor: psm_charge\n    comparator: equal\n", "needs a value"},
		{"bool mismatch", "level: psm\nfilters:\n  - descriptor: psm_decoy\n    comparator: equal\n    value: yes please\n", "bool value expected"},
		{"number mismatch", "level: psm\nfilters:\n  - descriptor: psm_charge\n    comparator: equal\n    value: true\n", "numerical value expected"},
		{"list entry", "level: psm\nfilters:\n  - [1, 2]\n", "unsupported filter entry type"},
		{"bad score", "level: psm\nscores: [\" \"]\nfilters: [\"psm_charge equal 2\"]", "empty score short name"},
		{"bad derived type", "level: psm\nderived:\n  - short: d\n    type: weird\n    expr: \"1\"\nfilters: [\"psm_charge equal 2\"]", "derived"},
		{"second filter named", "level: psm\nfilters:\n  - \"psm_charge equal 2\"\n  - \"nope equal 2\"\n", "filter 2"},
	}
	for _, tc := range cases {
		_, err := parse([]byte(tc.yaml), catalog.Default(), "test.yaml")
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestLoadDir_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFilterFile(t, dir, "good.yaml", "level: psm\nfilters: [\"psm_charge greater_equal 2\"]\n")
	writeFilterFile(t, dir, "broken.yaml", "level: psm\n")
	writeFilterFile(t, dir, "notes.txt", "not a filter file")

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFilterFile(t, sub, "peptides.yml", "level: peptide\nfilters: [\"pep_qvalue less_equal 0.01\"]\n")

	defs, err := LoadDir(dir, catalog.Default())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2 (broken and txt skipped)", len(defs))
	}
	levels := map[report.Level]bool{}
	for _, d := range defs {
		levels[d.Level] = true
	}
	if !levels[report.LevelPSM] || !levels[report.LevelPeptide] {
		t.Fatalf("unexpected levels loaded: %v", levels)
	}
}
