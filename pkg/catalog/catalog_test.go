package catalog

import (
	"testing"

	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

func TestDefaultRegistryHoldsAllBuiltins(t *testing.T) {
	reg := Default()
	if reg.Len() != 38 {
		t.Fatalf("Len() = %d, want 38 built-ins", reg.Len())
	}
	if got := len(reg.ForLevel(report.LevelPSM)); got != 15 {
		t.Fatalf("ForLevel(psm) = %d, want 15", got)
	}
	if got := len(reg.ForLevel(report.LevelPeptide)); got != 11 {
		t.Fatalf("ForLevel(peptide) = %d, want 11", got)
	}
	if got := len(reg.ForLevel(report.LevelProtein)); got != 12 {
		t.Fatalf("ForLevel(protein) = %d, want 12", got)
	}

	for _, short := range []string{"psm_charge", "psm_modifications", "pep_qvalue", "prot_coverage"} {
		if _, ok := reg.Lookup(short); !ok {
			t.Fatalf("built-in %q missing", short)
		}
	}
}

func TestPSMExtraction(t *testing.T) {
	reg := Default()
	q := 0.003
	psm := &report.PSM{
		SpectrumTitle: "scan=11", Sequence: "PEPTIDEK", Charge: 3,
		MassToCharge: 450.29, Decoy: true,
		Accessions: []string{"sp|P68871"},
		QValue:     &q,
	}

	charge, _ := reg.Lookup("psm_charge")
	if v := charge.Extract(psm); v.Kind() != filter.KindNumber || v.Number() != 3 {
		t.Fatalf("psm_charge = %v", v)
	}

	qv, _ := reg.Lookup("psm_qvalue")
	if v := qv.Extract(psm); v.Number() != 0.003 {
		t.Fatalf("psm_qvalue = %v", v)
	}
	if v := qv.Extract(&report.PSM{}); !v.IsAbsent() {
		t.Fatal("unset q-value must extract to absent")
	}

	accs, _ := reg.Lookup("psm_accessions")
	if v := accs.Extract(psm); v.Kind() != filter.KindLiterals || len(v.Literals()) != 1 {
		t.Fatalf("psm_accessions = %v", v)
	}

	// wrong level extracts to absent, not to a panic
	if v := charge.Extract(&report.Peptide{Sequence: "X"}); !v.IsAbsent() {
		t.Fatal("psm descriptor on a peptide must extract to absent")
	}
	if !charge.Supports(psm) || charge.Supports(&report.Peptide{}) {
		t.Fatal("Supports must follow the level")
	}
}

func TestPeptideQuantifiedDescriptors(t *testing.T) {
	reg := Default()
	pep := &report.Peptide{
		Sequence: "PEPTIDEK",
		PSMs: []*report.PSM{
			{SpectrumTitle: "s1", Charge: 2},
			{SpectrumTitle: "s2", Charge: 3},
		},
	}

	f, err := filter.Parse(reg, "pep_charges greater_equal 2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !f.Satisfies(pep, report.SourceOverview) {
		t.Fatal("all charges >= 2, filter must pass")
	}

	f, err = filter.Parse(reg, "pep_charges greater_equal 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Satisfies(pep, report.SourceOverview) {
		t.Fatal("charge 2 PSM must block the quantified filter")
	}

	// no PSMs: the collection is empty and passes vacuously
	empty := &report.Peptide{Sequence: "YY"}
	if !f.Satisfies(empty, report.SourceOverview) {
		t.Fatal("empty charge collection must pass vacuously")
	}
}

func TestPeptideQValueRefinement(t *testing.T) {
	reg := Default()
	pep := &report.Peptide{
		Sequence: "PEPTIDEK",
		QValues: map[report.SourceID]float64{
			report.SourceOverview: 0.005,
			2:                     0.08,
		},
	}

	f, err := filter.Parse(reg, "pep_qvalue less_equal 0.01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !f.Satisfies(pep, report.SourceOverview) {
		t.Fatal("overview q-value 0.005 must pass")
	}
	if f.Satisfies(pep, 2) {
		t.Fatal("source 2 q-value 0.08 must not pass")
	}
	if f.Satisfies(pep, 7) {
		t.Fatal("source without a q-value must not pass")
	}
}

func TestProteinCoverageRefinement(t *testing.T) {
	reg := Default()
	prot := &report.Protein{
		Accessions: []string{"sp|P68871"},
		Coverages: map[report.SourceID]float64{
			report.SourceOverview: 0.61,
			1:                     0.25,
		},
	}

	f, err := filter.Parse(reg, "prot_coverage greater_equal 0.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !f.Satisfies(prot, report.SourceOverview) {
		t.Fatal("overview coverage 0.61 must pass")
	}
	if f.Satisfies(prot, 1) {
		t.Fatal("source 1 coverage 0.25 must not pass")
	}
}

func TestScoreDescriptors(t *testing.T) {
	d, err := NewScoreDescriptor(report.LevelPSM, "xtandem_expect")
	if err != nil {
		t.Fatalf("psm score: %v", err)
	}
	if d.ShortName() != "psm_score_xtandem_expect" || d.Type() != filter.TypeNumerical {
		t.Fatalf("descriptor = %s %s", d.ShortName(), d.Type())
	}

	psm := &report.PSM{Scores: map[string]float64{"xtandem_expect": 0.002}}
	if v := d.Extract(psm); v.Number() != 0.002 {
		t.Fatalf("extract = %v", v)
	}
	if v := d.Extract(&report.PSM{}); !v.IsAbsent() {
		t.Fatal("missing score must extract to absent")
	}

	pd, err := NewScoreDescriptor(report.LevelPeptide, "combined_fdr")
	if err != nil {
		t.Fatalf("peptide score: %v", err)
	}
	pep := &report.Peptide{
		Sequence: "PEPTIDEK",
		Scores: map[report.SourceID]map[string]float64{
			report.SourceOverview: {"combined_fdr": 0.01},
			3:                     {"combined_fdr": 0.2},
		},
	}
	if v := pd.Extract(pep); v.Number() != 0.01 {
		t.Fatalf("overview extract = %v", v)
	}
	ref, ok := pd.(filter.SourceRefiner)
	if !ok {
		t.Fatal("peptide score descriptor must refine per source")
	}
	if v := ref.RefineForSource(3, pep, filter.Number(0.01)); v.Number() != 0.2 {
		t.Fatalf("refined = %v", v)
	}
	if v := ref.RefineForSource(9, pep, filter.Number(0.01)); !v.IsAbsent() {
		t.Fatal("unknown source must refine to absent")
	}

	if _, err := NewScoreDescriptor(report.LevelProtein, "x"); err == nil {
		t.Fatal("protein score descriptors are not a thing")
	}
	if _, err := NewScoreDescriptor(report.LevelPSM, "  "); err == nil {
		t.Fatal("empty score name must fail")
	}
}

func TestDerivedDescriptors(t *testing.T) {
	psm := &report.PSM{Sequence: "PEPTIDEK", Charge: 2, MassToCharge: 450.5}

	num, err := NewDerivedDescriptor("psm_mass", "", filter.TypeNumerical, report.LevelPSM,
		"psm.MassToCharge * psm.Charge")
	if err != nil {
		t.Fatalf("numerical derived: %v", err)
	}
	if v := num.Extract(psm); v.Number() != 901 {
		t.Fatalf("derived mass = %v", v)
	}
	if num.LongName() != "psm.MassToCharge * psm.Charge" {
		t.Fatalf("long name default = %q", num.LongName())
	}

	b, err := NewDerivedDescriptor("psm_good_charge", "charge in range", filter.TypeBool, report.LevelPSM,
		"psm.Charge >= 2 && psm.Charge <= 4")
	if err != nil {
		t.Fatalf("bool derived: %v", err)
	}
	if v := b.Extract(psm); v.Kind() != filter.KindBool || !v.Bool() {
		t.Fatalf("derived bool = %v", v)
	}

	lit, err := NewDerivedDescriptor("psm_seq_copy", "", filter.TypeLiteral, report.LevelPSM,
		"psm.Sequence")
	if err != nil {
		t.Fatalf("literal derived: %v", err)
	}
	if v := lit.Extract(psm); v.Literal() != "PEPTIDEK" {
		t.Fatalf("derived literal = %v", v)
	}

	// records of another level extract to absent
	if v := num.Extract(&report.Peptide{Sequence: "X"}); !v.IsAbsent() {
		t.Fatal("derived psm descriptor on a peptide must be absent")
	}

	if _, err := NewDerivedDescriptor("bad", "", filter.TypeLiteralList, report.LevelPSM, "psm.Sequence"); err == nil {
		t.Fatal("non-scalar derived type must fail")
	}
	if _, err := NewDerivedDescriptor("bad", "", filter.TypeNumerical, report.LevelPSM, "psm.Charge +"); err == nil {
		t.Fatal("broken expression must fail to compile")
	}
}
