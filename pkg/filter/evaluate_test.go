package filter

import (
	"errors"
	"testing"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

type evalRecord struct {
	level report.Level
	key   string
}

func (r evalRecord) Level() report.Level { return r.level }
func (r evalRecord) Key() string         { return r.key }

var psmRec = evalRecord{level: report.LevelPSM, key: "psm-1"}

// staticDesc builds a descriptor that extracts the same value for every
// record, which keeps the evaluation tests focused on comparator semantics.
func staticDesc(ft FilterType, v Value) Descriptor {
	return NewDescriptor("test_attr", "test attribute", "Test attribute", ft,
		[]report.Level{report.LevelPSM},
		func(report.Record) Value { return v })
}

func mustFilter(t *testing.T, d Descriptor, cmp Comparator, negate bool, target Value) *Filter {
	t.Helper()
	f, err := NewFilter(d, cmp, negate, target)
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}
	return f
}

func checkMatch(t *testing.T, f *Filter, want bool) {
	t.Helper()
	res := f.Evaluate(psmRec, report.SourceOverview)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Match != want {
		t.Fatalf("%s: match=%v, want %v", f, res.Match, want)
	}
}

func TestEvaluate_AbsentNeverMatches(t *testing.T) {
	d := staticDesc(TypeNumerical, Absent())
	plain := mustFilter(t, d, CmpEqual, false, Number(2))
	negated := mustFilter(t, d, CmpEqual, true, Number(2))

	for _, f := range []*Filter{plain, negated} {
		res := f.Evaluate(psmRec, report.SourceOverview)
		if res.Err != nil {
			t.Fatalf("%s: unexpected error: %v", f, res.Err)
		}
		if res.Match {
			t.Fatalf("%s: absent value matched", f)
		}
	}
}

func TestEvaluate_BoolEqual(t *testing.T) {
	d := staticDesc(TypeBool, Bool(true))
	checkMatch(t, mustFilter(t, d, CmpEqual, false, Bool(true)), true)
	checkMatch(t, mustFilter(t, d, CmpEqual, false, Bool(false)), false)
	checkMatch(t, mustFilter(t, d, CmpEqual, true, Bool(true)), false)
	checkMatch(t, mustFilter(t, d, CmpEqual, true, Bool(false)), true)
}

func TestEvaluate_NumericalComparators(t *testing.T) {
	cases := []struct {
		cmp    Comparator
		value  float64
		target float64
		want   bool
	}{
		{CmpLess, 1.9, 2, true},
		{CmpLess, 2, 2, false},
		{CmpLessEqual, 2, 2, true},
		{CmpLessEqual, 2.1, 2, false},
		{CmpEqual, 2, 2, true},
		{CmpEqual, 2.0000001, 2, false},
		{CmpGreaterEqual, 2, 2, true},
		{CmpGreaterEqual, 1.9, 2, false},
		{CmpGreater, 2.1, 2, true},
		{CmpGreater, 2, 2, false},
	}
	for _, tc := range cases {
		d := staticDesc(TypeNumerical, Number(tc.value))
		f := mustFilter(t, d, tc.cmp, false, Number(tc.target))
		res := f.Evaluate(psmRec, report.SourceOverview)
		if res.Err != nil {
			t.Fatalf("%v %v vs %v: %v", tc.cmp, tc.value, tc.target, res.Err)
		}
		if res.Match != tc.want {
			t.Fatalf("%v: %v vs %v = %v, want %v", tc.cmp, tc.value, tc.target, res.Match, tc.want)
		}
	}
}

func TestEvaluate_LiteralComparators(t *testing.T) {
	d := staticDesc(TypeLiteral, Literal("PEPTIDER"))

	checkMatch(t, mustFilter(t, d, CmpEqual, false, Literal("PEPTIDER")), true)
	checkMatch(t, mustFilter(t, d, CmpEqual, false, Literal("peptider")), false)
	checkMatch(t, mustFilter(t, d, CmpContains, false, Literal("TIDE")), true)
	checkMatch(t, mustFilter(t, d, CmpContains, false, Literal("DECOY")), false)
}

func TestEvaluate_RegexMatchesWholeValue(t *testing.T) {
	d := staticDesc(TypeLiteral, Literal("DECOY_sp|P68871"))

	// whole-value match, substring hits are not enough
	checkMatch(t, mustFilter(t, d, CmpRegex, false, Literal(`DECOY.*`)), true)
	checkMatch(t, mustFilter(t, d, CmpRegex, false, Literal(`DECOY`)), false)
	checkMatch(t, mustFilter(t, d, CmpRegex, false, Literal(`.*P68871`)), true)
}

func TestEvaluate_QuantifiedNegateAppliesToAggregate(t *testing.T) {
	// "every charge equals 2" over [2,2,3] is false, so the negated filter
	// matches. Element-wise negation would have rejected it instead.
	d := staticDesc(TypeNumerical, Numbers([]float64{2, 2, 3}))
	checkMatch(t, mustFilter(t, d, CmpEqual, false, Number(2)), false)
	checkMatch(t, mustFilter(t, d, CmpEqual, true, Number(2)), true)

	all2 := staticDesc(TypeNumerical, Numbers([]float64{2, 2}))
	checkMatch(t, mustFilter(t, all2, CmpEqual, false, Number(2)), true)
	checkMatch(t, mustFilter(t, all2, CmpEqual, true, Number(2)), false)
}

func TestEvaluate_QuantifiedLiteralAndBoolCollections(t *testing.T) {
	seqs := staticDesc(TypeLiteral, Literals([]string{"AB", "AB"}))
	checkMatch(t, mustFilter(t, seqs, CmpEqual, false, Literal("AB")), true)

	mixed := staticDesc(TypeLiteral, Literals([]string{"AB", "CD"}))
	checkMatch(t, mustFilter(t, mixed, CmpEqual, false, Literal("AB")), false)
	checkMatch(t, mustFilter(t, mixed, CmpEqual, true, Literal("AB")), true)

	decoys := staticDesc(TypeBool, Bools([]bool{false, false}))
	checkMatch(t, mustFilter(t, decoys, CmpEqual, false, Bool(false)), true)
	checkMatch(t, mustFilter(t, decoys, CmpEqual, false, Bool(true)), false)
}

func TestEvaluate_EmptyCollectionIsVacuouslyTrue(t *testing.T) {
	d := staticDesc(TypeNumerical, Numbers(nil))
	checkMatch(t, mustFilter(t, d, CmpEqual, false, Number(2)), true)
	checkMatch(t, mustFilter(t, d, CmpEqual, true, Number(2)), false)
}

func TestEvaluate_LiteralListContains(t *testing.T) {
	d := staticDesc(TypeLiteralList, Literals([]string{"B", "A"}))
	checkMatch(t, mustFilter(t, d, CmpContains, false, Literal("A")), true)
	checkMatch(t, mustFilter(t, d, CmpContains, false, Literal("C")), false)
	checkMatch(t, mustFilter(t, d, CmpContains, true, Literal("C")), true)

	empty := staticDesc(TypeLiteralList, Literals(nil))
	checkMatch(t, mustFilter(t, empty, CmpContains, false, Literal("A")), false)
}

func TestEvaluate_ContainsOnlyKeepsFirstElementGate(t *testing.T) {
	// ["B","A"] with target "A" fails at the gate even though "A" is in the
	// list; only a list led by the target and holding nothing else passes.
	cases := []struct {
		list []string
		want bool
	}{
		{[]string{"A"}, true},
		{[]string{"A", "A"}, true},
		{[]string{"B", "A"}, false},
		{[]string{"A", "B"}, false},
		{nil, false},
	}
	for _, tc := range cases {
		d := staticDesc(TypeLiteralList, Literals(tc.list))
		f := mustFilter(t, d, CmpContainsOnly, false, Literal("A"))
		res := f.Evaluate(psmRec, report.SourceOverview)
		if res.Err != nil {
			t.Fatalf("%v: %v", tc.list, res.Err)
		}
		if res.Match != tc.want {
			t.Fatalf("contains_only %v = %v, want %v", tc.list, res.Match, tc.want)
		}
	}
}

func TestEvaluate_LiteralListRegex(t *testing.T) {
	d := staticDesc(TypeLiteralList, Literals([]string{"sp|P68871", "DECOY_sp|P68871"}))
	checkMatch(t, mustFilter(t, d, CmpRegex, false, Literal(`DECOY.*`)), true)
	checkMatch(t, mustFilter(t, d, CmpRegex, false, Literal(`tr\|.*`)), false)

	// regex_only gates on the first element like contains_only
	checkMatch(t, mustFilter(t, d, CmpRegexOnly, false, Literal(`DECOY.*`)), false)
	all := staticDesc(TypeLiteralList, Literals([]string{"DECOY_a", "DECOY_b"}))
	checkMatch(t, mustFilter(t, all, CmpRegexOnly, false, Literal(`DECOY.*`)), true)
}

func TestEvaluate_ModificationComparators(t *testing.T) {
	mods := []report.Modification{
		{Mass: 79.9663, Position: 17, Residue: "S", Description: "Phospho"},
		{Mass: 15.994915, Position: 4, Residue: "M", Description: "Oxidation"},
	}
	d := staticDesc(TypeModification, Modifications(mods))

	checkMatch(t, mustFilter(t, d, CmpHasAnyModification, false, Absent()), true)
	checkMatch(t, mustFilter(t, d, CmpHasDescription, false, Literal("Phospho")), true)
	checkMatch(t, mustFilter(t, d, CmpHasDescription, false, Literal("Acetyl")), false)
	checkMatch(t, mustFilter(t, d, CmpHasResidue, false, Literal("S")), true)
	checkMatch(t, mustFilter(t, d, CmpHasResidue, false, Literal("K")), false)

	// mass matches within the tolerance window
	checkMatch(t, mustFilter(t, d, CmpHasMass, false, Literal("79.97")), true)
	checkMatch(t, mustFilter(t, d, CmpHasMass, false, Literal("80.5")), false)
	checkMatch(t, mustFilter(t, d, CmpHasMass, false, Number(15.99)), true)

	none := staticDesc(TypeModification, Modifications(nil))
	checkMatch(t, mustFilter(t, none, CmpHasAnyModification, false, Absent()), false)
	checkMatch(t, mustFilter(t, none, CmpHasAnyModification, true, Absent()), true)
}

func TestEvaluate_EmptyDescriptionAndResidueNeverMatch(t *testing.T) {
	mods := []report.Modification{{Mass: 57.021464, Position: 3}}
	d := staticDesc(TypeModification, Modifications(mods))

	checkMatch(t, mustFilter(t, d, CmpHasDescription, false, Literal("")), false)
	checkMatch(t, mustFilter(t, d, CmpHasResidue, false, Literal("")), false)
}

func TestEvaluate_ShapeErrorOnWrongKind(t *testing.T) {
	d := staticDesc(TypeLiteral, Number(42))
	f := mustFilter(t, d, CmpEqual, false, Literal("42"))
	res := f.Evaluate(psmRec, report.SourceOverview)
	if res.Err == nil {
		t.Fatal("expected a shape error")
	}
	var shape *ShapeError
	if !errors.As(res.Err, &shape) {
		t.Fatalf("error is %T, want *ShapeError", res.Err)
	}
	if res.Match {
		t.Fatal("errored evaluation must not match")
	}
	if f.Satisfies(psmRec, report.SourceOverview) {
		t.Fatal("Satisfies must fail closed on shape errors")
	}
}

func TestEvaluate_SourceRefinement(t *testing.T) {
	scores := map[report.SourceID]float64{1: 0.01, 2: 0.2}
	d := NewRefinableDescriptor("test_score", "test score", "Test score",
		TypeNumerical, []report.Level{report.LevelPSM},
		func(report.Record) Value { return Number(0.05) },
		func(src report.SourceID, _ report.Record, _ Value) Value {
			if v, ok := scores[src]; ok {
				return Number(v)
			}
			return Absent()
		})
	f := mustFilter(t, d, CmpLessEqual, false, Number(0.05))

	// overview keeps the unscoped value
	if !f.Satisfies(psmRec, report.SourceOverview) {
		t.Fatal("overview value should pass")
	}
	if !f.Satisfies(psmRec, 1) {
		t.Fatal("source 1 value 0.01 should pass")
	}
	if f.Satisfies(psmRec, 2) {
		t.Fatal("source 2 value 0.2 should not pass")
	}
	// unknown source refines to absent, which never matches
	if f.Satisfies(psmRec, 9) {
		t.Fatal("unknown source must not pass")
	}
}
