package filter

import "github.com/PhucNguyen204/proteofilter/pkg/report"

// Descriptor identifies one extractable attribute of a report record: its
// names, the filter type it evaluates under, and the extraction itself.
// Extract must be total: anything missing or inapplicable maps to Absent,
// never to a panic or an error. It must not mutate the record.
type Descriptor interface {
	// ShortName is the unique key used in registries and textual filters.
	ShortName() string
	// LongName is the spelled-out name for listings and messages.
	LongName() string
	// ListName is the label shown when the descriptor appears in filter lists.
	ListName() string
	Type() FilterType
	Supports(rec report.Record) bool
	Extract(rec report.Record) Value
}

// SourceRefiner is implemented by descriptors whose extracted value can be
// re-scoped to a single input source (per-source scores, coverages). The
// evaluator calls it only when a non-overview SourceID is supplied. It
// receives the record alongside the unscoped value so it can re-derive;
// returning Absent is the correct answer when the source has no value.
type SourceRefiner interface {
	Descriptor
	RefineForSource(src report.SourceID, rec report.Record, unscoped Value) Value
}

// LevelScoper is implemented by descriptors that can enumerate the report
// levels they apply to. Registries use it for catalog listings.
type LevelScoper interface {
	Levels() []report.Level
}

// ExtractFunc adapts a plain function to a descriptor extraction.
type ExtractFunc func(rec report.Record) Value

// RefineFunc adapts a plain function to a source refinement.
type RefineFunc func(src report.SourceID, rec report.Record, unscoped Value) Value

type desc struct {
	short   string
	long    string
	list    string
	ftype   FilterType
	levels  []report.Level
	extract ExtractFunc
}

// NewDescriptor builds a descriptor from an extraction function. The levels
// decide Supports; the extraction still has to guard its own type assertions.
func NewDescriptor(short, long, list string, ft FilterType, levels []report.Level, extract ExtractFunc) Descriptor {
	return &desc{
		short:   short,
		long:    long,
		list:    list,
		ftype:   ft,
		levels:  append([]report.Level(nil), levels...),
		extract: extract,
	}
}

func (d *desc) ShortName() string { return d.short }
func (d *desc) LongName() string  { return d.long }
func (d *desc) ListName() string  { return d.list }
func (d *desc) Type() FilterType  { return d.ftype }

func (d *desc) Levels() []report.Level {
	return append([]report.Level(nil), d.levels...)
}

func (d *desc) Supports(rec report.Record) bool {
	if rec == nil {
		return false
	}
	for _, lv := range d.levels {
		if rec.Level() == lv {
			return true
		}
	}
	return false
}

func (d *desc) Extract(rec report.Record) Value {
	if rec == nil || d.extract == nil {
		return Absent()
	}
	return d.extract(rec)
}

type refinableDesc struct {
	desc
	refine RefineFunc
}

// NewRefinableDescriptor builds a descriptor that additionally supports
// per-source refinement.
func NewRefinableDescriptor(short, long, list string, ft FilterType, levels []report.Level, extract ExtractFunc, refine RefineFunc) Descriptor {
	return &refinableDesc{
		desc: desc{
			short:   short,
			long:    long,
			list:    list,
			ftype:   ft,
			levels:  append([]report.Level(nil), levels...),
			extract: extract,
		},
		refine: refine,
	}
}

func (d *refinableDesc) RefineForSource(src report.SourceID, rec report.Record, unscoped Value) Value {
	if d.refine == nil {
		return unscoped
	}
	return d.refine(src, rec, unscoped)
}
