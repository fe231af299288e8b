// Package filterfile loads YAML filter-list definitions and turns them into
// executable filter sets. A file targets one report level and may register
// per-score and expression-derived descriptors before its filters are built:
//
//	level: psm
//	scores: [xtandem_expect]
//	derived:
//	  - short: psm_mz_charge
//	    type: numerical
//	    expr: "psm.MassToCharge * psm.Charge"
//	filters:
//	  - "psm_charge greater_equal 2"
//	  - descriptor: psm_sequence
//	    comparator: contains
//	    negate: true
//	    value: DECOY
package filterfile

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/PhucNguyen204/proteofilter/pkg/catalog"
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Definition is one parsed filter file.
type Definition struct {
	Level   report.Level
	Scores  []string
	Filters []*filter.Filter
}

// Set builds the AND-composition over the definition's filters.
func (d *Definition) Set() *filter.Set {
	return filter.NewSet(d.Filters...)
}

type rawFile struct {
	Level   string       `yaml:"level"`
	Scores  []string     `yaml:"scores"`
	Derived []rawDerived `yaml:"derived"`
	Filters []any        `yaml:"filters"`
}

type rawDerived struct {
	Short string `yaml:"short"`
	Long  string `yaml:"long"`
	Type  string `yaml:"type"`
	Expr  string `yaml:"expr"`
}

// rawFilter is the structured filter entry, decoded via mapstructure so the
// value keeps whatever scalar type YAML gave it.
type rawFilter struct {
	Descriptor string `mapstructure:"descriptor"`
	Comparator string `mapstructure:"comparator"`
	Negate     bool   `mapstructure:"negate"`
	Value      any    `mapstructure:"value"`
}

// Load reads and parses one filter file. Score and derived descriptors the
// file declares are registered into reg before the filters are built, so
// the filters can use them; re-registering an already known short name is
// not an error.
func Load(path string, reg *filter.Registry) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read filter file %s", path)
	}
	return parse(data, reg, path)
}

func parse(data []byte, reg *filter.Registry, name string) (*Definition, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse filter file %s", name)
	}

	lv, err := report.ParseLevel(raw.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	def := &Definition{Level: lv, Scores: raw.Scores}

	for _, scoreShort := range raw.Scores {
		d, err := catalog.NewScoreDescriptor(lv, scoreShort)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: score %q", name, scoreShort)
		}
		if _, ok := reg.Lookup(d.ShortName()); ok {
			continue
		}
		if err := reg.Register(d); err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
	}

	for _, rd := range raw.Derived {
		ft, err := filter.ParseFilterType(rd.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: derived %q", name, rd.Short)
		}
		d, err := catalog.NewDerivedDescriptor(rd.Short, rd.Long, ft, lv, rd.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
		if _, ok := reg.Lookup(d.ShortName()); ok {
			continue
		}
		if err := reg.Register(d); err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
	}

	for i, entry := range raw.Filters {
		f, err := buildFilter(reg, entry)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: filter %d", name, i+1)
		}
		def.Filters = append(def.Filters, f)
	}
	if len(def.Filters) == 0 {
		return nil, errors.Errorf("%s: no filters defined", name)
	}
	return def, nil
}

func buildFilter(reg *filter.Registry, entry any) (*filter.Filter, error) {
	switch v := entry.(type) {
	case string:
		return filter.Parse(reg, v)
	case map[string]any:
		var rf rawFilter
		if err := mapstructure.Decode(v, &rf); err != nil {
			return nil, errors.Wrap(err, "decode filter entry")
		}
		return buildStructured(reg, rf)
	default:
		return nil, errors.Errorf("unsupported filter entry type %T", entry)
	}
}

func buildStructured(reg *filter.Registry, rf rawFilter) (*filter.Filter, error) {
	d, ok := reg.Lookup(rf.Descriptor)
	if !ok {
		return nil, errors.Errorf("unknown descriptor %q", rf.Descriptor)
	}
	cmp, err := filter.ParseComparator(rf.Comparator)
	if err != nil {
		return nil, err
	}
	target, err := coerceValue(d.Type(), cmp, rf.Value)
	if err != nil {
		return nil, err
	}
	return filter.NewFilter(d, cmp, rf.Negate, target)
}

// coerceValue maps the YAML scalar onto the Value kind the filter type
// wants. YAML numbers can arrive as int or float64 depending on their
// spelling; both are fine for numerical and mass targets.
func coerceValue(ft filter.FilterType, cmp filter.Comparator, v any) (filter.Value, error) {
	if v == nil {
		if ft == filter.TypeModification && cmp == filter.CmpHasAnyModification {
			return filter.Absent(), nil
		}
		return filter.Value{}, errors.Errorf("comparator %q needs a value", cmp)
	}
	switch ft {
	case filter.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return filter.Value{}, errors.Errorf("bool value expected, got %T", v)
		}
		return filter.Bool(b), nil
	case filter.TypeNumerical:
		n, ok := toFloat(v)
		if !ok {
			return filter.Value{}, errors.Errorf("numerical value expected, got %T", v)
		}
		return filter.Number(n), nil
	case filter.TypeModification:
		if cmp == filter.CmpHasMass {
			if n, ok := toFloat(v); ok {
				return filter.Number(n), nil
			}
		}
		s, ok := v.(string)
		if !ok {
			return filter.Value{}, errors.Errorf("literal value expected, got %T", v)
		}
		return filter.Literal(s), nil
	default:
		s, ok := v.(string)
		if !ok {
			// tolerate scalar spellings like an unquoted accession number
			s = fmt.Sprintf("%v", v)
		}
		return filter.Literal(s), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
