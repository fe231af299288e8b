package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhucNguyen204/proteofilter/internal/filterfile"
	"github.com/PhucNguyen204/proteofilter/pkg/catalog"
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

var (
	reportPath   string
	levelName    string
	filterExprs  []string
	filterFile   string
	outPath      string
	sourceID     int64
	workers      int
	usePrefilter bool
	showStats    bool
	annotateMods bool
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a report file and write the surviving records",
	Long: `Filter reads a JSON array of report records, evaluates a filter list
against each one and writes the records that pass every filter.

Filters come either from repeated --filter expressions, such as

  proteofilter filter --report psms.json --level psm \
      --filter "psm_charge greater_equal 2" \
      --filter "psm_sequence not contains DECOY"

or from a YAML filter file via --filters-file, which may also declare
per-score and expression-derived descriptors.`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVar(&reportPath, "report", "", "input report JSON (array of records)")
	filterCmd.Flags().StringVar(&levelName, "level", "", "record level: psm, peptide or protein")
	filterCmd.Flags().StringArrayVar(&filterExprs, "filter", nil, "filter expression, repeatable")
	filterCmd.Flags().StringVar(&filterFile, "filters-file", "", "YAML filter file (alternative to --level/--filter)")
	filterCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	filterCmd.Flags().Int64Var(&sourceID, "source", 0, "score source id, 0 = overview")
	filterCmd.Flags().IntVar(&workers, "workers", 1, "parallel evaluation workers")
	filterCmd.Flags().BoolVar(&usePrefilter, "prefilter", false, "enable the literal prefilter")
	filterCmd.Flags().BoolVar(&showStats, "stats", false, "print evaluation stats to stderr")
	filterCmd.Flags().BoolVar(&annotateMods, "annotate-mods", false, "fill missing modification descriptions from the Unimod table")

	_ = filterCmd.MarkFlagRequired("report")
}

func runFilter(cmd *cobra.Command, args []string) error {
	reg := catalog.Default()

	var lv report.Level
	var set *filter.Set
	switch {
	case filterFile != "":
		def, err := filterfile.Load(filterFile, reg)
		if err != nil {
			return err
		}
		lv = def.Level
		set = def.Set()
	case levelName != "" && len(filterExprs) > 0:
		parsed, err := report.ParseLevel(levelName)
		if err != nil {
			return err
		}
		lv = parsed
		filters := make([]*filter.Filter, 0, len(filterExprs))
		for _, e := range filterExprs {
			f, err := filter.Parse(reg, e)
			if err != nil {
				return err
			}
			filters = append(filters, f)
		}
		set = filter.NewSet(filters...)
	default:
		return fmt.Errorf("either --filters-file or both --level and --filter are required")
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	recs, err := report.DecodeRecords(lv, data)
	if err != nil {
		return err
	}
	if annotateMods {
		n := report.AnnotateModifications(recs)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Annotated %d modifications\n", n)
		}
	}

	if usePrefilter {
		set.EnablePrefilter()
		if verbose {
			if pre := set.Prefilter(); pre != nil {
				st := pre.Stats()
				fmt.Fprintf(os.Stderr, "✓ Prefilter: %d patterns from %d filters\n", st.PatternCount, st.FilterCount)
			}
		}
	}

	kept, err := set.ApplyParallel(context.Background(), recs, report.SourceID(sourceID), workers)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out = append(out, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(outPath, out, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if showStats {
		st := set.Stats()
		fmt.Fprintf(os.Stderr, "evaluated=%d passed=%d prefilter_skipped=%d\n",
			st.Evaluated, st.Passed, st.PrefilterSkipped)
	}
	return nil
}
