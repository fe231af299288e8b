package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PhucNguyen204/proteofilter/pkg/catalog"
	"github.com/PhucNguyen204/proteofilter/pkg/filter"
	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

var descLevel string

// descriptorsCmd represents the descriptors command
var descriptorsCmd = &cobra.Command{
	Use:   "descriptors",
	Short: "List the built-in value descriptors",
	RunE:  runDescriptors,
}

func init() {
	rootCmd.AddCommand(descriptorsCmd)

	descriptorsCmd.Flags().StringVar(&descLevel, "level", "", "only descriptors for this level: psm, peptide or protein")
}

func runDescriptors(cmd *cobra.Command, args []string) error {
	reg := catalog.Default()

	var ds []filter.Descriptor
	if descLevel != "" {
		lv, err := report.ParseLevel(descLevel)
		if err != nil {
			return err
		}
		ds = reg.ForLevel(lv)
	} else {
		ds = reg.Descriptors()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHORT\tTYPE\tCOMPARATORS\tDESCRIPTION")
	for _, d := range ds {
		cmps := d.Type().Comparators()
		names := make([]string, 0, len(cmps))
		for _, c := range cmps {
			names = append(names, c.String())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ShortName(), d.Type(), strings.Join(names, ","), d.LongName())
	}
	return w.Flush()
}
