package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List catalog diameters with derated allowable loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resp := a.Env.Listing()
			if opts.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "DIAMETER\tAREA mm²\tBREAKING kN\tALLOWABLE kN\n")
			for _, it := range resp.Items {
				fmt.Fprintf(w, "%s\t%g\t%g\t%.1f\n", it.Diameter, it.AreaMM2, it.BreakingLoadKN, it.AllowableLoadKN)
			}
			fmt.Fprintf(w, "\nsafety factor %g, importance factor %g\n", resp.SafetyFactor, resp.ImportanceFactor)
			return w.Flush()
		},
	}
}
