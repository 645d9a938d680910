package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"CableCheck/internal/calc/loads"
)

func newLoadsCmd(opts *rootOptions) *cobra.Command {
	var (
		in       loads.Input
		method   string
		diameter string
	)
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Combine self-weight, permanent and variable line loads",
		Long: `Combine the cable self-weight with permanent and variable line loads into
the design load q. Give either the section area or a catalog diameter.

Methods: SLS (1.0/1.0), SP20 (1.05/1.4), EN1990 (1.35/1.5).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Method = loads.Method(method)
			if diameter != "" {
				a, err := opts.app(cmd)
				if err != nil {
					return err
				}
				defer a.Close()
				e, err := a.Env.Catalog.Lookup(diameter)
				if err != nil {
					return err
				}
				in.AreaMM2 = e.AreaMM2
			}
			res, err := loads.Calculate(in)
			if err != nil {
				return err
			}
			if opts.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Combination\t%s\n", res.ComboName)
			fmt.Fprintf(w, "Self-weight\t%.4f kN/m\n", res.SelfWeightKNM)
			fmt.Fprintf(w, "Factors G/Q\t%g / %g\n", res.GammaG, res.GammaQ)
			fmt.Fprintf(w, "Design load q\t%.3f kN/m\n", res.DesignLoadKNM)
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&method, "method", string(loads.MethodSLS), "combination method (SLS, SP20, EN1990)")
	f.StringVarP(&diameter, "diameter", "d", "", "catalog diameter to take the area from")
	f.Float64Var(&in.AreaMM2, "area", 0, "section area, mm²")
	f.Float64Var(&in.UnitWeight, "unit-weight", loads.DefaultUnitWeightKNM3, "rope unit weight, kN/m³")
	f.Float64Var(&in.PermanentKNM, "permanent", 0, "permanent line load, kN/m")
	f.Float64Var(&in.VariableKNM, "variable", 0, "variable line load, kN/m")
	return cmd
}
