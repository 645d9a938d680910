package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/premium/autodesign"
	"CableCheck/internal/calc/premium/recommend"
)

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var in analysis.Input
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick the smallest catalog cable passing both checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := autodesign.Select(cmd.Context(), a.Env, autodesign.Input{
				SpanM:                in.SpanM,
				Material:             in.Material,
				LoadKNM:              in.LoadKNM,
				PrestressKN:          in.PrestressKN,
				TemperatureChangeC:   in.TemperatureChangeC,
				DeflectionLimitRatio: in.DeflectionLimitRatio,
				SafetyFactor:         in.SafetyFactor,
				ImportanceFactor:     in.ImportanceFactor,
			})
			if err != nil && !errors.Is(err, autodesign.ErrNoAdequateCable) {
				return err
			}
			if opts.jsonOut() {
				if werr := writeJSON(cmd.OutOrStdout(), res); werr != nil {
					return werr
				}
				return err
			}

			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "DIAMETER\tH kN\tUTILIZATION\tSAG mm\tTENSION\tSAG\n")
			for _, c := range res.Candidates {
				if c.Error != "" {
					fmt.Fprintf(w, "%s\t-\t-\t-\t%s\t\n", c.Diameter, c.Error)
					continue
				}
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.1f\t%s\t%s\n", c.Diameter, c.SupportForceKN, c.Utilization, c.DeflectionMM, verdict(c.OKTension), verdict(c.OKDeflection))
			}
			w.Flush()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nselected: %s mm\n", res.Selected.Diameter)
			return nil
		},
	}
	analysisFlags(cmd, &in, false)
	cmd.Flags().Float64VarP(&in.PrestressKN, "prestress", "p", 0, "prestress V, kN [required]")
	cmd.MarkFlagRequired("prestress")
	return cmd
}

func newPrestressCmd(opts *rootOptions) *cobra.Command {
	var in analysis.Input
	cmd := &cobra.Command{
		Use:   "prestress",
		Short: "Recommend the minimum prestress that meets the sag limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := recommend.Prestress(a.Env, in)
			if err != nil {
				return err
			}
			if opts.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Cable\t%s mm\n", res.Diameter)
			fmt.Fprintf(w, "Required support force\t%.2f kN\n", res.RequiredForceKN)
			fmt.Fprintf(w, "Minimum prestress\t%.2f kN\n", res.MinPrestressKN)
			fmt.Fprintf(w, "Utilization\t%.2f\t%s\n", res.Utilization, verdict(res.Feasible))
			fmt.Fprintf(w, "\n%s\n", res.Notes)
			return w.Flush()
		},
	}
	analysisFlags(cmd, &in, true)
	return cmd
}
