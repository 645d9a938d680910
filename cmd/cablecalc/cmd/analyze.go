package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"CableCheck/internal/calc/analysis"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var in analysis.Input
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Solve the support force of one cable and run both checks",
		Long: `Solve the horizontal support force of a prestressed cable, then check the
utilization against the allowable load and the midspan sag against the limit.

Failing a check is reported, not an error. A solver that does not converge is.

Examples:
  cablecalc analyze -d 35 -l 10 -q 2 --prestress 100 --ratio 0.02
  cablecalc analyze -d 45 -l 24 -q 1.2 --prestress 250 --dt -30 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.Env.Calculate(in)
			if err != nil {
				return err
			}
			if opts.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printAnalysis(cmd.OutOrStdout(), in, res)
			return nil
		},
	}
	analysisFlags(cmd, &in, true)
	cmd.Flags().Float64VarP(&in.PrestressKN, "prestress", "p", 0, "prestress V, kN [required]")
	cmd.MarkFlagRequired("prestress")
	return cmd
}

func printAnalysis(out io.Writer, in analysis.Input, res analysis.Result) {
	w := table(out)
	fmt.Fprintf(w, "Cable\t%s mm, %s\n", res.Diameter, res.Material)
	fmt.Fprintf(w, "Span\t%.2f m\n", res.SpanM)
	fmt.Fprintf(w, "Load q\t%.3f kN/m\n", in.LoadKNM)
	fmt.Fprintf(w, "Prestress V\t%.2f kN\n", in.PrestressKN)
	fmt.Fprintf(w, "Temperature change\t%.1f °C\n", in.TemperatureChangeC)
	fmt.Fprintf(w, "Area\t%.1f mm²\n", res.AreaMM2)
	fmt.Fprintf(w, "Allowable load\t%.1f kN\n", res.AllowableLoadKN)
	fmt.Fprintf(w, "Support force H\t%.2f kN (%d iterations)\n", res.SupportForceKN, res.Iterations)
	fmt.Fprintf(w, "Utilization\t%.2f\t%s\n", res.Utilization, verdict(res.OKTension))
	fmt.Fprintf(w, "Deflection\t%.1f mm of %.1f mm\t%s\n", res.DeflectionMM, res.DeflectionLimitMM, verdict(res.OKDeflection))
	w.Flush()
}
