// Package cmd provides the CLI commands for cablecalc.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CableCheck/internal/app"
	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/config"
	"CableCheck/internal/logging"
)

type rootOptions struct {
	envFile   string
	catalog   string
	materials string
	format    string
	verbose   bool
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "cablecalc",
		Short: "Check tensioned cables against strength and sag limits",
		Long: `cablecalc solves the small-sag equilibrium of a prestressed cable under a
uniformly distributed load and temperature change, then checks the support
force against the derated breaking load and the midspan sag against a
fraction of the span.

Examples:
  cablecalc analyze --diameter 35 --span 10 --load 2 --prestress 100 --ratio 0.02
  cablecalc select --span 10 --load 2 --prestress 100 --ratio 0.015
  cablecalc catalog --catalog ./cables.xlsx --format json`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", "", "dotenv file to load before the environment (default .env)")
	pf.StringVar(&opts.catalog, "catalog", "", "catalog source: builtin, postgres, or a .csv/.xlsx path (overrides CATALOG_SOURCE)")
	pf.StringVar(&opts.materials, "materials", "", "HCL material library (overrides MATERIALS_FILE)")
	pf.StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newCatalogCmd(opts),
		newSelectCmd(opts),
		newPrestressCmd(opts),
		newLoadsCmd(opts),
		newReportCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) app(cmd *cobra.Command) (*app.App, error) {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if o.catalog != "" {
		cfg.CatalogSource = o.catalog
	}
	if o.materials != "" {
		cfg.MaterialsFile = o.materials
	}
	cfg.Logging.Level = cliLogLevel(cfg.Logging.Level, o.verbose)
	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	return app.New(cmd.Context(), cfg, logging.Logger.With(zap.String("source", "cli")), "cli", false)
}

// cliLogLevel quiets the CLI to warn unless LOG_LEVEL says otherwise.
func cliLogLevel(level string, verbose bool) string {
	switch {
	case verbose:
		return "debug"
	case os.Getenv("LOG_LEVEL") != "":
		return level
	}
	return "warn"
}

func (o *rootOptions) jsonOut() bool { return o.format == "json" }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}

// analysisFlags binds the flags shared by analyze, prestress and report.
func analysisFlags(cmd *cobra.Command, in *analysis.Input, diameter bool) {
	f := cmd.Flags()
	if diameter {
		f.StringVarP(&in.Diameter, "diameter", "d", "", "catalog diameter key, mm [required]")
		cmd.MarkFlagRequired("diameter")
	}
	f.Float64VarP(&in.SpanM, "span", "l", 0, "span, m [required]")
	f.Float64VarP(&in.LoadKNM, "load", "q", 0, "distributed load, kN/m [required]")
	f.Float64Var(&in.TemperatureChangeC, "dt", 0, "temperature change, °C")
	f.Float64Var(&in.DeflectionLimitRatio, "ratio", 0.005, "allowed midspan sag as a fraction of span")
	f.StringVarP(&in.Material, "material", "m", "", "material name (default from the library)")
	f.Float64Var(&in.SafetyFactor, "safety-factor", 0, "override the safety factor")
	f.Float64Var(&in.ImportanceFactor, "importance-factor", 0, "override the importance factor")
	cmd.MarkFlagRequired("span")
	cmd.MarkFlagRequired("load")
}
