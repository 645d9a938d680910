package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"CableCheck/internal/auth"
	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/report"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		in   analysis.Input
		meta report.Meta
		out  string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF calculation sheet for one cable",
		Args:  cobra.NoArgs,
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
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			number, err := report.Render(f, meta, in, res, report.Options{})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s\n", number, out)
			return nil
		},
	}
	analysisFlags(cmd, &in, true)
	f := cmd.Flags()
	f.Float64VarP(&in.PrestressKN, "prestress", "p", 0, "prestress V, kN [required]")
	f.StringVarP(&out, "out", "o", "cable-report.pdf", "output PDF path")
	f.StringVar(&meta.Project, "project", "", "project name")
	f.StringVar(&meta.Author, "author", "", "author")
	f.StringVar(&meta.Title, "title", "", "report title")
	f.StringVar(&meta.Notes, "notes", "", "free-text notes")
	cmd.MarkFlagRequired("prestress")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for the users table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
