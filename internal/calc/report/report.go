package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"CableCheck/internal/calc/analysis"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Options tweak the PDF output; tests disable compression to read the text back.
type Options struct {
	Now          func() time.Time
	Uncompressed bool
}

// Render writes an A4 calculation sheet for one cable analysis and returns
// the report number printed on it.
func Render(w io.Writer, meta Meta, in analysis.Input, res analysis.Result, opts Options) (string, error) {
	if meta.Title == "" {
		meta.Title = "Cable Calculation Sheet"
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	number := uuid.NewString()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!opts.Uncompressed)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	line := func(format string, args ...any) {
		pdf.Cell(0, 6, tr(fmt.Sprintf(format, args...)))
		pdf.Ln(6)
	}
	line("Report No: %s", number)
	line("Project: %s", meta.Project)
	line("Author: %s", meta.Author)
	line("Date: %s", now().Format("2006-01-02"))
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	section("Input")
	line("Cable diameter: %s mm (%s)", res.Diameter, res.Material)
	line("Span: %.2f m", res.SpanM)
	line("Distributed load q: %.3f kN/m", in.LoadKNM)
	line("Prestress V: %.2f kN", in.PrestressKN)
	line("Temperature change: %.1f C", in.TemperatureChangeC)
	line("Deflection limit: %g of span", in.DeflectionLimitRatio)
	pdf.Ln(4)

	section("Section")
	line("Area: %.1f mm2", res.AreaMM2)
	line("Breaking load: %.1f kN", res.BreakingLoadKN)
	line("Allowable load: %.1f kN", res.AllowableLoadKN)
	pdf.Ln(4)

	section("Results")
	line("Support force H: %.2f kN (%d iterations)", res.SupportForceKN, res.Iterations)
	line("Utilization H/allowable: %.2f  %s", res.Utilization, verdict(res.OKTension))
	line("Deflection: %.1f mm, limit %.1f mm  %s", res.DeflectionMM, res.DeflectionLimitMM, verdict(res.OKDeflection))

	if meta.Notes != "" {
		pdf.Ln(4)
		section("Notes")
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return number, nil
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}
