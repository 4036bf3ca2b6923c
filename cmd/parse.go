package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shivasurya/code-pathfinder/pycpg/analytics"
	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/output"
	"github.com/shivasurya/code-pathfinder/pycpg/pyfrontend"
	"github.com/shivasurya/code-pathfinder/pycpg/scope"
)

var (
	parseOutputFormat string
	parseWorkers      int
	parseVerbose      bool
	parseDebug        bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Translate a Python file or directory into a code property graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseOutputFormat, "output", "text", "Output format: text, json, sarif")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 4, "Worker count for directory translation")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Show progress and statistics")
	parseCmd.Flags().BoolVar(&parseDebug, "debug", false, "Show debug timing")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := output.NewDefaultOptions()
	opts.Format = output.OutputFormat(parseOutputFormat)
	switch {
	case parseDebug:
		opts.Verbosity = output.VerbosityDebug
	case parseVerbose:
		opts.Verbosity = output.VerbosityVerbose
	}
	logger := output.NewLogger(opts.Verbosity)

	info, err := os.Stat(path)
	if err != nil {
		analytics.ReportEvent(analytics.ParseCommandErr)
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	stopTiming := logger.StartTiming("parse")

	var units map[string]*cpg.TranslationUnit
	var diagnostics map[string][]cpg.Diagnostic

	if info.IsDir() {
		logger.Progress("Translating directory %s with %d workers...", path, parseWorkers)
		var errs []error
		units, diagnostics, errs = pyfrontend.ParseDirectory(path, parseWorkers)
		for _, e := range errs {
			logger.Error("%v", e)
		}
	} else {
		logger.Progress("Translating %s...", path)
		source, readErr := os.ReadFile(path)
		if readErr != nil {
			analytics.ReportEvent(analytics.ParseCommandErr)
			return fmt.Errorf("reading %s: %w", path, readErr)
		}
		tu, diags, parseErr := pyfrontend.ParseFile(path, source, scope.New())
		if parseErr != nil {
			analytics.ReportEvent(analytics.ParseCommandErr)
			return parseErr
		}
		units = map[string]*cpg.TranslationUnit{path: tu}
		diagnostics = map[string][]cpg.Diagnostic{path: diags}
	}

	totalDiags := 0
	for _, diags := range diagnostics {
		totalDiags += len(diags)
	}
	logger.Statistic("Translated %d file(s), %d diagnostic(s)", len(units), totalDiags)

	analytics.ReportEvent(analytics.ParseCommand)

	switch opts.Format {
	case output.FormatSARIF:
		return output.NewSARIFFormatter().Format(diagnostics)
	case output.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(diagnosticSummary(diagnostics))
	default:
		renderDiagnosticTable(diagnostics)
	}

	stopTiming()
	logger.PrintTimingSummary()
	return nil
}

type diagnosticRecord struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Origin   string `json:"origin"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func diagnosticSummary(diagnostics map[string][]cpg.Diagnostic) []diagnosticRecord {
	var records []diagnosticRecord
	for file, diags := range diagnostics {
		for _, d := range diags {
			rec := diagnosticRecord{
				File:     file,
				Severity: d.Severity.String(),
				Category: d.Category.String(),
				Origin:   d.Origin,
				Message:  d.Message,
			}
			if d.Location.Present {
				rec.Line = d.Location.StartLine
				rec.Column = d.Location.StartCol
			}
			records = append(records, rec)
		}
	}
	return records
}

func renderDiagnosticTable(diagnostics map[string][]cpg.Diagnostic) {
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Line", "Severity", "Category", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "File", WidthMin: 6, WidthMax: 40},
		{Name: "Message", WidthMin: 6, WidthMax: 60},
	})
	for file, diags := range diagnostics {
		for _, d := range diags {
			line := 0
			if d.Location.Present {
				line = d.Location.StartLine
			}
			t.AppendRow([]interface{}{file, line, colorSeverity(d.Severity, yellow, red), d.Category.String(), d.Message})
		}
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// colorSeverity applies the CLI's warn=yellow, error=red convention to a
// diagnostic's severity label.
func colorSeverity(s cpg.Severity, yellow, red func(a ...interface{}) string) string {
	switch s {
	case cpg.SeverityError:
		return red(s.String())
	case cpg.SeverityWarn:
		return yellow(s.String())
	default:
		return s.String()
	}
}
