package output

import (
	"encoding/json"
	"io"
	"os"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
)

// SARIFFormatter formats a translation run's diagnostics as SARIF 2.1.0.
type SARIFFormatter struct {
	writer io.Writer
}

func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{writer: os.Stdout}
}

func NewSARIFFormatterWithWriter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// Format writes one SARIF run covering every diagnostic across every
// translated file, one rule per diagnostic category/origin pair.
func (f *SARIFFormatter) Format(diagnostics map[string][]cpg.Diagnostic) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("pycpg", "https://github.com/shivasurya/code-pathfinder")

	seen := make(map[string]bool)
	for _, diags := range diagnostics {
		for _, d := range diags {
			ruleID := d.Category.String() + ":" + d.Origin
			if !seen[ruleID] {
				seen[ruleID] = true
				run.AddRule(ruleID).
					WithDescription(d.Origin).
					WithName(d.Category.String()).
					WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel(severityToLevel(d.Severity)))
			}
			f.addResult(run, ruleID, d)
		}
	}

	report.AddRun(run)
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *SARIFFormatter) addResult(run *sarif.Run, ruleID string, d cpg.Diagnostic) {
	result := run.CreateResultForRule(ruleID).WithMessage(sarif.NewTextMessage(d.Message))
	if !d.Location.Present {
		return
	}
	region := sarif.NewRegion().
		WithStartLine(d.Location.StartLine).
		WithStartColumn(d.Location.StartCol).
		WithEndLine(d.Location.EndLine).
		WithEndColumn(d.Location.EndCol)
	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Location.File)).
			WithRegion(region),
	)
	result.AddLocation(location)
}

func severityToLevel(s cpg.Severity) string {
	switch s {
	case cpg.SeverityError:
		return "error"
	case cpg.SeverityWarn:
		return "warning"
	default:
		return "note"
	}
}
