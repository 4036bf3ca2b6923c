package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
)

func TestSARIFFormatterEmitsOneRunWithLocations(t *testing.T) {
	diagnostics := map[string][]cpg.Diagnostic{
		"a.py": {
			cpg.NewDiagnostic(cpg.SeverityWarn, cpg.CategoryUnsupportedConstruct, "translateStmt",
				cpg.Location{Present: true, File: "a.py", StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 5}, "with is not modeled"),
			cpg.NewDiagnostic(cpg.SeverityError, cpg.CategoryShapeMismatch, "translateExpr",
				cpg.Location{}, "unexpected node kind"),
		},
	}

	var buf bytes.Buffer
	if err := NewSARIFFormatterWithWriter(&buf).Format(diagnostics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["version"] != "2.1.0" {
		t.Errorf("expected SARIF version 2.1.0, got %v", decoded["version"])
	}
	if !strings.Contains(buf.String(), "with is not modeled") {
		t.Error("expected diagnostic message in output")
	}
	if !strings.Contains(buf.String(), "a.py") {
		t.Error("expected file path in output")
	}
}

func TestSARIFFormatterSkipsLocationWhenAbsent(t *testing.T) {
	diagnostics := map[string][]cpg.Diagnostic{
		"b.py": {
			cpg.NewDiagnostic(cpg.SeverityError, cpg.CategoryShapeMismatch, "translateStmt", cpg.Location{}, "no location"),
		},
	}
	var buf bytes.Buffer
	if err := NewSARIFFormatterWithWriter(&buf).Format(diagnostics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "no location") {
		t.Error("expected diagnostic message even without a location")
	}
}
