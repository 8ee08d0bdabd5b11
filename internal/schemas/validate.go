// Package schemas validates parsed LLM reports against the expected JSON
// shapes. Deviations are reported for logging only; a malformed report
// never fails a request.
package schemas

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// CheckAnalysisReport returns a list of deviations between doc and the
// profile-analysis report schema. Empty means conformant.
func CheckAnalysisReport(doc map[string]any) []string {
	return check("analysis_report.schema.json", doc)
}

// CheckMatchReport returns deviations against the job-comparison schema.
func CheckMatchReport(doc map[string]any) []string {
	return check("match_report.schema.json", doc)
}

func check(schemaFile string, doc map[string]any) []string {
	data, err := schemaFiles.ReadFile(schemaFile)
	if err != nil {
		return []string{fmt.Sprintf("schema %s unavailable: %v", schemaFile, err)}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(data),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return []string{fmt.Sprintf("schema validation failed: %v", err)}
	}

	var issues []string
	for _, e := range result.Errors() {
		issues = append(issues, e.String())
	}
	return issues
}
