package comparison

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/completion"
	"github.com/mwiater/promptlab/internal/testcases"
	"github.com/mwiater/promptlab/internal/util"
)

// Prompt is the system/user pair sent for one side of a comparison.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Report is the outcome of one comparison run.
type Report struct {
	TestCase            testcases.TestCase   `json:"testCase"`
	Input               string               `json:"input"`
	Model               string               `json:"model"`
	DefaultPrompt       Prompt               `json:"defaultPrompt"`
	SpecializedPrompt   Prompt               `json:"specializedPrompt"`
	DefaultSettings     appconfig.Settings   `json:"defaultSettings"`
	SpecializedSettings appconfig.Settings   `json:"specializedSettings"`
	DefaultResponse     string               `json:"defaultResponse"`
	SpecializedResponse string               `json:"specializedResponse"`
	Params              []ParamComparisonRow `json:"params"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// Chunks returns the report as the ordered fragments it is streamed in:
// header table, default response, specialized response, aspect list, prompt
// comparison and configuration comparison.
func (r *Report) Chunks() []string {
	tc := r.TestCase
	chunks := []string{
		fmt.Sprintf("# Test: %s\n\n| Field | Value |\n|:------|:-------|\n| Description | %s |\n| Input | %s |\n| Template Type | %s |\n| Evaluating | %s |\n",
			tc.Label, tc.Description, r.Input, tc.TemplateType, strings.Join(tc.Aspects, ", ")),
		"\n## Default Response\n",
		r.DefaultResponse,
		"\n\n## Specialized Response\n",
		r.SpecializedResponse,
		"\n\n## Analysis\n",
		"This test evaluates:\n",
	}
	for _, aspect := range tc.Aspects {
		chunks = append(chunks, fmt.Sprintf("- **%s**\n", aspect))
	}

	chunks = append(chunks,
		"\n### Prompt Comparison\n\n",
		"| Mode | System Role | User Template |\n",
		"|:-----|:------------|:--------------|",
		fmt.Sprintf("\n| Default | %s | %s |",
			util.WrapTableCell(r.DefaultPrompt.System), util.WrapTableCell(r.DefaultPrompt.User)),
		fmt.Sprintf("\n| Specialized | %s | %s |\n\n",
			util.WrapTableCell(r.SpecializedPrompt.System), util.WrapTableCell(r.SpecializedPrompt.User)),
		"### Configuration Comparison\n\n",
		"| Parameter | Default | Specialized | Change | Impact |\n",
		"|:----------|:---------|:------------|:-------|:--------|\n",
	)
	for _, row := range r.Params {
		chunks = append(chunks, fmt.Sprintf("| %s | %.2f | %.2f | %+.2f | %s |\n",
			row.Name, row.Default, row.Specialized, row.Change, row.Impact))
	}
	return chunks
}

// Markdown renders the full report.
func (r *Report) Markdown() string {
	return strings.Join(r.Chunks(), "")
}

// Stream writes the report to sink fragment by fragment and then sends it.
func (r *Report) Stream(sink completion.Sink) error {
	for _, chunk := range r.Chunks() {
		if chunk == "" {
			continue
		}
		if err := sink.StreamToken(chunk); err != nil {
			return err
		}
	}
	return sink.Send()
}
