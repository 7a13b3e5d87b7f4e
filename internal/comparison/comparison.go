// Package comparison runs a generic and a specialized prompt against the same
// input and assembles the side-by-side report.
package comparison

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/aspects"
	"github.com/mwiater/promptlab/internal/completion"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/providers"
	"github.com/mwiater/promptlab/internal/testcases"
)

// Exporter persists finished reports.
type Exporter interface {
	Export(report *Report) error
}

// Orchestrator drives comparisons against one provider and model.
type Orchestrator struct {
	Provider     providers.ChatProvider
	Model        string
	SystemPrompt string
	// DefaultSettings is sent with the generic prompt. SpecializedSettings is
	// blended with the test case aspects before it is sent.
	DefaultSettings     appconfig.Settings
	SpecializedSettings appconfig.Settings
	Exporter            Exporter

	now func() time.Time
}

// New returns an Orchestrator using the standard chat system prompt and the
// test presets.
func New(provider providers.ChatProvider, model string) *Orchestrator {
	return &Orchestrator{
		Provider:            provider,
		Model:               model,
		SystemPrompt:        appconfig.ChatSystemTemplate,
		DefaultSettings:     appconfig.TestDefaultPreset(),
		SpecializedSettings: appconfig.TestSpecializedPreset(),
		now:                 time.Now,
	}
}

// Run issues both completions concurrently and returns the assembled report.
// Nothing is emitted while the completions are in flight; if either fails the
// error is returned as-is and no report is produced.
func (o *Orchestrator) Run(ctx context.Context, input string, tc testcases.TestCase) (*Report, error) {
	report := &Report{
		TestCase: tc,
		Input:    input,
		Model:    o.Model,
		DefaultPrompt: Prompt{
			System: o.SystemPrompt,
			User:   input,
		},
		SpecializedPrompt: Prompt{
			System: tc.Templates.System,
			User:   tc.RenderUser(input),
		},
		DefaultSettings:     o.DefaultSettings.Clone(),
		SpecializedSettings: aspects.Blend(o.SpecializedSettings, tc.Aspects),
	}

	defaultMessages := []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: report.DefaultPrompt.System},
		{Role: providers.RoleUser, Content: report.DefaultPrompt.User},
	}
	specializedMessages := []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: report.SpecializedPrompt.System},
		{Role: providers.RoleUser, Content: report.SpecializedPrompt.User},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := completion.Complete(gctx, o.Provider, o.Model, defaultMessages, report.DefaultSettings)
		if err != nil {
			logging.LogError("default completion for "+tc.Key, err)
			return err
		}
		report.DefaultResponse = out
		return nil
	})
	g.Go(func() error {
		out, err := completion.Complete(gctx, o.Provider, o.Model, specializedMessages, report.SpecializedSettings)
		if err != nil {
			logging.LogError("specialized completion for "+tc.Key, err)
			return err
		}
		report.SpecializedResponse = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Params = CompareParams(report.DefaultSettings, report.SpecializedSettings)
	report.CreatedAt = o.clock()
	logging.LogEvent("comparison %s finished: default=%d bytes specialized=%d bytes",
		tc.Key, len(report.DefaultResponse), len(report.SpecializedResponse))
	return report, nil
}

// Compare runs the comparison and streams the report to sink. The report is
// exported afterwards when an Exporter is configured.
func (o *Orchestrator) Compare(ctx context.Context, input string, tc testcases.TestCase, sink completion.Sink) (*Report, error) {
	report, err := o.Run(ctx, input, tc)
	if err != nil {
		return nil, err
	}
	if err := report.Stream(sink); err != nil {
		return report, err
	}
	if o.Exporter != nil {
		if err := o.Exporter.Export(report); err != nil {
			logging.LogError("export comparison report", err)
			return report, err
		}
	}
	return report, nil
}

func (o *Orchestrator) clock() time.Time {
	if o.now == nil {
		return time.Now()
	}
	return o.now()
}
