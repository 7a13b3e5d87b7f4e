// Package chat is the session controller. It owns the chat/test mode of each
// session and routes user messages and actions to plain chat completions or
// to prompt comparisons.
package chat

import (
	"context"
	"fmt"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/comparison"
	"github.com/mwiater/promptlab/internal/completion"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/providers"
	"github.com/mwiater/promptlab/internal/testcases"
	"github.com/mwiater/promptlab/internal/util"
)

// logPreviewRunes bounds how much user input is copied into log lines.
const logPreviewRunes = 80

// Button is a clickable action attached to a message.
type Button struct {
	Name        string
	Value       string
	Label       string
	Description string
}

// Message is a complete message for the host to display.
type Message struct {
	Content string
	Actions []Button
}

// Renderer is the chat host. Send displays a finished message; Stream opens
// an empty message that is filled token by token and finalized with Send.
type Renderer interface {
	Send(ctx context.Context, msg Message) error
	Stream(ctx context.Context) (completion.Sink, error)
}

// Controller routes session events. It holds no per-session state.
type Controller struct {
	Provider     providers.ChatProvider
	Model        string
	SystemPrompt string
	ChatSettings appconfig.Settings
	Catalog      *testcases.Catalog
	Comparisons  *comparison.Orchestrator
	AutoTest     bool
	Renderer     Renderer
}

// NewController wires a controller from the configuration snapshot.
func NewController(cfg *appconfig.Config, provider providers.ChatProvider, catalog *testcases.Catalog, renderer Renderer) *Controller {
	orch := comparison.New(provider, cfg.Model)
	if exp := comparison.NewFileExporter(cfg.ExportPath, cfg.ExportMarkdownPath); exp != nil {
		orch.Exporter = exp
	}
	return &Controller{
		Provider:     provider,
		Model:        cfg.Model,
		SystemPrompt: appconfig.ChatSystemTemplate,
		ChatSettings: cfg.ChatSettings(),
		Catalog:      catalog,
		Comparisons:  orch,
		AutoTest:     cfg.AutoTest,
		Renderer:     renderer,
	}
}

// Start shows the welcome banner and the mode controls. In test mode it also
// presents the experiments and, with auto-test on, runs each of them with its
// example input.
func (c *Controller) Start(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.LogEvent("session %s started in %s mode", s.ID, s.mode)
	if err := c.send(ctx, welcomeMessage(s.mode, c.Model)); err != nil {
		return err
	}
	if err := c.send(ctx, modeMessage(s.mode)); err != nil {
		return err
	}
	if s.mode != appconfig.ModeTest {
		return c.send(ctx, Message{Content: textReadyToHelp})
	}
	if err := c.showOptions(ctx); err != nil {
		return err
	}
	if !c.AutoTest {
		return nil
	}
	for _, tc := range c.Catalog.Cases() {
		if err := c.runTest(ctx, s, tc.Key); err != nil {
			return err
		}
	}
	return nil
}

// HandleMessage routes a user message according to the session mode.
func (c *Controller) HandleMessage(ctx context.Context, s *Session, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == appconfig.ModeTest {
		logging.LogEvent("session %s pending input %q", s.ID, util.TruncateRunes(text, logPreviewRunes))
		s.pendingInput = text
		return c.showOptions(ctx)
	}
	return c.chat(ctx, text)
}

// HandleAction applies a decoded action to the session.
func (c *Controller) HandleAction(ctx context.Context, s *Session, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a := action.(type) {
	case SwitchMode:
		return c.switchMode(ctx, s)
	case SelectTest:
		return c.runTest(ctx, s, a.Key)
	default:
		return c.fail(ctx, fmt.Errorf("%w: %T", ErrUnknownAction, action))
	}
}

// Dispatch decodes a raw action from the host and applies it.
func (c *Controller) Dispatch(ctx context.Context, s *Session, name, value string) error {
	action, err := DecodeAction(name, value)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.HandleAction(ctx, s, action)
}

func (c *Controller) chat(ctx context.Context, text string) error {
	messages := []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: c.SystemPrompt},
		{Role: providers.RoleUser, Content: text},
	}
	sink := &lazySink{ctx: ctx, renderer: c.Renderer}
	if err := completion.CompleteStreaming(ctx, c.Provider, c.Model, messages, c.ChatSettings, sink); err != nil {
		sink.closeOpened()
		return c.fail(ctx, err)
	}
	return nil
}

func (c *Controller) switchMode(ctx context.Context, s *Session) error {
	s.mode = s.mode.Toggle()
	logging.LogEvent("session %s switched to %s mode", s.ID, s.mode)

	if s.mode == appconfig.ModeTest {
		if err := c.send(ctx, Message{Content: textEnteringLab}); err != nil {
			return err
		}
		if err := c.send(ctx, modeMessage(s.mode)); err != nil {
			return err
		}
		return c.showOptions(ctx)
	}
	if err := c.send(ctx, Message{Content: textSwitchToChat}); err != nil {
		return err
	}
	if err := c.send(ctx, modeMessage(s.mode)); err != nil {
		return err
	}
	return c.send(ctx, Message{Content: textReadyForChat})
}

func (c *Controller) runTest(ctx context.Context, s *Session, key string) error {
	tc, err := c.Catalog.Lookup(key)
	if err != nil {
		return c.fail(ctx, err)
	}
	input := s.takeInput(tc.Example)
	logging.LogEvent("session %s running %s on %q", s.ID, tc.Key, util.TruncateRunes(input, logPreviewRunes))

	sink := &lazySink{ctx: ctx, renderer: c.Renderer}
	if _, err := c.Comparisons.Compare(ctx, input, tc, sink); err != nil {
		sink.closeOpened()
		return c.fail(ctx, err)
	}
	return c.showOptions(ctx)
}

func (c *Controller) showOptions(ctx context.Context) error {
	return c.send(ctx, optionsMessage(c.Catalog.Cases()))
}

func (c *Controller) send(ctx context.Context, msg Message) error {
	return c.Renderer.Send(ctx, msg)
}

// fail reports err to the user and returns it.
func (c *Controller) fail(ctx context.Context, err error) error {
	logging.LogError("chat", err)
	if sendErr := c.send(ctx, errorMessage(err)); sendErr != nil {
		logging.LogError("send error message", sendErr)
	}
	return err
}

// lazySink opens the host stream on first use so a turn that fails before
// producing output leaves no empty message behind.
type lazySink struct {
	ctx      context.Context
	renderer Renderer
	sink     completion.Sink
	sent     bool
}

func (l *lazySink) open() error {
	if l.sink != nil {
		return nil
	}
	sink, err := l.renderer.Stream(l.ctx)
	if err != nil {
		return err
	}
	l.sink = sink
	return nil
}

func (l *lazySink) StreamToken(token string) error {
	if err := l.open(); err != nil {
		return err
	}
	return l.sink.StreamToken(token)
}

func (l *lazySink) Send() error {
	if err := l.open(); err != nil {
		return err
	}
	l.sent = true
	return l.sink.Send()
}

// closeOpened finalizes a stream that was opened but cut short, so the host
// keeps the partial text as a finished message.
func (l *lazySink) closeOpened() {
	if l.sink == nil || l.sent {
		return
	}
	l.sent = true
	if err := l.sink.Send(); err != nil {
		logging.LogError("close interrupted stream", err)
	}
}
