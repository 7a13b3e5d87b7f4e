// cli/cli.go
// Package cli provides the interactive terminal chat host for promptlab. It
// renders controller messages and streamed reports, and turns key presses into
// user messages and actions.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/chat"
	"github.com/mwiater/promptlab/internal/completion"
	"github.com/mwiater/promptlab/internal/logging"
)

// focusArea is the part of the screen that receives key presses.
type focusArea int

const (
	focusInput focusArea = iota
	focusActions
)

// entry is one rendered message in the transcript.
type entry struct {
	fromUser  bool
	content   strings.Builder
	streaming bool
	rendered  string
}

// hostMessageMsg delivers a finished controller message.
type hostMessageMsg struct{ msg chat.Message }

// streamOpenMsg starts a streamed message.
type streamOpenMsg struct{}

// streamChunkMsg appends a fragment to the streamed message.
type streamChunkMsg string

// streamEndMsg finalizes the streamed message.
type streamEndMsg struct{}

// turnDoneMsg is sent when the controller has finished handling an event.
type turnDoneMsg struct {
	mode appconfig.Mode
	err  error
}

// tickMsg refreshes the elapsed timer while a turn is running.
type tickMsg time.Time

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx        context.Context
	config     *appconfig.Config
	controller *chat.Controller
	session    *chat.Session
	mode       appconfig.Mode

	entries  []*entry
	actions  []chat.Button
	focus    focusArea
	selected int

	textArea  textarea.Model
	viewport  viewport.Model
	spinner   spinner.Model
	markdown  *glamour.TermRenderer
	isLoading bool
	err       error

	width, height    int
	requestStartTime time.Time
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *appconfig.Config, controller *chat.Controller, session *chat.Session) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()
	ta.Prompt = "Ask Anything: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return &model{
		ctx:        ctx,
		config:     cfg,
		controller: controller,
		session:    session,
		mode:       session.Mode(),
		textArea:   ta,
		viewport:   viewport.New(100, 5),
		spinner:    s,
	}
}

// renderer implements chat.Renderer by forwarding to the running program.
type renderer struct {
	send func(tea.Msg)
}

func (r renderer) Send(_ context.Context, msg chat.Message) error {
	r.send(hostMessageMsg{msg: msg})
	return nil
}

func (r renderer) Stream(_ context.Context) (completion.Sink, error) {
	r.send(streamOpenMsg{})
	return streamSink(r), nil
}

type streamSink renderer

func (s streamSink) StreamToken(token string) error {
	s.send(streamChunkMsg(token))
	return nil
}

func (s streamSink) Send() error {
	s.send(streamEndMsg{})
	return nil
}

// runTurn runs fn on the controller outside the update loop.
func (m *model) runTurn(fn func(context.Context) error) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		err := fn(ctx)
		return turnDoneMsg{mode: session.Mode(), err: err}
	}
}

func (m *model) startTurn(fn func(context.Context) error) tea.Cmd {
	m.isLoading = true
	m.err = nil
	m.requestStartTime = time.Now()
	return tea.Batch(m.spinner.Tick, m.runTurn(fn), tickCmd())
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the session: the controller sends the welcome banner and mode controls.
func (m *model) Init() tea.Cmd {
	return m.startTurn(func(ctx context.Context) error {
		return m.controller.Start(ctx, m.session)
	})
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.focus == focusInput && len(m.actions) > 0 {
				m.focus = focusActions
				m.textArea.Blur()
			} else {
				m.focus = focusInput
				m.textArea.Focus()
			}
			return m, nil
		}
		if m.focus == focusActions {
			return m, m.updateActions(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 2
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.markdown = newMarkdownRenderer(msg.Width - 4)
		for _, e := range m.entries {
			e.rendered = ""
		}
		m.refreshViewport()
		return m, nil

	case hostMessageMsg:
		e := &entry{}
		e.content.WriteString(msg.msg.Content)
		m.entries = append(m.entries, e)
		m.upsertActions(msg.msg.Actions)
		m.refreshViewport()
		return m, nil

	case streamOpenMsg:
		m.entries = append(m.entries, &entry{streaming: true})
		m.refreshViewport()
		return m, nil

	case streamChunkMsg:
		if e := m.streamingEntry(); e != nil {
			e.content.WriteString(string(msg))
			m.refreshViewport()
		}
		return m, nil

	case streamEndMsg:
		if e := m.streamingEntry(); e != nil {
			e.streaming = false
			m.refreshViewport()
		}
		return m, nil

	case turnDoneMsg:
		m.isLoading = false
		m.mode = msg.mode
		m.finishStreams()
		if msg.err != nil {
			m.err = msg.err
			logging.LogError("chat turn", msg.err)
		}
		if m.focus == focusInput {
			m.textArea.Focus()
		}
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if m.focus == focusInput {
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !m.isLoading {
			userInput := strings.TrimSpace(m.textArea.Value())
			if userInput != "" {
				m.textArea.Reset()
				e := &entry{fromUser: true}
				e.content.WriteString(userInput)
				m.entries = append(m.entries, e)
				m.refreshViewport()
				cmds = append(cmds, m.startTurn(func(ctx context.Context) error {
					return m.controller.HandleMessage(ctx, m.session, userInput)
				}))
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateActions handles keys while the action bar has focus.
func (m *model) updateActions(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h", "shift+tab":
		if m.selected > 0 {
			m.selected--
		}
	case "right", "l":
		if m.selected < len(m.actions)-1 {
			m.selected++
		}
	case "enter", " ":
		if m.isLoading || m.selected >= len(m.actions) {
			return nil
		}
		button := m.actions[m.selected]
		return m.startTurn(func(ctx context.Context) error {
			return m.controller.Dispatch(ctx, m.session, button.Name, button.Value)
		})
	}
	return nil
}

// upsertActions keeps one button per action name, replacing older ones in place.
func (m *model) upsertActions(buttons []chat.Button) {
	for _, b := range buttons {
		replaced := false
		for i := range m.actions {
			if m.actions[i].Name == b.Name {
				m.actions[i] = b
				replaced = true
				break
			}
		}
		if !replaced {
			m.actions = append(m.actions, b)
		}
	}
}

// finishStreams finalizes entries left open by an interrupted turn.
func (m *model) finishStreams() {
	changed := false
	for _, e := range m.entries {
		if e.streaming {
			e.streaming = false
			changed = true
		}
	}
	if changed {
		m.refreshViewport()
	}
}

func (m *model) streamingEntry() *entry {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].streaming {
			return m.entries[i]
		}
	}
	return nil
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		logging.LogError("markdown renderer", err)
		return nil
	}
	return r
}

// renderEntry renders finished messages as markdown once and caches the result.
func (m *model) renderEntry(e *entry) string {
	userStyle := lipgloss.NewStyle().Bold(true)
	if e.fromUser {
		return userStyle.Render("You: ") + e.content.String()
	}
	if e.streaming || m.markdown == nil {
		return e.content.String()
	}
	if e.rendered == "" {
		out, err := m.markdown.Render(e.content.String())
		if err != nil {
			out = e.content.String()
		}
		e.rendered = strings.TrimRight(out, "\n")
	}
	return e.rendered
}

func (m *model) refreshViewport() {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderEntry(e))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var builder strings.Builder

	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1).MarginLeft(1)
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("promptlab"),
		headerStyle.Render(fmt.Sprintf("Mode: %s", m.mode)),
		headerStyle.Render(fmt.Sprintf("Model: %s", m.config.Model)),
	)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(" (tab: actions/input, esc to quit)")
	builder.WriteString(status + help + "\n\n")

	builder.WriteString(m.viewport.View())
	builder.WriteString("\n" + m.actionBar())

	switch {
	case m.isLoading:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Assistant is thinking... %ss", timer))
	case m.err != nil:
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		builder.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + m.textArea.View())
	default:
		builder.WriteString("\n" + m.textArea.View())
	}

	return builder.String()
}

func (m *model) actionBar() string {
	if len(m.actions) == 0 {
		return ""
	}
	buttonStyle := lipgloss.NewStyle().Padding(0, 1).MarginRight(1).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("255"))
	activeStyle := buttonStyle.Background(lipgloss.Color("205")).Bold(true)

	parts := make([]string, 0, len(m.actions))
	for i, b := range m.actions {
		style := buttonStyle
		if m.focus == focusActions && i == m.selected {
			style = activeStyle
		}
		parts = append(parts, style.Render(b.Label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.focus == focusActions && m.selected < len(m.actions) {
		desc := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(m.actions[m.selected].Description)
		bar += "\n" + desc
	}
	return bar
}

// StartGUI runs the interactive chat host until the user quits.
func StartGUI(ctx context.Context, cfg *appconfig.Config, controller *chat.Controller, session *chat.Session) error {
	m := initialModel(ctx, cfg, controller, session)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	controller.Renderer = NewRenderer(p.Send)

	_, err := p.Run()
	return err
}

// NewRenderer returns a chat.Renderer that delivers messages through send,
// typically (*tea.Program).Send.
func NewRenderer(send func(tea.Msg)) chat.Renderer {
	return renderer{send: send}
}
