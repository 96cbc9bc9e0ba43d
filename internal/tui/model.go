package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docagent/internal/agent"
)

// AgentPort is the TUI-facing subset of the agent.
type AgentPort interface {
	Turn(ctx context.Context, userText string) agent.Turn
}

// Model is the Bubble Tea model for the chat console.
type Model struct {
	agent      AgentPort
	input      textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	header     string
	transcript []string
	status     string
	busy       bool
	ready      bool
}

// turnMsg carries a finished agent turn back into the update loop.
type turnMsg struct {
	turn agent.Turn
}

// New creates the console model. header is shown above the transcript
// (corpus size and overview).
func New(a AgentPort, header string) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Ask a question; type 'exit' to quit"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	vp := viewport.New(0, 0)
	return Model{
		agent:    a,
		input:    ti,
		viewport: vp,
		spin:     sp,
		header:   header,
		status:   "Ready.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and drives one agent turn at a time.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + spacer + input frame + status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.busy {
			// one turn at a time; only quits are honored while waiting
			return m, nil
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			if isQuitWord(q) {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.busy = true
			m.status = "Thinking..."
			m.transcript = append(m.transcript, userStyle.Render("You: ")+q)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spin.Tick, m.runTurn(q))
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}

	case turnMsg:
		m.busy = false
		m.status = "Ready."
		m.transcript = append(m.transcript, renderTurn(msg.turn)...)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the header, transcript, input box, and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("Mini Agent Demo")
	header := headerStyle.Render(m.header)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := m.status
	if m.busy {
		status = m.spin.View() + m.status
	}
	return title + "\n" + header + "\n" + transcript + "\n" + input + "\n" + statusStyle.Render(status)
}

func (m Model) runTurn(q string) tea.Cmd {
	return func() tea.Msg {
		return turnMsg{turn: m.agent.Turn(context.Background(), q)}
	}
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Ask a question. Type 'exit' to quit."
	}
	return strings.Join(m.transcript, "\n")
}

// renderTurn shows the turn trace the way the console contract demands:
// router decision, tool invocation, tool result, then the answer.
func renderTurn(t agent.Turn) []string {
	var lines []string
	if t.Decision != "" {
		lines = append(lines, traceStyle.Render("[router decision] "+t.Decision))
	}
	if t.ToolQuery != "" {
		lines = append(lines, traceStyle.Render("[tool call] search_docs(query="+t.ToolQuery+")"))
		lines = append(lines, traceStyle.Render("[tool result]"))
		for _, l := range strings.Split(t.Evidence, "\n") {
			lines = append(lines, traceStyle.Render("  "+l))
		}
	}
	lines = append(lines, agentStyle.Render("Agent: ")+t.Answer, "")
	return lines
}

func isQuitWord(s string) bool {
	return strings.EqualFold(s, "exit") || strings.EqualFold(s, "quit")
}

var (
	titleStyle         = lipgloss.NewStyle().Bold(true)
	headerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	traceStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	agentStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
