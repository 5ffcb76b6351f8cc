package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tuiState int

const (
	tuiStateIdle tuiState = iota
	tuiStateRecording
	tuiStateTranscribing
)

type tickMsg time.Time

type tuiModel struct {
	state         tuiState
	frame         int
	recordStart   time.Time
	width, height int

	statusLine string // hotkey/mode/backend summary
	lastText   string
	lastInfer  float64
	dispatched bool
	count      int
	logLines   []string
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	idleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	recordStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	transcribeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	textStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func NewTUIProgram() *tea.Program {
	return tea.NewProgram(tuiModel{}, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tickMsg:
		m.frame++
		return m, tuiTick()

	case StatusLineMsg:
		m.statusLine = msg.Text

	case RecordingStartMsg:
		m.state = tuiStateRecording
		m.recordStart = time.Now()

	case RecordingStopMsg:
		m.state = tuiStateIdle

	case DiscardedMsg:
		m.state = tuiStateIdle
		m.pushLog(fmt.Sprintf("discarded %.0fms recording (too short)", msg.Duration*1000))

	case TranscribingMsg:
		m.state = tuiStateTranscribing

	case TranscriptionMsg:
		m.state = tuiStateIdle
		if msg.Text == "" {
			m.pushLog("no speech detected")
			break
		}
		m.lastText = msg.Text
		m.lastInfer = msg.InferMs
		m.dispatched = msg.Dispatched
		m.count++

	case PipelineErrorMsg:
		m.state = tuiStateIdle
		m.pushLog(errStyle.Render("error: " + msg.Text))
	}

	return m, nil
}

func (m *tuiModel) pushLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > 5 {
		m.logLines = m.logLines[len(m.logLines)-5:]
	}
}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m tuiModel) statusView() string {
	switch m.state {
	case tuiStateRecording:
		elapsed := time.Since(m.recordStart).Seconds()
		dot := "●"
		if m.frame%10 < 5 {
			dot = "○"
		}
		return recordStyle.Render(fmt.Sprintf("%s recording %.1fs", dot, elapsed))
	case tuiStateTranscribing:
		return transcribeStyle.Render(spinner[m.frame%len(spinner)] + " transcribing...")
	default:
		return idleStyle.Render("idle, hold the hotkey to dictate")
	}
}

func (m tuiModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("whisp "+version) + "  " + dimStyle.Render(m.statusLine) + "\n\n")
	b.WriteString(m.statusView() + "\n\n")

	if m.lastText != "" {
		note := fmt.Sprintf("#%d, %.0fms", m.count, m.lastInfer)
		if !m.dispatched {
			note += ", not delivered"
		}
		b.WriteString(dimStyle.Render("last ("+note+"):") + "\n")
		for _, line := range wrapText(m.lastText, width-2) {
			b.WriteString("  " + textStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	for _, line := range m.logLines {
		b.WriteString(dimStyle.Render(line) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("q to quit"))
	return b.String()
}

// tuiSend delivers a message to the TUI if one is running.
func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
