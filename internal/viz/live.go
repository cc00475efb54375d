package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spheresim/internal/engine"
	"github.com/san-kum/spheresim/internal/metrics"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives a running engine and graphs the alignment order parameter.
type Model struct {
	eng           *engine.Engine
	alignment     []float64
	stepsPerFrame int
	maxSteps      int
	frameRate     int
	running       bool
	err           error
}

func NewModel(eng *engine.Engine, maxSteps, stepsPerFrame, frameRate int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		eng:           eng,
		alignment:     make([]float64, 0, historyCapacity),
		stepsPerFrame: stepsPerFrame,
		maxSteps:      maxSteps,
		frameRate:     frameRate,
		running:       true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				if m.maxSteps > 0 && m.eng.Steps() >= m.maxSteps {
					m.running = false
					break
				}
				if err := m.eng.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}

			m.alignment = append(m.alignment, metrics.OrderParameter(m.eng.Positions()))
			if len(m.alignment) > historyCapacity {
				m.alignment = m.alignment[len(m.alignment)-historyCapacity:]
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	cfg := m.eng.Config()

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("spheresim live"))
	sb.WriteByte('\n')

	if len(m.alignment) > 1 {
		graph := asciigraph.Plot(m.alignment,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("alignment order parameter"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}

	status := statusRunning.Render("running")
	if m.err != nil {
		status = statusPaused.Render(fmt.Sprintf("failed: %v", m.err))
	} else if !m.running {
		status = statusPaused.Render("paused")
	}

	current := 0.0
	if len(m.alignment) > 0 {
		current = m.alignment[len(m.alignment)-1]
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		statLine("status", status),
		statLine("step", fmt.Sprintf("%d", m.eng.Steps())),
		statLine("particles", fmt.Sprintf("%d in R^%d", cfg.Particles, cfg.Dimensions)),
		statLine("topology", cfg.Topology),
		statLine("zone width", fmt.Sprintf("%.2f", cfg.ZoneWidth)),
		statLine("alignment", fmt.Sprintf("%.4f", current)),
	)
	sb.WriteString(statsStyle.Render(stats))
	sb.WriteByte('\n')

	sb.WriteString(helpStyle.Render("space pause/resume · q quit"))
	return sb.String()
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// RunLive starts the live view and blocks until the user quits.
func RunLive(eng *engine.Engine, maxSteps, stepsPerFrame, frameRate int) error {
	p := tea.NewProgram(NewModel(eng, maxSteps, stepsPerFrame, frameRate))
	_, err := p.Run()
	return err
}
