package tui

import (
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/countdown/internal/celebrate"
	"github.com/manav03panchal/countdown/internal/clock"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/model"
	"github.com/manav03panchal/countdown/internal/timer"
)

// confettiHeight is the number of rows the burst occupies.
const confettiHeight = 3

// tickMsg asks the model to sample the engine.
type tickMsg time.Time

// burstMsg reports a celebration state change.
type burstMsg struct {
	state celebrate.State
}

// Config holds configuration for the countdown view.
type Config struct {
	Spec     model.TargetSpec
	Units    []model.Unit
	Geometry timer.Geometry
	Interval time.Duration
	Clock    clock.Clock
	Burst    celebrate.Config
	NoBurst  bool
	// Seed scatters the confetti. Zero derives one from the clock.
	Seed uint64
}

// Model is the bubbletea model for the countdown view.
type Model struct {
	engine   *timer.Engine
	display  *Display
	trigger  *celebrate.Trigger
	confetti *Confetti
	geometry timer.Geometry
	interval time.Duration
	noBurst  bool

	// send delivers messages from trigger callbacks into the program.
	send func(tea.Msg)

	width    int
	height   int
	quitting bool
}

// NewModel creates the countdown view. The engine renders into the
// model's display.
func NewModel(config Config) *Model {
	if config.Clock == nil {
		config.Clock = clock.System
	}
	if len(config.Units) == 0 {
		config.Units = model.Units[:]
	}
	if config.Geometry == nil {
		config.Geometry = timer.UniformGeometry(4, config.Units...)
	}
	if config.Seed == 0 {
		config.Seed = uint64(config.Clock.Now().UnixNano())
	}

	display := NewDisplay(config.Units...)
	engine := timer.NewEngine(config.Spec, display, timer.Config{
		Interval: config.Interval,
		Clock:    config.Clock,
	})

	m := &Model{
		engine:   engine,
		display:  display,
		confetti: NewConfetti(config.Seed),
		geometry: config.Geometry,
		interval: engine.Interval(),
		noBurst:  config.NoBurst,
	}

	burst := config.Burst
	burst.Clock = config.Clock
	burst.Notify = func(s celebrate.State) {
		// Never block: Notify may run on the program's own goroutine.
		if send := m.send; send != nil {
			go send(burstMsg{state: s})
		}
	}
	m.trigger = celebrate.NewTrigger(display, burst)
	return m
}

// Engine returns the engine driving the view.
func (m *Model) Engine() *timer.Engine {
	return m.engine
}

// Trigger returns the celebration trigger.
func (m *Model) Trigger() *celebrate.Trigger {
	return m.trigger
}

// Init samples the engine once, fires the celebration and schedules the
// next tick.
func (m *Model) Init() tea.Cmd {
	_, more := m.engine.Tick()
	if !m.noBurst {
		m.trigger.Fire()
	}
	if !more {
		return nil
	}
	return m.tickCmd()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.trigger.Stop()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if _, more := m.engine.Tick(); more {
			return m, m.tickCmd()
		}
		return m, nil

	case burstMsg:
		logging.DebugLog("burst state", logging.KeyState, msg.state.String())
		return m, nil
	}

	return m, nil
}

// tickCmd schedules the next engine sample.
func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the countdown.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.display.snapshot()
	frame := m.engine.Last()

	rings := make([]string, 0, len(state.units))
	for _, u := range state.units {
		ring, _ := m.geometry.Ring(u)
		rv := RingView{Unit: u, Ring: ring, Value: state.values[u], Fraction: state.fractions[u]}
		rings = append(rings, StyleRingBox.Render(rv.View()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rings...)
	rowWidth := lipgloss.Width(row)

	var sections []string
	sections = append(sections, m.renderHeader(frame))

	switch state.burst {
	case burstOn:
		sections = append(sections, m.confetti.View(rowWidth, confettiHeight, false))
	case burstFading:
		sections = append(sections, m.confetti.View(rowWidth, confettiHeight, true))
	default:
		// The caption is hidden while the burst plays.
		label := lipgloss.PlaceHorizontal(rowWidth, lipgloss.Center, StyleLabel.Render(state.label))
		sections = append(sections, "", label, "")
	}

	sections = append(sections, row)
	if m.engine.Finished() {
		sections = append(sections, "", StyleSuccess.Render("Target reached."))
	}
	sections = append(sections, HelpBar())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (m *Model) renderHeader(frame model.Frame) string {
	title := StyleTitle.Render("Countdown")
	phase := StylePhase.Render(strings.ToUpper(frame.Phase.String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", phase)
}

// Options configures the bubbletea program.
type Options struct {
	Input  io.Reader
	Output io.Writer
	// AltScreen takes over the whole terminal.
	AltScreen bool
}

// Run starts the countdown view and blocks until the user quits.
func Run(config Config, opts Options) error {
	m := NewModel(config)

	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(m, progOpts...)
	m.send = p.Send

	_, err := p.Run()
	m.trigger.Stop()
	return err
}
