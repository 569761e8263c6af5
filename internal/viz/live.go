package viz

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/metrics"
	"github.com/san-kum/circlesim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	maxTerminalFPS  = 60
	canvasPadLeft   = 2
	canvasPadTop    = 1
)

type TickMsg time.Time

// Model drives an engine from the terminal.
type Model struct {
	engine *sim.Engine
	bounds dynamo.Bounds
	logger *log.Logger

	width, height int
	canvas        *Canvas
	interval      time.Duration
	last          time.Time

	pointer       dynamo.Vec2
	primaryDown   bool
	pending       dynamo.Input
	frame         dynamo.Frame
	running       bool
	showContacts  bool
	showHelp      bool
	energyHistory []float64
	contactCounts []float64

	recording  bool
	frames     []*image.Paletted
	recordPath string
}

// NewModel wraps engine. fps is capped at 60 since terminals redraw slowly.
func NewModel(engine *sim.Engine, fps int, logger *log.Logger) Model {
	if fps <= 0 || fps > maxTerminalFPS {
		fps = maxTerminalFPS
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		engine:        engine,
		bounds:        engine.Bounds(),
		logger:        logger,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		interval:      time.Second / time.Duration(fps),
		frame:         engine.Frame(),
		running:       true,
		showContacts:  true,
		energyHistory: make([]float64, 0, historyCapacity),
		contactCounts: make([]float64, 0, historyCapacity),
		recordPath:    "circlesim.gif",
	}
}

// Run starts the terminal driver and blocks until the user quits.
func Run(engine *sim.Engine, cfg *config.Config, logger *log.Logger) error {
	m := NewModel(engine, cfg.TargetFPS, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.showContacts = !m.showContacts
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		now := time.Time(msg)
		dt := float64(m.interval) / float64(time.Millisecond)
		if !m.last.IsZero() {
			dt = float64(now.Sub(m.last)) / float64(time.Millisecond)
		}
		m.last = now
		if m.running {
			m.step(dt)
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 2*canvasPadLeft - 1
	ch := h - 2*canvasPadTop
	if cw < 20 || ch < 8 {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// mouse records pointer state. Edges are held in pending until the next
// tick consumes them.
func (m *Model) mouse(msg tea.MouseMsg) {
	m.pointer = m.cellToWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pending.PrimaryPressed = true
			m.primaryDown = true
		case tea.MouseButtonRight:
			m.pending.SecondaryPressed = true
		}
	case tea.MouseActionRelease:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pending.PrimaryReleased = true
			m.primaryDown = false
		case tea.MouseButtonRight:
			m.pending.SecondaryReleased = true
		default:
			// some terminals do not say which button went up
			if m.primaryDown {
				m.pending.PrimaryReleased = true
				m.primaryDown = false
			} else {
				m.pending.SecondaryReleased = true
			}
		}
	}
}

// cellToWorld maps a terminal cell to the world point at its center.
func (m *Model) cellToWorld(x, y int) dynamo.Vec2 {
	col := float64(x-canvasPadLeft) + 0.5
	row := float64(y-canvasPadTop) + 0.5
	return dynamo.Vec2{
		X: col * m.bounds.Width / float64(m.width),
		Y: row * m.bounds.Height / float64(m.height),
	}
}

// worldToDots maps a world point to canvas sub-pixels.
func (m *Model) worldToDots(p dynamo.Vec2) (float64, float64) {
	return p.X / m.bounds.Width * float64(m.width*2), p.Y / m.bounds.Height * float64(m.height*4)
}

// step advances the engine by one tick with the input gathered since the
// previous one.
func (m *Model) step(dt float64) {
	in := m.pending
	in.Dt = dt
	in.Pointer = m.pointer
	in.PrimaryDown = m.primaryDown
	m.pending = dynamo.Input{}

	m.frame = m.engine.Tick(in)

	m.energyHistory = appendCapped(m.energyHistory, metrics.TotalKineticEnergy(m.frame.Bodies))
	m.contactCounts = appendCapped(m.contactCounts, float64(len(m.frame.Pairs)))
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// reset restores the startup population.
func (m *Model) reset() {
	m.engine.Reset()
	m.frame = m.engine.Frame()
	m.pending = dynamo.Input{}
	m.primaryDown = false
	m.energyHistory = m.energyHistory[:0]
	m.contactCounts = m.contactCounts[:0]
	m.logger.Debug("world reset")
}

func (m *Model) draw() {
	m.canvas.Clear()

	sx := float64(m.width*2) / m.bounds.Width
	sy := float64(m.height*4) / m.bounds.Height

	pos := make(map[dynamo.BodyID]dynamo.Vec2, len(m.frame.Bodies))
	for _, b := range m.frame.Bodies {
		pos[b.ID] = b.Pos
		cx, cy := m.worldToDots(b.Pos)
		m.canvas.DrawEllipse(cx, cy, b.Radius*sx, b.Radius*sy)
	}

	if m.showContacts {
		for _, p := range m.frame.Pairs {
			a, okA := pos[p.A]
			b, okB := pos[p.B]
			if okA && okB {
				m.line(a, b)
			}
		}
	}

	if sel, ok := m.frame.SelectedBody(); ok {
		m.line(sel.Pos, m.frame.Pointer)
	}
}

func (m *Model) line(a, b dynamo.Vec2) {
	ax, ay := m.worldToDots(a)
	bx, by := m.worldToDots(b)
	m.canvas.DrawLine(int(math.Round(ax)), int(math.Round(ay)), int(math.Round(bx)), int(math.Round(by)))
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle().Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render("CIRCLESIM") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recording {
		status += " ● REC"
	}
	s.WriteString(statusStyle(m.running).Render(status) + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	energy := 0.0
	if n := len(m.energyHistory); n > 0 {
		energy = m.energyHistory[n-1]
	}
	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.frame.Tick))
	row("Time", fmt.Sprintf("%.2fs", m.frame.Time/1000))
	row("FPS", fmt.Sprintf("%.0f", m.frame.FPS))
	row("Bodies", fmt.Sprintf("%d", len(m.frame.Bodies)))
	row("Energy", fmt.Sprintf("%.2f", energy))
	row("Contacts", SparklineChart(m.contactCounts, 20))
	if sel, ok := m.frame.SelectedBody(); ok {
		row("Selected", fmt.Sprintf("#%d r=%.0f", sel.ID, sel.Radius))
	} else {
		row("Selected", "-")
	}

	s.WriteString(helpStyle().Render("─────────────────────\nLMB:Drag RMB:Throw\nSP:Pause R:Reset Q:Quit\nC:Contacts T:Theme G:Record ?:Help"))
	statsView := statsStyle().Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Left mouse  - Grab and drag a body  ║
║  Right mouse - Grab, release to throw║
║  Space       - Pause/Resume          ║
║  R           - Reset                 ║
║  C           - Toggle contact lines  ║
║  T           - Cycle themes          ║
║  G           - Toggle GIF recording  ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
