package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

const (
	canvasWidth     = 100
	canvasHeight    = 26
	historyCapacity = 600
	glowTicks       = 12
	shockwaveTicks  = 15
	slingshotScale  = 0.02
	velocityNudge   = 0.25
)

var (
	canvasStyle   = lipgloss.NewStyle().Padding(1, 2)
	statsStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type shockwaveFX struct {
	origin physics.Vector2D
	age    int
}

// Model runs the interactive sandbox: a 60fps bubbletea loop stepping
// the simulation, with mouse slingshot spawning and keyboard control.
type Model struct {
	s      *sim.Simulation
	canvas *Canvas

	energyHistory []float64
	glows         map[int]int
	shockwaves    []shockwaveFX

	dragging  bool
	dragStart physics.Vector2D
	dragPos   physics.Vector2D

	selectedID int
	showHelp   bool
}

// NewModel wraps an already populated simulation.
func NewModel(s *sim.Simulation) Model {
	return Model{
		s:             s,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energyHistory: make([]float64, 0, historyCapacity),
		glows:         make(map[int]int),
		selectedID:    -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation one frame
// per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.s.TogglePause()
		case "g":
			m.s.ToggleGravity()
		case "r":
			m.s.Reset()
			m.energyHistory = m.energyHistory[:0]
			m.glows = make(map[int]int)
			m.shockwaves = nil
			m.selectedID = -1
		case "s":
			m.s.Populate(1)
		case "tab":
			m.cycleSelection()
		case "d":
			if m.selectedID >= 0 {
				m.s.Remove(m.selectedID)
				m.selectedID = -1
			}
		case "up":
			m.nudgeSelected(physics.Vec(0, -velocityNudge))
		case "down":
			m.nudgeSelected(physics.Vec(0, velocityNudge))
		case "left":
			m.nudgeSelected(physics.Vec(-velocityNudge, 0))
		case "right":
			m.nudgeSelected(physics.Vec(velocityNudge, 0))
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.step()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos, inside := m.cellToWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if inside {
				m.dragging = true
				m.dragStart = pos
				m.dragPos = pos
			}
		case tea.MouseButtonRight:
			if inside {
				m.s.ApplyShockwave(pos, 1.0)
				m.shockwaves = append(m.shockwaves, shockwaveFX{origin: pos})
			}
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.dragPos = pos
		}
	// not all terminals report which button was released
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.launch(pos)
		}
	}
}

// launch spawns a ball at the press point, thrown opposite the drag
// like a slingshot. A click without a drag spawns with a random
// velocity instead.
func (m *Model) launch(release physics.Vector2D) {
	pull := m.dragStart.Sub(release)
	if pull.Magnitude() < 2 {
		m.s.SpawnAt(m.dragStart)
		return
	}
	m.s.SpawnThrown(m.dragStart, pull.Scale(slingshotScale))
}

func (m *Model) cycleSelection() {
	balls := m.s.Snapshot()
	if len(balls) == 0 {
		m.selectedID = -1
		return
	}
	next := 0
	for i, b := range balls {
		if b.ID == m.selectedID {
			next = (i + 1) % len(balls)
			break
		}
	}
	m.selectedID = balls[next].ID
}

// nudgeSelected adjusts the selected ball's velocity. The simulation
// rejects edits while running, so this only takes effect paused.
func (m *Model) nudgeSelected(delta physics.Vector2D) {
	if m.selectedID < 0 {
		return
	}
	for _, b := range m.s.Snapshot() {
		if b.ID == m.selectedID {
			m.s.SetBallVelocity(b.ID, b.Velocity.Add(delta))
			return
		}
	}
}

// step advances one frame and folds the returned events into the
// transient visual state.
func (m *Model) step() {
	events := m.s.Step(1.0)
	for _, ev := range events {
		if ev.Kind == sim.EventWallBoost {
			m.glows[ev.BallID] = glowTicks
		}
	}

	for id, ticks := range m.glows {
		if ticks <= 1 {
			delete(m.glows, id)
		} else {
			m.glows[id] = ticks - 1
		}
	}

	live := m.shockwaves[:0]
	for _, fx := range m.shockwaves {
		fx.age++
		if fx.age < shockwaveTicks {
			live = append(live, fx)
		}
	}
	m.shockwaves = live

	m.energyHistory = append(m.energyHistory, m.s.TotalEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// cellToWorld maps a terminal cell to world coordinates, accounting
// for the canvas padding. The bool reports whether the cell falls on
// the drawable area.
func (m *Model) cellToWorld(cellX, cellY int) (physics.Vector2D, bool) {
	cfg := m.s.Config()
	cx := cellX - 2
	cy := cellY - 1
	inside := cx >= 0 && cx < canvasWidth && cy >= 0 && cy < canvasHeight

	wx := (float64(cx) + 0.5) / canvasWidth * cfg.WorldWidth
	wy := (float64(cy) + 0.5) / canvasHeight * cfg.WorldHeight
	return physics.Vec(wx, wy), inside
}

// worldToSub maps world coordinates to canvas sub-pixels.
func (m *Model) worldToSub(pos physics.Vector2D) (int, int) {
	cfg := m.s.Config()
	x := pos.X / cfg.WorldWidth * float64(canvasWidth*2)
	y := pos.Y / cfg.WorldHeight * float64(canvasHeight*4)
	return int(x), int(y)
}

func (m *Model) scaleRadius(r float64) int {
	cfg := m.s.Config()
	sub := r / cfg.WorldWidth * float64(canvasWidth*2)
	if sub < 1 {
		return 1
	}
	return int(sub)
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, b := range m.s.Snapshot() {
		x, y := m.worldToSub(b.Position)
		r := m.scaleRadius(b.Radius)
		m.canvas.FillCircle(x, y, r)
		if _, glowing := m.glows[b.ID]; glowing {
			m.canvas.DrawCircle(x, y, r+2)
		}
		if b.ID == m.selectedID {
			m.canvas.DrawCircle(x, y, r+3)
		}
	}

	for _, fx := range m.shockwaves {
		cfg := m.s.Config()
		x, y := m.worldToSub(fx.origin)
		r := m.scaleRadius(float64(fx.age) / shockwaveTicks * cfg.ShockwaveRadius)
		m.canvas.DrawCircle(x, y, r)
	}

	if m.dragging {
		x0, y0 := m.worldToSub(m.dragStart)
		x1, y1 := m.worldToSub(m.dragPos)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// View renders the sandbox and the stats sidebar.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("BOUNCELAB") + "\n")

	status := "RUNNING"
	if m.s.Paused() {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.0f", m.s.Time())) + "\n")
	s.WriteString(labelStyle.Render("Balls") + valueStyle.Render(fmt.Sprintf("%d", m.s.Len())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", m.s.TotalEnergy())) + "\n")

	gravity := "off"
	if m.s.GravityOn() {
		gravity = "on"
	}
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(gravity) + "\n")

	s.WriteString("\nSELECTED\n")
	if sel, ok := m.selectedBall(); ok {
		s.WriteString(selectedStyle.Render(fmt.Sprintf("> ball %d", sel.ID)) + "\n")
		s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.0f, %.0f)", sel.Position.X, sel.Position.Y)) + "\n")
		s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", sel.Velocity.X, sel.Velocity.Y)) + "\n")
		s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f", sel.Velocity.Magnitude())) + "\n")
		s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.0f", sel.Mass)) + "\n")
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause G:Gravity R:Reset\nS:Spawn  D:Delete  Q:Quit\nDrag:Sling RClick:Shockwave\nTab:Select ↑↓←→:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔════════════════════════════════════════╗
║           KEYBOARD SHORTCUTS           ║
╠════════════════════════════════════════╣
║  Space     - Pause/Resume              ║
║  G         - Toggle gravity            ║
║  R         - Reset the scene           ║
║  S         - Spawn a random ball       ║
║  D         - Delete selected ball      ║
║  Tab       - Cycle ball selection      ║
║  Arrows    - Tune velocity (paused)    ║
║  Drag      - Slingshot a new ball      ║
║  RClick    - Shockwave                 ║
║  Q         - Quit                      ║
║  ?         - Toggle this help          ║
╚════════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) selectedBall() (sim.BallState, bool) {
	if m.selectedID < 0 {
		return sim.BallState{}, false
	}
	for _, b := range m.s.Snapshot() {
		if b.ID == m.selectedID {
			return b, true
		}
	}
	return sim.BallState{}, false
}
