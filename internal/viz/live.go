package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	settingStrength  = 0
	settingThreshold = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the terminal view of the arena: a braille 3D projection on
// the left, live settings and energy readout on the right.
type Model struct {
	world    *world.World
	settings *shake.Settings
	injector *shake.Injector
	gate     *motion.Gate
	adapter  *motion.Adapter

	canvas *Canvas
	camera *Camera
	room   *Wireframe

	t, dt         float64
	running       bool
	selected      int
	energyHistory []float64
	showHelp      bool
}

func NewModel(w *world.World, settings *shake.Settings, injector *shake.Injector, gate *motion.Gate, adapter *motion.Adapter, dt float64) Model {
	return Model{
		world:         w,
		settings:      settings,
		injector:      injector,
		gate:          gate,
		adapter:       adapter,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		room:          RoomWireframe(scene.BuildPlanes()),
		dt:            dt,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			m.injector.Pulse().Trigger()
		case "p":
			m.gate.Request(context.Background())
		case "tab":
			m.selected = (m.selected + 1) % 2
		case "up", "k":
			m.adjustSetting(1)
		case "down", "j":
			m.adjustSetting(-1)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) adjustSetting(dir float64) {
	switch m.selected {
	case settingStrength:
		m.settings.SetStrength(m.settings.Strength() + dir*0.5)
	case settingThreshold:
		m.settings.SetThreshold(m.settings.Threshold() + dir)
	}
}

// step advances one tick of physics and input.
func (m *Model) step() {
	for _, s := range m.gate.Poll(m.t) {
		m.adapter.OnSample(s)
	}
	m.injector.Apply(m.world)
	m.world.Step(m.dt)
	m.t += m.dt

	m.energyHistory = append(m.energyHistory, m.world.KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.world.Reset()
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) draw() {
	m.canvas.Clear()
	Render3D(m.canvas, m.room, m.camera)

	centers := make([]scene.Vec3, m.world.NumBodies())
	radius := 1.0
	for i := range centers {
		b := m.world.Body(i)
		centers[i] = b.Position
		radius = b.Radius
	}
	RenderSpheres(m.canvas, m.camera, centers, radius)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.injector.Pulse().Active() {
		status += " " + StatusShaking.Render("SHAKING")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("SHAKEBOX") + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(MetricLabel.Width(12).Render("Time") + MetricValue.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(MetricLabel.Width(12).Render("Energy") + MetricValue.Render(fmt.Sprintf("%.2f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Spheres") + valueStyle.Render(fmt.Sprintf("%d", m.world.NumBodies())) + "\n")
	s.WriteString(labelStyle.Render("Motion") + valueStyle.Render(m.gate.State().String()) + "\n")

	s.WriteString("\nSETTINGS\n")
	s.WriteString(m.renderSetting(settingStrength, "strength", m.settings.Strength(), shake.MinStrength, shake.MaxStrength))
	s.WriteString(m.renderSetting(settingThreshold, "threshold", m.settings.Threshold(), shake.MinThreshold, shake.MaxThreshold))

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Reset Q:Quit\nS:Shake  P:Motion ?:Help\nTab:Select ↑↓:Adjust"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset the arena          ║
║  S        - Shake                    ║
║  P        - Request motion sensor    ║
║  Tab      - Select setting           ║
║  Up/K     - Increase setting         ║
║  Down/J   - Decrease setting         ║
║  X/Y/Z    - Rotate camera            ║
║  +/-      - Zoom                     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) renderSetting(idx int, name string, val, min, max float64) string {
	bar := ProgressBar((val-min)/(max-min), 10)
	line := fmt.Sprintf("%-10s %s %.1f", name, bar, val)
	if idx == m.selected {
		return activeStyle.Render("> "+line) + "\n"
	}
	return "  " + labelStyle.Render(line) + "\n"
}
