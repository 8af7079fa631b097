package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shakebox/internal/scene"
)

// ReplayModel plays back a recorded run frame by frame.
type ReplayModel struct {
	frames [][]float64
	times  []float64
	radius float64

	canvas   *Canvas
	camera   *Camera
	room     *Wireframe
	playHead int
	playing  bool
}

func NewReplayModel(frames [][]float64, times []float64) ReplayModel {
	return ReplayModel{
		frames:  frames,
		times:   times,
		radius:  1.0,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		room:    RoomWireframe(scene.BuildPlanes()),
		playing: true,
	}
}

func (m ReplayModel) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "[":
			m.playing = false
			if m.playHead > 0 {
				m.playHead--
			}
		case "]":
			m.playing = false
			if m.playHead < len(m.frames)-1 {
				m.playHead++
			}
		case "r":
			m.playHead = 0
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.playing && m.playHead < len(m.frames)-1 {
			m.playHead++
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m ReplayModel) View() string {
	m.canvas.Clear()
	Render3D(m.canvas, m.room, m.camera)

	if len(m.frames) > 0 {
		frame := m.frames[m.playHead]
		centers := make([]scene.Vec3, len(frame)/3)
		for i := range centers {
			centers[i] = scene.Vec3{X: frame[3*i], Y: frame[3*i+1], Z: frame[3*i+2]}
		}
		RenderSpheres(m.canvas, m.camera, centers, m.radius)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("REPLAY") + "\n")
	status := StatusRunning.Render("PLAYING")
	if !m.playing {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")
	if len(m.times) > 0 {
		s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.times[m.playHead])) + "\n")
	}
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.playHead+1, len(m.frames))) + "\n")
	s.WriteString(helpStyle.Render("\nSP:Pause [ ]:Scrub R:Rewind Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
}
