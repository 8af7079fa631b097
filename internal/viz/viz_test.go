package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/shakebox/internal/material"
	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel to be set")
	}

	// out of range coordinates are ignored
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected clear to reset the grid")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected filled circle to light pixels")
	}

	c.Clear()
	c.FillCircle(4, 4, 0)
	if c.Grid[1][2] == 0x2800 {
		t.Error("zero radius should still light the center pixel")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 2)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	cam := NewCamera()
	sw, sh := 160, 96

	x, y, _, visible := cam.Project(scene.Vec3{}, sw, sh)
	if !visible {
		t.Fatal("origin should be visible")
	}
	if x != sw/2 || y != sh/2 {
		t.Errorf("expected center (%d,%d), got (%d,%d)", sw/2, sh/2, x, y)
	}
}

func TestCameraRejectsPointsBehind(t *testing.T) {
	cam := NewCamera()
	_, _, _, visible := cam.Project(scene.Vec3{Z: 100}, 160, 96)
	if visible {
		t.Error("points behind the near plane must not be visible")
	}
}

func TestScreenRadiusGrowsWithProximity(t *testing.T) {
	cam := NewCamera()
	far := cam.ScreenRadius(1, -20, 160, 96)
	near := cam.ScreenRadius(1, 10, 160, 96)
	if near <= far {
		t.Errorf("expected nearer spheres to render larger, near=%d far=%d", near, far)
	}
}

func TestRoomWireframeSkipsFrontFace(t *testing.T) {
	w := RoomWireframe(scene.BuildPlanes())
	// a closed box has 12 edges; the open face drops two
	if len(w.Edges) != 10 {
		t.Errorf("expected 10 edges, got %d", len(w.Edges))
	}
}

func TestLiveViewShowsReadout(t *testing.T) {
	reg := material.NewRegistry()
	if err := material.Install(reg); err != nil {
		t.Fatalf("install materials: %v", err)
	}
	w, err := world.New(reg, scene.Build(2, 1))
	if err != nil {
		t.Fatalf("build world: %v", err)
	}

	settings := shake.NewSettings()
	pulse := shake.NewPulse(shake.NewManualClock())
	injector := shake.NewInjector(settings, pulse, 1)
	gate := motion.NewGate(nil, nil)
	adapter := motion.NewAdapter(settings, pulse)

	m := NewModel(w, settings, injector, gate, adapter, 0.01)
	out := m.View()

	for _, want := range []string{"SHAKEBOX", "Time", "Energy", "Spheres", "Motion"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestGetThemeFallback(t *testing.T) {
	if GetTheme("nope").Name != "neon" {
		t.Error("expected fallback to neon")
	}
	if GetTheme("retro").Name != "retro" {
		t.Error("expected retro theme")
	}
}
