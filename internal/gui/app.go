// Package gui is the raylib frontend: the room and sphere arena rendered in
// a 1280x720 window with a HUD for the live shake settings.
package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

// Theme colors
var (
	ColBg      = rl.NewColor(10, 10, 12, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	settingStrength  = 0
	settingThreshold = 1
)

type App struct {
	World    *world.World
	Settings *shake.Settings
	Injector *shake.Injector
	Gate     *motion.Gate
	Adapter  *motion.Adapter

	Planes []scene.Plane

	Time    float64
	Dt      float64
	Camera  rl.Camera3D
	Running bool

	SettingSel int
	Telemetry  []float64
	Font       rl.Font
	ShadowTex  rl.Texture2D
}

func initWindow() {
	rl.InitWindow(1280, 720, "shakebox")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// shadowTexture bakes the blob shadow stamp at the scene's shadow map
// resolution.
func shadowTexture() rl.Texture2D {
	img := rl.GenImageGradientRadial(scene.ShadowMapSize, scene.ShadowMapSize, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(w *world.World, settings *shake.Settings, injector *shake.Injector, gate *motion.Gate, adapter *motion.Adapter) *App {
	cam := scene.CameraPosition
	return &App{
		World:    w,
		Settings: settings,
		Injector: injector,
		Gate:     gate,
		Adapter:  adapter,
		Planes:   scene.BuildPlanes(),
		Dt:       0.016,
		Camera: rl.NewCamera3D(
			rl.NewVector3(float32(cam.X), float32(cam.Y), float32(cam.Z)),
			rl.NewVector3(0, 5, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Running:   true,
		Telemetry: make([]float64, 0, 200),
	}
}

// Run opens the window and blocks until it closes.
func Run(w *world.World, settings *shake.Settings, injector *shake.Injector, gate *motion.Gate, adapter *motion.Adapter) {
	initWindow()
	defer rl.CloseWindow()

	app := NewApp(w, settings, injector, gate, adapter)
	app.Font = loadFont()
	app.ShadowTex = shadowTexture()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		rl.CloseWindow()
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.World.Reset()
		a.Time = 0
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.Injector.Pulse().Trigger()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.Gate.Request(context.Background())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.SettingSel = (a.SettingSel + 1) % 2
	}

	step := 0.5
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 2.0
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.adjustSetting(step)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.adjustSetting(-step)
	}

	// Orbit with right mouse drag, zoom with the wheel
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Position.X -= delta.X * 0.05
		a.Camera.Position.Y += delta.Y * 0.05
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Position.Z -= wheel * 2.0
		if a.Camera.Position.Z < 5 {
			a.Camera.Position.Z = 5
		}
	}

	if a.Running {
		for _, s := range a.Gate.Poll(a.Time) {
			a.Adapter.OnSample(s)
		}
		a.Injector.Apply(a.World)
		a.World.Step(a.Dt)
		a.Time += a.Dt

		a.Telemetry = append(a.Telemetry, a.World.KineticEnergy())
		if len(a.Telemetry) > 200 {
			a.Telemetry = a.Telemetry[1:]
		}
	}
}

func (a *App) adjustSetting(step float64) {
	switch a.SettingSel {
	case settingStrength:
		a.Settings.SetStrength(a.Settings.Strength() + step)
	case settingThreshold:
		a.Settings.SetThreshold(a.Settings.Threshold() + step)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.renderRoom()
	a.renderShadows()
	a.renderSpheres()
	rl.EndMode3D()

	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	a.drawText("shakebox", 30, 30, 24, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	if a.Injector.Pulse().Active() {
		a.drawText("SHAKING", 1050, 30, 16, rl.Red)
	}

	a.drawText(fmt.Sprintf("motion: %s", a.Gate.State()), 30, 60, 16, ColText)

	a.drawSetting(settingStrength, "strength", a.Settings.Strength(), 30, 90)
	a.drawSetting(settingThreshold, "threshold", a.Settings.Threshold(), 30, 115)

	a.drawTelemetry()

	a.drawText("[SPACE] PAUSE  [R] RESET  [S] SHAKE  [M] MOTION  [TAB/←→] SETTINGS  [Q] QUIT", 500, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawSetting(idx int, name string, val float64, x, y int) {
	col := ColText
	prefix := "  "
	if idx == a.SettingSel {
		col = ColSelect
		prefix = "> "
	}
	a.drawText(fmt.Sprintf("%s%-10s %.1f", prefix, name, val), x, y, 16, col)
}

func (a *App) drawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
