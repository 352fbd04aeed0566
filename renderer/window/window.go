// Package window is the raylib backend: it opens a window, reports pointer
// and resize events, and rasterizes frames with per-triangle lighting.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/renderer"
)

// Backend implements renderer.Backend on raylib.
type Backend struct {
	TargetFPS int
	Hidden    bool // open an invisible window (snapshots)

	background *BackgroundRenderer
	particles  *ParticleRenderer

	lastMouse rl.Vector2
	onScreen  bool
	ready     bool
}

// New creates a backend; nothing is opened until Init.
func New(targetFPS int) *Backend {
	return &Backend{
		TargetFPS:  targetFPS,
		background: NewBackgroundRenderer(),
		particles:  NewParticleRenderer(),
	}
}

// Init opens the window. It returns renderer.ErrUnsupported when raylib
// could not create a GL context.
func (b *Backend) Init(width, height int, title string) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if b.Hidden {
		flags |= rl.FlagWindowHidden
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return renderer.ErrUnsupported
	}
	if b.TargetFPS > 0 {
		rl.SetTargetFPS(int32(b.TargetFPS))
	}
	b.background.Init()
	b.lastMouse = rl.GetMousePosition()
	b.ready = true
	return nil
}

// ShouldClose implements renderer.Backend.
func (b *Backend) ShouldClose() bool {
	return !b.ready || rl.WindowShouldClose()
}

// FrameTime implements renderer.Backend.
func (b *Backend) FrameTime() float32 {
	return rl.GetFrameTime()
}

// Poll implements renderer.Backend.
func (b *Backend) Poll() renderer.Input {
	var in renderer.Input
	if !b.ready {
		return in
	}

	mouse := rl.GetMousePosition()
	if mouse != b.lastMouse {
		in.PointerMoved = true
		in.PX, in.PY = mouse.X, mouse.Y
		b.lastMouse = mouse
	}

	on := rl.IsCursorOnScreen()
	if b.onScreen && !on {
		in.PointerLeft = true
	}
	b.onScreen = on

	if rl.IsWindowResized() {
		in.Resized = true
		in.Width = rl.GetScreenWidth()
		in.Height = rl.GetScreenHeight()
	}
	return in
}

// Submit draws one frame.
func (b *Backend) Submit(f *renderer.Frame) {
	if !b.ready {
		return
	}
	rl.BeginDrawing()
	b.Render(f)
	rl.EndDrawing()
}

// Render draws f into the current target without beginning or ending the
// drawing pass, so tools can layer UI on top or capture a render texture.
func (b *Backend) Render(f *renderer.Frame) {
	Draw(f, b.background, b.particles)
}

// Draw renders f into the current target. Callers own BeginDrawing or
// BeginTextureMode.
func Draw(f *renderer.Frame, bg *BackgroundRenderer, particles *ParticleRenderer) {
	cc := f.Clear.SRGBA(1)
	rl.ClearBackground(rl.Color{R: cc.R, G: cc.G, B: cc.B, A: 255})
	bg.Draw(f.Elapsed, f.Width, f.Height, f.Clear)

	rl.BeginMode3D(camera3D(f.Camera))
	rl.DisableBackfaceCulling()
	particles.Draw(f.Points, f.PointColor, f.PointSize, f.Reveal)
	for i := range f.Surfaces {
		drawSurface(&f.Surfaces[i], f.Light, f.Camera.Position)
	}
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

// Unload closes the window.
func (b *Backend) Unload() {
	if !b.ready {
		return
	}
	b.background.Unload()
	rl.CloseWindow()
	b.ready = false
}

// drawSurface shades each triangle from its averaged vertex normal.
func drawSurface(s *renderer.DrawSurface, light material.Light, eye mgl32.Vec3) {
	alpha := s.Material.Opacity
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	if s.Blend == renderer.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.BeginBlendMode(rl.BlendAlpha)
	}
	if !s.DepthWrite {
		rl.DrawRenderBatchActive()
		rl.DisableDepthMask()
	}

	for t := 0; t+2 < len(s.Indices); t += 3 {
		ia, ib, ic := s.Indices[t], s.Indices[t+1], s.Indices[t+2]
		a := s.Model.Mul4x1(s.Positions[ia].Vec4(1)).Vec3()
		bv := s.Model.Mul4x1(s.Positions[ib].Vec4(1)).Vec3()
		c := s.Model.Mul4x1(s.Positions[ic].Vec4(1)).Vec3()

		n := s.Normals[ia].Add(s.Normals[ib]).Add(s.Normals[ic])
		n = s.Model.Mul4x1(n.Vec4(0)).Vec3()
		center := a.Add(bv).Add(c).Mul(1.0 / 3)

		lit := material.Shade(s.Material, n, eye.Sub(center), light).SRGBA(alpha)
		rl.DrawTriangle3D(vec3(a), vec3(bv), vec3(c), rl.Color{R: lit.R, G: lit.G, B: lit.B, A: lit.A})
	}

	if !s.DepthWrite {
		rl.DrawRenderBatchActive()
		rl.EnableDepthMask()
	}
	rl.EndBlendMode()
}

func camera3D(c renderer.Camera) rl.Camera3D {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return rl.NewCamera3D(vec3(c.Position), vec3(c.Target), vec3(up), c.FOV, rl.CameraPerspective)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
