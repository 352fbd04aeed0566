package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/veil/material"
)

// backgroundFS is a soft radial vignette over the clear color.
const backgroundFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;

uniform float time;
uniform vec2 resolution;
uniform vec3 baseColor;

out vec4 finalColor;

void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    vec2 p = (uv - vec2(0.5, 0.55)) * vec2(resolution.x / resolution.y, 1.0);
    float d = length(p);
    float glow = exp(-d * d * 3.0) * (0.85 + 0.15 * sin(time * 0.3));
    vec3 col = baseColor + vec3(0.04, 0.07, 0.14) * glow;
    col *= 1.0 - 0.35 * smoothstep(0.4, 1.2, d);
    finalColor = vec4(col, 1.0);
}
`

// BackgroundRenderer draws the vignette behind the 3D scene.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	baseColorLoc  int32
	initialized   bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{}
}

// Init compiles the shader (must be called after the raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	b.initialized = true
}

// Draw renders a fullscreen quad tinted from base.
func (b *BackgroundRenderer) Draw(time float32, width, height int, base material.LinearRGB) {
	if !b.initialized {
		b.Init()
	}

	c := base.SRGBA(1)
	baseColor := []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{float32(width), float32(height)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.baseColorLoc, baseColor, rl.ShaderUniformVec3)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(width), int32(height), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
