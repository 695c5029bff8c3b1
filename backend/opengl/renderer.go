// Package opengl provides an OpenGL 4.1 backend for the textstrip package.
package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/textstrip/textstrip"
)

// MaxTextureSlots is the number of font atlas slots a Renderer can bind
// simultaneously. Vertex texture-slot values must stay below it.
const MaxTextureSlots = 8

// Renderer implements textstrip.Device on an OpenGL 4.1 core context.
// It owns one VAO/VBO pair holding the batch's aggregate strip, a shader
// program, and up to MaxTextureSlots font atlas textures.
type Renderer struct {
	shader   uint32
	vao, vbo uint32
	projLoc  int32
	colorLoc int32
	width    int
	height   int
	layout   textstrip.Layout
	color    [4]float32
	textures [MaxTextureSlots]uint32
}

// Vertex shader source
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in float aTexSlot;

out vec2 TexCoord;
out float TexSlot;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    TexSlot = aTexSlot;
}
` + "\x00"

// Fragment shader source.
// Atlas textures are alpha-only: the R channel is coverage, tinted by the
// textColor uniform. Sampler arrays cannot be indexed by a varying in GLSL
// 410, hence the switch over constant indices.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in float TexSlot;

out vec4 FragColor;

uniform sampler2D atlases[8];
uniform vec4 textColor;

void main() {
    float coverage = 0.0;
    switch (int(TexSlot + 0.5)) {
    case 0: coverage = texture(atlases[0], TexCoord).r; break;
    case 1: coverage = texture(atlases[1], TexCoord).r; break;
    case 2: coverage = texture(atlases[2], TexCoord).r; break;
    case 3: coverage = texture(atlases[3], TexCoord).r; break;
    case 4: coverage = texture(atlases[4], TexCoord).r; break;
    case 5: coverage = texture(atlases[5], TexCoord).r; break;
    case 6: coverage = texture(atlases[6], TexCoord).r; break;
    case 7: coverage = texture(atlases[7], TexCoord).r; break;
    }
    FragColor = vec4(textColor.rgb, textColor.a * coverage);
}
` + "\x00"

// NewRenderer creates a renderer for a viewport of the given size.
// The layout must match the layout of every batch drawn through it.
// Requires a current GL context.
func NewRenderer(width, height int, layout textstrip.Layout) (*Renderer, error) {
	r := &Renderer{
		width:  width,
		height: height,
		layout: layout,
		color:  [4]float32{1, 1, 1, 1},
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.colorLoc = gl.GetUniformLocation(r.shader, gl.Str("textColor\x00"))

	// Bind the sampler array to texture units 0..7 once.
	gl.UseProgram(r.shader)
	var units [MaxTextureSlots]int32
	for i := range units {
		units[i] = int32(i)
	}
	atlasesLoc := gl.GetUniformLocation(r.shader, gl.Str("atlases\x00"))
	gl.Uniform1iv(atlasesLoc, MaxTextureSlots, &units[0])
	gl.UseProgram(0)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	// Interleaved layout: pos(2) + uv(2) + slot(1) + padding.
	stride := int32(layout.Stride() * 4)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 8)
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 16)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	return r, nil
}

// LoadFontTexture uploads an atlas image as the alpha-only texture for a
// slot, replacing any previous texture bound there. The image must not be a
// sub-image (its stride must equal its width).
func (r *Renderer) LoadFontTexture(atlas *image.Alpha, slot int) (uint32, error) {
	if slot < 0 || slot >= MaxTextureSlots {
		return 0, fmt.Errorf("texture slot %d out of range [0, %d)", slot, MaxTextureSlots)
	}
	bounds := atlas.Bounds()
	if atlas.Stride != bounds.Dx() {
		return 0, fmt.Errorf("atlas stride %d does not match width %d", atlas.Stride, bounds.Dx())
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// Alpha rows are tightly packed; default 4-byte row alignment would skew
	// odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(bounds.Dx()), int32(bounds.Dy()),
		0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if old := r.textures[slot]; old != 0 {
		gl.DeleteTextures(1, &old)
	}
	r.textures[slot] = tex
	return tex, nil
}

// SetColor sets the tint applied to all text drawn through this renderer.
func (r *Renderer) SetColor(red, green, blue, alpha float32) {
	r.color = [4]float32{red, green, blue, alpha}
}

// Resize updates the viewport size used for the orthographic projection.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Upload replaces the vertex buffer contents wholesale.
func (r *Renderer) Upload(vertices []float32) error {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw issues one triangle-strip draw call over the uploaded buffer.
func (r *Renderer) Draw(vertexCount int) error {
	if vertexCount == 0 {
		return nil
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.shader)

	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.Uniform4fv(r.colorLoc, 1, &r.color[0])

	for slot, tex := range r.textures {
		if tex == 0 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, int32(vertexCount))
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	return nil
}

// Delete releases all GL resources owned by the renderer.
func (r *Renderer) Delete() {
	for slot, tex := range r.textures {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
			r.textures[slot] = 0
		}
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Shaders are linked into the program now.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking failed: %s", string(log))
	}

	return program, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
