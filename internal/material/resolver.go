// Package material resolves a prim's bound material to a color
// source: a solid color, a texture reference, or nothing. The shader
// conventions it recognizes mirror the preview-surface, OmniPBR and
// glTF bindings found in practice.
package material

import (
	"fmt"

	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

// ColorSource is the resolved appearance of a material.
// Implementations: SolidColor, TextureRef. A nil ColorSource means
// the geometry logs untextured.
type ColorSource interface {
	isColorSource()
}

// SolidColor is a constant RGB albedo in [0,1].
type SolidColor struct {
	RGB math.Vec3
}

// TextureRef points at a texture image, as a local path or http(s)
// URL, not yet loaded.
type TextureRef struct {
	Path string
}

func (SolidColor) isColorSource() {}
func (TextureRef) isColorSource() {}

// Resolve inspects the material's declared shader kind and extracts a
// color source. It never fails: unresolvable materials return a nil
// source and the reasons as diagnostics.
func Resolve(mat *usd.Material) (ColorSource, []string) {
	if mat == nil {
		return nil, []string{"no material bound"}
	}
	if mat.Shader == nil {
		return nil, []string{fmt.Sprintf("material %q has no surface shader", mat.Name)}
	}

	switch mat.Shader.Kind {
	case usd.ShaderPreviewSurface:
		return resolveInput(mat.Shader, "diffuseColor")
	case usd.ShaderOmniPBR:
		return resolveInput(mat.Shader, "diffuse_texture")
	case usd.ShaderGLTF:
		return resolveInput(mat.Shader, "base_color_texture")
	}
	return nil, []string{fmt.Sprintf("unsupported shader kind %q", mat.Shader.Kind)}
}

func resolveInput(shader *usd.Shader, name string) (ColorSource, []string) {
	in, ok := shader.Input(name)
	if !ok {
		return nil, []string{fmt.Sprintf("shader %s has no %q input", shader.Kind, name)}
	}
	if in.File != "" {
		return TextureRef{Path: in.File}, nil
	}
	if in.Color != nil {
		return SolidColor{RGB: *in.Color}, nil
	}
	return nil, []string{fmt.Sprintf("shader input %q carries neither color nor file", name)}
}
