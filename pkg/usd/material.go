package usd

import "github.com/art-e-fact/usd-rerun-logger/pkg/math"

// Shader kinds recognized by the exporter's material resolver. The
// kind is the shader's declared identifier, not an inferred one.
const (
	ShaderPreviewSurface = "UsdPreviewSurface"
	ShaderOmniPBR        = "OmniPBR"
	ShaderGLTF           = "gltf_material"
)

// Material is a surface material binding.
type Material struct {
	Name   string
	Shader *Shader
}

// Shader is a flat description of a surface shader: its declared kind
// and named inputs. Which inputs matter depends on the kind.
type Shader struct {
	Kind   string
	Inputs map[string]ShaderInput
}

// ShaderInput is either a constant color or a texture-file reference
// (local path or http(s) URL). At most one of the fields is set.
type ShaderInput struct {
	Color *math.Vec3
	File  string
}

// Input returns the named shader input and whether it exists.
func (s *Shader) Input(name string) (ShaderInput, bool) {
	if s == nil || s.Inputs == nil {
		return ShaderInput{}, false
	}
	in, ok := s.Inputs[name]
	return in, ok
}
