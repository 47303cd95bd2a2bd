package material

import (
	"testing"

	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

func TestResolveNilMaterial(t *testing.T) {
	source, diags := Resolve(nil)
	if source != nil {
		t.Errorf("nil material should resolve to nothing, got %#v", source)
	}
	if len(diags) == 0 {
		t.Error("expected a diagnostic")
	}
}

func TestResolveNoShader(t *testing.T) {
	source, diags := Resolve(&usd.Material{Name: "bare"})
	if source != nil || len(diags) == 0 {
		t.Errorf("material without shader: source=%#v diags=%v", source, diags)
	}
}

func TestResolvePreviewSurfaceColor(t *testing.T) {
	red := math.Vec3{X: 1}
	mat := &usd.Material{
		Shader: &usd.Shader{
			Kind: usd.ShaderPreviewSurface,
			Inputs: map[string]usd.ShaderInput{
				"diffuseColor": {Color: &red},
			},
		},
	}
	source, diags := Resolve(mat)
	solid, ok := source.(SolidColor)
	if !ok {
		t.Fatalf("expected SolidColor, got %#v (diags %v)", source, diags)
	}
	if solid.RGB.X != 1 || solid.RGB.Y != 0 {
		t.Errorf("color: got %v", solid.RGB)
	}
}

func TestResolvePreviewSurfaceTexture(t *testing.T) {
	mat := &usd.Material{
		Shader: &usd.Shader{
			Kind: usd.ShaderPreviewSurface,
			Inputs: map[string]usd.ShaderInput{
				"diffuseColor": {File: "textures/wood.png"},
			},
		},
	}
	source, _ := Resolve(mat)
	ref, ok := source.(TextureRef)
	if !ok || ref.Path != "textures/wood.png" {
		t.Errorf("expected TextureRef{wood.png}, got %#v", source)
	}
}

func TestResolveOmniPBR(t *testing.T) {
	mat := &usd.Material{
		Shader: &usd.Shader{
			Kind: usd.ShaderOmniPBR,
			Inputs: map[string]usd.ShaderInput{
				"diffuse_texture": {File: "albedo.jpg"},
			},
		},
	}
	source, _ := Resolve(mat)
	if ref, ok := source.(TextureRef); !ok || ref.Path != "albedo.jpg" {
		t.Errorf("OmniPBR: got %#v", source)
	}
}

func TestResolveGLTF(t *testing.T) {
	mat := &usd.Material{
		Shader: &usd.Shader{
			Kind: usd.ShaderGLTF,
			Inputs: map[string]usd.ShaderInput{
				"base_color_texture": {File: "base.png"},
			},
		},
	}
	source, _ := Resolve(mat)
	if ref, ok := source.(TextureRef); !ok || ref.Path != "base.png" {
		t.Errorf("gltf: got %#v", source)
	}
}

func TestResolveUnknownShaderKind(t *testing.T) {
	mat := &usd.Material{
		Shader: &usd.Shader{Kind: "MagicToonShader"},
	}
	source, diags := Resolve(mat)
	if source != nil {
		t.Errorf("unknown kind should resolve to nothing, got %#v", source)
	}
	if len(diags) != 1 {
		t.Errorf("diags: got %v", diags)
	}
}

func TestResolveMissingInput(t *testing.T) {
	mat := &usd.Material{
		Shader: &usd.Shader{Kind: usd.ShaderOmniPBR},
	}
	source, diags := Resolve(mat)
	if source != nil || len(diags) == 0 {
		t.Errorf("missing input: source=%#v diags=%v", source, diags)
	}
}
