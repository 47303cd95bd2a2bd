package usd

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
)

// ErrUnknownPrimType reports an unrecognized type token in a scene file.
var ErrUnknownPrimType = errors.New("unknown prim type")

// sceneFile is the YAML scene description: a flat list of prims by
// path. Ancestors missing from the list are created as plain Xforms.
type sceneFile struct {
	Prims []primSpec `yaml:"prims"`
}

type primSpec struct {
	Path    string `yaml:"path"`
	Type    string `yaml:"type"`
	Purpose string `yaml:"purpose"`

	Translate *[3]float32 `yaml:"translate"`
	RotateXYZ *[3]float32 `yaml:"rotate_xyz"`
	Scale     *[3]float32 `yaml:"scale"`

	Points            [][3]float32  `yaml:"points"`
	FaceVertexCounts  []int         `yaml:"face_vertex_counts"`
	FaceVertexIndices []int         `yaml:"face_vertex_indices"`
	Normals           *primvar3Spec `yaml:"normals"`
	ST                *primvar2Spec `yaml:"st"`
	Subsets           []subsetSpec  `yaml:"subsets"`

	Size         *float32    `yaml:"size"`
	DisplayColor *[3]float32 `yaml:"display_color"`

	Material *materialSpec `yaml:"material"`
}

type primvar3Spec struct {
	Values        [][3]float32 `yaml:"values"`
	Interpolation string       `yaml:"interpolation"`
}

type primvar2Spec struct {
	Values        [][2]float32 `yaml:"values"`
	Interpolation string       `yaml:"interpolation"`
	Indices       []int        `yaml:"indices"`
}

type subsetSpec struct {
	Name        string        `yaml:"name"`
	ElementType string        `yaml:"element_type"`
	Indices     []int         `yaml:"indices"`
	Material    *materialSpec `yaml:"material"`
}

type materialSpec struct {
	Name   string               `yaml:"name"`
	Shader string               `yaml:"shader"`
	Inputs map[string]inputSpec `yaml:"inputs"`
}

type inputSpec struct {
	Color *[3]float32 `yaml:"color"`
	File  string      `yaml:"file"`
}

// LoadStage reads a YAML scene description from disk.
func LoadStage(path string) (*Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	stage, err := ParseStage(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scene file %s: %w", path, err)
	}
	stage.SourcePath = path
	return stage, nil
}

// ParseStage builds a stage from YAML scene data.
func ParseStage(data []byte) (*Stage, error) {
	var file sceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	stage := NewStage()
	for i, spec := range file.Prims {
		if err := definePrimFromSpec(stage, spec); err != nil {
			return nil, fmt.Errorf("prim %d (%s): %w", i, spec.Path, err)
		}
	}
	return stage, nil
}

func definePrimFromSpec(stage *Stage, spec primSpec) error {
	typ, err := primTypeFromToken(spec.Type)
	if err != nil {
		return err
	}

	prim, err := stage.DefinePrim(spec.Path, typ)
	if err != nil {
		return err
	}

	if spec.Purpose != "" {
		prim.SetPurpose(spec.Purpose)
	}
	if spec.Translate != nil || spec.RotateXYZ != nil || spec.Scale != nil {
		prim.SetLocalTransform(composeSpecTransform(spec))
	}
	if spec.Material != nil {
		prim.Material = materialFromSpec(spec.Material)
	}

	switch typ {
	case TypeMesh:
		prim.Mesh = meshFromSpec(spec)
	case TypeCube:
		cube := &Cube{Size: DefaultCubeSize}
		if spec.Size != nil {
			cube.Size = *spec.Size
		}
		if spec.DisplayColor != nil {
			c := vec3(*spec.DisplayColor)
			cube.DisplayColor = &c
		}
		prim.Cube = cube
	}
	return nil
}

func primTypeFromToken(token string) (PrimType, error) {
	switch token {
	case "xform", "":
		return TypeXform, nil
	case "mesh":
		return TypeMesh, nil
	case "cube":
		return TypeCube, nil
	case "scope":
		return TypeScope, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPrimType, token)
}

func composeSpecTransform(spec primSpec) math.Mat4 {
	m := math.Identity()
	if spec.Scale != nil {
		m = math.Scale(spec.Scale[0], spec.Scale[1], spec.Scale[2]).Mul(m)
	}
	if spec.RotateXYZ != nil {
		m = math.RotateX(radians(spec.RotateXYZ[0])).Mul(m)
		m = math.RotateY(radians(spec.RotateXYZ[1])).Mul(m)
		m = math.RotateZ(radians(spec.RotateXYZ[2])).Mul(m)
	}
	if spec.Translate != nil {
		m = math.Translate(spec.Translate[0], spec.Translate[1], spec.Translate[2]).Mul(m)
	}
	return m
}

func meshFromSpec(spec primSpec) *Mesh {
	mesh := &Mesh{
		FaceVertexCounts:  spec.FaceVertexCounts,
		FaceVertexIndices: spec.FaceVertexIndices,
	}
	for _, p := range spec.Points {
		mesh.Points = append(mesh.Points, vec3(p))
	}
	if spec.Normals != nil {
		for _, n := range spec.Normals.Values {
			mesh.Normals = append(mesh.Normals, vec3(n))
		}
		mesh.NormalsInterpolation = Interpolation(spec.Normals.Interpolation)
	}
	if spec.ST != nil {
		for _, uv := range spec.ST.Values {
			mesh.TexCoords = append(mesh.TexCoords, math.Vec2{X: uv[0], Y: uv[1]})
		}
		mesh.TexCoordsInterpolation = Interpolation(spec.ST.Interpolation)
		mesh.TexCoordIndices = spec.ST.Indices
	}
	for _, sub := range spec.Subsets {
		elementType := sub.ElementType
		if elementType == "" {
			elementType = ElementTypeFace
		}
		mesh.Subsets = append(mesh.Subsets, Subset{
			Name:        sub.Name,
			ElementType: elementType,
			Indices:     sub.Indices,
			Material:    materialFromSpec(sub.Material),
		})
	}
	return mesh
}

func materialFromSpec(spec *materialSpec) *Material {
	if spec == nil {
		return nil
	}
	shader := &Shader{Kind: spec.Shader, Inputs: map[string]ShaderInput{}}
	for name, in := range spec.Inputs {
		input := ShaderInput{File: in.File}
		if in.Color != nil {
			c := vec3(*in.Color)
			input.Color = &c
		}
		shader.Inputs[name] = input
	}
	return &Material{Name: spec.Name, Shader: shader}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func radians(degrees float32) float32 {
	return degrees * gomath.Pi / 180
}
