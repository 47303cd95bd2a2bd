package usd

import "github.com/art-e-fact/usd-rerun-logger/pkg/math"

// Interpolation describes how a primvar maps onto mesh topology.
type Interpolation string

const (
	InterpolationConstant    Interpolation = "constant"
	InterpolationUniform     Interpolation = "uniform"
	InterpolationVertex      Interpolation = "vertex"
	InterpolationFaceVarying Interpolation = "faceVarying"
)

// ElementTypeFace is the only subset element type the exporter handles.
const ElementTypeFace = "face"

// Mesh holds polygon-mesh attributes. The invariant
// len(FaceVertexIndices) == sum(FaceVertexCounts) is the producer's
// responsibility; consumers bounds-check rather than assume it.
type Mesh struct {
	// Points are the per-vertex positions.
	Points []math.Vec3

	// FaceVertexCounts holds the corner count of each polygon.
	FaceVertexCounts []int

	// FaceVertexIndices is the flattened corner-to-vertex index stream.
	FaceVertexIndices []int

	// Normals with their interpolation mode. Empty means unauthored.
	Normals              []math.Vec3
	NormalsInterpolation Interpolation

	// TexCoords ("st" primvar) with interpolation mode and an optional
	// index table, as USD indexed primvars have.
	TexCoords              []math.Vec2
	TexCoordsInterpolation Interpolation
	TexCoordIndices        []int

	// Subsets partition the faces, in declaration order.
	Subsets []Subset
}

// ResolvedTexCoords returns the texture coordinates with the primvar
// index table applied, mirroring how UsdGeom.PrimvarsAPI flattens
// indexed primvars. Out-of-range indices are dropped.
func (m *Mesh) ResolvedTexCoords() []math.Vec2 {
	if len(m.TexCoordIndices) == 0 {
		return m.TexCoords
	}
	resolved := make([]math.Vec2, 0, len(m.TexCoordIndices))
	for _, idx := range m.TexCoordIndices {
		if idx < 0 || idx >= len(m.TexCoords) {
			continue
		}
		resolved = append(resolved, m.TexCoords[idx])
	}
	return resolved
}

// Subset names a group of faces, typically to bind a distinct material
// to a region of the mesh.
type Subset struct {
	Name        string
	ElementType string
	Indices     []int
	Material    *Material
}

// SubsetPath returns the entity path a subset is exported under.
func SubsetPath(meshPath, subsetName string) string {
	return meshPath + "/" + subsetName
}

// Cube is an axis-aligned box shape. Size is the full edge length
// (USD default 2, giving unit half-extents).
type Cube struct {
	Size         float32
	DisplayColor *math.Vec3
}

// DefaultCubeSize matches the UsdGeom.Cube fallback size attribute.
const DefaultCubeSize float32 = 2
