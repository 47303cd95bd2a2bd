// Package geometry turns USD-style polygon meshes into triangle lists.
// Meshes with face-varying attributes are flattened into a per-corner
// vertex soup; everything else keeps shared-vertex indexing. Material
// subsets are remapped onto the generated triangle list.
package geometry

import (
	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

// Triangle indexes three vertices in a FlattenResult's Positions.
type Triangle = [3]uint32

// FlattenResult is the triangulated form of a mesh.
type FlattenResult struct {
	// Positions is either the mesh's original vertex buffer or, when
	// Flattened, a buffer with one vertex per face corner.
	Positions []math.Vec3

	// Normals and TexCoords are aligned with Positions where the source
	// interpolation allows it; otherwise they pass through unchanged.
	Normals   []math.Vec3
	TexCoords []math.Vec2

	// Triangles is the fan-triangulated index list.
	Triangles []Triangle

	// FaceToTriangles lists, per original face, the positions in
	// Triangles that the face expanded into, in emission order.
	FaceToTriangles [][]int

	// Flattened reports whether the vertex buffer was duplicated.
	Flattened bool
}

// Flatten triangulates mesh. It never fails: a mesh without usable
// topology comes back with an empty triangle list and the original
// points, which callers downgrade to a point cloud.
func Flatten(mesh *usd.Mesh) FlattenResult {
	result := FlattenResult{
		Positions: mesh.Points,
		Normals:   mesh.Normals,
		TexCoords: mesh.ResolvedTexCoords(),
	}

	if len(mesh.FaceVertexCounts) == 0 || len(mesh.FaceVertexIndices) == 0 {
		return result
	}
	for _, idx := range mesh.FaceVertexIndices {
		if idx < 0 || idx >= len(mesh.Points) {
			// Corrupt topology; keep the points, drop the faces.
			return result
		}
	}

	result.FaceToTriangles = make([][]int, len(mesh.FaceVertexCounts))

	if shouldFlatten(mesh, result.TexCoords) {
		flattenCorners(mesh, &result)
	} else {
		triangulateShared(mesh, &result)
	}
	return result
}

// shouldFlatten decides whether the mesh needs per-corner vertex
// duplication. Face-varying normals or texcoords force it. The length
// heuristic catches face-varying texcoord data whose interpolation
// metadata is missing or mislabeled.
func shouldFlatten(mesh *usd.Mesh, texcoords []math.Vec2) bool {
	if mesh.TexCoordsInterpolation == usd.InterpolationFaceVarying {
		return true
	}
	if mesh.NormalsInterpolation == usd.InterpolationFaceVarying {
		return true
	}
	return len(texcoords) > 0 &&
		len(texcoords) == len(mesh.FaceVertexIndices) &&
		len(texcoords) != len(mesh.Points)
}

// flattenCorners duplicates one vertex per face corner and emits fan
// triangles addressing the new buffer directly.
func flattenCorners(mesh *usd.Mesh, result *FlattenResult) {
	corners := mesh.FaceVertexIndices

	positions := make([]math.Vec3, len(corners))
	for i, vi := range corners {
		positions[i] = mesh.Points[vi]
	}
	result.Positions = positions
	result.Flattened = true

	// Vertex-interpolated attributes expand through the corner index;
	// face-varying data is already corner-aligned. Constant and uniform
	// stay as authored, broadcasting is the emitter's concern.
	if mesh.NormalsInterpolation == usd.InterpolationVertex {
		result.Normals = expandVec3(mesh.Normals, corners)
	}
	if mesh.TexCoordsInterpolation == usd.InterpolationVertex {
		result.TexCoords = expandVec2(result.TexCoords, corners)
	}

	next := 0
	idx := 0
	for face, count := range mesh.FaceVertexCounts {
		if count < 3 || idx+count > len(corners) {
			idx += count
			continue
		}
		for i := 1; i <= count-2; i++ {
			result.Triangles = append(result.Triangles, Triangle{
				uint32(idx),
				uint32(idx + i),
				uint32(idx + i + 1),
			})
			result.FaceToTriangles[face] = append(result.FaceToTriangles[face], next)
			next++
		}
		idx += count
	}
}

// triangulateShared keeps the original vertex buffer and emits fan
// triangles whose indices are the values of the corner stream.
func triangulateShared(mesh *usd.Mesh, result *FlattenResult) {
	corners := mesh.FaceVertexIndices

	next := 0
	idx := 0
	for face, count := range mesh.FaceVertexCounts {
		if count < 3 || idx+count > len(corners) {
			idx += count
			continue
		}
		for i := 1; i <= count-2; i++ {
			result.Triangles = append(result.Triangles, Triangle{
				uint32(corners[idx]),
				uint32(corners[idx+i]),
				uint32(corners[idx+i+1]),
			})
			result.FaceToTriangles[face] = append(result.FaceToTriangles[face], next)
			next++
		}
		idx += count
	}
}

func expandVec3(values []math.Vec3, corners []int) []math.Vec3 {
	out := make([]math.Vec3, 0, len(corners))
	for _, vi := range corners {
		if vi < 0 || vi >= len(values) {
			return values
		}
		out = append(out, values[vi])
	}
	return out
}

func expandVec2(values []math.Vec2, corners []int) []math.Vec2 {
	out := make([]math.Vec2, 0, len(corners))
	for _, vi := range corners {
		if vi < 0 || vi >= len(values) {
			return values
		}
		out = append(out, values[vi])
	}
	return out
}
