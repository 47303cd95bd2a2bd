package geometry

import (
	"testing"

	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

// twoQuadMesh has two quads over six shared vertices.
func twoQuadMesh() *usd.Mesh {
	return &usd.Mesh{
		Points:            make([]math.Vec3, 6),
		FaceVertexCounts:  []int{4, 4},
		FaceVertexIndices: []int{0, 1, 4, 3, 1, 2, 5, 4},
	}
}

func TestDisjointSubsetsCoverTheMesh(t *testing.T) {
	result := Flatten(twoQuadMesh())
	if len(result.Triangles) != 4 {
		t.Fatalf("flatten: got %d triangles, want 4", len(result.Triangles))
	}

	subsets := []usd.Subset{
		{Name: "left", ElementType: usd.ElementTypeFace, Indices: []int{0}},
		{Name: "right", ElementType: usd.ElementTypeFace, Indices: []int{1}},
	}
	slices := SliceSubsets(result, subsets, nil)
	if len(slices) != 2 {
		t.Fatalf("got %d subset slices, want 2", len(slices))
	}

	// Union (order ignored) equals the full triangle list and the two
	// subsets are disjoint.
	count := map[Triangle]int{}
	for _, tri := range result.Triangles {
		count[tri]++
	}
	for _, s := range slices {
		for _, tri := range s.Triangles {
			count[tri]--
		}
	}
	for tri, n := range count {
		if n != 0 {
			t.Errorf("triangle %v: coverage mismatch (%+d)", tri, n)
		}
	}
	if len(slices[0].Triangles) != 2 || len(slices[1].Triangles) != 2 {
		t.Errorf("subset sizes: got %d and %d, want 2 and 2",
			len(slices[0].Triangles), len(slices[1].Triangles))
	}
}

func TestSubsetPreservesDeclarationOrder(t *testing.T) {
	result := Flatten(twoQuadMesh())
	subsets := []usd.Subset{
		{Name: "b", ElementType: usd.ElementTypeFace, Indices: []int{1}},
		{Name: "a", ElementType: usd.ElementTypeFace, Indices: []int{0}},
	}
	slices := SliceSubsets(result, subsets, nil)
	if slices[0].Subset.Name != "b" || slices[1].Subset.Name != "a" {
		t.Errorf("order: got %q then %q", slices[0].Subset.Name, slices[1].Subset.Name)
	}
}

func TestNonFaceSubsetSkipped(t *testing.T) {
	result := Flatten(twoQuadMesh())
	subsets := []usd.Subset{
		{Name: "edges", ElementType: "edge", Indices: []int{0}},
	}
	if slices := SliceSubsets(result, subsets, nil); len(slices) != 0 {
		t.Errorf("non-face subset should be skipped, got %d slices", len(slices))
	}
}

func TestEmptySubsetSkipped(t *testing.T) {
	result := Flatten(twoQuadMesh())
	subsets := []usd.Subset{
		{Name: "none", ElementType: usd.ElementTypeFace},
	}
	if slices := SliceSubsets(result, subsets, nil); len(slices) != 0 {
		t.Errorf("empty subset should be skipped, got %d slices", len(slices))
	}
}

func TestOutOfRangeFaceIndicesIgnored(t *testing.T) {
	result := Flatten(twoQuadMesh())
	subsets := []usd.Subset{
		{Name: "partial", ElementType: usd.ElementTypeFace, Indices: []int{0, 7, -1}},
	}
	slices := SliceSubsets(result, subsets, nil)
	if len(slices) != 1 {
		t.Fatalf("got %d slices, want 1", len(slices))
	}
	if len(slices[0].Triangles) != 2 {
		t.Errorf("only face 0's triangles should survive, got %d", len(slices[0].Triangles))
	}
}

func TestSubsetsOnFlattenedMesh(t *testing.T) {
	mesh := twoQuadMesh()
	mesh.TexCoords = make([]math.Vec2, 8)
	mesh.TexCoordsInterpolation = usd.InterpolationFaceVarying

	result := Flatten(mesh)
	if !result.Flattened {
		t.Fatal("expected flattened path")
	}

	subsets := []usd.Subset{
		{Name: "right", ElementType: usd.ElementTypeFace, Indices: []int{1}},
	}
	slices := SliceSubsets(result, subsets, nil)
	if len(slices) != 1 || len(slices[0].Triangles) != 2 {
		t.Fatalf("subset on flattened mesh: got %+v", slices)
	}
	// Face 1's corners live at positions 4..7 of the duplicated buffer.
	for _, tri := range slices[0].Triangles {
		for _, v := range tri {
			if v < 4 || v > 7 {
				t.Errorf("triangle %v indexes outside face 1's corner range", tri)
			}
		}
	}
}
