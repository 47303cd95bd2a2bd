package geometry

import (
	"go.uber.org/zap"

	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

// SubsetTriangles is one subset's slice of the mesh triangle list.
type SubsetTriangles struct {
	Subset    usd.Subset
	Triangles []Triangle
}

// SliceSubsets carves per-subset triangle lists out of a flattened
// mesh, in subset declaration order. Non-face subsets and empty
// subsets are skipped; face indices outside the mesh are ignored.
// The shared vertex buffer is not compacted, so subset triangle
// indices stay valid against the full Positions buffer.
func SliceSubsets(result FlattenResult, subsets []usd.Subset, log *zap.Logger) []SubsetTriangles {
	if log == nil {
		log = zap.NewNop()
	}

	var out []SubsetTriangles
	for _, subset := range subsets {
		if subset.ElementType != usd.ElementTypeFace {
			log.Warn("unsupported subset element type",
				zap.String("subset", subset.Name),
				zap.String("elementType", subset.ElementType))
			continue
		}
		if len(subset.Indices) == 0 {
			continue
		}

		var triangles []Triangle
		for _, face := range subset.Indices {
			if face < 0 || face >= len(result.FaceToTriangles) {
				continue
			}
			for _, ti := range result.FaceToTriangles[face] {
				triangles = append(triangles, result.Triangles[ti])
			}
		}
		if len(triangles) == 0 {
			continue
		}
		out = append(out, SubsetTriangles{Subset: subset, Triangles: triangles})
	}
	return out
}
