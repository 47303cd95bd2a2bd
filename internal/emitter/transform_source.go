package emitter

import (
	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
)

// TransformSource supplies the transform logged for a prim. Whether a
// pose comes from the stage or from a physics back-end is policy; the
// emitter only diffs and logs whatever the active source reports.
type TransformSource interface {
	// LocalTransform returns the prim's transform and whether the prim
	// has one at all.
	LocalTransform(prim *usd.Prim) (math.Mat4, bool)
}

// StageTransforms reads local transforms from the stage itself. This
// is the default source.
type StageTransforms struct{}

// LocalTransform returns the prim's authored local transformation.
func (StageTransforms) LocalTransform(prim *usd.Prim) (math.Mat4, bool) {
	return prim.LocalTransform()
}

// Pose is an externally supplied rigid pose: translation plus
// rotation, unit scale.
type Pose struct {
	Translation math.Vec3
	Rotation    math.Quat
}

// PoseTable overrides selected prims with poses pushed in from
// outside the stage, for scenes where a simulation back-end owns the
// dynamic transforms while the stage stays stale. Prims without an
// entry fall through to the base source.
type PoseTable struct {
	base  TransformSource
	poses map[string]Pose
}

// NewPoseTable wraps base (nil means the stage) with a pose override
// table.
func NewPoseTable(base TransformSource) *PoseTable {
	if base == nil {
		base = StageTransforms{}
	}
	return &PoseTable{base: base, poses: map[string]Pose{}}
}

// SetPose sets or replaces the override pose for a prim path.
func (t *PoseTable) SetPose(path string, pose Pose) {
	t.poses[path] = pose
}

// LocalTransform returns the override pose if one is set, otherwise
// defers to the base source.
func (t *PoseTable) LocalTransform(prim *usd.Prim) (math.Mat4, bool) {
	if pose, ok := t.poses[prim.Path()]; ok {
		return math.Compose(pose.Translation, pose.Rotation, math.Vec3{X: 1, Y: 1, Z: 1}), true
	}
	return t.base.LocalTransform(prim)
}
