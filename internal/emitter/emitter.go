// Package emitter walks a stage and converts it into visualization
// log entries, tracking what was already emitted so repeated calls
// only log what changed. Transforms are diffed on every call;
// geometry and materials are logged once per prim identity and
// assumed static for the session.
package emitter

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/art-e-fact/usd-rerun-logger/internal/geometry"
	"github.com/art-e-fact/usd-rerun-logger/internal/material"
	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
	"github.com/art-e-fact/usd-rerun-logger/pkg/vizlog"
)

// StageLogger logs a stage to a recording with change tracking. It is
// not safe for concurrent use; callers serialize LogStage calls.
type StageLogger struct {
	stage    *usd.Stage
	rec      *vizlog.Recording
	filter   *usd.PathFilter
	source   TransformSource
	textures *material.TextureLoader
	log      *zap.Logger

	loggedGeometry map[string]struct{}
	lastTransforms map[string]math.Mat4
}

// Option configures a StageLogger.
type Option func(*StageLogger)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *StageLogger) { l.log = log }
}

// WithTransformSource overrides where prim transforms are read from.
func WithTransformSource(source TransformSource) Option {
	return func(l *StageLogger) { l.source = source }
}

// WithPathFilter restricts logging to prims matching the filter.
func WithPathFilter(filter *usd.PathFilter) Option {
	return func(l *StageLogger) { l.filter = filter }
}

// New creates a StageLogger. Call Initialize before LogStage.
func New(opts ...Option) *StageLogger {
	l := &StageLogger{
		source:         StageTransforms{},
		textures:       material.NewTextureLoader(),
		log:            zap.NewNop(),
		loggedGeometry: map[string]struct{}{},
		lastTransforms: map[string]math.Mat4{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize binds the logger to a stage and an open recording,
// resetting any previous session state. The caller keeps ownership of
// the recording's lifecycle.
func (l *StageLogger) Initialize(stage *usd.Stage, rec *vizlog.Recording) error {
	if rec == nil {
		return vizlog.ErrNoSink
	}
	l.Stop()
	l.stage = stage
	l.rec = rec
	return nil
}

// SetStage swaps the stage without resetting session memos. Used on
// scene reload: prims that vanished get clear instructions on the
// next LogStage, and geometry identities stay logged unless the
// caller also resets them.
func (l *StageLogger) SetStage(stage *usd.Stage) {
	l.stage = stage
}

// ClearLoggedGeometry forgets which geometry was already logged,
// allowing meshes and cubes to be re-emitted.
func (l *StageLogger) ClearLoggedGeometry() {
	l.loggedGeometry = map[string]struct{}{}
}

// Stop detaches the stage and recording and resets both memos. The
// recording itself is not closed.
func (l *StageLogger) Stop() {
	l.stage = nil
	l.rec = nil
	l.loggedGeometry = map[string]struct{}{}
	l.lastTransforms = map[string]math.Mat4{}
}

// LogStage walks the visible hierarchy once, logging changed
// transforms, first-seen geometry, and clear instructions for prims
// that disappeared. Per-prim data problems degrade locally; only a
// missing session or a failing sink surface as errors.
func (l *StageLogger) LogStage() error {
	if l.rec == nil || l.stage == nil {
		return vizlog.ErrNoSink
	}

	current := map[string]struct{}{}
	for _, prim := range l.stage.Traverse() {
		if prim.IsGuide() {
			continue
		}
		path := prim.Path()
		if !l.filter.Match(path) {
			continue
		}
		current[path] = struct{}{}

		if err := l.logTransform(prim, path); err != nil {
			return err
		}

		if prim.IsMesh() {
			if _, done := l.loggedGeometry[path]; !done {
				if err := l.logMesh(prim, path); err != nil {
					return err
				}
				l.loggedGeometry[path] = struct{}{}
			}
		}
		if prim.IsCube() {
			if _, done := l.loggedGeometry[path]; !done {
				if err := l.logCube(prim, path); err != nil {
					return err
				}
				l.loggedGeometry[path] = struct{}{}
			}
		}
	}

	// Prims that were logged before but are gone now get cleared.
	for path := range l.lastTransforms {
		if _, ok := current[path]; ok {
			continue
		}
		if err := l.rec.Log(path, vizlog.Clear{}); err != nil {
			return err
		}
		delete(l.lastTransforms, path)
	}
	return nil
}

func (l *StageLogger) logTransform(prim *usd.Prim, path string) error {
	m, ok := l.source.LocalTransform(prim)
	if !ok {
		return nil
	}
	if last, seen := l.lastTransforms[path]; seen && last == m {
		return nil
	}
	l.lastTransforms[path] = m

	translation, rotation, scale := m.Decompose()
	return l.rec.Log(path, vizlog.Transform3D{
		Translation: translation,
		Quaternion:  rotation,
		Scale:       scale,
	})
}

func (l *StageLogger) logMesh(prim *usd.Prim, path string) error {
	mesh := prim.Mesh
	if mesh == nil || len(mesh.Points) == 0 {
		l.log.Debug("mesh prim without positions, skipping geometry",
			zap.String("path", path))
		return nil
	}

	result := geometry.Flatten(mesh)
	if len(result.Triangles) == 0 {
		// No usable topology; log the raw points instead.
		return l.rec.LogStatic(path, vizlog.Points3D{Positions: result.Positions})
	}

	if len(mesh.Subsets) > 0 {
		for _, slice := range geometry.SliceSubsets(result, mesh.Subsets, l.log) {
			payload := l.meshPayload(mesh, result, slice.Triangles, slice.Subset.Material, path)
			subsetPath := usd.SubsetPath(path, slice.Subset.Name)
			if err := l.rec.LogStatic(subsetPath, payload); err != nil {
				return err
			}
		}
		return nil
	}

	payload := l.meshPayload(mesh, result, result.Triangles, prim.Material, path)
	return l.rec.LogStatic(path, payload)
}

func (l *StageLogger) meshPayload(mesh *usd.Mesh, result geometry.FlattenResult,
	triangles []geometry.Triangle, mat *usd.Material, path string) vizlog.Mesh3D {

	payload := vizlog.Mesh3D{
		VertexPositions: result.Positions,
		TriangleIndices: triangles,
	}
	payload.VertexNormals = alignVec3(result.Normals, mesh.NormalsInterpolation, len(result.Positions))
	payload.VertexTexcoords = alignVec2(result.TexCoords, mesh.TexCoordsInterpolation, len(result.Positions))

	source, diags := material.Resolve(mat)
	for _, d := range diags {
		l.log.Debug("material resolution", zap.String("path", path), zap.String("detail", d))
	}
	switch s := source.(type) {
	case material.SolidColor:
		c := vizlog.ColorFromVec3(s.RGB)
		payload.AlbedoFactor = &c
	case material.TextureRef:
		img, err := l.textures.Load(s.Path, l.textureBaseDir())
		if err != nil {
			// Unreachable texture means untextured geometry, not a failure.
			l.log.Warn("texture load failed",
				zap.String("path", path),
				zap.String("texture", s.Path),
				zap.Error(err))
			break
		}
		payload.AlbedoTexture = img
	}
	return payload
}

func (l *StageLogger) logCube(prim *usd.Prim, path string) error {
	size := usd.DefaultCubeSize
	var color *vizlog.Color
	if prim.Cube != nil {
		if prim.Cube.Size != 0 {
			size = prim.Cube.Size
		}
		if prim.Cube.DisplayColor != nil {
			c := vizlog.ColorFromVec3(*prim.Cube.DisplayColor)
			color = &c
		}
	}
	half := size / 2
	return l.rec.LogStatic(path, vizlog.Boxes3D{
		HalfSizes: math.Vec3{X: half, Y: half, Z: half},
		Color:     color,
	})
}

func (l *StageLogger) textureBaseDir() string {
	if l.stage == nil || l.stage.SourcePath == "" {
		return ""
	}
	return filepath.Dir(l.stage.SourcePath)
}

// alignVec3 keeps an attribute only when it can be consumed per
// vertex: already aligned, or constant (broadcast to every vertex).
func alignVec3(values []math.Vec3, interp usd.Interpolation, vertexCount int) []math.Vec3 {
	switch {
	case len(values) == vertexCount:
		return values
	case interp == usd.InterpolationConstant && len(values) >= 1:
		out := make([]math.Vec3, vertexCount)
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	return nil
}

func alignVec2(values []math.Vec2, interp usd.Interpolation, vertexCount int) []math.Vec2 {
	switch {
	case len(values) == vertexCount:
		return values
	case interp == usd.InterpolationConstant && len(values) >= 1:
		out := make([]math.Vec2, vertexCount)
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	return nil
}
