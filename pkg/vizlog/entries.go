// Package vizlog defines the visualization-log boundary: typed log
// entries addressed by entity path, a Sink that consumes them, and a
// Recording that stamps entries with timeline state. Serialization
// beyond the provided sinks is the viewer's concern.
package vizlog

import "github.com/art-e-fact/usd-rerun-logger/pkg/math"

// Payload is one loggable archetype.
type Payload interface {
	// Kind returns the wire discriminator for the payload.
	Kind() string
}

// Entry is one (path, payload) log event.
type Entry struct {
	Path    string     `json:"path"`
	Static  bool       `json:"static,omitempty"`
	Time    *TimePoint `json:"time,omitempty"`
	Kind    string     `json:"kind"`
	Payload Payload    `json:"data"`
}

// TimePoint is the timeline state attached to non-static entries.
// Exactly one of Sequence, Duration or Timestamp is set.
type TimePoint struct {
	Timeline  string   `json:"timeline"`
	Sequence  *int64   `json:"sequence,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`  // seconds
	Timestamp *float64 `json:"timestamp,omitempty"` // seconds since epoch
}

// Color is an 8-bit RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorFromVec3 converts a float color in [0,1] to 8-bit RGB.
func ColorFromVec3(v math.Vec3) Color {
	return Color{R: channel(v.X), G: channel(v.Y), B: channel(v.Z)}
}

func channel(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f * 255)
}

// Image is a decoded RGB8 texture buffer.
type Image struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels []byte `json:"pixels"`
}

// Transform3D is a decomposed local transform. The quaternion is
// scalar-last (x, y, z, w).
type Transform3D struct {
	Translation math.Vec3 `json:"translation"`
	Quaternion  math.Quat `json:"quaternion"`
	Scale       math.Vec3 `json:"scale"`
}

// Mesh3D is a triangle mesh with optional per-vertex attributes and
// either a texture or a constant albedo color.
type Mesh3D struct {
	VertexPositions []math.Vec3  `json:"vertex_positions"`
	TriangleIndices [][3]uint32  `json:"triangle_indices"`
	VertexNormals   []math.Vec3  `json:"vertex_normals,omitempty"`
	VertexTexcoords []math.Vec2  `json:"vertex_texcoords,omitempty"`
	AlbedoTexture   *Image       `json:"albedo_texture,omitempty"`
	AlbedoFactor    *Color       `json:"albedo_factor,omitempty"`
}

// Points3D is a raw point cloud, used when a mesh has no usable
// topology.
type Points3D struct {
	Positions []math.Vec3 `json:"positions"`
}

// Boxes3D is a solid box centered on its entity's transform.
type Boxes3D struct {
	HalfSizes math.Vec3 `json:"half_sizes"`
	Color     *Color    `json:"color,omitempty"`
}

// Clear removes an entity from the viewer.
type Clear struct{}

func (Transform3D) Kind() string { return "transform3d" }
func (Mesh3D) Kind() string      { return "mesh3d" }
func (Points3D) Kind() string    { return "points3d" }
func (Boxes3D) Kind() string     { return "boxes3d" }
func (Clear) Kind() string       { return "clear" }
