package usd

import (
	"strings"

	"github.com/art-e-fact/usd-rerun-logger/pkg/math"
)

// PrimType identifies what kind of node a prim is.
type PrimType string

const (
	TypeXform PrimType = "Xform"
	TypeMesh  PrimType = "Mesh"
	TypeCube  PrimType = "Cube"
	TypeScope PrimType = "Scope"
)

// Purpose values; guide prims are viewport-only helpers and are never
// exported.
const (
	PurposeDefault = "default"
	PurposeGuide   = "guide"
)

// Prim is a node in the stage hierarchy.
type Prim struct {
	path     string
	typ      PrimType
	parent   *Prim
	children []*Prim

	purpose   string
	transform *math.Mat4

	// Mesh holds geometry attributes for TypeMesh prims.
	Mesh *Mesh
	// Cube holds extents for TypeCube prims.
	Cube *Cube
	// Material is the binding resolved for this prim, if any.
	Material *Material
}

// Path returns the absolute prim path.
func (p *Prim) Path() string { return p.path }

// Name returns the final path component.
func (p *Prim) Name() string {
	if i := strings.LastIndex(p.path, "/"); i >= 0 {
		return p.path[i+1:]
	}
	return p.path
}

// Type returns the prim's type.
func (p *Prim) Type() PrimType { return p.typ }

// IsMesh reports whether the prim carries mesh geometry.
func (p *Prim) IsMesh() bool { return p.typ == TypeMesh }

// IsCube reports whether the prim is a cube shape.
func (p *Prim) IsCube() bool { return p.typ == TypeCube }

// IsXformable reports whether the prim can carry a local transform.
// Scopes are pure grouping nodes.
func (p *Prim) IsXformable() bool { return p.typ != TypeScope }

// IsGuide reports whether the prim's purpose is guide.
func (p *Prim) IsGuide() bool { return p.purpose == PurposeGuide }

// SetPurpose sets the prim's purpose token.
func (p *Prim) SetPurpose(purpose string) { p.purpose = purpose }

// SetLocalTransform sets the prim's local transformation matrix.
func (p *Prim) SetLocalTransform(m math.Mat4) {
	p.transform = &m
}

// LocalTransform returns the prim's local transformation. Xformable
// prims without an authored transform report identity.
func (p *Prim) LocalTransform() (math.Mat4, bool) {
	if !p.IsXformable() {
		return math.Mat4{}, false
	}
	if p.transform == nil {
		return math.Identity(), true
	}
	return *p.transform, true
}

// Children returns the prim's direct children in definition order.
func (p *Prim) Children() []*Prim { return p.children }

func (p *Prim) child(name string) *Prim {
	for _, c := range p.children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
