// Package usd provides an in-memory, USD-style scene description: a
// hierarchy of typed prims with transforms, mesh attributes, geometry
// subsets and material bindings. It covers the accessor surface an
// exporter needs; it is not a USD implementation (no layers, variants
// or composition arcs).
package usd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPath  = errors.New("invalid prim path")
	ErrPrimConflict = errors.New("prim already defined with a different type")
)

// Stage is a tree of prims rooted at "/".
type Stage struct {
	root *Prim

	// SourcePath is the file the stage was loaded from, if any. Relative
	// texture paths resolve against its directory.
	SourcePath string
}

// NewStage returns an empty stage containing only the pseudo-root.
func NewStage() *Stage {
	return &Stage{
		root: &Prim{path: "/", typ: TypeScope},
	}
}

// DefinePrim creates the prim at path, creating missing ancestors as
// Xforms. If the prim already exists with the same type it is returned
// unchanged; a type mismatch is an error.
func (s *Stage) DefinePrim(path string, typ PrimType) (*Prim, error) {
	names, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	current := s.root
	for i, name := range names {
		child := current.child(name)
		if child == nil {
			childType := TypeXform
			if i == len(names)-1 {
				childType = typ
			}
			child = &Prim{
				path:   joinPath(current.path, name),
				typ:    childType,
				parent: current,
			}
			current.children = append(current.children, child)
		} else if i == len(names)-1 && child.typ != typ {
			return nil, fmt.Errorf("%w: %s is %s, not %s", ErrPrimConflict, path, child.typ, typ)
		}
		current = child
	}
	return current, nil
}

// PrimAtPath returns the prim at path, or nil if it does not exist.
func (s *Stage) PrimAtPath(path string) *Prim {
	names, err := splitPath(path)
	if err != nil {
		return nil
	}
	current := s.root
	for _, name := range names {
		current = current.child(name)
		if current == nil {
			return nil
		}
	}
	return current
}

// RemovePrim removes the prim at path and its whole subtree.
// Returns false if no such prim exists.
func (s *Stage) RemovePrim(path string) bool {
	prim := s.PrimAtPath(path)
	if prim == nil || prim.parent == nil {
		return false
	}
	siblings := prim.parent.children
	for i, c := range siblings {
		if c == prim {
			prim.parent.children = append(siblings[:i], siblings[i+1:]...)
			prim.parent = nil
			return true
		}
	}
	return false
}

// Traverse returns every prim below the pseudo-root in depth-first
// pre-order. Children are visited in definition order, so repeated
// traversals of an unchanged stage yield the same sequence.
func (s *Stage) Traverse() []*Prim {
	var prims []*Prim
	var walk func(p *Prim)
	walk = func(p *Prim) {
		for _, c := range p.children {
			prims = append(prims, c)
			walk(c)
		}
	}
	walk(s.root)
	return prims
}

func splitPath(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") || path == "/" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	names := strings.Split(strings.Trim(path, "/"), "/")
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return names, nil
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
