// Package syntaxtest provides hand-built syntax trees for tests of code that
// consumes syntax.Path.
package syntaxtest

import (
	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// Ref is a type reference leaf.
type Ref struct {
	text string
}

// NewRef returns a leaf with the given source text.
func NewRef(text string) *Ref {
	return &Ref{text: text}
}

// Text implements syntax.Node.
func (r *Ref) Text() string { return r.text }

// TypeParam is a declared type parameter.
type TypeParam struct {
	name   string
	bounds []syntax.Node
	owner  *Decl
}

// Text implements syntax.Node.
func (p *TypeParam) Text() string { return p.name }

// Name implements syntax.TypeParameterNode.
func (p *TypeParam) Name() string { return p.name }

// Bounds implements syntax.TypeParameterNode.
func (p *TypeParam) Bounds() []syntax.Node { return p.bounds }

// Decl is a class or method declaration.
type Decl struct {
	kind       syntax.DeclKind
	name       string
	typeParams []*TypeParam
	supertypes []syntax.Node
}

// Class returns a class declaration.
func Class(name string) *Decl {
	return &Decl{kind: syntax.KindClass, name: name}
}

// Interface returns an interface declaration.
func Interface(name string) *Decl {
	return &Decl{kind: syntax.KindInterface, name: name}
}

// Method returns a method declaration.
func Method(name string) *Decl {
	return &Decl{kind: syntax.KindMethod, name: name}
}

// WithTypeParams appends type parameters with the given names.
func (d *Decl) WithTypeParams(names ...string) *Decl {
	for _, name := range names {
		d.typeParams = append(d.typeParams, &TypeParam{name: name, owner: d})
	}
	return d
}

// Extends appends supertype clause nodes.
func (d *Decl) Extends(refs ...*Ref) *Decl {
	for _, ref := range refs {
		d.supertypes = append(d.supertypes, ref)
	}
	return d
}

// TypeParam returns the declared type parameter with the given name, or nil.
func (d *Decl) TypeParam(name string) *TypeParam {
	for _, p := range d.typeParams {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Text implements syntax.Node.
func (d *Decl) Text() string { return d.name }

// Kind implements syntax.Decl.
func (d *Decl) Kind() syntax.DeclKind { return d.kind }

// Name implements syntax.Decl.
func (d *Decl) Name() string { return d.name }

// TypeParameters implements syntax.Decl.
func (d *Decl) TypeParameters() []syntax.TypeParameterNode {
	params := make([]syntax.TypeParameterNode, len(d.typeParams))
	for i, p := range d.typeParams {
		params[i] = p
	}
	return params
}

// Supertypes implements syntax.Decl.
func (d *Decl) Supertypes() []syntax.Node { return d.supertypes }

// Path implements syntax.Path.
type Path struct {
	unit      *syntax.CompilationUnit
	leaf      syntax.Node
	ancestors []*Decl // innermost first
}

// NewPath returns a path to leaf.  Declarations are given outermost first.
func NewPath(unit *syntax.CompilationUnit, leaf syntax.Node, outermostFirst ...*Decl) *Path {
	ancestors := make([]*Decl, len(outermostFirst))
	for i, d := range outermostFirst {
		ancestors[len(outermostFirst)-1-i] = d
	}
	return &Path{unit: unit, leaf: leaf, ancestors: ancestors}
}

// Leaf implements syntax.Path.
func (p *Path) Leaf() syntax.Node { return p.leaf }

// Ancestors implements syntax.Path.
func (p *Path) Ancestors() []syntax.Decl {
	decls := make([]syntax.Decl, len(p.ancestors))
	for i, d := range p.ancestors {
		decls[i] = d
	}
	return decls
}

// CompilationUnit implements syntax.Path.
func (p *Path) CompilationUnit() *syntax.CompilationUnit { return p.unit }

// PathTo implements syntax.Path.  Only declarations on this path and their
// type parameters can be reached.
func (p *Path) PathTo(node syntax.Node) (syntax.Path, bool) {
	for i, d := range p.ancestors {
		if syntax.Node(d) == node {
			return &Path{unit: p.unit, leaf: d, ancestors: p.ancestors[i+1:]}, true
		}
		for _, tp := range d.typeParams {
			if syntax.Node(tp) == node {
				return &Path{unit: p.unit, leaf: tp, ancestors: p.ancestors[i:]}, true
			}
		}
	}
	return nil, false
}

// Unit returns a compilation unit.  Imports ending in ".*" are on-demand.
func Unit(pkg string, imports ...string) *syntax.CompilationUnit {
	unit := &syntax.CompilationUnit{Filename: "Test.java", Package: pkg}
	for _, imp := range imports {
		if len(imp) > 2 && imp[len(imp)-2:] == ".*" {
			unit.Imports = append(unit.Imports, syntax.Import{Name: imp[:len(imp)-2], Wildcard: true})
		} else {
			unit.Imports = append(unit.Imports, syntax.Import{Name: imp})
		}
	}
	return unit
}
