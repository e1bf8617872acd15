package javasyntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/stackb/classifier-resolver/pkg/syntax"
)

var (
	_ syntax.Decl              = (*Decl)(nil)
	_ syntax.TypeParameterNode = (*TypeParam)(nil)
	_ syntax.Path              = (*Path)(nil)
)

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func positionOf(n *sitter.Node) Position {
	p := n.StartPoint()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TypeRef is a type reference: a (possibly qualified or parameterized) type
// name, or an annotation name prefixed with "@".
type TypeRef struct {
	text string
	pos  Position
}

// Text implements syntax.Node.
func (r *TypeRef) Text() string { return r.text }

// Pos is the start of the reference.
func (r *TypeRef) Pos() Position { return r.pos }

// TypeParam is a declared type parameter.
type TypeParam struct {
	name   string
	bounds []syntax.Node
	owner  *Decl
	pos    Position
}

// Text implements syntax.Node.
func (p *TypeParam) Text() string { return p.name }

// Name implements syntax.TypeParameterNode.
func (p *TypeParam) Name() string { return p.name }

// Bounds implements syntax.TypeParameterNode.
func (p *TypeParam) Bounds() []syntax.Node { return p.bounds }

// Owner is the declaration that declares the parameter.
func (p *TypeParam) Owner() *Decl { return p.owner }

// Decl is a class-like, method or constructor declaration.
type Decl struct {
	kind       syntax.DeclKind
	name       string
	typeParams []*TypeParam
	supertypes []syntax.Node
	nested     []*Decl
	pos        Position
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

// TypeParameterNames lists the declared type parameter names.
func (d *Decl) TypeParameterNames() []string {
	var names []string
	for _, p := range d.typeParams {
		names = append(names, p.name)
	}
	return names
}

// Supertypes implements syntax.Decl.  The nodes are *TypeRef values.
func (d *Decl) Supertypes() []syntax.Node { return d.supertypes }

// Nested returns the class-like declarations directly in the body of a
// class-like declaration.
func (d *Decl) Nested() []*Decl { return d.nested }

// Pos is the start of the declaration.
func (d *Decl) Pos() Position { return d.pos }

// Path implements syntax.Path for nodes of a parsed File.
type Path struct {
	file      *File
	leaf      syntax.Node
	ancestors []*Decl // innermost first
	pos       Position
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
func (p *Path) CompilationUnit() *syntax.CompilationUnit { return p.file.Unit }

// PathTo implements syntax.Path.
func (p *Path) PathTo(node syntax.Node) (syntax.Path, bool) {
	return p.file.PathTo(node)
}

// Pos is the start of the leaf.
func (p *Path) Pos() Position { return p.pos }

// String returns "filename:line:column".
func (p *Path) String() string {
	return p.file.Unit.Filename + ":" + p.pos.String()
}
