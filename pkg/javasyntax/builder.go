package javasyntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/stackb/classifier-resolver/pkg/syntax"
)

var declKinds = map[string]syntax.DeclKind{
	"class_declaration":                   syntax.KindClass,
	"interface_declaration":               syntax.KindInterface,
	"enum_declaration":                    syntax.KindEnum,
	"record_declaration":                  syntax.KindRecord,
	"annotation_type_declaration":         syntax.KindAnnotation,
	"method_declaration":                  syntax.KindMethod,
	"constructor_declaration":             syntax.KindConstructor,
	"compact_constructor_declaration":     syntax.KindConstructor,
	"annotation_type_element_declaration": syntax.KindMethod,
}

// builder converts a tree-sitter tree into a File.  The tree is closed after
// parsing, so nothing here may retain a *sitter.Node.
type builder struct {
	file *File
	src  []byte
}

func (b *builder) content(n *sitter.Node) string {
	return n.Content(b.src)
}

func (b *builder) namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}

// walk visits n with the given enclosing declarations (innermost first).
func (b *builder) walk(n *sitter.Node, scope []*Decl) {
	if n == nil {
		return
	}
	switch t := n.Type(); t {
	case "package_declaration":
		b.packageDecl(n)
		return
	case "import_declaration":
		b.importDecl(n)
		return
	case "type_identifier", "scoped_type_identifier", "generic_type":
		b.typeRef(n, scope)
		return
	case "annotation", "marker_annotation":
		b.annotation(n, scope)
		return
	default:
		if kind, ok := declKinds[t]; ok {
			b.decl(n, kind, scope)
			return
		}
	}
	for _, child := range b.namedChildren(n) {
		b.walk(child, scope)
	}
}

func (b *builder) packageDecl(n *sitter.Node) {
	for _, child := range b.namedChildren(n) {
		switch child.Type() {
		case "identifier", "scoped_identifier":
			b.file.Unit.Package = b.content(child)
		}
	}
}

func (b *builder) importDecl(n *sitter.Node) {
	var imp syntax.Import
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "static":
			imp.Static = true
		case "identifier", "scoped_identifier":
			imp.Name = b.content(child)
		case "asterisk":
			imp.Wildcard = true
		}
	}
	if imp.Name != "" {
		b.file.Unit.Imports = append(b.file.Unit.Imports, imp)
	}
}

func (b *builder) decl(n *sitter.Node, kind syntax.DeclKind, scope []*Decl) {
	decl := &Decl{kind: kind, pos: positionOf(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.name = b.content(name)
	}
	b.file.addPath(decl, scope, decl.pos)

	if kind.IsClass() {
		switch {
		case len(scope) == 0:
			b.file.decls = append(b.file.decls, decl)
		case scope[0].kind.IsClass():
			scope[0].nested = append(scope[0].nested, decl)
		}
	}

	inner := make([]*Decl, 0, len(scope)+1)
	inner = append(inner, decl)
	inner = append(inner, scope...)

	for _, child := range b.namedChildren(n) {
		switch child.Type() {
		case "identifier":
		case "type_parameters":
			decl.typeParams = b.typeParameters(child, decl, inner)
		case "superclass", "super_interfaces", "extends_interfaces":
			decl.supertypes = append(decl.supertypes, b.supertypeClause(child, inner)...)
		default:
			b.walk(child, inner)
		}
	}
}

// supertypeClause visits an extends or implements clause and returns the
// reference of each listed type.
func (b *builder) supertypeClause(n *sitter.Node, scope []*Decl) []syntax.Node {
	var refs []syntax.Node
	for _, child := range b.namedChildren(n) {
		if child.Type() == "type_list" {
			refs = append(refs, b.supertypeClause(child, scope)...)
			continue
		}
		if ref := b.typeRef(child, scope); ref != nil {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (b *builder) typeParameters(n *sitter.Node, owner *Decl, scope []*Decl) []*TypeParam {
	var params []*TypeParam
	for _, child := range b.namedChildren(n) {
		if child.Type() != "type_parameter" {
			continue
		}
		param := &TypeParam{owner: owner, pos: positionOf(child)}
		for _, part := range b.namedChildren(child) {
			switch part.Type() {
			case "type_identifier", "identifier":
				if param.name == "" {
					param.name = b.content(part)
				}
			case "type_bound":
				for _, bound := range b.namedChildren(part) {
					if ref := b.typeRef(bound, scope); ref != nil {
						param.bounds = append(param.bounds, ref)
					}
				}
			default:
				b.walk(part, scope)
			}
		}
		b.file.addPath(param, scope, param.pos)
		params = append(params, param)
	}
	return params
}

// typeRef records a reference for a type node and for the type arguments
// inside it.  Primitive and array types yield no reference of their own.
func (b *builder) typeRef(n *sitter.Node, scope []*Decl) *TypeRef {
	switch n.Type() {
	case "type_identifier", "scoped_type_identifier", "generic_type":
		text := b.content(n)
		if text == "var" {
			return nil
		}
		ref := &TypeRef{text: text, pos: positionOf(n)}
		b.file.refs = append(b.file.refs, b.file.addPath(ref, scope, ref.pos))
		b.typeArguments(n, scope)
		return ref
	case "annotated_type":
		var ref *TypeRef
		for _, child := range b.namedChildren(n) {
			switch child.Type() {
			case "annotation", "marker_annotation":
				b.annotation(child, scope)
			default:
				ref = b.typeRef(child, scope)
			}
		}
		return ref
	default:
		b.walk(n, scope)
		return nil
	}
}

func (b *builder) typeArguments(n *sitter.Node, scope []*Decl) {
	for _, child := range b.namedChildren(n) {
		switch child.Type() {
		case "type_arguments":
			for _, arg := range b.namedChildren(child) {
				b.typeRef(arg, scope)
			}
		case "scoped_type_identifier", "generic_type":
			b.typeArguments(child, scope)
		case "annotation", "marker_annotation":
			b.annotation(child, scope)
		}
	}
}

func (b *builder) annotation(n *sitter.Node, scope []*Decl) {
	if name := n.ChildByFieldName("name"); name != nil {
		ref := &TypeRef{text: "@" + b.content(name), pos: positionOf(n)}
		b.file.refs = append(b.file.refs, b.file.addPath(ref, scope, ref.pos))
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		b.walk(args, scope)
	}
}
