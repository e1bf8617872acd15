// Package syntax describes the view of a parsed Java compilation unit that the
// classifier resolver consumes.  Parsing itself happens elsewhere (see
// pkg/javasyntax); implementations only need to expose ancestry.
package syntax

import (
	"fmt"
	"strings"
)

// RootPackage is the package name of a compilation unit that does not declare
// one.
const RootPackage = "<root>"

// Node is a syntax tree node.  Nodes are compared by identity: implementations
// must be pointer types so that two textually equal nodes at different source
// locations are distinct map keys.
type Node interface {
	// Text returns the source form of the node.
	Text() string
}

// DeclKind says what kind of declaration a Decl is.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
	KindMethod
	KindConstructor
)

var declKindNames = map[DeclKind]string{
	KindClass:       "class",
	KindInterface:   "interface",
	KindEnum:        "enum",
	KindRecord:      "record",
	KindAnnotation:  "annotation",
	KindMethod:      "method",
	KindConstructor: "constructor",
}

// String implements fmt.Stringer.
func (k DeclKind) String() string {
	if name, ok := declKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DeclKind(%d)", int(k))
}

// IsClass reports whether the kind declares a classifier (class, interface,
// enum, record or annotation type).
func (k DeclKind) IsClass() bool {
	return k >= KindClass && k <= KindAnnotation
}

// IsMethod reports whether the kind declares a method or constructor.
func (k DeclKind) IsMethod() bool {
	return k == KindMethod || k == KindConstructor
}

// Decl is a declaration node that may appear as an ancestor of a leaf.
type Decl interface {
	Node
	// Kind is the declaration kind.
	Kind() DeclKind
	// Name is the simple name of the declaration.
	Name() string
	// TypeParameters is the declared type parameter list, possibly empty.
	TypeParameters() []TypeParameterNode
	// Supertypes returns the type nodes of the extends and implements clauses.
	// Methods return nil.
	Supertypes() []Node
}

// TypeParameterNode is a single declared type parameter, e.g. `T extends
// Comparable<T>`.
type TypeParameterNode interface {
	Node
	// Name is the declared name, e.g. "T".
	Name() string
	// Bounds are the type nodes of the bound clause.
	Bounds() []Node
}

// Path is an ancestry chain from a compilation unit down to a leaf node.
type Path interface {
	// Leaf is the node the path points at.
	Leaf() Node
	// Ancestors returns the declarations enclosing the leaf, innermost first.
	// If the leaf is itself a declaration it is not included.
	Ancestors() []Decl
	// CompilationUnit is the unit the path belongs to.
	CompilationUnit() *CompilationUnit
	// PathTo re-derives a path for another node of the same unit.
	PathTo(node Node) (Path, bool)
}

// CompilationUnit carries the file-level context of a path.
type CompilationUnit struct {
	// Filename is the source file name, informational.
	Filename string
	// Package is the declared package, or empty.
	Package string
	// Imports is the import list, in source order.
	Imports []Import
}

// PackageName returns the declared package, or RootPackage when there is
// none.
func (u *CompilationUnit) PackageName() string {
	if u == nil || u.Package == "" {
		return RootPackage
	}
	return u.Package
}

// Import is a single import declaration.
type Import struct {
	// Name is the imported name, without a trailing ".*".
	Name string
	// Wildcard is true for on-demand imports (`import a.b.*;`).
	Wildcard bool
	// Static is true for `import static ...`.
	Static bool
}

// String returns the import as it would be written in source.
func (i Import) String() string {
	name := i.Name
	if i.Wildcard {
		name += ".*"
	}
	if i.Static {
		return "import static " + name
	}
	return "import " + name
}

// WildcardImports returns the on-demand import prefixes, each with a trailing
// dot ("java.util.").
func (u *CompilationUnit) WildcardImports() []string {
	if u == nil {
		return nil
	}
	var prefixes []string
	for _, imp := range u.Imports {
		if imp.Wildcard {
			prefixes = append(prefixes, imp.Name+".")
		}
	}
	return prefixes
}

// SingleTypeImports returns the non-wildcard imports whose last segment is
// the given simple name.
func (u *CompilationUnit) SingleTypeImports(simpleName string) []string {
	if u == nil {
		return nil
	}
	suffix := "." + simpleName
	var names []string
	for _, imp := range u.Imports {
		if imp.Wildcard {
			continue
		}
		if imp.Name != suffix && strings.HasSuffix(imp.Name, suffix) {
			names = append(names, imp.Name)
		}
	}
	return names
}
