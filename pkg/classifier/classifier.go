// Package classifier models the entities a type name can resolve to: classes
// and type parameters.
package classifier

import (
	"fmt"
	"sort"

	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// Classifier is a resolvable type-level entity.  The set of implementations is
// closed: *Class and *TypeParameter.
type Classifier interface {
	fmt.Stringer
	// Name is the simple name.
	Name() string
	isClassifier()
}

// Kind is the kind of a class.
type Kind string

const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindRecord     Kind = "record"
	KindAnnotation Kind = "annotation"
)

// KindOf maps a declaration kind to a class kind.
func KindOf(k syntax.DeclKind) Kind {
	switch k {
	case syntax.KindInterface:
		return KindInterface
	case syntax.KindEnum:
		return KindEnum
	case syntax.KindRecord:
		return KindRecord
	case syntax.KindAnnotation:
		return KindAnnotation
	default:
		return KindClass
	}
}

// Package is a known package.
type Package struct {
	// Name is the dotted package name.
	Name string
}

// String implements fmt.Stringer.
func (p *Package) String() string {
	return p.Name
}

// TypeParameter is a type parameter bound to the class or method declaration
// that introduced it.
type TypeParameter struct {
	// Node is the type parameter node itself.
	Node syntax.TypeParameterNode
	// Owner is the declaration whose type parameter list contains Node.
	Owner syntax.Decl
	// Path is the path to Node.
	Path syntax.Path
}

// NewTypeParameter constructs a new TypeParameter.
func NewTypeParameter(node syntax.TypeParameterNode, owner syntax.Decl, path syntax.Path) *TypeParameter {
	return &TypeParameter{Node: node, Owner: owner, Path: path}
}

// Name implements part of the Classifier interface.
func (t *TypeParameter) Name() string {
	return t.Node.Name()
}

// Bounds returns the source text of each bound.
func (t *TypeParameter) Bounds() []string {
	var bounds []string
	for _, b := range t.Node.Bounds() {
		bounds = append(bounds, b.Text())
	}
	return bounds
}

// String implements fmt.Stringer.
func (t *TypeParameter) String() string {
	return fmt.Sprintf("%s<%s %s>", t.Name(), t.Owner.Kind(), t.Owner.Name())
}

func (t *TypeParameter) isClassifier() {}

// sortClasses orders classes by id.
func sortClasses(classes []*Class) {
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].ID.FqName() < classes[j].ID.FqName()
	})
}
