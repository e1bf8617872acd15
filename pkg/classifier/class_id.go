package classifier

import (
	"strings"

	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// ClassID identifies a class by package and relative name.  The relative name
// of a nested class is dotted ("Map.Entry").  The unnamed package is the empty
// string.  ClassID is comparable and is used as a map key.
type ClassID struct {
	// Package is the dotted package name, empty for the unnamed package.
	Package string
	// Name is the dotted name relative to the package.
	Name string
}

// NewClassID builds a ClassID.  The syntax.RootPackage pseudo-name denotes
// the unnamed package.
func NewClassID(pkg, name string) ClassID {
	if pkg == syntax.RootPackage {
		pkg = ""
	}
	return ClassID{Package: pkg, Name: name}
}

// ParseClassID parses the String form of a ClassID: the package with slashes,
// a final slash, and the relative name ("java/util/Map.Entry").  A string
// without a slash is in the unnamed package.
func ParseClassID(s string) ClassID {
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return ClassID{Name: s}
	}
	return ClassID{
		Package: strings.ReplaceAll(s[:i], "/", "."),
		Name:    s[i+1:],
	}
}

// String implements fmt.Stringer.
func (id ClassID) String() string {
	if id.Package == "" {
		return id.Name
	}
	return strings.ReplaceAll(id.Package, ".", "/") + "/" + id.Name
}

// FqName is the fully qualified dotted name ("java.util.Map.Entry").
func (id ClassID) FqName() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "." + id.Name
}

// SimpleName is the last segment of the relative name.
func (id ClassID) SimpleName() string {
	if i := strings.LastIndex(id.Name, "."); i >= 0 {
		return id.Name[i+1:]
	}
	return id.Name
}

// IsNested reports whether the id names a nested class.
func (id ClassID) IsNested() bool {
	return strings.Contains(id.Name, ".")
}

// Outer returns the id of the directly enclosing class.
func (id ClassID) Outer() (ClassID, bool) {
	i := strings.LastIndex(id.Name, ".")
	if i < 0 {
		return ClassID{}, false
	}
	return ClassID{Package: id.Package, Name: id.Name[:i]}, true
}

// Nested returns the id of the nested class with the given simple name.
func (id ClassID) Nested(name string) ClassID {
	return ClassID{Package: id.Package, Name: id.Name + "." + name}
}

// IsZero reports whether id is the zero value.
func (id ClassID) IsZero() bool {
	return id.Package == "" && id.Name == ""
}
