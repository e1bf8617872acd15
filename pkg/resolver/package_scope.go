package resolver

import (
	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// PackageScope resolves names against the top-level classes of the
// compilation unit's own package.
type PackageScope struct {
	env         *scopeEnv
	parent      func() Scope
	packageName func() string
}

// Parent implements part of the Scope interface.
func (s *PackageScope) Parent() Scope {
	return s.parent()
}

// FindClass implements part of the Scope interface.
func (s *PackageScope) FindClass(name string, segments []string) *classifier.Class {
	if class := findClass(s.env.provider, classifier.NewClassID(s.packageName(), name)); class != nil {
		s.env.hit("package", name, class)
		return resolvePathSegments(class, segments)
	}
	return parentFindClass(s, name, segments)
}

// String implements fmt.Stringer.
func (s *PackageScope) String() string {
	return "package " + s.packageName()
}

func (s *PackageScope) isScope() {}
