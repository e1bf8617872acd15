package resolver

import (
	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// DefaultImplicitPackage is the package whose classes are visible in every
// compilation unit without an import.
const DefaultImplicitPackage = "java.lang"

// GlobalScope is the outermost scope.  It resolves fully-qualified names and
// the implicitly imported package.
type GlobalScope struct {
	env *scopeEnv
}

// Parent implements part of the Scope interface.  The global scope has no
// parent.
func (s *GlobalScope) Parent() Scope {
	return nil
}

// FindClass implements part of the Scope interface.
func (s *GlobalScope) FindClass(name string, segments []string) *classifier.Class {
	if class := FindByFqName(s.env.provider, segments); class != nil {
		s.env.hit("fq-name", name, class)
		return class
	}
	if class := findClass(s.env.provider, classifier.NewClassID(s.env.implicitPackage, name)); class != nil {
		s.env.hit("implicit", name, class)
		return resolvePathSegments(class, segments)
	}
	return nil
}

// String implements fmt.Stringer.
func (s *GlobalScope) String() string {
	return "global " + s.env.implicitPackage + ".*"
}

func (s *GlobalScope) isScope() {}
