package resolver

import (
	"strings"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// CurrentClassAndInnerScope resolves names against the nested classes
// (inherited ones included) of the lexically enclosing classes.
type CurrentClassAndInnerScope struct {
	env              *scopeEnv
	parent           func() Scope
	enclosingClasses []*classifier.Class
}

// Parent implements part of the Scope interface.
func (s *CurrentClassAndInnerScope) Parent() Scope {
	return s.parent()
}

// FindClass implements part of the Scope interface.  Enclosing classes are
// tried outermost first.
func (s *CurrentClassAndInnerScope) FindClass(name string, segments []string) *classifier.Class {
	for _, enclosing := range s.enclosingClasses {
		if inner := enclosing.FindInner(name); inner != nil {
			s.env.hit("class", name, inner)
			return resolvePathSegments(inner, segments)
		}
	}
	return parentFindClass(s, name, segments)
}

// String implements fmt.Stringer.
func (s *CurrentClassAndInnerScope) String() string {
	names := make([]string, len(s.enclosingClasses))
	for i, c := range s.enclosingClasses {
		names[i] = c.ID.String()
	}
	return "class [" + strings.Join(names, ", ") + "]"
}

func (s *CurrentClassAndInnerScope) isScope() {}
