package resolver

import (
	"strings"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// SingleTypeImportScope resolves names against `import a.b.Name;`
// declarations.
type SingleTypeImportScope struct {
	env     *scopeEnv
	parent  func() Scope
	imports func() []string
}

// Parent implements part of the Scope interface.
func (s *SingleTypeImportScope) Parent() Scope {
	return s.parent()
}

// FindClass implements part of the Scope interface.  With no matching import
// the parent is consulted.  With more than one distinct matching import the
// name is ambiguous and resolution fails here.
func (s *SingleTypeImportScope) FindClass(name string, segments []string) *classifier.Class {
	imports := dedupe(s.imports())
	switch len(imports) {
	case 0:
		return parentFindClass(s, name, segments)
	case 1:
		class := findByQualifiedName(s.env.provider, imports[0])
		if class == nil {
			return nil
		}
		s.env.hit("single-type-import", name, class)
		return resolvePathSegments(class, segments)
	default:
		s.env.ambiguous(&AmbiguousImportError{
			Name:       name,
			Kind:       SingleTypeImport,
			Candidates: imports,
		})
		return nil
	}
}

// String implements fmt.Stringer.
func (s *SingleTypeImportScope) String() string {
	return "single-type-import [" + strings.Join(s.imports(), ", ") + "]"
}

func (s *SingleTypeImportScope) isScope() {}

// dedupe removes repeated strings, keeping the first occurrence.
func dedupe(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}
