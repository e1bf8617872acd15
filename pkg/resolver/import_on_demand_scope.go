package resolver

import (
	"strings"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// ImportOnDemandScope resolves names against `import a.b.*;` declarations.
type ImportOnDemandScope struct {
	env             *scopeEnv
	parent          func() Scope
	wildcardImports func() []string
}

// Parent implements part of the Scope interface.
func (s *ImportOnDemandScope) Parent() Scope {
	return s.parent()
}

// FindClass implements part of the Scope interface.  Every wildcard prefix is
// tried.  Exactly one distinct class must result.  If several do, the name is
// ambiguous and resolution fails here; if none do, the parent is consulted.
func (s *ImportOnDemandScope) FindClass(name string, segments []string) *classifier.Class {
	var candidates []*classifier.Class
	seen := make(map[*classifier.Class]bool)
	for _, prefix := range s.wildcardImports() {
		class := findByQualifiedName(s.env.provider, prefix+name)
		if class == nil || seen[class] {
			continue
		}
		seen[class] = true
		candidates = append(candidates, class)
	}

	switch len(candidates) {
	case 0:
		return parentFindClass(s, name, segments)
	case 1:
		s.env.hit("import-on-demand", name, candidates[0])
		return resolvePathSegments(candidates[0], segments)
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.ID.FqName()
		}
		s.env.ambiguous(&AmbiguousImportError{
			Name:       name,
			Kind:       OnDemandImport,
			Candidates: names,
		})
		return nil
	}
}

// String implements fmt.Stringer.
func (s *ImportOnDemandScope) String() string {
	prefixes := s.wildcardImports()
	patterns := make([]string, len(prefixes))
	for i, prefix := range prefixes {
		patterns[i] = prefix + "*"
	}
	return "import-on-demand [" + strings.Join(patterns, ", ") + "]"
}

func (s *ImportOnDemandScope) isScope() {}
