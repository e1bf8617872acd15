package resolver

import (
	"fmt"
	"strings"
)

// ImportKind distinguishes the two kinds of import that can be ambiguous.
type ImportKind string

const (
	SingleTypeImport ImportKind = "single-type"
	OnDemandImport   ImportKind = "on-demand"
)

// AmbiguousImportError describes a name that more than one import of the
// same kind brings into scope.  The resolver does not return it; it is handed
// to the reporter configured with WithAmbiguityReporter and the name resolves
// to nothing.
type AmbiguousImportError struct {
	// Name is the simple name being resolved.
	Name string
	// Kind is the kind of the competing imports.
	Kind ImportKind
	// Candidates are the competing import names (single-type) or the
	// fully-qualified names of the competing classes (on-demand).
	Candidates []string
}

func (e *AmbiguousImportError) Error() string {
	return fmt.Sprintf("found multiple matches for %q (%s imports): %s", e.Name, e.Kind, strings.Join(e.Candidates, ", "))
}
