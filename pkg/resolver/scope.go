package resolver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// Scope is one precedence level of the classifier resolution chain.  The set
// of implementations is closed; in query order they are
// CurrentClassAndInnerScope, SingleTypeImportScope, PackageScope,
// ImportOnDemandScope and GlobalScope.
type Scope interface {
	fmt.Stringer

	// Parent returns the next (less specific) scope, or nil for the global
	// scope.  Parents are constructed on first use.
	Parent() Scope

	// FindClass resolves name, the first of the given path segments.  The
	// remaining segments are resolved as nested classes of the hit.  Scopes
	// delegate to their parent on a miss unless stated otherwise.
	FindClass(name string, segments []string) *classifier.Class

	isScope()
}

// scopeEnv is the state shared by the scopes of one chain.
type scopeEnv struct {
	provider        ClassifierProvider
	logger          zerolog.Logger
	implicitPackage string
	report          func(*AmbiguousImportError)
}

func (e *scopeEnv) hit(scope, name string, class *classifier.Class) {
	e.logger.Debug().
		Str("scope", scope).
		Str("name", name).
		Stringer("class", class.ID).
		Msg("scope hit")
}

func (e *scopeEnv) ambiguous(err *AmbiguousImportError) {
	e.logger.Debug().Err(err).Msg("ambiguous import")
	if e.report != nil {
		e.report(err)
	}
}

// lazyScope memoizes a scope constructor.
func lazyScope(fn func() Scope) func() Scope {
	return sync.OnceValue(fn)
}

// parentFindClass delegates to the parent of s, if any.
func parentFindClass(s Scope, name string, segments []string) *classifier.Class {
	if parent := s.Parent(); parent != nil {
		return parent.FindClass(name, segments)
	}
	return nil
}

// NewResolutionScope builds the scope chain and returns its innermost scope.
// Only the innermost scope is constructed eagerly.  The import and package
// functions are called at most once, when the scope that needs them is first
// queried.
func NewResolutionScope(
	provider ClassifierProvider,
	logger zerolog.Logger,
	implicitPackage string,
	report func(*AmbiguousImportError),
	enclosingClasses []*classifier.Class,
	wildcardImports func() []string,
	packageName func() string,
	imports func() []string,
) Scope {
	env := &scopeEnv{
		provider:        provider,
		logger:          logger,
		implicitPackage: implicitPackage,
		report:          report,
	}

	globalScope := lazyScope(func() Scope {
		return &GlobalScope{env: env}
	})
	importOnDemandScope := lazyScope(func() Scope {
		return &ImportOnDemandScope{env: env, parent: globalScope, wildcardImports: sync.OnceValue(wildcardImports)}
	})
	packageScope := lazyScope(func() Scope {
		return &PackageScope{env: env, parent: importOnDemandScope, packageName: sync.OnceValue(packageName)}
	})
	singleTypeImportScope := lazyScope(func() Scope {
		return &SingleTypeImportScope{env: env, parent: packageScope, imports: sync.OnceValue(imports)}
	})

	return &CurrentClassAndInnerScope{
		env:              env,
		parent:           singleTypeImportScope,
		enclosingClasses: enclosingClasses,
	}
}

// DescribeScopes prints the chain starting at s, one scope per line.
// Describing a chain constructs all of its scopes.
func DescribeScopes(s Scope) string {
	var buf strings.Builder
	for i := 0; s != nil; i++ {
		buf.WriteString(fmt.Sprintf("--- layer %d ---\n", i))
		buf.WriteString(s.String())
		buf.WriteRune('\n')
		s = s.Parent()
	}
	return buf.String()
}
