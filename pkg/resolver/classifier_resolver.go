package resolver

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// AmbiguityReporter receives ambiguous import diagnostics.  path is the
// reference being resolved.
type AmbiguityReporter func(path syntax.Path, err *AmbiguousImportError)

// Option configures a ClassifierResolver.
type Option func(*ClassifierResolver)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *ClassifierResolver) {
		r.logger = logger
	}
}

// WithImplicitPackage sets the package visible without import.  The default
// is DefaultImplicitPackage.
func WithImplicitPackage(pkg string) Option {
	return func(r *ClassifierResolver) {
		r.implicitPackage = pkg
	}
}

// WithAmbiguityReporter installs a callback for ambiguous imports.  The
// ambiguous name still resolves to nothing.
func WithAmbiguityReporter(reporter AmbiguityReporter) Option {
	return func(r *ClassifierResolver) {
		r.reporter = reporter
	}
}

// Stats counts resolver activity.
type Stats struct {
	// Resolved counts computations that found a classifier.
	Resolved int
	// Unresolved counts computations that found nothing.
	Unresolved int
	// CacheHits counts calls answered from the cache.
	CacheHits int
}

// resolution is a cache entry.  A nil classifier is a memoized failure.
type resolution struct {
	classifier classifier.Classifier
}

// ClassifierResolver maps type references to the classes or type parameters
// they denote.  Results, failures included, are cached per leaf node for the
// lifetime of the resolver.  A ClassifierResolver is not safe for concurrent
// use.
type ClassifierResolver struct {
	provider        ClassifierProvider
	logger          zerolog.Logger
	implicitPackage string
	reporter        AmbiguityReporter
	cache           map[syntax.Node]resolution
	stats           Stats
}

// NewClassifierResolver constructs a new resolver over the given provider.
func NewClassifierResolver(provider ClassifierProvider, options ...Option) *ClassifierResolver {
	r := &ClassifierResolver{
		provider:        provider,
		logger:          zerolog.Nop(),
		implicitPackage: DefaultImplicitPackage,
		cache:           make(map[syntax.Node]resolution),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Resolve returns the classifier the leaf of path refers to, or nil.
// Repeated calls for the same leaf return the cached result.
func (r *ClassifierResolver) Resolve(path syntax.Path) classifier.Classifier {
	leaf := path.Leaf()
	if entry, ok := r.cache[leaf]; ok {
		r.stats.CacheHits++
		return entry.classifier
	}

	result := r.tryToResolve(path)
	r.cache[leaf] = resolution{classifier: result}

	if result == nil {
		r.stats.Unresolved++
		r.logger.Debug().Str("ref", leaf.Text()).Msg("unresolved")
	} else {
		r.stats.Resolved++
		r.logger.Debug().Str("ref", leaf.Text()).Stringer("classifier", result).Msg("resolved")
	}
	return result
}

// Stats returns a snapshot of the resolver counters.
func (r *ClassifierResolver) Stats() Stats {
	return r.stats
}

// CacheSize is the number of memoized leaves.
func (r *ClassifierResolver) CacheSize() int {
	return len(r.cache)
}

func (r *ClassifierResolver) tryToResolve(path syntax.Path) classifier.Classifier {
	segments := PathSegments(path.Leaf().Text())
	firstSegment := segments[0]
	unit := path.CompilationUnit()

	var report func(*AmbiguousImportError)
	if r.reporter != nil {
		report = func(err *AmbiguousImportError) {
			r.reporter(path, err)
		}
	}

	scope := NewResolutionScope(
		r.provider,
		r.logger,
		r.implicitPackage,
		report,
		EnclosingClasses(r.provider, path),
		unit.WildcardImports,
		unit.PackageName,
		func() []string { return unit.SingleTypeImports(firstSegment) },
	)

	if class := scope.FindClass(firstSegment, segments); class != nil {
		return class
	}
	if tp := r.resolveTypeParameter(path); tp != nil {
		return tp
	}
	return nil
}

// resolveTypeParameter searches the type parameters of every class and method
// declaration on the path, innermost first, for one named exactly like the
// leaf text.
func (r *ClassifierResolver) resolveTypeParameter(path syntax.Path) *classifier.TypeParameter {
	name := path.Leaf().Text()
	for _, decl := range path.Ancestors() {
		if !decl.Kind().IsClass() && !decl.Kind().IsMethod() {
			continue
		}
		for _, tp := range decl.TypeParameters() {
			if tp.Name() != name {
				continue
			}
			tpPath, ok := path.PathTo(tp)
			if !ok {
				r.logger.Warn().Str("name", name).Str("decl", decl.Name()).Msg("no path to type parameter")
			}
			return classifier.NewTypeParameter(tp, decl, tpPath)
		}
	}
	return nil
}

// PathSegments splits the text of a type reference into its dotted segments.
// Type arguments ("<...>") and an annotation marker ("@") are removed first.
// Type arguments are removed wherever they appear, so "Outer<T>.Inner" keeps
// both segments.
func PathSegments(text string) []string {
	text = stripTypeArguments(text)
	if i := strings.Index(text, "@"); i >= 0 {
		text = text[i+1:]
	}
	segments := strings.Split(strings.TrimSpace(text), ".")
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}
	return segments
}

// stripTypeArguments drops every balanced "<...>" group.  An unclosed group
// runs to the end of the text.
func stripTypeArguments(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
