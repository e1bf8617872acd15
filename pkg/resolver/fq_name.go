package resolver

import (
	"strings"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// FindByFqName resolves an absolute dotted name.  Every split of segments
// into a package prefix and a class path is tried, shortest package first.
// A split is skipped when the provider does not know the package.  The first
// class of the class path is looked up as a top-level class, and the rest are
// nested class names (FindInner semantics).
func FindByFqName(provider ClassifierProvider, segments []string) *classifier.Class {
	for i := 0; i < len(segments)-1; i++ {
		pkg := strings.Join(segments[:i+1], ".")
		if _, ok := provider.FindPackage(pkg); !ok {
			continue
		}
		class := findClass(provider, classifier.NewClassID(pkg, segments[i+1]))
		if class == nil {
			continue
		}
		if found := class.FindInnerPath(segments[i+2:]); found != nil {
			return found
		}
	}
	return nil
}

// findByQualifiedName is FindByFqName over a dotted string.
func findByQualifiedName(provider ClassifierProvider, name string) *classifier.Class {
	return FindByFqName(provider, strings.Split(name, "."))
}

// resolvePathSegments applies the trailing segments of the original path to
// the class that the first segment resolved to.
func resolvePathSegments(class *classifier.Class, segments []string) *classifier.Class {
	if len(segments) <= 1 {
		return class
	}
	return class.FindInnerPath(segments[1:])
}
