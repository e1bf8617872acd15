package resolver

import (
	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// ClassifierProvider is the lookup surface of the loaded classes.
type ClassifierProvider interface {
	// FindClass returns a class from the compiled classpath, or nil.
	FindClass(id classifier.ClassID) *classifier.Class
	// FindOwnClassifier returns a class declared by the sources currently
	// being compiled, or nil.  It is only consulted when FindClass misses.
	FindOwnClassifier(id classifier.ClassID) *classifier.Class
	// FindPackage reports whether a package with the given dotted name is
	// known.  Fully-qualified names and import strings are only searched
	// under packages reported here, so a provider must report the package of
	// every class it can return; otherwise explicit imports of those classes
	// are silently dropped.  classpath.Index reports every package prefix.
	FindPackage(name string) (*classifier.Package, bool)
}

// findClass looks up the given id on the classpath first, then in the
// sources.
func findClass(provider ClassifierProvider, id classifier.ClassID) *classifier.Class {
	if class := provider.FindClass(id); class != nil {
		return class
	}
	return provider.FindOwnClassifier(id)
}
