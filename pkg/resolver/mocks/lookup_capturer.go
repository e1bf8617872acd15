package mocks

import (
	"testing"

	mock "github.com/stretchr/testify/mock"

	classifier "github.com/stackb/classifier-resolver/pkg/classifier"
)

// LookupCapturer is a ClassifierProvider mock backed by a fixed set of
// classes.  It records the order of FindPackage queries.
type LookupCapturer struct {
	Provider *ClassifierProvider
	// Packages are the package names queried, in order.
	Packages []string

	classes  map[classifier.ClassID]*classifier.Class
	packages map[string]bool
}

// NewLookupCapturer returns a capturer that knows the given classpath
// classes, their nested classes and their packages.
func NewLookupCapturer(t *testing.T, classes ...*classifier.Class) *LookupCapturer {
	c := &LookupCapturer{
		Provider: NewClassifierProvider(t),
		classes:  make(map[classifier.ClassID]*classifier.Class),
		packages: make(map[string]bool),
	}
	for _, class := range classes {
		class.Walk(func(inner *classifier.Class) {
			c.classes[inner.ID] = inner
		})
		pkg := class.ID.Package
		for pkg != "" {
			c.packages[pkg] = true
			pkg = parentPackage(pkg)
		}
	}

	c.Provider.
		On("FindClass", mock.Anything).
		Maybe().
		Return(func(id classifier.ClassID) *classifier.Class {
			return c.classes[id]
		})
	c.Provider.
		On("FindOwnClassifier", mock.Anything).
		Maybe().
		Return(nil)
	c.Provider.
		On("FindPackage", mock.Anything).
		Maybe().
		Return(func(name string) (*classifier.Package, bool) {
			c.Packages = append(c.Packages, name)
			if c.packages[name] {
				return &classifier.Package{Name: name}, true
			}
			return nil, false
		})

	return c
}

func parentPackage(pkg string) string {
	for i := len(pkg) - 1; i >= 0; i-- {
		if pkg[i] == '.' {
			return pkg[:i]
		}
	}
	return ""
}
