package resolver

import (
	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// EnclosingClasses returns the classes lexically enclosing the leaf of path,
// outermost first.  Class declarations whose extends or implements clause
// holds the leaf are skipped while they are the innermost ones, so that a
// supertype reference does not see members of the class that declares it.
//
// If the outermost class is unknown the result is empty.  If a nested class
// is unknown the classes resolved so far are returned.
func EnclosingClasses(provider ClassifierProvider, path syntax.Path) []*classifier.Class {
	leaf := path.Leaf()

	var names []string
	skipping := true
	for _, decl := range path.Ancestors() {
		if !decl.Kind().IsClass() {
			continue
		}
		if skipping && containsNode(decl.Supertypes(), leaf) {
			continue
		}
		skipping = false
		names = append(names, decl.Name())
	}
	if len(names) == 0 {
		return nil
	}

	// outermost first
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	outermost := findClass(provider, classifier.NewClassID(path.CompilationUnit().PackageName(), names[0]))
	if outermost == nil {
		return nil
	}

	classes := []*classifier.Class{outermost}
	current := outermost
	for _, name := range names[1:] {
		if current = current.FindInnerClass(name); current == nil {
			return classes
		}
		classes = append(classes, current)
	}
	return classes
}

func containsNode(nodes []syntax.Node, node syntax.Node) bool {
	for _, n := range nodes {
		if n == node {
			return true
		}
	}
	return false
}
