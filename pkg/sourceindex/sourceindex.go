// Package sourceindex registers the classes declared by Java sources on a
// classpath.Index, and persists them as index files.
package sourceindex

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/classpath"
	"github.com/stackb/classifier-resolver/pkg/javasyntax"
	"github.com/stackb/classifier-resolver/pkg/resolver"
)

// Indexer turns parsed files into own classes of an index.  Supertypes are
// resolved on first use with the given resolver, which must be backed by the
// same index.
type Indexer struct {
	logger   zerolog.Logger
	index    *classpath.Index
	resolver *resolver.ClassifierResolver
	classes  []*classifier.Class
}

// NewIndexer constructs a new Indexer.
func NewIndexer(logger zerolog.Logger, index *classpath.Index, r *resolver.ClassifierResolver) *Indexer {
	return &Indexer{
		logger:   logger,
		index:    index,
		resolver: r,
	}
}

// AddFile registers the top-level declarations of file, and their nested
// declarations, as own classes.
func (x *Indexer) AddFile(file *javasyntax.File) ([]*classifier.Class, error) {
	var classes []*classifier.Class
	for _, decl := range file.Decls() {
		if decl.Name() == "" {
			x.logger.Warn().Str("file", file.Unit.Filename).Stringer("pos", decl.Pos()).Msg("skipping anonymous declaration")
			continue
		}
		id := classifier.NewClassID(file.Unit.PackageName(), decl.Name())
		class, err := x.newClass(file, decl, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Unit.Filename, err)
		}
		x.index.PutOwnClass(class)
		classes = append(classes, class)
	}
	x.classes = append(x.classes, classes...)
	return classes, nil
}

// Classes returns the top-level classes added so far, in order.
func (x *Indexer) Classes() []*classifier.Class {
	return x.classes
}

func (x *Indexer) newClass(file *javasyntax.File, decl *javasyntax.Decl, id classifier.ClassID) (*classifier.Class, error) {
	class := classifier.NewClass(id, classifier.KindOf(decl.Kind()))
	class.TypeParameters = decl.TypeParameterNames()
	class.SetSupertypeFunc(func() []*classifier.Class {
		return x.resolveSupertypes(file, decl, id)
	})

	for _, nested := range decl.Nested() {
		inner, err := x.newClass(file, nested, id.Nested(nested.Name()))
		if err != nil {
			return nil, err
		}
		if err := class.AddNested(inner); err != nil {
			return nil, err
		}
	}
	return class, nil
}

func (x *Indexer) resolveSupertypes(file *javasyntax.File, decl *javasyntax.Decl, id classifier.ClassID) []*classifier.Class {
	var supertypes []*classifier.Class
	for _, ref := range decl.Supertypes() {
		path, ok := file.PathTo(ref)
		if !ok {
			continue
		}
		switch c := x.resolver.Resolve(path).(type) {
		case *classifier.Class:
			supertypes = append(supertypes, c)
		default:
			x.logger.Debug().
				Stringer("class", id).
				Str("supertype", ref.Text()).
				Msg("unresolved supertype")
		}
	}
	return supertypes
}

// ReadSourceIndexFile reads the class entries of a source index file.
func ReadSourceIndexFile(filename string) ([]*classpath.Entry, error) {
	return classpath.ReadIndexFile(filename)
}

// WriteSourceIndexFile writes classes, their nested classes and their
// resolved supertypes to an index file.
func WriteSourceIndexFile(filename string, classes []*classifier.Class) error {
	return classpath.WriteIndexFile(filename, classpath.EntriesOf(classes))
}
