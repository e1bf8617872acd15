// Package classpath holds the classes known to a resolution run: the
// compiled classpath loaded from index files, and the classes declared by the
// sources being compiled.
package classpath

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"

	"github.com/stackb/classifier-resolver/pkg/classifier"
)

// ErrClassNotFound is returned when a class is neither on the classpath nor
// declared by the sources.
var ErrClassNotFound = errors.New("class not found")

var classTrieConfig = &trie.PathTrieConfig{
	Segmenter: classSegmenter,
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(x *Index) {
		x.logger = logger
	}
}

// Index implements resolver.ClassifierProvider.  Classes are keyed by the
// String form of their ClassID.  Nested classes are registered along with
// their outermost class.
type Index struct {
	logger zerolog.Logger

	classpath *trie.PathTrie
	sources   *trie.PathTrie
	packages  map[string]bool

	// unlinked holds the supertype ids of loaded classes until Link.
	unlinked map[*classifier.Class][]classifier.ClassID
}

// NewIndex constructs a new empty Index.
func NewIndex(options ...Option) *Index {
	x := &Index{
		logger:    zerolog.Nop(),
		classpath: trie.NewPathTrieWithConfig(classTrieConfig),
		sources:   trie.NewPathTrieWithConfig(classTrieConfig),
		packages:  make(map[string]bool),
		unlinked:  make(map[*classifier.Class][]classifier.ClassID),
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// PutClass registers a classpath class and its nested classes.
func (x *Index) PutClass(class *classifier.Class) {
	x.put(x.classpath, class)
}

// PutOwnClass registers a class declared by the sources, and its nested
// classes.
func (x *Index) PutOwnClass(class *classifier.Class) {
	x.put(x.sources, class)
}

func (x *Index) put(t *trie.PathTrie, class *classifier.Class) {
	class.Walk(func(c *classifier.Class) {
		if !t.Put(c.ID.String(), c) {
			x.logger.Debug().Stringer("class", c.ID).Msg("replaced duplicate class")
		}
	})
	for pkg := class.ID.Package; pkg != ""; pkg = parentPackage(pkg) {
		x.packages[pkg] = true
	}
}

// FindClass implements part of the resolver.ClassifierProvider interface.
func (x *Index) FindClass(id classifier.ClassID) *classifier.Class {
	return get(x.classpath, id)
}

// FindOwnClassifier implements part of the resolver.ClassifierProvider
// interface.
func (x *Index) FindOwnClassifier(id classifier.ClassID) *classifier.Class {
	return get(x.sources, id)
}

// FindPackage implements part of the resolver.ClassifierProvider interface.
// A package is known when some class is in it or in one of its
// subpackages.
func (x *Index) FindPackage(name string) (*classifier.Package, bool) {
	if !x.packages[name] {
		return nil, false
	}
	return &classifier.Package{Name: name}, true
}

// Lookup returns the class with the given id, preferring the classpath over
// the sources.
func (x *Index) Lookup(id classifier.ClassID) (*classifier.Class, error) {
	if class := x.FindClass(id); class != nil {
		return class, nil
	}
	if class := x.FindOwnClassifier(id); class != nil {
		return class, nil
	}
	return nil, fmt.Errorf("%s: %w", id, ErrClassNotFound)
}

// Classes lists the classpath and source classes in the given dotted
// package, its subpackages included, ordered by id.
func (x *Index) Classes(pkg string) []*classifier.Class {
	var classes []*classifier.Class
	seen := make(map[classifier.ClassID]bool)
	for _, t := range []*trie.PathTrie{x.classpath, x.sources} {
		t.Walk(func(key string, value interface{}) error {
			class := value.(*classifier.Class)
			if seen[class.ID] || !inPackage(class.ID.Package, pkg) {
				return nil
			}
			seen[class.ID] = true
			classes = append(classes, class)
			return nil
		})
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].ID.String() < classes[j].ID.String()
	})
	return classes
}

// Link assigns supertypes to the classes loaded from index files.  It
// returns the number of supertype references that could not be found; each
// is logged as a warning and left out.
func (x *Index) Link() int {
	var dangling int
	for class, ids := range x.unlinked {
		supertypes := make([]*classifier.Class, 0, len(ids))
		for _, id := range ids {
			super, err := x.Lookup(id)
			if err != nil {
				x.logger.Warn().Err(err).Stringer("class", class.ID).Msg("dangling supertype")
				dangling++
				continue
			}
			supertypes = append(supertypes, super)
		}
		class.SetSupertypes(supertypes...)
		delete(x.unlinked, class)
	}
	return dangling
}

func get(t *trie.PathTrie, id classifier.ClassID) *classifier.Class {
	if value := t.Get(id.String()); value != nil {
		return value.(*classifier.Class)
	}
	return nil
}

func inPackage(pkg, prefix string) bool {
	if prefix == "" {
		return true
	}
	return pkg == prefix || strings.HasPrefix(pkg, prefix+".")
}

func parentPackage(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[:i]
	}
	return ""
}

// classSegmenter segments class id keys at slash and dot separators. For
// example, "java/util/Map.Entry" -> ("java", 4), ("/util", 9), ("/Map", 13),
// (".Entry", -1) in successive calls.
func classSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexAny(path[start+1:], "/.")
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
