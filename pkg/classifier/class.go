package classifier

import (
	"fmt"
	"strings"
)

// Class is a class, interface, enum, record or annotation type.
type Class struct {
	// ID is the identity of the class.
	ID ClassID
	// Kind is the class kind.
	Kind Kind
	// TypeParameters holds the declared type parameter names.
	TypeParameters []string

	nested       []*Class
	nestedByName map[string]*Class

	supertypes      []*Class
	supertypeFunc   func() []*Class
	supertypesState supertypesState
}

type supertypesState int

const (
	supertypesPending supertypesState = iota
	supertypesComputing
	supertypesDone
)

// NewClass constructs a new class with the given id and kind.
func NewClass(id ClassID, kind Kind) *Class {
	return &Class{
		ID:              id,
		Kind:            kind,
		supertypesState: supertypesDone,
	}
}

// Name implements part of the Classifier interface.
func (c *Class) Name() string {
	return c.ID.SimpleName()
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return fmt.Sprintf("%s<%s>", c.ID.FqName(), c.Kind)
}

func (c *Class) isClassifier() {}

// AddNested registers a directly nested class.  The nested class id must be
// a child of c.ID.  A second class with the same simple name replaces the
// first.
func (c *Class) AddNested(inner *Class) error {
	if outer, ok := inner.ID.Outer(); !ok || outer != c.ID {
		return fmt.Errorf("%s is not nested in %s", inner.ID, c.ID)
	}
	if c.nestedByName == nil {
		c.nestedByName = make(map[string]*Class)
	}
	name := inner.ID.SimpleName()
	if prev, ok := c.nestedByName[name]; ok {
		for i, n := range c.nested {
			if n == prev {
				c.nested[i] = inner
			}
		}
	} else {
		c.nested = append(c.nested, inner)
	}
	c.nestedByName[name] = inner
	return nil
}

// NestedClasses returns the directly nested classes in declaration order.
func (c *Class) NestedClasses() []*Class {
	return c.nested
}

// SetSupertypes assigns the direct supertypes.
func (c *Class) SetSupertypes(supertypes ...*Class) {
	c.supertypes = supertypes
	c.supertypeFunc = nil
	c.supertypesState = supertypesDone
}

// SetSupertypeFunc assigns a function that computes the direct supertypes on
// first use.  While fn is running, Supertypes called on the same class
// returns nil.
func (c *Class) SetSupertypeFunc(fn func() []*Class) {
	c.supertypes = nil
	c.supertypeFunc = fn
	c.supertypesState = supertypesPending
}

// Supertypes returns the direct supertypes.
func (c *Class) Supertypes() []*Class {
	switch c.supertypesState {
	case supertypesComputing:
		return nil
	case supertypesPending:
		c.supertypesState = supertypesComputing
		c.supertypes = c.supertypeFunc()
		c.supertypeFunc = nil
		c.supertypesState = supertypesDone
	}
	return c.supertypes
}

// FindInnerClass looks up a directly nested class.  Supertypes are not
// consulted.
func (c *Class) FindInnerClass(name string) *Class {
	return c.nestedByName[name]
}

// FindInner looks up a nested class by simple name in c and then, depth first,
// in its supertypes.  Malformed (cyclic) supertype graphs are tolerated.
func (c *Class) FindInner(name string) *Class {
	return c.findInner(name, make(map[ClassID]bool))
}

func (c *Class) findInner(name string, visited map[ClassID]bool) *Class {
	if visited[c.ID] {
		return nil
	}
	visited[c.ID] = true

	if inner := c.FindInnerClass(name); inner != nil {
		return inner
	}
	for _, super := range c.Supertypes() {
		if inner := super.findInner(name, visited); inner != nil {
			return inner
		}
	}
	return nil
}

// FindInnerPath follows a chain of nested class names, each step with
// FindInner semantics.  An empty path returns c.
func (c *Class) FindInnerPath(segments []string) *Class {
	current := c
	for _, name := range segments {
		if current = current.FindInner(name); current == nil {
			return nil
		}
	}
	return current
}

// Walk calls fn for c and all transitively nested classes, outer first.
func (c *Class) Walk(fn func(*Class)) {
	fn(c)
	for _, inner := range c.nested {
		inner.Walk(fn)
	}
}

// Describe returns a multi-line tree of c and its nested classes, with
// supertypes.
func (c *Class) Describe() string {
	var buf strings.Builder
	c.describe(&buf, 0)
	return buf.String()
}

func (c *Class) describe(buf *strings.Builder, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(string(c.Kind))
	buf.WriteRune(' ')
	buf.WriteString(c.ID.String())
	if len(c.TypeParameters) > 0 {
		buf.WriteString("<" + strings.Join(c.TypeParameters, ", ") + ">")
	}
	if supers := c.Supertypes(); len(supers) > 0 {
		names := make([]string, len(supers))
		for i, s := range supers {
			names[i] = s.ID.String()
		}
		buf.WriteString(" : ")
		buf.WriteString(strings.Join(names, ", "))
	}
	buf.WriteRune('\n')
	nested := append([]*Class(nil), c.nested...)
	sortClasses(nested)
	for _, inner := range nested {
		inner.describe(buf, depth+1)
	}
}
