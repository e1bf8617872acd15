package resolver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/resolver"
	"github.com/stackb/classifier-resolver/pkg/resolver/mocks"
	"github.com/stackb/classifier-resolver/pkg/syntax"
	"github.com/stackb/classifier-resolver/pkg/syntax/syntaxtest"
	"github.com/stackb/classifier-resolver/pkg/testutil"
)

func newClass(pkg, name string) *classifier.Class {
	return classifier.NewClass(classifier.NewClassID(pkg, name), classifier.KindClass)
}

func addNested(outer *classifier.Class, name string) *classifier.Class {
	inner := classifier.NewClass(outer.ID.Nested(name), classifier.KindClass)
	if err := outer.AddNested(inner); err != nil {
		panic(err)
	}
	return inner
}

func classID(c classifier.Classifier) string {
	if class, ok := c.(*classifier.Class); ok {
		return class.ID.String()
	}
	if c == nil {
		return "<nil>"
	}
	return c.String()
}

func TestResolveCachesResults(t *testing.T) {
	a := newClass("com.foo", "A")
	lookups := mocks.NewLookupCapturer(t, a)
	r := resolver.NewClassifierResolver(lookups.Provider, resolver.WithLogger(testutil.NewTestLogger(t)))
	unit := syntaxtest.Unit("com.foo")

	leaf := syntaxtest.NewRef("A")
	path := syntaxtest.NewPath(unit, leaf, syntaxtest.Class("Main"))

	first := r.Resolve(path)
	require.Equal(t, "com/foo/A", classID(first))
	calls := len(lookups.Provider.Calls)

	second := r.Resolve(path)
	require.True(t, first == second, "repeated resolution must return the identical classifier")
	require.Len(t, lookups.Provider.Calls, calls, "cached resolution must not consult the provider")

	missing := syntaxtest.NewPath(unit, syntaxtest.NewRef("Missing"), syntaxtest.Class("Main"))
	require.Nil(t, r.Resolve(missing))
	calls = len(lookups.Provider.Calls)
	require.Nil(t, r.Resolve(missing))
	require.Len(t, lookups.Provider.Calls, calls, "a failed resolution is memoized")

	// same text, different node
	other := syntaxtest.NewPath(unit, syntaxtest.NewRef("A"), syntaxtest.Class("Main"))
	require.Equal(t, "com/foo/A", classID(r.Resolve(other)))
	require.Greater(t, len(lookups.Provider.Calls), calls)

	if diff := cmp.Diff(resolver.Stats{Resolved: 2, Unresolved: 1, CacheHits: 2}, r.Stats()); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, r.CacheSize())
}

func TestResolveNestedMemberBeatsPackageClass(t *testing.T) {
	main := newClass("com.foo", "Main")
	nested := addNested(main, "Helper")
	topLevel := newClass("com.foo", "Helper")

	lookups := mocks.NewLookupCapturer(t, main, topLevel)
	r := resolver.NewClassifierResolver(lookups.Provider)

	path := syntaxtest.NewPath(syntaxtest.Unit("com.foo"), syntaxtest.NewRef("Helper"), syntaxtest.Class("Main"))
	got := r.Resolve(path)
	require.True(t, got == classifier.Classifier(nested), "got %v", got)
}

func TestResolveSingleTypeImportAmbiguity(t *testing.T) {
	for name, tc := range map[string]struct {
		imports      []string
		want         string
		wantReported []string
	}{
		"a only": {
			imports: []string{"a.Foo"},
			want:    "a/Foo",
		},
		"b only": {
			imports: []string{"b.Foo"},
			want:    "b/Foo",
		},
		"both": {
			imports:      []string{"a.Foo", "b.Foo"},
			want:         "<nil>",
			wantReported: []string{"found multiple matches for \"Foo\" (single-type imports): a.Foo, b.Foo"},
		},
		"duplicate import is not ambiguous": {
			imports: []string{"a.Foo", "a.Foo"},
			want:    "a/Foo",
		},
		"unrelated import is ignored": {
			imports: []string{"a.Foo", "b.Bar"},
			want:    "a/Foo",
		},
	} {
		t.Run(name, func(t *testing.T) {
			lookups := mocks.NewLookupCapturer(t,
				newClass("a", "Foo"),
				newClass("b", "Foo"),
				newClass("b", "Bar"),
				// the package class would win if ambiguity fell through
				newClass("app", "Foo"),
			)
			var reported []string
			r := resolver.NewClassifierResolver(lookups.Provider,
				resolver.WithAmbiguityReporter(func(path syntax.Path, err *resolver.AmbiguousImportError) {
					reported = append(reported, err.Error())
				}))
			path := syntaxtest.NewPath(syntaxtest.Unit("app", tc.imports...), syntaxtest.NewRef("Foo"))

			got := classID(r.Resolve(path))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantReported, reported); diff != "" {
				t.Errorf("reported (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveImportOnDemandAmbiguity(t *testing.T) {
	for name, tc := range map[string]struct {
		imports []string
		want    string
	}{
		"one wildcard matches": {
			imports: []string{"a.*", "c.*"},
			want:    "a/Foo",
		},
		"two wildcards match": {
			imports: []string{"a.*", "b.*"},
			want:    "<nil>",
		},
		"same wildcard twice": {
			imports: []string{"a.*", "a.*"},
			want:    "a/Foo",
		},
		"no wildcard matches falls through to global": {
			imports: []string{"c.*"},
			want:    "java/lang/Foo",
		},
		"single-type import beats wildcards": {
			imports: []string{"a.*", "b.*", "b.Foo"},
			want:    "b/Foo",
		},
	} {
		t.Run(name, func(t *testing.T) {
			lookups := mocks.NewLookupCapturer(t,
				newClass("a", "Foo"),
				newClass("b", "Foo"),
				newClass("c", "Bar"),
				newClass("java.lang", "Foo"),
			)
			r := resolver.NewClassifierResolver(lookups.Provider)
			path := syntaxtest.NewPath(syntaxtest.Unit("app", tc.imports...), syntaxtest.NewRef("Foo"))

			got := classID(r.Resolve(path))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveInheritedNestedClass(t *testing.T) {
	a := newClass("p", "A")
	inner := addNested(a, "Inner")
	b := newClass("p", "B")
	b.SetSupertypes(a)

	lookups := mocks.NewLookupCapturer(t, a, b)
	r := resolver.NewClassifierResolver(lookups.Provider)

	path := syntaxtest.NewPath(syntaxtest.Unit("p"), syntaxtest.NewRef("B.Inner"))
	got := r.Resolve(path)
	require.True(t, got == classifier.Classifier(inner), "got %v", got)
}

func TestResolveSupertypeClauseSkipsDeclaringClass(t *testing.T) {
	// class C extends Base { class Base {} }: the supertype must be p.Base
	c := newClass("p", "C")
	addNested(c, "Base")
	base := newClass("p", "Base")

	lookups := mocks.NewLookupCapturer(t, c, base)
	r := resolver.NewClassifierResolver(lookups.Provider)

	ref := syntaxtest.NewRef("Base")
	decl := syntaxtest.Class("C").Extends(ref)
	got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("p"), ref, decl))
	require.True(t, got == classifier.Classifier(base), "got %v", got)

	// a use of Base inside the body sees the nested class
	body := syntaxtest.NewRef("Base")
	got = r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("p"), body, decl))
	require.Equal(t, "p/C.Base", classID(got))
}

func TestResolveSelfReferenceInExtends(t *testing.T) {
	// class C extends C
	c := newClass("p", "C")
	lookups := mocks.NewLookupCapturer(t, c)

	ref := syntaxtest.NewRef("C")
	path := syntaxtest.NewPath(syntaxtest.Unit("p"), ref, syntaxtest.Class("C").Extends(ref))

	require.Empty(t, resolver.EnclosingClasses(lookups.Provider, path))

	r := resolver.NewClassifierResolver(lookups.Provider)
	require.Equal(t, "p/C", classID(r.Resolve(path)))
}

func TestEnclosingClasses(t *testing.T) {
	for name, tc := range map[string]struct {
		classes func() []*classifier.Class
		decls   []string // outermost first
		want    []string
		resolve string
	}{
		"nested step unknown keeps outer classes": {
			classes: func() []*classifier.Class {
				outer := newClass("p", "Outer")
				addNested(outer, "Helper")
				return []*classifier.Class{outer}
			},
			decls:   []string{"Outer", "Local"},
			want:    []string{"p/Outer"},
			resolve: "p/Outer.Helper",
		},
		"outermost unknown": {
			classes: func() []*classifier.Class {
				outer := newClass("p", "Outer")
				addNested(outer, "Helper")
				return []*classifier.Class{outer}
			},
			decls:   []string{"Nope", "Outer"},
			want:    []string{},
			resolve: "<nil>",
		},
		"outer enclosing class wins": {
			classes: func() []*classifier.Class {
				outer := newClass("p", "Outer")
				addNested(outer, "Helper")
				mid := addNested(outer, "Mid")
				addNested(mid, "Helper")
				return []*classifier.Class{outer}
			},
			decls:   []string{"Outer", "Mid"},
			want:    []string{"p/Outer", "p/Outer.Mid"},
			resolve: "p/Outer.Helper",
		},
	} {
		t.Run(name, func(t *testing.T) {
			lookups := mocks.NewLookupCapturer(t, tc.classes()...)

			decls := make([]*syntaxtest.Decl, len(tc.decls))
			for i, decl := range tc.decls {
				decls[i] = syntaxtest.Class(decl)
			}
			path := syntaxtest.NewPath(syntaxtest.Unit("p"), syntaxtest.NewRef("Helper"), decls...)

			got := []string{}
			for _, c := range resolver.EnclosingClasses(lookups.Provider, path) {
				got = append(got, classID(c))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("enclosing classes (-want +got):\n%s", diff)
			}

			r := resolver.NewClassifierResolver(lookups.Provider)
			if diff := cmp.Diff(tc.resolve, classID(r.Resolve(path))); diff != "" {
				t.Errorf("resolve (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveFullyQualifiedFallback(t *testing.T) {
	outer := newClass("com.example", "Outer")
	inner := addNested(outer, "Inner")

	lookups := mocks.NewLookupCapturer(t, outer)
	r := resolver.NewClassifierResolver(lookups.Provider)

	got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("app"), syntaxtest.NewRef("com.example.Outer.Inner")))
	require.True(t, got == classifier.Classifier(inner), "got %v", got)

	if diff := cmp.Diff([]string{"com", "com.example"}, lookups.Packages); diff != "" {
		t.Errorf("package lookups (-want +got):\n%s", diff)
	}
}

func TestResolveFullyQualifiedTriesEverySplit(t *testing.T) {
	lookups := mocks.NewLookupCapturer(t, newClass("com.example", "Outer"))
	r := resolver.NewClassifierResolver(lookups.Provider)

	got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("app"), syntaxtest.NewRef("com.example.Outer.Missing")))
	require.Nil(t, got)

	if diff := cmp.Diff([]string{"com", "com.example", "com.example.Outer"}, lookups.Packages); diff != "" {
		t.Errorf("package lookups (-want +got):\n%s", diff)
	}
}

func TestResolveTypeParameterFallback(t *testing.T) {
	g := newClass("p", "G")
	lookups := mocks.NewLookupCapturer(t, g)
	r := resolver.NewClassifierResolver(lookups.Provider)

	// class G<T> { T field; <U> U get(); <T> T shadow(); }
	decl := syntaxtest.Class("G").WithTypeParams("T")
	get := syntaxtest.Method("get").WithTypeParams("U")
	shadow := syntaxtest.Method("shadow").WithTypeParams("T")

	for name, tc := range map[string]struct {
		ref       string
		ancestors []*syntaxtest.Decl
		wantOwner *syntaxtest.Decl
		wantNil   bool
	}{
		"class type parameter": {
			ref:       "T",
			ancestors: []*syntaxtest.Decl{decl},
			wantOwner: decl,
		},
		"method type parameter": {
			ref:       "U",
			ancestors: []*syntaxtest.Decl{decl, get},
			wantOwner: get,
		},
		"innermost declaration wins": {
			ref:       "T",
			ancestors: []*syntaxtest.Decl{decl, shadow},
			wantOwner: shadow,
		},
		"out of scope": {
			ref:       "U",
			ancestors: []*syntaxtest.Decl{decl},
			wantNil:   true,
		},
		"dotted names are never type parameters": {
			ref:       "T.X",
			ancestors: []*syntaxtest.Decl{decl},
			wantNil:   true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("p"), syntaxtest.NewRef(tc.ref), tc.ancestors...))
			if tc.wantNil {
				require.Nil(t, got)
				return
			}
			tp, ok := got.(*classifier.TypeParameter)
			require.True(t, ok, "want type parameter, got %v", got)
			require.Equal(t, tc.ref, tp.Name())
			require.True(t, tp.Owner == syntax.Decl(tc.wantOwner), "owner: got %v", tp.Owner)
			require.NotNil(t, tp.Path)
			require.True(t, tp.Path.Leaf() == syntax.Node(tc.wantOwner.TypeParam(tc.ref)))
		})
	}
}

func TestResolveClassBeatsTypeParameter(t *testing.T) {
	g := newClass("p", "G")
	lookups := mocks.NewLookupCapturer(t, g, newClass("p", "T"))
	r := resolver.NewClassifierResolver(lookups.Provider)

	got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("p"), syntaxtest.NewRef("T"), syntaxtest.Class("G").WithTypeParams("T")))
	require.Equal(t, "p/T", classID(got))
}

func TestResolveLeafText(t *testing.T) {
	list := newClass("java.util", "List")
	mapClass := newClass("java.util", "Map")
	addNested(mapClass, "Entry")

	for name, tc := range map[string]struct {
		ref     string
		imports []string
		want    string
	}{
		"generic": {
			ref:     "List<String>",
			imports: []string{"java.util.List"},
			want:    "java/util/List",
		},
		"nested generic": {
			ref:     "Map.Entry<K, V>",
			imports: []string{"java.util.*"},
			want:    "java/util/Map.Entry",
		},
		"generic outer type": {
			ref:     "Map<K, V>.Entry",
			imports: []string{"java.util.*"},
			want:    "java/util/Map.Entry",
		},
		"annotation": {
			ref:  "@Deprecated",
			want: "java/lang/Deprecated",
		},
		"qualified annotation": {
			ref:  "@java.lang.Deprecated",
			want: "java/lang/Deprecated",
		},
		"implicit package": {
			ref:  "String",
			want: "java/lang/String",
		},
		"implicit package nested": {
			ref:  "Thread.State",
			want: "java/lang/Thread.State",
		},
	} {
		t.Run(name, func(t *testing.T) {
			thread := newClass("java.lang", "Thread")
			addNested(thread, "State")
			lookups := mocks.NewLookupCapturer(t,
				list,
				mapClass,
				thread,
				newClass("java.lang", "String"),
				newClass("java.lang", "Deprecated"),
			)
			r := resolver.NewClassifierResolver(lookups.Provider)
			got := classID(r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("app", tc.imports...), syntaxtest.NewRef(tc.ref))))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWithImplicitPackage(t *testing.T) {
	lookups := mocks.NewLookupCapturer(t, newClass("groovy.lang", "Closure"))
	r := resolver.NewClassifierResolver(lookups.Provider, resolver.WithImplicitPackage("groovy.lang"))
	got := r.Resolve(syntaxtest.NewPath(syntaxtest.Unit(""), syntaxtest.NewRef("Closure")))
	require.Equal(t, "groovy/lang/Closure", classID(got))
}

func TestResolveCyclicSupertypes(t *testing.T) {
	a := newClass("p", "A")
	b := newClass("p", "B")
	a.SetSupertypes(b)
	b.SetSupertypes(a)

	lookups := mocks.NewLookupCapturer(t, a, b)
	r := resolver.NewClassifierResolver(lookups.Provider)
	require.Nil(t, r.Resolve(syntaxtest.NewPath(syntaxtest.Unit("p"), syntaxtest.NewRef("A.Missing"))))
}
