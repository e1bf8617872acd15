package javasyntax_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/classifier-resolver/pkg/javasyntax"
	"github.com/stackb/classifier-resolver/pkg/syntax"
	"github.com/stackb/classifier-resolver/pkg/testutil"
)

const mainJava = `package com.example;

import java.util.List;
import java.util.*;
import static java.util.Collections.emptyList;

@Deprecated
public class Main<T extends Comparable<T>> extends Base implements Runnable, Supplier<List<T>> {
    private Map.Entry<String, Integer> entry;

    public <U> U convert(T value, int[] counts) {
        var x = new ArrayList<U>();
        return null;
    }

    static class Inner {}
}
`

func mustParse(t *testing.T, src string) *javasyntax.File {
	t.Helper()
	parser := javasyntax.NewParser(javasyntax.WithLogger(testutil.NewTestLogger(t)))
	file, err := parser.ParseFile(context.Background(), "Main.java", []byte(src))
	require.NoError(t, err)
	return file
}

// describeRef renders a reference and its enclosing declarations, outermost
// first.
func describeRef(p *javasyntax.Path) string {
	var names []string
	ancestors := p.Ancestors()
	for i := len(ancestors) - 1; i >= 0; i-- {
		names = append(names, ancestors[i].Name())
	}
	return p.Leaf().Text() + " [" + strings.Join(names, " ") + "]"
}

func TestParseFileUnit(t *testing.T) {
	file := mustParse(t, mainJava)

	want := &syntax.CompilationUnit{
		Filename: "Main.java",
		Package:  "com.example",
		Imports: []syntax.Import{
			{Name: "java.util.List"},
			{Name: "java.util", Wildcard: true},
			{Name: "java.util.Collections.emptyList", Static: true},
		},
	}
	if diff := cmp.Diff(want, file.Unit); diff != "" {
		t.Errorf("unit (-want +got):\n%s", diff)
	}
}

func TestParseFileTypeRefs(t *testing.T) {
	file := mustParse(t, mainJava)

	var got []string
	for _, ref := range file.TypeRefs() {
		got = append(got, describeRef(ref))
	}
	want := []string{
		"@Deprecated [Main]",
		"Comparable<T> [Main]",
		"T [Main]",
		"Base [Main]",
		"Runnable [Main]",
		"Supplier<List<T>> [Main]",
		"List<T> [Main]",
		"T [Main]",
		"Map.Entry<String, Integer> [Main]",
		"String [Main]",
		"Integer [Main]",
		"U [Main convert]",
		"T [Main convert]",
		"ArrayList<U> [Main convert]",
		"U [Main convert]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("refs (-want +got):\n%s", diff)
	}

	base := file.Find("Base")
	require.Len(t, base, 1)
	require.Equal(t, javasyntax.Position{Line: 8, Column: 52}, base[0].Pos())
	require.Equal(t, "Main.java:8:52", base[0].String())
}

func TestParseFileDecls(t *testing.T) {
	file := mustParse(t, mainJava)

	require.Len(t, file.Decls(), 1)
	main := file.Decls()[0]
	require.Equal(t, "Main", main.Name())
	require.Equal(t, syntax.KindClass, main.Kind())
	require.Equal(t, []string{"T"}, main.TypeParameterNames())

	var supertypes []string
	for _, n := range main.Supertypes() {
		supertypes = append(supertypes, n.Text())
	}
	require.Equal(t, []string{"Base", "Runnable", "Supplier<List<T>>"}, supertypes)

	require.Len(t, main.Nested(), 1)
	require.Equal(t, "Inner", main.Nested()[0].Name())

	tp := main.TypeParameters()[0]
	require.Equal(t, "T", tp.Name())
	require.Len(t, tp.Bounds(), 1)
	require.Equal(t, "Comparable<T>", tp.Bounds()[0].Text())

	path, ok := file.PathTo(tp)
	require.True(t, ok)
	require.True(t, path.Leaf() == syntax.Node(tp))
	require.Len(t, path.Ancestors(), 1)
	require.True(t, path.Ancestors()[0] == syntax.Decl(main))

	// the supertype reference has the declaring class as its innermost
	// ancestor
	basePath, ok := file.PathTo(main.Supertypes()[0])
	require.True(t, ok)
	require.True(t, basePath.Ancestors()[0] == syntax.Decl(main))
}

func TestParseFileKinds(t *testing.T) {
	for name, tc := range map[string]struct {
		src  string
		want []string
	}{
		"interface": {
			src:  "interface I<K, V> extends A, B<K> { void m(); }",
			want: []string{"interface I A,B<K>"},
		},
		"enum": {
			src:  "enum E implements I { X, Y; class N {} }",
			want: []string{"enum E I", "class N "},
		},
		"record": {
			src:  "record R(String s) implements I {}",
			want: []string{"record R I"},
		},
		"annotation": {
			src:  "@interface A { int value() default 0; }",
			want: []string{"annotation A "},
		},
		"default package": {
			src:  "class C extends C {}",
			want: []string{"class C C"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			file := mustParse(t, tc.src)
			var got []string
			var visit func(d *javasyntax.Decl)
			visit = func(d *javasyntax.Decl) {
				var supers []string
				for _, n := range d.Supertypes() {
					supers = append(supers, n.Text())
				}
				got = append(got, d.Kind().String()+" "+d.Name()+" "+strings.Join(supers, ","))
				for _, nested := range d.Nested() {
					visit(nested)
				}
			}
			for _, d := range file.Decls() {
				visit(d)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir, _, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "src/com/example/Main.java", Content: mainJava},
	})
	defer cleanup()

	parser := javasyntax.NewParser()
	file, err := parser.ReadFile(context.Background(), filepath.Join(dir, "src/com/example/Main.java"))
	require.NoError(t, err)
	require.Equal(t, "com.example", file.Unit.Package)

	_, err = parser.ReadFile(context.Background(), filepath.Join(dir, "Missing.java"))
	require.Error(t, err)
}
