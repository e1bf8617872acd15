package starlarkeval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestInterpreterExec(t *testing.T) {
	var buf bytes.Buffer
	interpreter := NewInterpreter(zerolog.New(&buf), starlark.StringDict{
		"greeting": starlark.String("hello"),
	})

	require.NoError(t, interpreter.Exec("a.cfg", strings.NewReader(`
names = ["a"]
print(greeting)
`)))
	require.NoError(t, interpreter.Exec("b.cfg", strings.NewReader(`
more = names + ["b"]
`)))

	require.Equal(t, `["a", "b"]`, interpreter.GetGlobal("more").String())
	require.Nil(t, interpreter.GetGlobal("missing"))
	require.ElementsMatch(t, []string{"names", "more"}, interpreter.Globals().Keys())
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestInterpreterExecError(t *testing.T) {
	for name, tc := range map[string]struct {
		src  string
		want string
	}{
		"runtime": {
			src:  "x = 1 + \"a\"\n",
			want: "Traceback",
		},
		"undefined": {
			src:  "x = y\n",
			want: "undefined: y",
		},
	} {
		t.Run(name, func(t *testing.T) {
			interpreter := NewInterpreter(zerolog.Nop(), nil)
			err := interpreter.Exec("bad.cfg", strings.NewReader(tc.src))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFormatGlobals(t *testing.T) {
	for name, tc := range map[string]struct {
		value   starlark.Value
		want    string
		wantErr string
	}{
		"string": {
			value: starlark.String("java.lang"),
			want:  "x = \"java.lang\"\n",
		},
		"int": {
			value: starlark.MakeInt(42),
			want:  "x = 42\n",
		},
		"bool": {
			value: starlark.True,
			want:  "x = True\n",
		},
		"none": {
			value: starlark.None,
			want:  "x = None\n",
		},
		"single element list": {
			value: starlark.NewList([]starlark.Value{starlark.String("a")}),
			want:  "x = [\"a\"]\n",
		},
		"multiline list": {
			value: starlark.NewList([]starlark.Value{starlark.String("a"), starlark.String("b")}),
			want:  "x = [\n    \"a\",\n    \"b\",\n]\n",
		},
		"tuple": {
			value: starlark.Tuple{starlark.MakeInt(1), starlark.MakeInt(2)},
			want:  "x = (1, 2)\n",
		},
		"dict": {
			value:   starlark.NewDict(0),
			wantErr: "x: cannot convert dict value",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := FormatGlobals(starlark.StringDict{"x": tc.value, "unused": starlark.None}, []string{"x", "missing"})
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
