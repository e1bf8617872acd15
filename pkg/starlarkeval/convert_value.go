package starlarkeval

import (
	"fmt"
	"strconv"

	"github.com/bazelbuild/buildtools/build"
	"go.starlark.net/starlark"
)

// ConvValue converts a Starlark value to a buildtools expression so that it
// can be printed with build.Format.  Only strings, ints, bools, None, lists
// and tuples are supported.
func ConvValue(value starlark.Value) (build.Expr, error) {
	switch t := value.(type) {
	case starlark.NoneType:
		return &build.Ident{Name: "None"}, nil
	case starlark.Bool:
		if t {
			return &build.Ident{Name: "True"}, nil
		}
		return &build.Ident{Name: "False"}, nil
	case starlark.Int:
		if val, ok := t.Int64(); ok {
			return &build.LiteralExpr{Token: strconv.FormatInt(val, 10)}, nil
		}
		return &build.LiteralExpr{Token: t.String()}, nil
	case starlark.String:
		return &build.StringExpr{Value: t.GoString()}, nil
	case *starlark.List:
		list, err := convIterable(t)
		if err != nil {
			return nil, err
		}
		return &build.ListExpr{List: list, ForceMultiLine: len(list) > 1}, nil
	case starlark.Tuple:
		list, err := convIterable(t)
		if err != nil {
			return nil, err
		}
		return &build.TupleExpr{List: list}, nil
	default:
		return nil, fmt.Errorf("cannot convert %s value", value.Type())
	}
}

func convIterable(value starlark.Iterable) ([]build.Expr, error) {
	iter := value.Iterate()
	defer iter.Done()

	var list []build.Expr
	var item starlark.Value
	for iter.Next(&item) {
		expr, err := ConvValue(item)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
	}
	return list, nil
}

// FormatGlobals prints the named globals as a canonical Starlark file of
// assignments, in the given order.  Unset names are skipped.
func FormatGlobals(globals starlark.StringDict, names []string) ([]byte, error) {
	file := &build.File{Type: build.TypeDefault}
	for _, name := range names {
		value, ok := globals[name]
		if !ok {
			continue
		}
		rhs, err := ConvValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		file.Stmt = append(file.Stmt, &build.AssignExpr{
			LHS: &build.Ident{Name: name},
			Op:  "=",
			RHS: rhs,
		})
	}
	return build.Format(file), nil
}
