// Package config holds the settings of a resolution run.  Settings come from
// an optional Starlark file and are overridden by command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/stackb/classifier-resolver/pkg/glob"
	"github.com/stackb/classifier-resolver/pkg/resolver"
	"github.com/stackb/classifier-resolver/pkg/starlarkeval"
)

const (
	classpathName       = "classpath"
	srcsName            = "srcs"
	excludeName         = "exclude"
	implicitPackageName = "implicit_package"
	logLevelName        = "log_level"
)

// globalNames lists the recognized globals in the order Format prints them.
var globalNames = []string{
	classpathName,
	srcsName,
	excludeName,
	implicitPackageName,
	logLevelName,
}

// Config is the effective configuration.
type Config struct {
	// Root is the directory srcs, exclude and relative classpath entries are
	// interpreted against.
	Root string
	// Classpath lists the index files of the native classpath.
	Classpath []string
	// Srcs and Exclude are doublestar patterns selecting the Java sources.
	Srcs    []string
	Exclude []string
	// ImplicitPackage is the package searched last by the global scope.
	ImplicitPackage string
	LogLevel        string
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Root:            ".",
		Srcs:            []string{"**/*.java"},
		ImplicitPackage: resolver.DefaultImplicitPackage,
		LogLevel:        zerolog.WarnLevel.String(),
	}
}

// LoadFile evaluates the Starlark file filename into c.  Globals not named
// by the file keep their current values.
func (c *Config) LoadFile(logger zerolog.Logger, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	interpreter := starlarkeval.NewInterpreter(logger, starlark.StringDict{
		"glob": starlark.NewBuiltin("glob", c.globBuiltin),
	})
	if err := interpreter.Exec(filename, f); err != nil {
		return err
	}
	return c.apply(logger, filename, interpreter.Globals())
}

func (c *Config) apply(logger zerolog.Logger, filename string, globals starlark.StringDict) error {
	for _, name := range globals.Keys() {
		value := globals[name]
		var err error
		switch name {
		case classpathName:
			c.Classpath, err = stringList(value)
		case srcsName:
			c.Srcs, err = stringList(value)
		case excludeName:
			c.Exclude, err = stringList(value)
		case implicitPackageName:
			c.ImplicitPackage, err = stringValue(value)
		case logLevelName:
			c.LogLevel, err = stringValue(value)
		default:
			if _, ok := value.(*starlark.Function); !ok {
				logger.Warn().Str("config", filename).Str("name", name).Msg("unknown config global")
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", filename, name, err)
		}
	}
	return nil
}

// globBuiltin implements glob(include, exclude=[]), expanding patterns
// against the root at evaluation time.
func (c *Config) globBuiltin(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var include, exclude *starlark.List
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "include", &include, "exclude?", &exclude); err != nil {
		return nil, err
	}
	var g rule.GlobValue
	var err error
	if g.Patterns, err = stringList(include); err != nil {
		return nil, fmt.Errorf("%s: include: %w", fn.Name(), err)
	}
	if exclude != nil {
		if g.Excludes, err = stringList(exclude); err != nil {
			return nil, fmt.Errorf("%s: exclude: %w", fn.Name(), err)
		}
	}
	files, err := glob.Apply(g, os.DirFS(c.Root))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	values := make([]starlark.Value, len(files))
	for i, file := range files {
		values[i] = starlark.String(file)
	}
	return starlark.NewList(values), nil
}

// Files expands Srcs minus Exclude under Root.  Names are joined with Root.
func (c *Config) Files() ([]string, error) {
	files, err := glob.Apply(rule.GlobValue{Patterns: c.Srcs, Excludes: c.Exclude}, os.DirFS(c.Root))
	if err != nil {
		return nil, err
	}
	for i, file := range files {
		files[i] = filepath.Join(c.Root, file)
	}
	return files, nil
}

// ClasspathFiles returns the classpath index files, relative names joined
// with Root.
func (c *Config) ClasspathFiles() []string {
	files := make([]string, len(c.Classpath))
	for i, file := range c.Classpath {
		if filepath.IsAbs(file) {
			files[i] = file
		} else {
			files[i] = filepath.Join(c.Root, file)
		}
	}
	return files
}

// Format prints the effective configuration as a Starlark file.
func (c *Config) Format() []byte {
	globals := starlark.StringDict{
		classpathName:       stringsValue(c.Classpath),
		srcsName:            stringsValue(c.Srcs),
		excludeName:         stringsValue(c.Exclude),
		implicitPackageName: starlark.String(c.ImplicitPackage),
		logLevelName:        starlark.String(c.LogLevel),
	}
	data, err := starlarkeval.FormatGlobals(globals, globalNames)
	if err != nil {
		// all values are strings or lists of strings
		panic(err)
	}
	return data
}

func stringValue(value starlark.Value) (string, error) {
	s, ok := starlark.AsString(value)
	if !ok {
		return "", fmt.Errorf("want string, got %s", value.Type())
	}
	return s, nil
}

func stringList(value starlark.Value) ([]string, error) {
	iterable, ok := value.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("want list of strings, got %s", value.Type())
	}
	iter := iterable.Iterate()
	defer iter.Done()

	values := []string{}
	var item starlark.Value
	for iter.Next(&item) {
		s, err := stringValue(item)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

func stringsValue(values []string) *starlark.List {
	list := make([]starlark.Value, len(values))
	for i, v := range values {
		list[i] = starlark.String(v)
	}
	return starlark.NewList(list)
}

