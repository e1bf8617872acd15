// Package starlarkeval evaluates Starlark configuration files.
package starlarkeval

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
)

// Interpreter executes Starlark files in a shared global environment.  Each
// file sees the predeclared names and the globals of the files executed
// before it.
type Interpreter struct {
	logger      zerolog.Logger
	predeclared starlark.StringDict
	globals     starlark.StringDict
	thread      *starlark.Thread
}

// NewInterpreter constructs a new Interpreter.  print() output goes to logger
// at info level.
func NewInterpreter(logger zerolog.Logger, predeclared starlark.StringDict) *Interpreter {
	return &Interpreter{
		logger:      logger,
		predeclared: predeclared,
		globals:     starlark.StringDict{},
		thread: &starlark.Thread{
			Name: "config",
			Print: func(thread *starlark.Thread, msg string) {
				logger.Info().Str("thread", thread.Name).Msg(msg)
			},
		},
	}
}

// Exec executes src.  Evaluation errors are returned with their Starlark
// backtrace.
func (i *Interpreter) Exec(filename string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	env := make(starlark.StringDict, len(i.predeclared)+len(i.globals))
	for name, value := range i.predeclared {
		env[name] = value
	}
	for name, value := range i.globals {
		env[name] = value
	}

	globals, err := starlark.ExecFile(i.thread, filename, data, env)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return fmt.Errorf("%s", evalErr.Backtrace())
		}
		return err
	}
	for name, value := range globals {
		i.globals[name] = value
	}
	return nil
}

// Globals returns the globals defined by the executed files.
func (i *Interpreter) Globals() starlark.StringDict {
	return i.globals
}

// GetGlobal returns the named global, or nil.
func (i *Interpreter) GetGlobal(name string) starlark.Value {
	return i.globals[name]
}
