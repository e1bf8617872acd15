// Package javasyntax parses Java source files with tree-sitter and exposes
// every type reference as a syntax.Path.
package javasyntax

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/stackb/classifier-resolver/pkg/syntax"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser parses Java files.  It is safe for concurrent use.
type Parser struct {
	logger zerolog.Logger
}

// NewParser constructs a new Parser.
func NewParser(options ...Option) *Parser {
	p := &Parser{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ParseFile parses src.  Syntax errors are logged and the recognizable parts
// of the file are still returned.
func (p *Parser) ParseFile(ctx context.Context, filename string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		p.logger.Warn().Str("file", filename).Msg("syntax errors")
	}

	file := &File{
		Unit:  &syntax.CompilationUnit{Filename: filename},
		paths: make(map[syntax.Node]*Path),
	}
	b := &builder{file: file, src: src}
	b.walk(root, nil)

	p.logger.Debug().
		Str("file", filename).
		Int("decls", len(file.decls)).
		Int("refs", len(file.refs)).
		Msg("parsed")
	return file, nil
}

// ReadFile reads and parses the named file.
func (p *Parser) ReadFile(ctx context.Context, filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return p.ParseFile(ctx, filename, src)
}

// File is a parsed compilation unit.
type File struct {
	// Unit holds the package and imports.
	Unit *syntax.CompilationUnit

	decls []*Decl
	refs  []*Path
	paths map[syntax.Node]*Path
}

// Decls returns the top-level class-like declarations.
func (f *File) Decls() []*Decl {
	return f.decls
}

// TypeRefs returns a path to every type reference, in source order.
func (f *File) TypeRefs() []*Path {
	return f.refs
}

// Find returns the paths of the type references with the given text.
func (f *File) Find(text string) []*Path {
	var paths []*Path
	for _, p := range f.refs {
		if p.leaf.Text() == text {
			paths = append(paths, p)
		}
	}
	return paths
}

// PathTo returns the path of a type reference, declaration or type
// parameter of this file.
func (f *File) PathTo(node syntax.Node) (syntax.Path, bool) {
	if p, ok := f.paths[node]; ok {
		return p, true
	}
	return nil, false
}

func (f *File) addPath(leaf syntax.Node, ancestors []*Decl, pos Position) *Path {
	p := &Path{file: f, leaf: leaf, ancestors: ancestors, pos: pos}
	f.paths[leaf] = p
	return p
}
