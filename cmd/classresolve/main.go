package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/stackb/classifier-resolver/pkg/classifier"
	"github.com/stackb/classifier-resolver/pkg/classpath"
	"github.com/stackb/classifier-resolver/pkg/config"
	"github.com/stackb/classifier-resolver/pkg/javasyntax"
	"github.com/stackb/classifier-resolver/pkg/logger"
	"github.com/stackb/classifier-resolver/pkg/protobuf"
	"github.com/stackb/classifier-resolver/pkg/resolver"
	"github.com/stackb/classifier-resolver/pkg/sourceindex"
	"github.com/stackb/classifier-resolver/pkg/syntax"
)

const (
	executableName = "classresolve"
)

type flags struct {
	configFile      string
	root            string
	classpath       string
	implicitPackage string
	logLevel        string
	outputFile      string
	dump            bool
	strict          bool
	printConfig     bool
	files           []string
}

// reference is one resolved type reference.
type reference struct {
	path   *javasyntax.Path
	result classifier.Classifier
}

func main() {
	log.SetPrefix(executableName + ": ")
	log.SetFlags(0) // don't print timestamps

	f, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background(), f, os.Stdout, os.Stderr); err != nil {
		log.Fatalln("ERROR:", err)
	}
}

func parseFlags(args []string) (*flags, error) {
	f := new(flags)

	fs := flag.NewFlagSet(executableName, flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "optional starlark configuration file")
	fs.StringVar(&f.root, "root", "", "the directory srcs and relative classpath files are relative to")
	fs.StringVar(&f.classpath, "classpath", "", "comma-separated list of classpath index files")
	fs.StringVar(&f.implicitPackage, "implicit_package", "", "the package imported on demand by every file")
	fs.StringVar(&f.logLevel, "log_level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.outputFile, "output_file", "", "optional report file (.json, .pbtext, or binary)")
	fs.BoolVar(&f.dump, "dump", false, "dump the classes declared by the sources")
	fs.BoolVar(&f.strict, "strict", false, "fail if any reference is unresolved")
	fs.BoolVar(&f.printConfig, "print_config", false, "print the effective configuration and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s OPTIONS [FILE.java...]\n", executableName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.files = fs.Args()

	return f, nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags.
func loadConfig(f *flags, stderr io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg := config.New()
	if f.root != "" {
		cfg.Root = f.root
	}

	bootstrap, err := logger.New(stderr, f.logLevel)
	if err != nil {
		return nil, bootstrap, err
	}
	if f.configFile != "" {
		if err := cfg.LoadFile(bootstrap, f.configFile); err != nil {
			return nil, bootstrap, err
		}
	}

	if f.classpath != "" {
		cfg.Classpath = strings.Split(f.classpath, ",")
	}
	if f.implicitPackage != "" {
		cfg.ImplicitPackage = f.implicitPackage
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	zlog, err := logger.New(stderr, cfg.LogLevel)
	return cfg, zlog, err
}

func run(ctx context.Context, f *flags, stdout, stderr io.Writer) error {
	cfg, zlog, err := loadConfig(f, stderr)
	if err != nil {
		return err
	}
	if f.printConfig {
		_, err := stdout.Write(cfg.Format())
		return err
	}

	index := classpath.NewIndex(classpath.WithLogger(zlog))
	for _, filename := range cfg.ClasspathFiles() {
		if err := index.LoadFile(filename); err != nil {
			return err
		}
	}
	if dangling := index.Link(); dangling > 0 {
		zlog.Warn().Int("count", dangling).Msg("classpath has dangling supertypes")
	}

	r := resolver.NewClassifierResolver(index,
		resolver.WithLogger(zlog),
		resolver.WithImplicitPackage(cfg.ImplicitPackage),
		resolver.WithAmbiguityReporter(func(path syntax.Path, err *resolver.AmbiguousImportError) {
			zlog.Warn().
				Str("file", path.CompilationUnit().Filename).
				Str("text", path.Leaf().Text()).
				Msg(err.Error())
		}),
	)

	filenames := f.files
	if len(filenames) == 0 {
		if filenames, err = cfg.Files(); err != nil {
			return err
		}
	}

	files, indexer, err := indexSources(ctx, zlog, index, r, filenames)
	if err != nil {
		return err
	}

	if f.dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		dumper.Fdump(stdout, classpath.EntriesOf(indexer.Classes()))
	}

	var refs []*reference
	var unresolved int
	for _, file := range files {
		for _, path := range file.TypeRefs() {
			ref := &reference{path: path, result: r.Resolve(path)}
			if ref.result == nil {
				unresolved++
			}
			refs = append(refs, ref)
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", path, path.Leaf().Text(), describe(ref.result))
		}
	}

	stats := r.Stats()
	zlog.Info().
		Int("files", len(files)).
		Int("resolved", stats.Resolved).
		Int("unresolved", stats.Unresolved).
		Int("cache_hits", stats.CacheHits).
		Msg("done")

	if f.outputFile != "" {
		if err := writeReport(f.outputFile, refs, stats); err != nil {
			return err
		}
	}

	if f.strict && unresolved > 0 {
		return fmt.Errorf("%d unresolved references", unresolved)
	}
	return nil
}

// indexSources parses every file and registers its classes as own classes,
// so that references between the sources resolve.
func indexSources(ctx context.Context, zlog zerolog.Logger, index *classpath.Index, r *resolver.ClassifierResolver, filenames []string) ([]*javasyntax.File, *sourceindex.Indexer, error) {
	parser := javasyntax.NewParser(javasyntax.WithLogger(zlog))
	indexer := sourceindex.NewIndexer(zlog, index, r)

	files := make([]*javasyntax.File, 0, len(filenames))
	for _, filename := range filenames {
		file, err := parser.ReadFile(ctx, filename)
		if err != nil {
			return nil, nil, err
		}
		if _, err := indexer.AddFile(file); err != nil {
			return nil, nil, err
		}
		files = append(files, file)
	}
	return files, indexer, nil
}

func describe(c classifier.Classifier) string {
	switch c := c.(type) {
	case *classifier.Class:
		return c.ID.String()
	case *classifier.TypeParameter:
		return "typeparam " + c.Name()
	default:
		return "unresolved"
	}
}

func writeReport(filename string, refs []*reference, stats resolver.Stats) error {
	references := make([]interface{}, len(refs))
	for i, ref := range refs {
		references[i] = map[string]interface{}{
			"file":   ref.path.CompilationUnit().Filename,
			"line":   ref.path.Pos().Line,
			"column": ref.path.Pos().Column,
			"text":   ref.path.Leaf().Text(),
			"result": describe(ref.result),
		}
	}
	report, err := structpb.NewStruct(map[string]interface{}{
		"references": references,
		"stats": map[string]interface{}{
			"resolved":   stats.Resolved,
			"unresolved": stats.Unresolved,
			"cacheHits":  stats.CacheHits,
		},
	})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return protobuf.WriteFile(filename, report)
}
