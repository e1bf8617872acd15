package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/stackb/classifier-resolver/pkg/classpath"
	"github.com/stackb/classifier-resolver/pkg/javasyntax"
	"github.com/stackb/classifier-resolver/pkg/logger"
	"github.com/stackb/classifier-resolver/pkg/resolver"
	"github.com/stackb/classifier-resolver/pkg/sourceindex"
)

type config struct {
	outputFile string
	classpath  string
	logLevel   string
	files      []string
}

func main() {
	log.SetPrefix("classindexer: ")
	log.SetFlags(0) // don't print timestamps

	conf := config{}
	fs := flag.NewFlagSet("classindexer", flag.ContinueOnError)

	fs.StringVar(&conf.outputFile, "output_file", "", "the index file to write (.json, .pbtext, or binary)")
	fs.StringVar(&conf.classpath, "classpath", "", "comma-separated index files supertypes may resolve to")
	fs.StringVar(&conf.logLevel, "log_level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	conf.files = fs.Args()

	if err := run(context.Background(), &conf, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, conf *config, stderr io.Writer) error {
	if conf.outputFile == "" {
		return fmt.Errorf("-output_file is required")
	}
	zlog, err := logger.New(stderr, conf.logLevel)
	if err != nil {
		return err
	}

	index := classpath.NewIndex(classpath.WithLogger(zlog))
	if conf.classpath != "" {
		for _, filename := range strings.Split(conf.classpath, ",") {
			if err := index.LoadFile(filename); err != nil {
				return err
			}
		}
		index.Link()
	}

	r := resolver.NewClassifierResolver(index, resolver.WithLogger(zlog))
	indexer := sourceindex.NewIndexer(zlog, index, r)
	parser := javasyntax.NewParser(javasyntax.WithLogger(zlog))

	for _, filename := range conf.files {
		file, err := parser.ReadFile(ctx, filename)
		if err != nil {
			return err
		}
		classes, err := indexer.AddFile(file)
		if err != nil {
			return err
		}
		zlog.Debug().Str("file", filename).Int("classes", len(classes)).Msg("indexed")
	}

	return sourceindex.WriteSourceIndexFile(conf.outputFile, indexer.Classes())
}
