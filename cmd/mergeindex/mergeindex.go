package main

import (
	"flag"
	"log"
	"os"

	"github.com/stackb/classifier-resolver/pkg/mergeindex"
)

func main() {
	log.SetPrefix("mergeindex: ")
	log.SetFlags(0) // don't print timestamps

	var cfg mergeindex.Config
	fs := flag.NewFlagSet("mergeindex", flag.ContinueOnError)
	fs.StringVar(&cfg.OutputFile, "output_file", "", "the output file to write")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	cfg.InputFiles = fs.Args()

	if err := mergeindex.Run(log.Printf, &cfg); err != nil {
		log.Fatal(err)
	}
}
