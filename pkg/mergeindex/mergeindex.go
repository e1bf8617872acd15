// Package mergeindex combines classpath index files into one.
package mergeindex

import (
	"fmt"
	"sort"

	"github.com/stackb/classifier-resolver/pkg/classpath"
)

type warnFunc func(format string, args ...interface{})

// IndexFile is the content of one index file.
type IndexFile struct {
	Filename string
	Entries  []*classpath.Entry
}

// ReadIndexFiles reads the named index files.
func ReadIndexFiles(filenames []string) ([]*IndexFile, error) {
	files := make([]*IndexFile, 0, len(filenames))
	for _, filename := range filenames {
		entries, err := classpath.ReadIndexFile(filename)
		if err != nil {
			return nil, err
		}
		files = append(files, &IndexFile{Filename: filename, Entries: entries})
	}
	return files, nil
}

// MergeIndexFiles returns the union of the entries of files, ordered by id.
// When more than one file provides a class the first one wins and warn is
// called.
func MergeIndexFiles(warn warnFunc, files []*IndexFile) []*classpath.Entry {
	// filesByClass is used to check if more than one file provides a given
	// class.
	filesByClass := make(map[string][]string)
	byClass := make(map[string]*classpath.Entry)

	for _, file := range files {
		for _, entry := range file.Entries {
			id := entry.ID.String()
			filesByClass[id] = append(filesByClass[id], file.Filename)
			if _, ok := byClass[id]; !ok {
				byClass[id] = entry
			}
		}
	}

	ids := make([]string, 0, len(byClass))
	for id := range byClass {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]*classpath.Entry, len(ids))
	for i, id := range ids {
		if providers := filesByClass[id]; len(providers) > 1 {
			warn("class is provided by more than one index file: %s: %v", id, providers)
		}
		entries[i] = byClass[id]
	}
	return entries
}

// Run merges the input files of cfg into its output file.
func Run(warn warnFunc, cfg *Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("-output_file is required")
	}
	if len(cfg.InputFiles) == 0 {
		return fmt.Errorf("positional args should be a non-empty list of index files to merge")
	}
	files, err := ReadIndexFiles(cfg.InputFiles)
	if err != nil {
		return err
	}
	return classpath.WriteIndexFile(cfg.OutputFile, MergeIndexFiles(warn, files))
}
