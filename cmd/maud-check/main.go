// Package main provides the entry point for maud-check, a validator for
// Maud template files. It tokenizes and parses each input file, reports the
// first diagnostic with its position, and can dump the resulting syntax
// tree or keep watching the files for changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/abdullahibnnadjo/maud/internal/ast"
	"github.com/abdullahibnnadjo/maud/internal/lexer"
	"github.com/abdullahibnnadjo/maud/internal/parser"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		dumpTree    = flag.Bool("dump", false, "print the syntax tree of each file")
		format      = flag.String("format", "json", "dump format: json|yaml")
		watch       = flag.Bool("watch", false, "keep running and re-check files on change")
	)
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("maud-check v%s (%s)\n", version, commit)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input files specified")
		showUsage()
		os.Exit(1)
	}
	if *format != "json" && *format != "yaml" {
		log.Fatalf("unknown dump format %q (want json or yaml)", *format)
	}

	failed := false
	for _, file := range files {
		if err := checkFile(file, *dumpTree, *format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failed = true
		}
	}
	if *watch {
		if err := watchFiles(files, *dumpTree, *format); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}
	if failed {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintln(os.Stderr, "Usage: maud-check [options] <file>...")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Parses Maud template files and reports the first syntax error in each.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func checkFile(path string, dump bool, format string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	stream, err := lexer.NewWithFilename(string(data), path).Tokenize()
	if err != nil {
		return err
	}
	markups, err := parser.Parse(stream)
	if err != nil {
		return err
	}
	if !dump {
		return nil
	}
	tree := ast.Dump(markups)
	var out []byte
	switch format {
	case "yaml":
		out, err = yaml.Marshal(tree)
	default:
		out, err = json.MarshalIndent(tree, "", "  ")
	}
	if err != nil {
		return err
	}
	if format != "yaml" {
		out = append(out, '\n')
	}
	_, err = os.Stdout.Write(out)
	return err
}

// watchFiles re-checks each file whenever it is written. Watches are placed
// on the parent directories so that editors which replace files on save
// keep being observed.
func watchFiles(files []string, dump bool, format string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	log.Printf("watching %d file(s)", len(watched))
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if err := checkFile(abs, dump, format); err != nil {
				log.Printf("%s: %v", ev.Name, err)
			} else {
				log.Printf("%s: ok", ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
