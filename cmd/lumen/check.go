package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"go.uber.org/multierr"

	"github.com/alecthomas/lumen/analyser"
	"github.com/alecthomas/lumen/ast"
)

type outputFormat int

const (
	outputNone outputFormat = iota
	outputSExpr
	outputRepr
)

type checker struct {
	options []analyser.Option
	format  outputFormat
	stdout  io.Writer
	stderr  io.Writer
}

// checkFiles analyses every file, reporting all failures rather than
// stopping at the first.
func (c *checker) checkFiles(paths []string) error {
	var errs error
	for _, path := range paths {
		errs = multierr.Append(errs, c.checkFile(path))
	}
	return errs
}

func (c *checker) checkFile(path string) error {
	r, err := os.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return c.check(path, r)
}

func (c *checker) check(filename string, r io.Reader) error {
	program, err := analyser.AnalyseReader(filename, r, c.options...)
	if err != nil {
		return err
	}
	for _, warning := range program.Warnings {
		fmt.Fprintf(c.stderr, "warning: %s\n", warning)
	}
	switch c.format {
	case outputSExpr:
		if err := ast.FormatIndent(c.stdout, program.Root); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout)
	case outputRepr:
		repr.New(c.stdout, repr.Indent("  ")).Println(program.Root)
	case outputNone:
	}
	return nil
}
