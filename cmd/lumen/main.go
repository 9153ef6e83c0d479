// Command lumen checks lumen source files and prints their typed AST.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/multierr"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		for _, err := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	config := defaultConfig()
	fs := flag.NewFlagSet("lumen", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: lumen [flags] [file ...]\n\nWith no files, starts an interactive prompt.\n\n")
		fs.PrintDefaults()
	}
	fs.Func("config", "path of YAML config file", func(s string) error {
		return loadConfig(s, &config)
	})
	dump := fs.Bool("ast", false, "print the typed AST as an s-expression")
	dumpRepr := fs.Bool("repr", false, "print the typed AST as Go values")
	watch := fs.Bool("watch", false, "re-check files when they change")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verbose {
		config.Logging.Level = "debug"
		config.Logging.Development = true
	}
	log, err := config.Logging.build()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	c := &checker{
		options: config.options(log),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	switch {
	case *dumpRepr:
		c.format = outputRepr
	case *dump:
		c.format = outputSExpr
	}
	paths := fs.Args()
	switch {
	case len(paths) == 0:
		if c.format == outputNone {
			c.format = outputSExpr
		}
		return c.runREPL()
	case *watch:
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return c.watch(ctx, log, paths)
	default:
		return c.checkFiles(paths)
	}
}

