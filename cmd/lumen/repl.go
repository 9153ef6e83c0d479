package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

const replPrompt = "lumen> "

// runREPL analyses each line entered and prints the resulting AST.
func (c *checker) runREPL() error {
	l := liner.NewLiner()
	defer l.Close()
	l.SetMultiLineMode(true)
	l.SetCtrlCAborts(true)
	for {
		line, err := l.Prompt(replPrompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			return nil
		} else if err != nil {
			return err
		}
		if c.consume(line) {
			return nil
		}
		l.AppendHistory(line)
	}
}

// consume a line, returning true if the REPL should exit.
func (c *checker) consume(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case ":quit", ":q":
		return true
	}
	if err := c.check("<repl>", strings.NewReader(line)); err != nil {
		fmt.Fprintln(c.stderr, err)
	}
	return false
}
