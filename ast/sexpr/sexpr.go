// Package sexpr writes s-expressions.
package sexpr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write Node to w on a single line.
func Write(w io.Writer, s Node) error {
	s.write("", w)
	return nil
}

// WriteIndent writes Node to w with one entry per line for lists headed by
// any of the given IDs.
func WriteIndent(w io.Writer, s Node, byLine ...string) error {
	heads := map[string]bool{}
	for _, head := range byLine {
		heads[head] = true
	}
	s.write("", &indentWriter{w, heads})
	return nil
}

// String renders Node on a single line.
func String(s Node) string {
	w := &strings.Builder{}
	_ = Write(w, s)
	return w.String()
}

type indentWriter struct {
	io.Writer
	byLine map[string]bool
}

// Node in an s-expression.
type Node interface {
	write(indent string, w io.Writer)
}

// Float is a 64-bit float s-expression node.
type Float float64

func (f Float) write(indent string, w io.Writer) {
	fmt.Fprint(w, strconv.FormatFloat(float64(f), 'g', -1, 64))
}

// Str is a quoted string s-expression node.
type Str string

func (s Str) write(indent string, w io.Writer) {
	_, _ = w.Write([]byte(strconv.Quote(string(s))))
}

// ID is an identifier node.
type ID string

func (i ID) write(indent string, w io.Writer) { _, _ = w.Write([]byte(i)) }

// List is a sub-s-expression.
type List []Node

func (l List) write(indent string, w io.Writer) {
	byLine := false
	if iw, ok := w.(*indentWriter); ok && len(l) > 0 {
		if id, ok := l[0].(ID); ok && iw.byLine[string(id)] {
			byLine = true
		}
	}
	fmt.Fprint(w, "(")
	for i, e := range l {
		if i > 0 {
			if byLine {
				fmt.Fprintf(w, "\n%s", indent+"  ")
			} else {
				fmt.Fprint(w, " ")
			}
		}
		e.write(indent+"  ", w)
	}
	fmt.Fprint(w, ")")
}

// Add an element to the list.
func (l *List) Add(e ...Node) {
	*l = append(*l, e...)
}
