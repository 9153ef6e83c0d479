package parser

import (
	"fmt"
	"strings"
)

// Modifiers for a declaration, as a bit-field.
type Modifiers int

const (
	ModifierConst Modifiers = 1 << iota // const
	ModifierLocal                       // local
)

// Has all of the given modifiers set.
func (m Modifiers) Has(modifier Modifiers) bool {
	return m&modifier == modifier
}

func (m Modifiers) GoString() string {
	var modifiers []string
	if m&ModifierConst != 0 {
		modifiers = append(modifiers, "parser.ModifierConst")
	}
	if m&ModifierLocal != 0 {
		modifiers = append(modifiers, "parser.ModifierLocal")
	}
	return strings.Join(modifiers, "|")
}

func (m *Modifiers) Capture(values []string) error {
	for _, value := range values {
		switch value {
		case "const":
			*m |= ModifierConst

		case "local":
			*m |= ModifierLocal

		default:
			return fmt.Errorf("unknown modifier %q", value)
		}
	}
	return nil
}
