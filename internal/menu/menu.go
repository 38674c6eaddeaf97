// Package menu implements the start form shared by the terminal and
// desktop front ends.
package menu

import (
	"strings"
	"unicode"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
)

// Field identifies a form field.
type Field int

const (
	FieldName Field = iota
	FieldLevel
)

// Form is the start form: a player name and a free-form level label.
type Form struct {
	name  []rune
	level []rune
	focus Field
	err   string
}

// New creates a form prefilled with name and level.
func New(name, level string) *Form {
	m := &Form{}
	m.name = clip([]rune(name), config.MaxNameLength)
	m.level = clip([]rune(level), config.MaxLevelLength)
	return m
}

func clip(r []rune, n int) []rune {
	if len(r) > n {
		return r[:n]
	}
	return r
}

// Apply feeds one frame of input into the form and reports whether the
// player submitted it with a non-empty name.
func (m *Form) Apply(in input.Input) bool {
	if in.Tab || in.Up || in.Down {
		m.focus = 1 - m.focus
	}

	field, limit := &m.name, config.MaxNameLength
	if m.focus == FieldLevel {
		field, limit = &m.level, config.MaxLevelLength
	}

	if in.Backspace && len(*field) > 0 {
		*field = (*field)[:len(*field)-1]
	}
	for _, r := range in.Text {
		if !unicode.IsPrint(r) || len(*field) >= limit {
			continue
		}
		*field = append(*field, r)
		m.err = ""
	}

	if !in.Enter {
		return false
	}
	name, _ := m.Values()
	if name == "" {
		m.err = "Enter a name to start"
		m.focus = FieldName
		return false
	}
	m.err = ""
	return true
}

// Values returns the trimmed name and level.
func (m *Form) Values() (name, level string) {
	return strings.TrimSpace(string(m.name)), strings.TrimSpace(string(m.level))
}

// Focus returns the field receiving typed text.
func (m *Form) Focus() Field { return m.focus }

// Name returns the name field as typed.
func (m *Form) Name() []rune { return m.name }

// Level returns the level field as typed.
func (m *Form) Level() []rune { return m.level }

// Err returns the validation message, if any.
func (m *Form) Err() string { return m.err }
