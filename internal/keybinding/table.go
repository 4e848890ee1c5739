package keybinding

import (
	"sort"
	"strings"

	domain "github.com/inference-gateway/keybind/internal/domain"
)

// Table is the nested form of a binding set used by binding files:
// selector -> keystroke -> command
type Table map[string]map[string]string

// ToTable groups entries by selector. A repeated (selector, keystroke)
// pair keeps the command of its last occurrence.
func ToTable(entries []domain.BindingEntry) Table {
	table := make(Table)
	for _, e := range entries {
		keystrokes, ok := table[e.Selector]
		if !ok {
			keystrokes = make(map[string]string)
			table[e.Selector] = keystrokes
		}
		keystrokes[e.Keystroke] = e.Command
	}
	return table
}

// FromTable flattens a table into entries ordered by selector, then keystroke
func FromTable(table Table) []domain.BindingEntry {
	selectors := make([]string, 0, len(table))
	for selector := range table {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)

	entries := make([]domain.BindingEntry, 0, len(selectors))
	for _, selector := range selectors {
		keystrokes := make([]string, 0, len(table[selector]))
		for keystroke := range table[selector] {
			keystrokes = append(keystrokes, keystroke)
		}
		sort.Strings(keystrokes)

		for _, keystroke := range keystrokes {
			entries = append(entries, domain.BindingEntry{
				Selector:  selector,
				Keystroke: keystroke,
				Command:   table[selector][keystroke],
			})
		}
	}
	return entries
}

// Count returns the number of distinct (selector, keystroke) pairs
func Count(entries []domain.BindingEntry) int {
	n := 0
	for _, keystrokes := range ToTable(entries) {
		n += len(keystrokes)
	}
	return n
}

// Describe renders entries grouped by selector, one indented line per
// keystroke, and returns the text together with the number of bindings.
// Groups and keystrokes keep the order of their first appearance.
func Describe(entries []domain.BindingEntry) (string, int) {
	table := ToTable(entries)

	var selectors []string
	keystrokes := make(map[string][]string)
	seen := make(map[[2]string]bool)
	for _, e := range entries {
		if _, ok := keystrokes[e.Selector]; !ok {
			selectors = append(selectors, e.Selector)
			keystrokes[e.Selector] = nil
		}
		pair := [2]string{e.Selector, e.Keystroke}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		keystrokes[e.Selector] = append(keystrokes[e.Selector], e.Keystroke)
	}

	var b strings.Builder
	num := 0
	for _, selector := range selectors {
		b.WriteString(selector)
		b.WriteString(":\n")
		for _, keystroke := range keystrokes[selector] {
			num++
			b.WriteString("  ")
			b.WriteString(keystroke)
			b.WriteString(": ")
			b.WriteString(table[selector][keystroke])
			b.WriteString("\n")
		}
	}
	return b.String(), num
}
