package buildlog

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllMachines is the match-all machine filter.
const AllMachines = "all"

// Filter is the viewer's filter state. An empty Machine behaves like
// AllMachines.
type Filter struct {
	Machine string
	Search  string
}

// NewFilter returns a filter, treating an empty machine as AllMachines.
func NewFilter(machine, search string) Filter {
	if machine == "" {
		machine = AllMachines
	}
	return Filter{Machine: machine, Search: search}
}

// matcher holds a filter with its search term folded once.
type matcher struct {
	machine string
	term    string
	caser   cases.Caser
}

func (f Filter) matcher() *matcher {
	c := cases.Fold()
	return &matcher{machine: f.Machine, term: c.String(f.Search), caser: c}
}

func (m *matcher) match(l Line) bool {
	if m.machine != AllMachines && m.machine != "" && l.Machine != m.machine {
		return false
	}
	if m.term == "" {
		return true
	}
	return strings.Contains(m.caser.String(l.DisplayMessage()), m.term) ||
		strings.Contains(m.caser.String(l.Timestamp), m.term) ||
		strings.Contains(m.caser.String(l.Machine), m.term)
}

// Matches reports whether l is visible under f: the machine filter is
// match-all or equal to the line's machine, and the search term is empty or
// a case-insensitive substring of the message, displayed timestamp or machine.
func (f Filter) Matches(l Line) bool {
	return f.matcher().match(l)
}

// Visible returns the lines visible under f, in order.
func Visible(lines []Line, f Filter) []Line {
	m := f.matcher()
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if m.match(l) {
			out = append(out, l)
		}
	}
	return out
}
