package buildlog

import (
	"sort"
	"strings"
	"time"
)

type Stats struct {
	TotalEvents int
	Duration    time.Duration
	Errors      int
	Warnings    int
	PerMachine  map[string]int
}

// Status is "success" when no error lines were seen, "failed" otherwise.
func (s Stats) Status() string {
	if s.Errors == 0 {
		return "success"
	}
	return "failed"
}

// MachineCount is a row of the per-component table.
type MachineCount struct {
	Machine string
	Count   int
}

// Components returns PerMachine sorted by machine name.
func (s Stats) Components() []MachineCount {
	out := make([]MachineCount, 0, len(s.PerMachine))
	for m, c := range s.PerMachine {
		out = append(out, MachineCount{Machine: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Machine < out[j].Machine })
	return out
}

// ComputeStats summarizes lines. Duration spans the first and last line's
// full timestamps and is zero when either is missing or unparseable.
func ComputeStats(lines []Line) Stats {
	st := Stats{TotalEvents: len(lines), PerMachine: map[string]int{}}
	for _, l := range lines {
		st.PerMachine[l.Machine]++
		msg := strings.ToLower(l.Message)
		if strings.Contains(msg, "error") || strings.Contains(msg, "failed") {
			st.Errors++
		}
		// "warn" also covers "warning"
		if strings.Contains(msg, "warn") {
			st.Warnings++
		}
	}
	if len(lines) > 1 {
		start, err1 := time.Parse(timestampLayout, lines[0].FullTimestamp)
		end, err2 := time.Parse(timestampLayout, lines[len(lines)-1].FullTimestamp)
		if err1 == nil && err2 == nil {
			st.Duration = end.Sub(start)
		}
	}
	return st
}

// Machines lists the distinct machines in lines, sorted.
func Machines(lines []Line) []string {
	set := map[string]struct{}{}
	for _, l := range lines {
		set[l.Machine] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// EvidenceLines returns the evidence subset of lines in order.
func EvidenceLines(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Evidence {
			out = append(out, l)
		}
	}
	return out
}
