// Package buildlog parses merged build logs and implements the filter and
// export rules of the build-logs page.
package buildlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// EvidenceGlyph marks evidence lines in rendered output.
const EvidenceGlyph = "⭐"

const timestampLayout = "2006-01-02 15:04:05"

// Line is one log entry as shown on the logs page.
type Line struct {
	// FullTimestamp is "YYYY-MM-DD HH:MM:SS". It may be empty for lines that
	// did not come from a merged log.
	FullTimestamp string
	// Timestamp is the displayed time-of-day part.
	Timestamp     string
	Machine       string
	Message       string
	Evidence      bool
	EvidenceLabel string
}

// DisplayMessage is the message as the page shows it, with the evidence
// glyph appended for evidence lines.
func (l Line) DisplayMessage() string {
	if l.Evidence {
		return l.Message + " " + EvidenceGlyph
	}
	return l.Message
}

type evidencePattern struct {
	re    *regexp.Regexp
	label string
}

// Evidence patterns are checked in order; the first match labels the line.
var evidencePatterns = []evidencePattern{
	{regexp.MustCompile(`(?i)Compiler:.*BSD.*198\d`), "VAX Compiler (1986)"},
	{regexp.MustCompile(`(?i)Compiler:.*4\.3BSD.*K&R`), "VAX K&R C Compiler"},
	{regexp.MustCompile(`(?i)cc.*4\.3BSD`), "VAX C Compiler"},
	{regexp.MustCompile(`(?i)OS:.*BSD.*198\d`), "VAX Operating System"},
	{regexp.MustCompile(`(?i)Tool:.*dated.*199\d`), "PDP-11 Tools (1990s)"},
	{regexp.MustCompile(`(?i)uuencode|uudecode`), "Historical Transfer Method"},
	{regexp.MustCompile(`(?i)Console transfer|telnet.*2327`), "Console I/O Transfer"},
	{regexp.MustCompile(`(?i)Parser:.*bradman.*VAX`), "VAX C YAML Parser"},
}

var lineRe = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) (\w+)\] (.+)`)

// ParseLine parses "[YYYY-MM-DD HH:MM:SS MACHINE] message".
func ParseLine(s string) (Line, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Line{}, false
	}
	full, machine, msg := m[1], strings.ToUpper(m[2]), m[3]
	l := Line{
		FullTimestamp: full,
		Timestamp:     full[strings.IndexByte(full, ' ')+1:],
		Machine:       machine,
		Message:       msg,
	}
	for _, p := range evidencePatterns {
		if p.re.MatchString(msg) {
			l.Evidence = true
			l.EvidenceLabel = p.label
			break
		}
	}
	return l, true
}

// Parse reads a merged log, skipping lines that do not match the format.
func Parse(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if l, ok := ParseLine(sc.Text()); ok {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read merged log: %w", err)
	}
	return lines, nil
}
