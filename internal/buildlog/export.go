package buildlog

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNothingToExport is returned when no line is visible under the filter.
var ErrNothingToExport = errors.New("no logs to export, try adjusting your filters")

var trailingGlyph = regexp.MustCompile(`\s*` + EvidenceGlyph + `\s*$`)

// Export is a ready-to-download text file.
type Export struct {
	Filename string
	Content  []byte
	Count    int
}

// ExportLine formats l as "[<timestamp> <machine>] <message>", preferring the
// full timestamp and stripping a trailing evidence glyph from the message.
func ExportLine(l Line) string {
	ts := l.FullTimestamp
	if ts == "" {
		ts = l.Timestamp
	}
	msg := trailingGlyph.ReplaceAllString(l.DisplayMessage(), "")
	return "[" + ts + " " + l.Machine + "] " + msg
}

// ExportFilename names the download after the active filter and whether a
// search term is set.
func ExportFilename(f Filter) string {
	machine := AllMachines
	if f.Machine != AllMachines && f.Machine != "" {
		machine = strings.ToLower(f.Machine)
	}
	suffix := ""
	if f.Search != "" {
		suffix = "-search"
	}
	return "build-logs-" + machine + suffix + ".txt"
}

// ExportVisible serializes the lines visible under f.
func ExportVisible(lines []Line, f Filter) (Export, error) {
	return exportLines(Visible(lines, f), f)
}

func exportLines(visible []Line, f Filter) (Export, error) {
	if len(visible) == 0 {
		return Export{}, ErrNothingToExport
	}
	var b strings.Builder
	for _, l := range visible {
		b.WriteString(ExportLine(l))
		b.WriteByte('\n')
	}
	return Export{Filename: ExportFilename(f), Content: []byte(b.String()), Count: len(visible)}, nil
}
