// Command logview is a terminal front end for the build log filter. It reads
// commands from stdin:
//
//	machine <NAME|all>   filter by machine
//	search <term>        set the search term (debounced)
//	show                 print the visible lines
//	stats                print build statistics
//	export [dir]         write the visible lines to a .txt file
//	quit
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"portfolio-site/config"
	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/buildlog"
)

func main() {
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	bootstrap.Logger(cfg)

	path := cfg.MergedLogPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: logview <merged.log> (or set MERGED_LOG_PATH)")
		os.Exit(2)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	lines, err := buildlog.Parse(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}

	s := newSession(os.Stdout, lines, cfg.SearchDelay)
	defer s.close()
	s.run(os.Stdin)
}

type session struct {
	mu     sync.Mutex
	out    io.Writer
	lines  []buildlog.Line
	viewer *buildlog.Viewer
}

func newSession(out io.Writer, lines []buildlog.Line, delay time.Duration) *session {
	s := &session{out: out, lines: lines}
	s.viewer = buildlog.NewViewer(lines, delay, s.refreshed)
	return s
}

func (s *session) close() { s.viewer.Close() }

// refreshed runs after every re-filter, possibly on the debounce timer.
func (s *session) refreshed(f buildlog.Filter, visible []buildlog.Line) {
	s.printf("filter machine=%s search=%q: %d of %d lines\n", f.Machine, f.Search, len(visible), len(s.lines))
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) run(in io.Reader) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.handle(sc.Text()) {
			return
		}
	}
}

// handle executes one command and reports whether to keep reading.
func (s *session) handle(input string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
	case "machine", "m":
		s.viewer.SetMachine(arg)
	case "search", "s":
		s.viewer.Search(arg)
	case "show":
		for _, l := range s.viewer.Visible() {
			s.printf("%s %-8s %s\n", l.Timestamp, l.Machine, l.DisplayMessage())
		}
	case "stats":
		st := buildlog.ComputeStats(s.lines)
		s.printf("status=%s events=%d duration=%s errors=%d warnings=%d\n",
			st.Status(), st.TotalEvents, st.Duration, st.Errors, st.Warnings)
		for _, mc := range st.Components() {
			s.printf("  %-8s %d\n", mc.Machine, mc.Count)
		}
	case "export":
		s.export(arg)
	case "quit", "q", "exit":
		return false
	default:
		s.printf("unknown command %q\n", cmd)
	}
	return true
}

func (s *session) export(dir string) {
	exp, err := s.viewer.Export()
	if errors.Is(err, buildlog.ErrNothingToExport) {
		s.printf("warning: No logs to export. Try adjusting your filters.\n")
		return
	}
	if err != nil {
		s.printf("export: %v\n", err)
		return
	}
	path := filepath.Join(dir, exp.Filename)
	if err := os.WriteFile(path, exp.Content, 0o644); err != nil {
		s.printf("export: %v\n", err)
		return
	}
	s.printf("exported %d lines to %s\n", exp.Count, path)
}
