// Package render turns résumé layouts and build logs into HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"portfolio-site/internal/buildlog"
	"portfolio-site/internal/resume"
)

//go:embed templates
var assets embed.FS

var machineColors = map[string]string{
	"VAX":     "#00aaff",
	"PDP11":   "#ff8800",
	"GITHUB":  "#24292e",
	"COURIER": "#9b59b6",
}

const defaultMachineColor = "#6c757d"

var funcs = template.FuncMap{
	"join": strings.Join,
	// href trusts the schemes contact links are built with.
	"href": func(s string) any {
		for _, scheme := range []string{"mailto:", "tel:", "http://", "https://"} {
			if strings.HasPrefix(s, scheme) {
				return template.URL(s)
			}
		}
		return s
	},
	"machineColor": func(m string) template.CSS {
		if c, ok := machineColors[m]; ok {
			return template.CSS(c)
		}
		return template.CSS(defaultMachineColor)
	},
	"seconds": func(d time.Duration) string {
		return strconv.Itoa(int(d / time.Second))
	},
}

// Renderer executes the embedded page templates. It is safe for concurrent
// use.
type Renderer struct {
	tpl *template.Template
	css string
	js  []byte
}

func New() (*Renderer, error) {
	tpl, err := template.New("pages").Funcs(funcs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	css, err := assets.ReadFile("templates/style.css")
	if err != nil {
		return nil, err
	}
	js, err := assets.ReadFile("templates/logs.js")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl, css: string(css), js: js}, nil
}

// ResumePage is the data for the résumé page.
type ResumePage struct {
	Layout resume.Layout
	PDFURL string
}

// LogLine is a log line plus its initial visibility.
type LogLine struct {
	buildlog.Line
	Hidden bool
}

// LogsPage is the data for the build-logs page.
type LogsPage struct {
	BuildID   string
	Stats     buildlog.Stats
	Machines  []string
	Lines     []LogLine
	Evidence  []buildlog.Line
	Filter    buildlog.Filter
	ExportURL string
	ScriptURL string
}

// NewLogsPage assembles page data for lines under filter f. Hidden lines
// stay in the document so client-side filtering can reveal them.
func NewLogsPage(buildID string, lines []buildlog.Line, f buildlog.Filter) LogsPage {
	page := LogsPage{
		BuildID:  buildID,
		Stats:    buildlog.ComputeStats(lines),
		Machines: buildlog.Machines(lines),
		Evidence: buildlog.EvidenceLines(lines),
		Filter:   buildlog.NewFilter(f.Machine, f.Search),
		Lines:    make([]LogLine, 0, len(lines)),
	}
	for _, l := range lines {
		page.Lines = append(page.Lines, LogLine{Line: l, Hidden: !page.Filter.Matches(l)})
	}
	return page
}

func (r *Renderer) Resume(w io.Writer, page ResumePage) error {
	return r.execute(w, "resume", page)
}

func (r *Renderer) Logs(w io.Writer, page LogsPage) error {
	return r.execute(w, "logs", page)
}

// Script is the client-side log viewer.
func (r *Renderer) Script() []byte {
	return r.js
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute %s template: %w", name, err)
	}
	_, err := io.WriteString(w, inlineCSS(buf.String(), r.css))
	return err
}

// inlineCSS injects the stylesheet at the top of <head> so saved and
// printed pages keep their styling.
func inlineCSS(html, css string) string {
	if css == "" {
		return html
	}
	block := "<style>" + css + "</style>"
	if strings.Contains(strings.ToLower(html), "<head>") {
		return strings.Replace(html, "<head>", "<head>"+block, 1)
	}
	return block + html
}
