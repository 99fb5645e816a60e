// Package resume projects a JSON Resume record onto the two-column résumé
// page: a header block, a primary column, a sidebar column and a side table
// of contents.
package resume

import (
	"strings"

	"portfolio-site/internal/model"
)

// Column is the page column a section is placed in.
type Column int

const (
	ColumnLeft Column = iota
	ColumnRight
)

func (c Column) String() string {
	if c == ColumnRight {
		return "right"
	}
	return "left"
}

// SectionID doubles as the HTML anchor of a section.
type SectionID string

const (
	SectionHeader       SectionID = "header"
	SectionSummary      SectionID = "summary"
	SectionExperience   SectionID = "experience"
	SectionPublications SectionID = "publications"
	SectionSkills       SectionID = "skills"
	SectionProjects     SectionID = "projects"
	SectionEducation    SectionID = "education"
	SectionCertificates SectionID = "certificates"
	SectionVolunteer    SectionID = "volunteer"
	SectionLanguages    SectionID = "languages"
	SectionInterests    SectionID = "interests"
)

// Section is one renderable block. Body holds the view model for the
// section's ID (Header, string, []ExperienceItem, ...).
type Section struct {
	ID        SectionID
	Title     string
	HideTitle bool
	Body      any
}

// TOCEntry links to a section anchor from the side table of contents.
type TOCEntry struct {
	Label  string
	Anchor string
}

// Layout is the projected page. Left starts with the header section.
type Layout struct {
	Header   Header
	Contacts []Contact
	Left     []Section
	Right    []Section
	TOC      []TOCEntry
}

// placement is one row of the fixed placement table. Rows are evaluated in
// order and each populated row appends to its column.
type placement struct {
	id      SectionID
	title   string
	column  Column
	present func(*model.Resume) bool
	build   func(*model.Resume) any
}

var placements = []placement{
	{SectionSummary, "Professional Summary", ColumnLeft,
		func(r *model.Resume) bool { return r.Basics != nil && r.Basics.Summary != "" },
		func(r *model.Resume) any { return r.Basics.Summary.String() }},
	{SectionExperience, "Experience", ColumnLeft,
		func(r *model.Resume) bool { return len(r.Work) > 0 },
		func(r *model.Resume) any { return experienceItems(r.Work) }},
	{SectionPublications, "Publications", ColumnLeft,
		func(r *model.Resume) bool { return len(r.Publications) > 0 },
		func(r *model.Resume) any { return publicationItems(r.Publications) }},

	{SectionSkills, "Technical Skills", ColumnRight,
		func(r *model.Resume) bool { return len(r.Skills) > 0 },
		func(r *model.Resume) any { return skillItems(r.Skills) }},
	{SectionProjects, "Projects", ColumnRight,
		func(r *model.Resume) bool { return len(r.Projects) > 0 },
		func(r *model.Resume) any { return projectItems(r.Projects) }},
	{SectionEducation, "Education", ColumnRight,
		func(r *model.Resume) bool { return len(r.Education) > 0 },
		func(r *model.Resume) any { return educationItems(r.Education) }},
	{SectionCertificates, "Certificates", ColumnRight,
		func(r *model.Resume) bool { return len(r.Certificates) > 0 },
		func(r *model.Resume) any { return certificateItems(r.Certificates) }},
	{SectionVolunteer, "Volunteer", ColumnRight,
		func(r *model.Resume) bool { return len(r.Volunteer) > 0 },
		func(r *model.Resume) any { return volunteerItems(r.Volunteer) }},
	{SectionLanguages, "Languages", ColumnRight,
		func(r *model.Resume) bool { return len(r.Languages) > 0 },
		func(r *model.Resume) any { return languageItems(r.Languages) }},
	{SectionInterests, "Interests", ColumnRight,
		func(r *model.Resume) bool { return len(r.Interests) > 0 },
		func(r *model.Resume) any { return interestTags(r.Interests) }},
}

// Project builds the page layout for r. It only reads r.
func Project(r *model.Resume) Layout {
	if r == nil {
		r = &model.Resume{}
	}
	var l Layout
	for _, p := range placements {
		if !p.present(r) {
			continue
		}
		s := Section{ID: p.id, Title: p.title, Body: p.build(r)}
		if p.column == ColumnLeft {
			l.Left = append(l.Left, s)
		} else {
			l.Right = append(l.Right, s)
		}
	}

	for _, s := range l.Left {
		l.TOC = append(l.TOC, TOCEntry{Label: s.Title, Anchor: "#" + string(s.ID)})
	}
	for _, s := range l.Right {
		l.TOC = append(l.TOC, TOCEntry{Label: s.Title, Anchor: "#" + string(s.ID)})
	}

	l.Contacts = BuildContacts(r.Basics)
	l.Header = buildHeader(r.Basics, l.Contacts)
	title := l.Header.Name
	if title == "" {
		title = "Resume"
	}
	l.Left = append([]Section{{ID: SectionHeader, Title: title, HideTitle: true, Body: l.Header}}, l.Left...)
	return l
}

// Header carries the page's main heading.
type Header struct {
	Name     string
	Label    string
	Location string
	Contacts []Contact
}

func buildHeader(b *model.Basics, contacts []Contact) Header {
	if b == nil {
		return Header{Contacts: contacts}
	}
	h := Header{Name: b.Name.String(), Label: b.Label.String(), Contacts: contacts}
	if loc := b.Location; loc != nil {
		h.Location = joinNonEmpty(", ", loc.City.String(), loc.Region.String(), loc.CountryCode.String())
	}
	return h
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
