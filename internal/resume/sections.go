package resume

import (
	"slices"

	"portfolio-site/internal/model"
)

type ExperienceItem struct {
	Position   string
	Company    string
	CompanyURL string
	Range      string
	Location   string
	Summary    string
	Highlights []string
}

type PublicationItem struct {
	Name      string
	Publisher string
	URL       string
	Date      string
}

type SkillItem struct {
	Name     string
	Level    string
	Keywords []string
}

type ProjectItem struct {
	Name        string
	Entity      string
	Range       string
	Description string
	Keywords    []string
	URL         string
}

type EducationItem struct {
	Institution string
	Degree      string
	Range       string
	Score       string
}

type CertificateItem struct {
	Name     string
	Issuer   string
	Date     string
	URL      string
	URLLabel string
}

type VolunteerItem struct {
	Organization string
	Position     string
	Range        string
	Summary      string
}

type LanguageItem struct {
	Language string
	Fluency  string
}

func experienceItems(work []model.Work) []ExperienceItem {
	items := make([]ExperienceItem, 0, len(work))
	for _, w := range work {
		items = append(items, ExperienceItem{
			Position:   w.Position.String(),
			Company:    w.Name.String(),
			CompanyURL: w.URL.String(),
			Range:      Range(w.StartDate.String(), w.EndDate.String()),
			Location:   w.Location.String(),
			Summary:    w.Summary.String(),
			Highlights: slices.Clone(w.Highlights),
		})
	}
	return items
}

func publicationItems(pubs []model.Publication) []PublicationItem {
	items := make([]PublicationItem, 0, len(pubs))
	for _, p := range pubs {
		item := PublicationItem{Name: p.Name.String(), Publisher: p.Publisher.String(), Date: FormatDate(p.ReleaseDate.String())}
		// the link hangs off the publisher name
		if p.Publisher != "" {
			item.URL = p.URL.String()
		}
		items = append(items, item)
	}
	return items
}

func skillItems(skills []model.Skill) []SkillItem {
	items := make([]SkillItem, 0, len(skills))
	for _, s := range skills {
		items = append(items, SkillItem{Name: s.Name.String(), Level: s.Level.String(), Keywords: slices.Clone(s.Keywords)})
	}
	return items
}

func projectItems(projects []model.Project) []ProjectItem {
	items := make([]ProjectItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, ProjectItem{
			Name:        p.Name.String(),
			Entity:      p.Entity.String(),
			Range:       Range(p.StartDate.String(), p.EndDate.String()),
			Description: p.Description.String(),
			Keywords:    slices.Clone(p.Keywords),
			URL:         p.URL.String(),
		})
	}
	return items
}

func educationItems(edu []model.Education) []EducationItem {
	items := make([]EducationItem, 0, len(edu))
	for _, e := range edu {
		item := EducationItem{
			Institution: e.Institution.String(),
			Degree:      joinNonEmpty(", ", e.StudyType.String(), e.Area.String()),
			Range:       Range(e.StartDate.String(), e.EndDate.String()),
		}
		if score := e.Score.String(); score != "" {
			item.Score = "GPA " + score
		}
		items = append(items, item)
	}
	return items
}

func certificateItems(certs []model.Certificate) []CertificateItem {
	items := make([]CertificateItem, 0, len(certs))
	for _, c := range certs {
		item := CertificateItem{Name: c.Name.String(), Issuer: c.Issuer.String(), Date: FormatDate(c.Date.String()), URL: c.URL.String()}
		if c.URL != "" {
			item.URLLabel = LinkLabel(c.URL.String())
		}
		items = append(items, item)
	}
	return items
}

func volunteerItems(vol []model.Volunteer) []VolunteerItem {
	items := make([]VolunteerItem, 0, len(vol))
	for _, v := range vol {
		items = append(items, VolunteerItem{
			Organization: v.Organization.String(),
			Position:     v.Position.String(),
			Range:        Range(v.StartDate.String(), v.EndDate.String()),
			Summary:      v.Summary.String(),
		})
	}
	return items
}

func languageItems(langs []model.Language) []LanguageItem {
	items := make([]LanguageItem, 0, len(langs))
	for _, l := range langs {
		items = append(items, LanguageItem{Language: l.Language.String(), Fluency: l.Fluency.String()})
	}
	return items
}

// interestTags flattens every interest into its name followed by its
// keywords, dropping blanks.
func interestTags(interests []model.Interest) []string {
	var tags []string
	for _, it := range interests {
		if it.Name != "" {
			tags = append(tags, it.Name.String())
		}
		for _, k := range it.Keywords {
			if k != "" {
				tags = append(tags, k)
			}
		}
	}
	return tags
}
