package resume

import (
	"testing"

	"portfolio-site/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(sections []Section) []SectionID {
	out := make([]SectionID, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.ID)
	}
	return out
}

func fullResume() *model.Resume {
	return &model.Resume{
		Basics: &model.Basics{
			Name:     "Ada Lovelace",
			Label:    "Engineer",
			Summary:  "Builds analytical engines.",
			Location: &model.Location{City: "London", CountryCode: "UK"},
		},
		Work:         []model.Work{{Name: "Acme", Position: "Lead", StartDate: "2021-03"}},
		Publications: []model.Publication{{Name: "Notes", Publisher: "Journal", URL: "https://j.example", ReleaseDate: "1843"}},
		Skills:       []model.Skill{{Name: "Go", Keywords: []string{"stdlib"}}},
		Projects:     []model.Project{{Name: "Engine"}},
		Education:    []model.Education{{Institution: "Home", StudyType: "BSc", Area: "Math", Score: "4.0"}},
		Certificates: []model.Certificate{{Name: "Cert", URL: "https://www.credly.com/x", Date: "2020-02"}},
		Volunteer:    []model.Volunteer{{Organization: "Club"}},
		Languages:    []model.Language{{Language: "English", Fluency: "Native"}},
		Interests:    []model.Interest{{Name: "Music", Keywords: []string{"", "piano"}}},
	}
}

func TestProjectFullPlacementOrder(t *testing.T) {
	l := Project(fullResume())

	assert.Equal(t, []SectionID{SectionHeader, SectionSummary, SectionExperience, SectionPublications}, ids(l.Left))
	assert.Equal(t, []SectionID{
		SectionSkills, SectionProjects, SectionEducation, SectionCertificates,
		SectionVolunteer, SectionLanguages, SectionInterests,
	}, ids(l.Right))

	require.Len(t, l.TOC, 10)
	assert.Equal(t, TOCEntry{Label: "Professional Summary", Anchor: "#summary"}, l.TOC[0])
	assert.Equal(t, TOCEntry{Label: "Interests", Anchor: "#interests"}, l.TOC[9])
}

func TestProjectSparseResume(t *testing.T) {
	r := &model.Resume{
		Basics:    &model.Basics{Name: "Ada", Summary: "Hi"},
		Work:      []model.Work{{Name: "Acme"}},
		Skills:    []model.Skill{{Name: "Go"}},
		Education: []model.Education{{Institution: "Uni"}},
		Projects:  []model.Project{},
	}
	l := Project(r)

	assert.Equal(t, []SectionID{SectionHeader, SectionSummary, SectionExperience}, ids(l.Left))
	assert.Equal(t, []SectionID{SectionSkills, SectionEducation}, ids(l.Right))
	assert.Equal(t, []TOCEntry{
		{Label: "Professional Summary", Anchor: "#summary"},
		{Label: "Experience", Anchor: "#experience"},
		{Label: "Technical Skills", Anchor: "#skills"},
		{Label: "Education", Anchor: "#education"},
	}, l.TOC)
}

func TestProjectHeaderAlwaysFirst(t *testing.T) {
	t.Run("empty resume", func(t *testing.T) {
		l := Project(&model.Resume{})
		require.Len(t, l.Left, 1)
		assert.Equal(t, SectionHeader, l.Left[0].ID)
		assert.Equal(t, "Resume", l.Left[0].Title)
		assert.True(t, l.Left[0].HideTitle)
		assert.Empty(t, l.Right)
		assert.Empty(t, l.TOC)
	})

	t.Run("nil resume", func(t *testing.T) {
		l := Project(nil)
		assert.Equal(t, []SectionID{SectionHeader}, ids(l.Left))
	})

	t.Run("header without summary", func(t *testing.T) {
		l := Project(&model.Resume{Basics: &model.Basics{Name: "Ada"}, Work: []model.Work{{}}})
		assert.Equal(t, []SectionID{SectionHeader, SectionExperience}, ids(l.Left))
		assert.Equal(t, "Ada", l.Left[0].Title)
	})
}

func TestProjectHeaderContent(t *testing.T) {
	l := Project(fullResume())
	h, ok := l.Left[0].Body.(Header)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", h.Name)
	assert.Equal(t, "Engineer", h.Label)
	assert.Equal(t, "London, UK", h.Location)
}

func TestProjectSectionBodies(t *testing.T) {
	l := Project(fullResume())
	byID := map[SectionID]Section{}
	for _, s := range append(l.Left, l.Right...) {
		byID[s.ID] = s
	}

	exp := byID[SectionExperience].Body.([]ExperienceItem)
	assert.Equal(t, "Mar 2021 — Present", exp[0].Range)

	edu := byID[SectionEducation].Body.([]EducationItem)
	assert.Equal(t, "BSc, Math", edu[0].Degree)
	assert.Equal(t, "GPA 4.0", edu[0].Score)
	assert.Empty(t, edu[0].Range)

	certs := byID[SectionCertificates].Body.([]CertificateItem)
	assert.Equal(t, "Feb 2020", certs[0].Date)
	assert.Equal(t, "credly.com", certs[0].URLLabel)

	pubs := byID[SectionPublications].Body.([]PublicationItem)
	assert.Equal(t, "1843", pubs[0].Date)
	assert.Equal(t, "https://j.example", pubs[0].URL)

	assert.Equal(t, []string{"Music", "piano"}, byID[SectionInterests].Body.([]string))
	assert.Equal(t, "Builds analytical engines.", byID[SectionSummary].Body.(string))
}

func TestProjectIsDeterministicAndReadOnly(t *testing.T) {
	r := fullResume()
	before := *r.Basics
	highlights := []string{"a", "b"}
	r.Work[0].Highlights = highlights

	first := Project(r)
	second := Project(r)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *r.Basics)

	exp := first.Left[2].Body.([]ExperienceItem)
	exp[0].Highlights[0] = "changed"
	assert.Equal(t, "a", r.Work[0].Highlights[0])
}

func TestPlacementTableOrder(t *testing.T) {
	var left, right []SectionID
	for _, p := range placements {
		if p.column == ColumnLeft {
			left = append(left, p.id)
		} else {
			right = append(right, p.id)
		}
	}
	assert.Equal(t, []SectionID{SectionSummary, SectionExperience, SectionPublications}, left)
	assert.Equal(t, []SectionID{
		SectionSkills, SectionProjects, SectionEducation, SectionCertificates,
		SectionVolunteer, SectionLanguages, SectionInterests,
	}, right)
}
