package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Go models for the JSON Resume document rendered on the résumé page.
// Every field is optional; the zero value means "absent".

// Text is a scalar that accepts a JSON string, number or boolean and keeps it
// as text. Résumé exports often carry years or GPAs as bare numbers.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '{', '[':
		// not a scalar; treated as absent
		*t = ""
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Text(strconv.FormatBool(v))
	return nil
}

func (t Text) String() string { return string(t) }

// TextList is a list of Text. Numbers and booleans are stringified; nulls,
// blanks and nested values are dropped. A lone scalar becomes a one-item list.
type TextList []string

func (l *TextList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		var t Text
		if err := t.UnmarshalJSON(b); err != nil {
			return err
		}
		*l = nil
		if t != "" {
			*l = TextList{t.String()}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(TextList, 0, len(raw))
	for _, item := range raw {
		var t Text
		if err := t.UnmarshalJSON(item); err != nil {
			return err
		}
		if t != "" {
			out = append(out, t.String())
		}
	}
	*l = out
	return nil
}

type Location struct {
	City        Text `json:"city,omitempty"`
	Region      Text `json:"region,omitempty"`
	CountryCode Text `json:"countryCode,omitempty"`
}

type Profile struct {
	Network  Text `json:"network,omitempty"`
	Username Text `json:"username,omitempty"`
	URL      Text `json:"url,omitempty"`
}

type Basics struct {
	Name     Text      `json:"name,omitempty"`
	Label    Text      `json:"label,omitempty"`
	Email    Text      `json:"email,omitempty"`
	Phone    Text      `json:"phone,omitempty"`
	Summary  Text      `json:"summary,omitempty"`
	URL      Text      `json:"url,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

type Work struct {
	Name       Text     `json:"name,omitempty"` // company
	Position   Text     `json:"position,omitempty"`
	URL        Text     `json:"url,omitempty"`
	Location   Text     `json:"location,omitempty"`
	StartDate  Text     `json:"startDate,omitempty"`
	EndDate    Text     `json:"endDate,omitempty"`
	Summary    Text     `json:"summary,omitempty"`
	Highlights TextList `json:"highlights,omitempty"`
}

type Education struct {
	Institution Text `json:"institution,omitempty"`
	Area        Text `json:"area,omitempty"`
	StudyType   Text `json:"studyType,omitempty"`
	StartDate   Text `json:"startDate,omitempty"`
	EndDate     Text `json:"endDate,omitempty"`
	Score       Text `json:"score,omitempty"`
}

type Certificate struct {
	Name   Text `json:"name,omitempty"`
	Date   Text `json:"date,omitempty"`
	Issuer Text `json:"issuer,omitempty"`
	URL    Text `json:"url,omitempty"`
}

type Publication struct {
	Name        Text `json:"name,omitempty"`
	Publisher   Text `json:"publisher,omitempty"`
	ReleaseDate Text `json:"releaseDate,omitempty"`
	URL         Text `json:"url,omitempty"`
	Summary     Text `json:"summary,omitempty"`
}

type Skill struct {
	Name     Text     `json:"name,omitempty"`
	Level    Text     `json:"level,omitempty"`
	Keywords TextList `json:"keywords,omitempty"`
}

type Language struct {
	Language Text `json:"language,omitempty"`
	Fluency  Text `json:"fluency,omitempty"`
}

type Interest struct {
	Name     Text     `json:"name,omitempty"`
	Keywords TextList `json:"keywords,omitempty"`
}

type Volunteer struct {
	Organization Text `json:"organization,omitempty"`
	Position     Text `json:"position,omitempty"`
	StartDate    Text `json:"startDate,omitempty"`
	EndDate      Text `json:"endDate,omitempty"`
	Summary      Text `json:"summary,omitempty"`
}

type Project struct {
	Name        Text     `json:"name,omitempty"`
	Description Text     `json:"description,omitempty"`
	StartDate   Text     `json:"startDate,omitempty"`
	EndDate     Text     `json:"endDate,omitempty"`
	URL         Text     `json:"url,omitempty"`
	Entity      Text     `json:"entity,omitempty"`
	Keywords    TextList `json:"keywords,omitempty"`
}

type Resume struct {
	Basics       *Basics       `json:"basics,omitempty"`
	Work         []Work        `json:"work,omitempty"`
	Education    []Education   `json:"education,omitempty"`
	Certificates []Certificate `json:"certificates,omitempty"`
	Publications []Publication `json:"publications,omitempty"`
	Skills       []Skill       `json:"skills,omitempty"`
	Languages    []Language    `json:"languages,omitempty"`
	Interests    []Interest    `json:"interests,omitempty"`
	Volunteer    []Volunteer   `json:"volunteer,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
}
