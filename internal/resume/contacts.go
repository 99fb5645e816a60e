package resume

import "portfolio-site/internal/model"

// Contact is one entry of the header contact block.
type Contact struct {
	Label string
	Value string
	Href  string
}

// BuildContacts lists email and phone first, then at most one entry per
// profile network in input order. Profiles without both a URL and a network
// are skipped.
func BuildContacts(b *model.Basics) []Contact {
	if b == nil {
		return nil
	}
	var contacts []Contact
	if email := b.Email.String(); email != "" {
		contacts = append(contacts, Contact{Label: "Email", Value: email, Href: "mailto:" + email})
	}
	if phone := b.Phone.String(); phone != "" {
		contacts = append(contacts, Contact{Label: "Phone", Value: phone, Href: "tel:" + phone})
	}

	seen := make(map[string]struct{}, len(b.Profiles))
	for _, p := range b.Profiles {
		if p.URL == "" || p.Network == "" {
			continue
		}
		network := p.Network.String()
		if _, dup := seen[network]; dup {
			continue
		}
		seen[network] = struct{}{}
		contacts = append(contacts, Contact{Label: network, Value: profileDisplay(p), Href: p.URL.String()})
	}
	return contacts
}

func profileDisplay(p model.Profile) string {
	user := p.Username.String()
	if user == "" {
		return p.URL.String()
	}
	switch p.Network {
	case "LinkedIn":
		return "linkedin.com/in/" + user
	case "GitHub":
		return "github.com/" + user
	}
	return user
}
