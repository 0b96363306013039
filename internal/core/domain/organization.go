package domain

import "strings"

// OrgRole classifies an affiliation target.
type OrgRole string

// Organization role classifications recognized by the corpus.
const (
	RolePoliticalParty     OrgRole = "politicalParty"
	RoleParliamentaryGroup OrgRole = "parliamentaryGroup"
	RoleEthnicCommunity    OrgRole = "ethnicCommunity"
	RoleIndependent        OrgRole = "independent"
)

// Organization is an affiliation target: a political party, a
// parliamentary group, an ethnic-minority group, or independents.
// Organizations are immutable once the root document is built.
type Organization struct {
	ID      string
	Name    string
	Acronym string
	Role    OrgRole
}

// Role-indicator phrases, checked in order of specificity.
const (
	phraseMinorities   = "minorităților naționale"
	phraseGroup        = "grupul parlamentar"
	phraseIndependent  = "independent"
	phraseUnaffiliated = "neafiliat"
	phraseNoAdherence  = "fără adeziune"
)

// ClassifyOrganizationRole determines the role of an organization by
// keyword match against known role-indicator phrases. The default is
// political party.
func ClassifyOrganizationRole(name string) OrgRole {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, phraseMinorities):
		return RoleEthnicCommunity
	case strings.Contains(lower, phraseGroup):
		return RoleParliamentaryGroup
	case strings.Contains(lower, phraseIndependent):
		return RoleIndependent
	case lower == phraseUnaffiliated || lower == phraseNoAdherence:
		return RoleIndependent
	default:
		return RolePoliticalParty
	}
}

// SplitOrganizationName separates a display name of the form
// "PSD - Partidul Social Democrat" into acronym and name. When no
// acronym prefix is present the acronym is empty and the full string
// is returned as the name.
func SplitOrganizationName(display string) (name, acronym string) {
	parts := strings.SplitN(display, " - ", 2)
	if len(parts) == 2 && isAcronym(strings.TrimSpace(parts[0])) {
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
	}
	return strings.TrimSpace(display), ""
}

// isAcronym reports whether the token looks like a party acronym:
// short, all uppercase letters.
func isAcronym(token string) bool {
	if token == "" || len(token) > 10 {
		return false
	}
	return token == strings.ToUpper(token) && !strings.ContainsAny(token, " \t")
}
