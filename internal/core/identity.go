package core

import (
	"regexp"
	"strings"
)

var (
	// caseNumberRe matches "CASE NUMBER 062024CA018136AXXXCE" with an
	// optional colon and flexible whitespace.
	caseNumberRe = regexp.MustCompile(`(?i)CASE NUMBER\s*:?\s*(\S+)`)

	// fileNumberRe matches assignment subjects of the form
	// "Our File no. 272-90250273 De Leon Reyes, Samuel vs Citizens".
	fileNumberRe = regexp.MustCompile(`(?i)Our File no\.\s+(\d+)-(\d+)\s+([^(]+?)\s+vs?\.?\s+[^(]+`)

	// partyRe pulls "LAST, FIRST v PARTY2" style captions out of a
	// subject line.
	partyRe = regexp.MustCompile(`(?i)([A-Z][A-Za-z]+)(?:,\s*[A-Z][A-Za-z\s]+?)?\s+v\.?s?\.?\s+([A-Z][A-Za-z\s/]+?)(?:\s+-|\s+/|$)`)

	trailingPunctRe = regexp.MustCompile(`[^\w]+$`)
)

// ParseCaseIdentity extracts whatever case identifiers the subject line
// carries. Absent fields stay empty; the resolver decides what is enough.
func ParseCaseIdentity(subject string) CaseIdentity {
	var identity CaseIdentity

	if m := fileNumberRe.FindStringSubmatch(subject); m != nil {
		identity.Client = m[1]
		identity.Matter = m[2]
		identity.Style = strings.TrimSpace(m[3])
	}

	if m := caseNumberRe.FindStringSubmatch(subject); m != nil {
		identity.CaseNumber = trailingPunctRe.ReplaceAllString(m[1], "")
	}

	if identity.Style == "" {
		if m := partyRe.FindStringSubmatch(subject); m != nil {
			plaintiff := strings.TrimSpace(m[1])
			defendant := strings.TrimSpace(m[2])
			identity.Style = plaintiff + " v " + defendant
		}
	}

	return identity
}
