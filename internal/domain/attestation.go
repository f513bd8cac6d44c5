package domain

import "time"

// DocumentKind selects which fixed template an attestation document is
// rendered from.
type DocumentKind string

const (
	// DocumentEligible lists legs that can carry the EEA reduction.
	DocumentEligible DocumentKind = "eligible"
	// DocumentIneligible lists legs that cannot (wrong mode or zero fare);
	// its template carries additional explanatory and disclaimer text.
	DocumentIneligible DocumentKind = "ineligible"
)

// AttestationRow is one printed line of a certificate page.
type AttestationRow struct {
	Date        time.Time
	Origin      string
	Destination string
	Departure   time.Time
	Class       string // ClassFirst or ClassSecond; empty means ClassSecond
}

// AttestationPage holds at most 20 rows, already in the exact order the
// template prints them (rows render bottom-up on the page).
type AttestationPage struct {
	Rows []AttestationRow
}

// AttestationDocument is the fully laid-out intermediate form of one
// certificate: the renderer only needs to stamp it onto the template.
type AttestationDocument struct {
	Kind         DocumentKind
	ValidityDate time.Time
	Pages        []AttestationPage
}
