// Package domain contains the core data types for the EasyEEA backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (refdata, transit, repo, service, handler).
package domain

import "strings"

// Station is a rail station as the traveler knows it.
// ServiceNames is the set of aliases under which the station appears in the
// public fare reference table; the same physical station can be recorded there
// under several names (e.g. "Paris Gare de Lyon", "Paris (intramuros)").
type Station struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ServiceNames []string `json:"service_public_name,omitempty"`
}

// HasServiceName reports whether alias is one of the station's service names.
// Comparison is case-insensitive, matching how the fare table is queried.
func (s Station) HasServiceName(alias string) bool {
	for _, n := range s.ServiceNames {
		if strings.EqualFold(n, alias) {
			return true
		}
	}
	return false
}
