package patient

import "strings"

// Filter narrows an already-fetched patient list for search-as-you-type,
// without a round trip to the store. A patient matches when the lower-cased
// query is a substring of the lower-cased first name, last name or email, or
// of the raw id string. An empty query returns the input unchanged.
//
// Matching is case-folding only, never accent-folding: the query "lopez" does
// not match "López". That mirrors how the store compares text under its
// default collation, so server-side search and this local filter agree.
func Filter(patients []*Patient, query string) []*Patient {
	if query == "" {
		return patients
	}

	q := strings.ToLower(query)
	filtered := make([]*Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			(p.Email != "" && strings.Contains(strings.ToLower(p.Email), q)) ||
			strings.Contains(p.ID.String(), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
