// Package extractor turns raw source documents into candidate records: JSON
// server lists from the speedtest API and HTML reachability tables. Malformed
// records are skipped; a server list that is not a JSON array fails the
// document, while reachability pages degrade to zero records.
package extractor

import "strings"

// CleanText collapses runs of Unicode whitespace, including non-breaking
// spaces, to single ASCII spaces and trims both ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitCityCountry splits a heading like "Lagos, Nigeria" on the first comma
// into city and country. Headings without a comma ("Tokyo", "US East
// (N. Virginia)") go entirely into city with an empty country.
func SplitCityCountry(heading string) (string, string) {
	txt := CleanText(heading)
	if city, country, found := strings.Cut(txt, ","); found {
		return strings.TrimSpace(city), strings.TrimSpace(country)
	}
	return txt, ""
}
