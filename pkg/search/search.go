// Package search holds the substring matching rules shared by every user store.
package search

import "strings"

// LikeEscape is the escape character used in LIKE patterns built by LikePattern.
const LikeEscape = `\`

// Normalize prepares a raw query string for case-insensitive matching.
func Normalize(query string) string {
	return strings.ToLower(query)
}

// ContainsFold reports whether query occurs in s, ignoring case.
// An empty query matches everything.
func ContainsFold(s, query string) bool {
	return strings.Contains(strings.ToLower(s), Normalize(query))
}

// EscapeLike escapes LIKE wildcards so the query is matched literally
func EscapeLike(query string) string {
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, LikeEscape, LikeEscape+LikeEscape)
	query = strings.ReplaceAll(query, "%", LikeEscape+"%")
	query = strings.ReplaceAll(query, "_", LikeEscape+"_")

	return query
}

// LikePattern returns a lower-cased "%query%" pattern with wildcards escaped.
// Use it together with ESCAPE '\'.
func LikePattern(query string) string {
	return "%" + EscapeLike(Normalize(query)) + "%"
}
