package domain

import (
	"strconv"
	"strings"
)

// LinkIDVerb marks where the record id goes in a configured link pattern.
const LinkIDVerb = "%d"

// ValidLinkPattern accepts an empty pattern or one holding exactly one %d and no
// other verbs.
func ValidLinkPattern(pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.Count(pattern, LinkIDVerb) == 1 && strings.Count(pattern, "%") == 1
}

// ExpandLink puts id in place of the %d verb. An empty pattern yields no link, and a
// pattern without the verb is returned as is.
func ExpandLink(pattern string, id int64) string {
	if pattern == "" {
		return ""
	}
	return strings.Replace(pattern, LinkIDVerb, strconv.FormatInt(id, 10), 1)
}
