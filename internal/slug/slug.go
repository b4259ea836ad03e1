// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// nonWord matches anything that isn't a word character or hyphen.
	nonWord = regexp.MustCompile(`[^a-z0-9_-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello & World!!" → "hello-and-world"
//
// Generate is idempotent: feeding a slug back through it returns the
// same slug.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = strings.ReplaceAll(result, "&", "-and-")
	result = nonWord.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// IsAutoDerived reports whether slug still matches what Generate would
// produce from title. The page editor keeps regenerating the slug from the
// title only while this holds; once the editor types a custom slug the
// title stops driving it.
func IsAutoDerived(slug, title string) bool {
	return slug == Generate(title)
}
