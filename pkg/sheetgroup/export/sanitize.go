package export

import (
	"regexp"
	"strings"
)

// MaxNameLength bounds sanitized names, in characters.
const MaxNameLength = 80

// FallbackName is returned when sanitizing leaves nothing.
const FallbackName = "sheet"

var (
	unsafeChars    = regexp.MustCompile(`[\\/*?":<>|]`)
	whitespaceRuns = regexp.MustCompile(`[\s\p{Zs}]+`)
	underscoreRuns = regexp.MustCompile(`__+`)
)

// Sanitize turns an arbitrary string into a file and archive safe token.
func Sanitize(raw string) string {
	name := strings.TrimSpace(raw)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	if name == "" {
		return FallbackName
	}
	return name
}
