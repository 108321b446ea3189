package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	underscoreRuns  = regexp.MustCompile(`_+`)
	disallowedRunes = regexp.MustCompile(`[^a-z0-9_\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}\x{3400}-\x{4DBF}]`)
)

var parenStripper = strings.NewReplacer("(", "", ")", "", "（", "", "）", "")

// ToSafeKey derives the slug used to key screens synthesized from the
// legacy array form. The transform is deterministic: lower-case, strip
// ASCII and full-width parentheses, map the katakana middle dot to an
// underscore, collapse whitespace runs to single underscores, drop every
// rune outside lowercase ASCII letters, digits, underscore, Hiragana,
// Katakana and the common CJK ideograph ranges, collapse underscore runs,
// and trim underscores from both ends. The middle-dot mapping runs before
// the rune filter because U+30FB sits inside the Katakana block the filter
// keeps.
func ToSafeKey(name string) string {
	key := strings.ToLower(name)
	key = parenStripper.Replace(key)
	key = strings.ReplaceAll(key, "・", "_")
	key = whitespaceRuns.ReplaceAllString(key, "_")
	key = disallowedRunes.ReplaceAllString(key, "")
	key = underscoreRuns.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}
