package utils

import (
	"strings"
)

// Latin-1 accents folded to their ASCII base letters. Enough for the titles
// this backend sees; anything else is dropped like punctuation.
var slugTransliterations = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ä': "a", 'ã': "a", 'å': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'ö': "o", 'õ': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'æ': "ae", 'œ': "oe", 'ß': "ss",
}

// Slugify derives a lowercase, hyphen-separated, URL-safe token from a
// title. Deterministic and pure: the same title always yields the same
// slug, and the result is never empty. A title with no usable characters
// falls back to "untitled". No uniqueness check is performed against
// existing slugs.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			if s, ok := slugTransliterations[r]; ok {
				if pendingHyphen && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingHyphen = false
				b.WriteString(s)
			} else {
				// punctuation and whitespace collapse into one hyphen
				pendingHyphen = true
			}
		}
	}

	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
