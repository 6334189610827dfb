// Package content normalizes remote site text for Discord.
package content

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var entityMap = map[string]string{
	"&amp;":   "&",
	"&#038;":  "&",
	"&nbsp;":  " ",
	"&lt;":    "<",
	"&gt;":    ">",
	"&quot;":  `"`,
	"&#039;":  "'",
	"&#8217;": "’",
	"&#8216;": "‘",
	"&#8211;": "–",
	"&#8212;": "—",
	"&#8230;": "…",
	"&#8221;": "”",
}

var (
	entityRe  = regexp.MustCompile(`&[\w\d#]{2,5};`)
	stripTags = bluemonday.StrictPolicy()
)

// FixContent strips markup the site leaves in suggestion bodies and decodes
// the entities it commonly emits.
func FixContent(s string) string {
	s = strings.ReplaceAll(s, "<br />", "")
	s = stripTags.Sanitize(s)
	return entityRe.ReplaceAllStringFunc(s, func(m string) string {
		if repl, ok := entityMap[m]; ok {
			return repl
		}
		return m
	})
}

// StripLength truncates s to at most length runes, ellipsized.
func StripLength(s string, length int) string {
	runes := []rune(s)
	if len(runes) > length {
		return string(runes[:length-3]) + "..."
	}
	return s
}

// ParseAvatarURL cleans up avatar URLs the site reports. Usernames may
// contain spaces, and Discord cannot render SVG avatars.
func ParseAvatarURL(url string) string {
	url = strings.ReplaceAll(url, " ", "")
	return strings.ReplaceAll(url, ".svg", ".png")
}

// SplitMessage chunks a message so every part fits within Discord's length
// limit, preferring newline boundaries.
func SplitMessage(s string, limit int) []string {
	if s == "" {
		return nil
	}
	if len(s) <= limit {
		return []string{s}
	}

	var parts []string
	for len(s) > limit {
		cut := strings.LastIndex(s[:limit], "\n")
		if cut <= 0 {
			// Hard cut: back up so a multi-byte rune is never split.
			cut = limit
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		parts = append(parts, s[:cut])
		s = strings.TrimPrefix(s[cut:], "\n")
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
