// Package lang loads the translation strings and resolves keys per guild.
package lang

import (
	"embed"
	"encoding/json"
	"log"
	"strings"

	"github.com/nameless-community/nameless-suggestions/src/bot/data"
)

//go:embed files/*.json
var files embed.FS

const DefaultLanguage = "en_UK"

// LanguageMap maps the display names offered in the settings menu to locale
// codes.
var LanguageMap = map[string]string{
	"EnglishUK": "en_UK",
	"Dutch":     "nl_NL",
	"German":    "de_DE",
}

type Manager struct {
	guilds    *data.Guilds
	languages map[string]map[string]interface{}
}

func New(guilds *data.Guilds) *Manager {
	m := &Manager{
		guilds:    guilds,
		languages: make(map[string]map[string]interface{}),
	}

	entries, err := files.ReadDir("files")
	if err != nil {
		log.Fatalf("lang: read language files: %v", err)
	}
	for _, entry := range entries {
		raw, err := files.ReadFile("files/" + entry.Name())
		if err != nil {
			log.Fatalf("lang: read %s: %v", entry.Name(), err)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			log.Printf("lang: skipping malformed language file %s: %v", entry.Name(), err)
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		m.languages[name] = parsed
	}

	if _, ok := m.languages[DefaultLanguage]; !ok {
		log.Fatalf("lang: default language %s is missing", DefaultLanguage)
	}
	log.Printf("lang: loaded %d languages", len(m.languages))
	return m
}

// GetString resolves a dot-path translation key in the guild's language,
// falling back to the default language. Placeholders are passed as key/value
// pairs and substituted as {key}.
func (m *Manager) GetString(guildID, key string, placeholders ...string) string {
	language := DefaultLanguage
	if m.guilds != nil {
		if guild, err := m.guilds.Get(guildID); err == nil && guild.Language != "" {
			language = guild.Language
		}
	}

	term, ok := m.lookup(language, key)
	if !ok {
		term, ok = m.lookup(DefaultLanguage, key)
	}
	if !ok {
		log.Printf("lang: term %q is missing from default (%s) translation", key, DefaultLanguage)
		return key
	}

	for i := 0; i+1 < len(placeholders); i += 2 {
		term = strings.ReplaceAll(term, "{"+placeholders[i]+"}", placeholders[i+1])
	}
	return term
}

func (m *Manager) lookup(language, key string) (string, bool) {
	node, ok := m.languages[language]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	var current interface{} = map[string]interface{}(node)
	for _, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current, ok = obj[part]
		if !ok {
			return "", false
		}
	}
	term, ok := current.(string)
	return term, ok
}
