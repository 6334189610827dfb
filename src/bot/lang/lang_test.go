package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStringDefaultLanguage(t *testing.T) {
	m := New(nil)

	got := m.GetString("guild1", "suggestionHandler.suggestion")
	assert.Equal(t, "Suggestion", got)
}

func TestGetStringPlaceholders(t *testing.T) {
	m := New(nil)

	got := m.GetString("guild1", "suggestionHandler.suggested_by", "user", "Aberdeener")
	assert.Equal(t, "Suggested by Aberdeener", got)
}

func TestFailureStringsResolveEverywhere(t *testing.T) {
	m := New(nil)

	// Interaction error paths lean on these; a raw key leaking into an
	// ephemeral reply would be worse than no message.
	for _, key := range []string{"unknown-error", "invalid-setup", "suggestionHandler.cannot_find_user"} {
		for _, code := range LanguageMap {
			term, ok := m.lookup(code, key)
			assert.True(t, ok, "%s in %s", key, code)
			assert.NotEqual(t, key, term)
		}
	}
}

func TestGetStringMissingKeyReturnsKey(t *testing.T) {
	m := New(nil)

	got := m.GetString("guild1", "no.such.key")
	assert.Equal(t, "no.such.key", got)
}

func TestLookupFallsBackToDefault(t *testing.T) {
	m := New(nil)

	// nl_NL has no settings section; the default language covers it.
	_, ok := m.lookup("nl_NL", "commands.webhookurl.success")
	require.False(t, ok)
	term, ok := m.lookup(DefaultLanguage, "commands.webhookurl.success")
	require.True(t, ok)
	assert.NotEmpty(t, term)
}

func TestLookupTranslatedLanguage(t *testing.T) {
	m := New(nil)

	term, ok := m.lookup("nl_NL", "suggestionHandler.suggestion")
	require.True(t, ok)
	assert.Equal(t, "Suggestie", term)
}

func TestLanguageMapCoversShippedFiles(t *testing.T) {
	m := New(nil)
	for _, code := range LanguageMap {
		_, ok := m.languages[code]
		assert.True(t, ok, code)
	}
}
