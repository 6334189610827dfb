package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/stretchr/testify/assert"
)

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: SuggestModalID,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: suggestTitleID, Value: "Add dark mode"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: suggestExplainID, Value: "Please add a dark theme"},
			}},
		},
	}

	title, description := modalValues(data)
	assert.Equal(t, "Add dark mode", title)
	assert.Equal(t, "Please add a dark theme", description)
}

func TestModalValuesEmpty(t *testing.T) {
	title, description := modalValues(discordgo.ModalSubmitInteractionData{})
	assert.Empty(t, title)
	assert.Empty(t, description)
}

func TestValidationErrors(t *testing.T) {
	assert.Empty(t, validationErrors(errors.New("plain")))

	err := &nameless.APIError{
		Raw:       "nameless:validation_errors",
		Namespace: "nameless",
		Code:      "validation_errors",
		Meta:      []string{"Title too short", "Content required"},
	}
	assert.Equal(t, "Title too short\nContent required", validationErrors(err))
	assert.Equal(t, "Title too short\nContent required",
		validationErrors(fmt.Errorf("wrapped: %w", err)))
}
