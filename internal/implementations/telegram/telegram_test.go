package telegram

import (
	"encoding/json"
	"testing"

	"gatekeeper/internal/core/domain/bot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func TestKeyboardOf(t *testing.T) {
	cases := []struct {
		id       string
		button   bot.Button
		expected string
	}{
		{
			id:     "web app button",
			button: bot.Button{Text: "VERIFY", URL: "https://example.com/app?c=42", IsWebApp: true},
			expected: `{"inline_keyboard": [[
				{"text": "VERIFY", "web_app": {"url": "https://example.com/app?c=42"}}
			]]}`,
		},
		{
			id:     "url button",
			button: bot.Button{Text: "Tap to VERIFY", URL: "tg://resolve?domain=bot&start=ch"},
			expected: `{"inline_keyboard": [[
				{"text": "Tap to VERIFY", "url": "tg://resolve?domain=bot&start=ch"}
			]]}`,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			markup := keyboardOf(testcase.button)

			encoded, err := json.Marshal(markup)

			assert := require.New(t)
			assert.NoError(err)
			assert.JSONEq(testcase.expected, string(encoded))
		})
	}
}

func TestFileOf(t *testing.T) {
	t.Run("remote url", func(t *testing.T) {
		file := fileOf(bot.ImageFromURL("https://cdn.example.com/human.jpg"))

		require.Equal(t, tgbotapi.FileURL("https://cdn.example.com/human.jpg"), file)
	})

	t.Run("bundled file", func(t *testing.T) {
		file := fileOf(bot.ImageFromFile("safeguard-human.jpg"))

		require.Equal(t, tgbotapi.FilePath("safeguard-human.jpg"), file)
	})
}
