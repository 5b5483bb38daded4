package telegram

import (
	"context"

	"gatekeeper/internal/core/domain/bot"
	e "gatekeeper/internal/core/domain/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender sends messages and photos through the Telegram Bot API. At most one
// request per call, no retries; the HTTP client injected into the underlying
// api carries the request timeout.
type Sender struct {
	api *tgbotapi.BotAPI
}

func New(api *tgbotapi.BotAPI) *Sender {
	if api == nil {
		panic(e.NewNilArgumentError("api"))
	}
	return &Sender{api: api}
}

func (s *Sender) SendMessage(ctx context.Context, m bot.Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	if m.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) SendPhoto(ctx context.Context, p bot.Photo) error {
	photo := tgbotapi.NewPhoto(p.ChatID, fileOf(p.Image))
	photo.Caption = p.Caption
	if p.HTML {
		photo.ParseMode = tgbotapi.ModeHTML
	}
	if p.Button.IsPresent {
		photo.ReplyMarkup = keyboardOf(p.Button.Value)
	}
	_, err := s.api.Send(photo)
	return err
}

func fileOf(image bot.Image) tgbotapi.RequestFileData {
	if image.URL != "" {
		return tgbotapi.FileURL(image.URL)
	}
	return tgbotapi.FilePath(image.FilePath)
}

// The library's keyboard types have no web_app field, so the inline keyboard
// is written in the Bot API wire format directly; ReplyMarkup is an
// interface{} and gets marshaled as-is.
type webAppInfo struct {
	URL string `json:"url"`
}

type inlineKeyboardButton struct {
	Text   string      `json:"text"`
	URL    string      `json:"url,omitempty"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

func keyboardOf(button bot.Button) inlineKeyboardMarkup {
	inline := inlineKeyboardButton{Text: button.Text}
	if button.IsWebApp {
		inline.WebApp = &webAppInfo{URL: button.URL}
	} else {
		inline.URL = button.URL
	}
	return inlineKeyboardMarkup{InlineKeyboard: [][]inlineKeyboardButton{{inline}}}
}
