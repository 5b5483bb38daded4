package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"
	announce "gatekeeper/internal/core/services/announce_channel"
	issue "gatekeeper/internal/core/services/issue_challenge"
	save "gatekeeper/internal/core/services/save_channel_config"
	"gatekeeper/internal/http/handlers/response"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	setupTemplate = "Fill below and send\n\n" +
		"channel: //@username\n" +
		"image: // image url to display in your channel\n" +
		"name:  // community name\n" +
		"inviteLink: // your group invite link"
	configSavedReply  = "Saved!\n\nPlease note that it will be deleted after summer."
	configBrokenReply = "Hmmm, looks like your get is wrong"
)

// Handler dispatches Telegram webhook updates. Channel membership updates
// announce the verification prompt; private chat messages drive the
// challenge and the configuration flow. Every update is acknowledged with
// 200 regardless of the outcome so Telegram does not retry it.
type Handler struct {
	log               logging.Logger
	announceChannel   services.Service[announce.Input, announce.Result]
	issueChallenge    services.Service[issue.Input, issue.Result]
	saveChannelConfig services.Service[save.Input, save.Result]
	sender            bot.Sender
}

func New(
	log logging.Logger,
	announceChannel services.Service[announce.Input, announce.Result],
	issueChallenge services.Service[issue.Input, issue.Result],
	saveChannelConfig services.Service[save.Input, save.Result],
	sender bot.Sender,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if announceChannel == nil {
		panic(e.NewNilArgumentError("announceChannel"))
	}
	if issueChallenge == nil {
		panic(e.NewNilArgumentError("issueChallenge"))
	}
	if saveChannelConfig == nil {
		panic(e.NewNilArgumentError("saveChannelConfig"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Handler{
		log:               log,
		announceChannel:   announceChannel,
		issueChallenge:    issueChallenge,
		saveChannelConfig: saveChannelConfig,
		sender:            sender,
	}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer response.RenderOK(rw)

	update := tgbotapi.Update{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Info(
			r.Context(),
			"Could not decode webhook update.",
			logging.Entry("err", err),
		)
		return
	}

	switch {
	case isChannelMembershipUpdate(&update):
		h.handleMembership(r.Context(), update.MyChatMember)
	case isPrivateMessage(&update):
		h.handlePrivateMessage(r.Context(), update.Message)
	}
}

func isChannelMembershipUpdate(u *tgbotapi.Update) bool {
	return u.MyChatMember != nil && u.MyChatMember.Chat.Type == "channel"
}

func isPrivateMessage(u *tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Chat.IsPrivate()
}

func (h *Handler) handleMembership(ctx context.Context, m *tgbotapi.ChatMemberUpdated) {
	_, err := h.announceChannel.Run(ctx, announce.Input{
		ChannelHandle: channel.Handle(m.Chat.UserName),
		ChatID:        m.Chat.ID,
	})
	if err != nil {
		h.log.Warning(
			ctx,
			"Could not announce verification prompt.",
			logging.Entry("chatID", m.Chat.ID),
			logging.Entry("err", err),
		)
	}
}

func (h *Handler) handlePrivateMessage(ctx context.Context, m *tgbotapi.Message) {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		if ref, ok := parseStart(text); ok {
			h.startChallenge(ctx, ref, m.Chat.ID)
		}
	case strings.HasPrefix(text, "/setup"):
		h.reply(ctx, m.Chat.ID, setupTemplate)
	default:
		h.saveConfig(ctx, m.Chat.ID, text)
	}
}

// parseStart accepts exactly one payload argument. A bare /start or a
// multi-word payload is not a challenge request and is ignored.
func parseStart(text string) (channel.Handle, bool) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return "", false
	}
	return channel.Handle(parts[1]), true
}

func (h *Handler) startChallenge(ctx context.Context, ref channel.Handle, chatID int64) {
	_, err := h.issueChallenge.Run(ctx, issue.Input{ChannelRef: ref, ChatID: chatID})
	if err != nil {
		h.log.Warning(
			ctx,
			"Could not issue verification challenge.",
			logging.Entry("chatID", chatID),
			logging.Entry("err", err),
		)
	}
}

func (h *Handler) saveConfig(ctx context.Context, chatID int64, text string) {
	_, err := h.saveChannelConfig.Run(ctx, save.Input{Text: text})
	if err != nil {
		h.reply(ctx, chatID, configBrokenReply)
		return
	}
	h.reply(ctx, chatID, configSavedReply)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	err := h.sender.SendMessage(ctx, bot.Message{ChatID: chatID, Text: text})
	if err != nil {
		h.log.Warning(
			ctx,
			"Could not send reply.",
			logging.Entry("chatID", chatID),
			logging.Entry("err", err),
		)
	}
}
