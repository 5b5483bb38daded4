package announcechannel

import (
	"context"
	"errors"
	"fmt"

	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"
)

const defaultImageAsset = "safeguard-human.jpg"

const captionTemplate = `%s is being protected by <a href="tg://resolve?domain=Safeguard">@Safeguard</a>

Click below to verify you're human`

type Input struct {
	ChannelHandle channel.Handle
	ChatID        int64
}

type Result struct{}

type service struct {
	log              logging.Logger
	configRepository channel.Repository
	sender           bot.Sender
	botName          string
	overrideImageURL string
}

func New(
	log logging.Logger,
	configRepository channel.Repository,
	sender bot.Sender,
	botName string,
	overrideImageURL string,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if configRepository == nil {
		panic(e.NewNilArgumentError("configRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:              log,
		configRepository: configRepository,
		sender:           sender,
		botName:          botName,
		overrideImageURL: overrideImageURL,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	storedConfig, err := s.configRepository.Get(ctx, input.ChannelHandle)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not get channel config for announcement.",
				logging.Entry("input", input),
				logging.Entry("err", err),
			)
		}
		return result, err
	}
	config := storedConfig.Value

	photo := bot.Photo{
		ChatID:  input.ChatID,
		Caption: fmt.Sprintf(captionTemplate, config.DisplayName()),
		Image:   s.resolveImage(config),
		HTML:    true,
		Button: c.NewOptional(bot.Button{
			Text: "Tap to VERIFY",
			URL:  fmt.Sprintf("tg://resolve?domain=%s&start=%s", s.botName, input.ChannelHandle),
		}, true),
	}

	// Expected steady-state noise: the bot may already be kicked from the
	// channel by the time the send goes out.
	if err := s.sender.SendPhoto(ctx, photo); err != nil {
		s.log.Warning(
			ctx,
			"Could not send channel announcement.",
			logging.Entry("channelHandle", input.ChannelHandle),
			logging.Entry("chatID", input.ChatID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Channel announcement sent.",
		logging.Entry("channelHandle", input.ChannelHandle),
		logging.Entry("chatID", input.ChatID),
	)
	return result, nil
}

func (s *service) resolveImage(config channel.Config) bot.Image {
	if config.Image != "" {
		return bot.ImageFromURL(config.Image)
	}
	if s.overrideImageURL != "" {
		return bot.ImageFromURL(s.overrideImageURL)
	}
	return bot.ImageFromFile(defaultImageAsset)
}
