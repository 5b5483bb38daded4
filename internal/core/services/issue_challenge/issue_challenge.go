package issuechallenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatekeeper/internal/core/domain/attempt"
	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"
)

const defaultImageAsset = "safeguard-click-verify.jpg"

const caption = `<b>Verify you're human with Safeguard Portal</b>

Click 'VERIFY' and complete captcha to gain entry - <a href="https://docs.safeguard.run/group-security/verification-issues"><i>Not working?</i></a>`

type Input struct {
	ChannelRef channel.Handle
	ChatID     int64
}

type Result struct {
	AttemptID attempt.ID
}

type service struct {
	log               logging.Logger
	attemptRepository attempt.Repository
	identityGenerator attempt.IdentityGenerator
	sender            bot.Sender
	webAppLink        string
	overrideImageURL  string
	now               func() time.Time
}

func New(
	log logging.Logger,
	attemptRepository attempt.Repository,
	identityGenerator attempt.IdentityGenerator,
	sender bot.Sender,
	webAppLink string,
	overrideImageURL string,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if attemptRepository == nil {
		panic(e.NewNilArgumentError("attemptRepository"))
	}
	if identityGenerator == nil {
		panic(e.NewNilArgumentError("identityGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		attemptRepository: attemptRepository,
		identityGenerator: identityGenerator,
		sender:            sender,
		webAppLink:        webAppLink,
		overrideImageURL:  overrideImageURL,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	attemptID := s.identityGenerator.GenerateAttemptID()

	// The attempt is bound to its channel and requesting chat at issuance
	// time; the callback redeems exactly this binding.
	err = s.attemptRepository.Create(ctx, attempt.Attempt{
		ID:            attemptID,
		ChannelHandle: input.ChannelRef,
		ChatID:        input.ChatID,
		CreatedAt:     s.now(),
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not persist verification attempt.",
				logging.Entry("input", input),
				logging.Entry("err", err),
			)
		}
		return result, err
	}

	photo := bot.Photo{
		ChatID:  input.ChatID,
		Caption: caption,
		Image:   s.resolveImage(),
		HTML:    true,
		Button: c.NewOptional(bot.Button{
			Text:     "VERIFY",
			URL:      fmt.Sprintf("%s?c=%s&attempt=%s", s.webAppLink, input.ChannelRef, attemptID),
			IsWebApp: true,
		}, true),
	}
	if err := s.sender.SendPhoto(ctx, photo); err != nil {
		s.log.Warning(
			ctx,
			"Could not send challenge prompt.",
			logging.Entry("chatID", input.ChatID),
			logging.Entry("attemptID", attemptID),
			logging.Entry("err", err),
		)
		return Result{AttemptID: attemptID}, nil
	}

	s.log.Info(
		ctx,
		"Challenge issued.",
		logging.Entry("chatID", input.ChatID),
		logging.Entry("channelRef", input.ChannelRef),
		logging.Entry("attemptID", attemptID),
	)
	return Result{AttemptID: attemptID}, nil
}

func (s *service) resolveImage() bot.Image {
	if s.overrideImageURL != "" {
		return bot.ImageFromURL(s.overrideImageURL)
	}
	return bot.ImageFromFile(defaultImageAsset)
}
