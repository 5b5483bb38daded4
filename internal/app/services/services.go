package services

import (
	"gatekeeper/internal/app/deps"
	"gatekeeper/internal/core/services"
	announcechannel "gatekeeper/internal/core/services/announce_channel"
	issuechallenge "gatekeeper/internal/core/services/issue_challenge"
	resolveverification "gatekeeper/internal/core/services/resolve_verification"
	savechannelconfig "gatekeeper/internal/core/services/save_channel_config"
)

type Services struct {
	AnnounceChannel     services.Service[announcechannel.Input, announcechannel.Result]
	IssueChallenge      services.Service[issuechallenge.Input, issuechallenge.Result]
	SaveChannelConfig   services.Service[savechannelconfig.Input, savechannelconfig.Result]
	ResolveVerification services.Service[resolveverification.Input, resolveverification.Result]
}

func InitServices(deps *deps.Deps) *Services {
	services := &Services{}

	services.AnnounceChannel = announcechannel.New(
		deps.Logger,
		deps.ChannelRepository,
		deps.Sender,
		deps.Config.BotName,
		deps.Config.TapVerifyImage,
	)
	services.IssueChallenge = issuechallenge.New(
		deps.Logger,
		deps.AttemptRepository,
		deps.IdentityGenerator,
		deps.Sender,
		deps.Config.WebAppLink,
		deps.Config.ClickVerifyImage,
		deps.Now,
	)
	services.SaveChannelConfig = savechannelconfig.New(
		deps.Logger,
		deps.ChannelRepository,
	)
	services.ResolveVerification = resolveverification.New(
		deps.Logger,
		deps.AttemptRepository,
		deps.ChannelRepository,
		deps.Sender,
		deps.Config.OwnerChatID,
		deps.Config.VerifiedImage,
	)

	return services
}
