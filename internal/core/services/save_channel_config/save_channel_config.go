package savechannelconfig

import (
	"context"
	"errors"

	"gatekeeper/internal/core/domain/channel"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"
)

type Input struct {
	Text string
}

type Result struct {
	Config channel.Config
}

type service struct {
	log              logging.Logger
	configRepository channel.Repository
}

func New(
	log logging.Logger,
	configRepository channel.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if configRepository == nil {
		panic(e.NewNilArgumentError("configRepository"))
	}
	return &service{log: log, configRepository: configRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	config, err := channel.ParseConfig(input.Text)
	if err != nil {
		s.log.Info(
			ctx,
			"Rejected malformed channel config.",
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.configRepository.Set(ctx, config); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not save channel config.",
				logging.Entry("channelHandle", config.Handle()),
				logging.Entry("err", err),
			)
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Channel config saved.",
		logging.Entry("channelHandle", config.Handle()),
	)
	return Result{Config: config}, nil
}
