package announcechannel

import (
	"context"
	"testing"

	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	CHANNEL_HANDLE = channel.Handle("@acme")
	CHAT_ID        = int64(-1001234567)
	BOT_NAME       = "gate_keeper_bot"
)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	ConfigRepository *channel.FakeRepository
	Sender           *bot.FakeSender
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.ConfigRepository = channel.NewFakeRepository()
	suite.Sender = bot.NewFakeSender()
	suite.Service = New(suite.Logger, suite.ConfigRepository, suite.Sender, BOT_NAME, "")
}

func TestAnnounceChannelService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestNoStoredConfigUsesDefaults() {
	_, err := s.Service.Run(context.Background(), Input{
		ChannelHandle: CHANNEL_HANDLE,
		ChatID:        CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.Sender.SentPhotos, 1)
	photo := s.Sender.SentPhotos[0]
	assert.Equal(CHAT_ID, photo.ChatID)
	assert.Contains(photo.Caption, "This group")
	assert.Equal(bot.ImageFromFile("safeguard-human.jpg"), photo.Image)
	assert.True(photo.HTML)
	assert.True(photo.Button.IsPresent)
	assert.Equal("Tap to VERIFY", photo.Button.Value.Text)
	assert.Equal("tg://resolve?domain=gate_keeper_bot&start=@acme", photo.Button.Value.URL)
}

func (s *testSuite) TestStoredConfigUsesNameAndImage() {
	s.ConfigRepository.Set(context.Background(), channel.Config{
		Channel: "@acme",
		Image:   "http://x/img.png",
		Name:    "Acme",
	})

	_, err := s.Service.Run(context.Background(), Input{
		ChannelHandle: CHANNEL_HANDLE,
		ChatID:        CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.Sender.SentPhotos, 1)
	photo := s.Sender.SentPhotos[0]
	assert.Contains(photo.Caption, "Acme")
	assert.Equal(bot.ImageFromURL("http://x/img.png"), photo.Image)
}

func (s *testSuite) TestOverrideImageBeatsBundledAsset() {
	service := New(s.Logger, s.ConfigRepository, s.Sender, BOT_NAME, "https://cdn.example.com/tap.png")

	_, err := service.Run(context.Background(), Input{
		ChannelHandle: CHANNEL_HANDLE,
		ChatID:        CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.Sender.SentPhotos, 1)
	assert.Equal(bot.ImageFromURL("https://cdn.example.com/tap.png"), s.Sender.SentPhotos[0].Image)
}

func (s *testSuite) TestSendFailureIsSwallowed() {
	s.Sender.PhotoReturnError = true

	_, err := s.Service.Run(context.Background(), Input{
		ChannelHandle: CHANNEL_HANDLE,
		ChatID:        CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Empty(s.Sender.SentPhotos)
}

func (s *testSuite) TestConfigLookupErrorIsReturned() {
	s.ConfigRepository.GetReturnError = true

	_, err := s.Service.Run(context.Background(), Input{
		ChannelHandle: CHANNEL_HANDLE,
		ChatID:        CHAT_ID,
	})

	assert := s.Require()
	assert.NotNil(err)
	assert.Empty(s.Sender.SentPhotos)
}
