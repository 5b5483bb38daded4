package issuechallenge

import (
	"context"
	"testing"
	"time"

	"gatekeeper/internal/core/domain/attempt"
	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	ATTEMPT_ID   = attempt.ID("b2f0e9aa-2a3e-4a3f-9d38-0a4f6a6c0001")
	CHANNEL_REF  = channel.Handle("42")
	CHAT_ID      = int64(777)
	WEB_APP_LINK = "https://challenge.example.com"
)

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	AttemptRepository *attempt.FakeRepository
	Sender            *bot.FakeSender
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.AttemptRepository = attempt.NewFakeRepository()
	suite.Sender = bot.NewFakeSender()
	suite.Service = New(
		suite.Logger,
		suite.AttemptRepository,
		attempt.NewFakeIdentityGenerator(ATTEMPT_ID),
		suite.Sender,
		WEB_APP_LINK,
		"",
		func() time.Time { return Now },
	)
}

func TestIssueChallengeService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	result, err := s.Service.Run(context.Background(), Input{
		ChannelRef: CHANNEL_REF,
		ChatID:     CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(ATTEMPT_ID, result.AttemptID)

	assert.Len(s.AttemptRepository.Created, 1)
	created := s.AttemptRepository.Created[0]
	assert.Equal(ATTEMPT_ID, created.ID)
	assert.Equal(CHANNEL_REF, created.ChannelHandle)
	assert.Equal(CHAT_ID, created.ChatID)
	assert.Equal(Now, created.CreatedAt)

	assert.Len(s.Sender.SentPhotos, 1)
	photo := s.Sender.SentPhotos[0]
	assert.Equal(CHAT_ID, photo.ChatID)
	assert.Equal(bot.ImageFromFile("safeguard-click-verify.jpg"), photo.Image)
	assert.True(photo.Button.IsPresent)
	assert.Equal("VERIFY", photo.Button.Value.Text)
	assert.True(photo.Button.Value.IsWebApp)
	assert.Contains(photo.Button.Value.URL, "?c=42")
	assert.Equal(
		"https://challenge.example.com?c=42&attempt="+string(ATTEMPT_ID),
		photo.Button.Value.URL,
	)
}

func (s *testSuite) TestAttemptStoreFailureAbortsWithoutSend() {
	s.AttemptRepository.CreateReturnError = true

	_, err := s.Service.Run(context.Background(), Input{
		ChannelRef: CHANNEL_REF,
		ChatID:     CHAT_ID,
	})

	assert := s.Require()
	assert.NotNil(err)
	assert.Empty(s.Sender.SentPhotos)
}

func (s *testSuite) TestSendFailureIsSwallowed() {
	s.Sender.PhotoReturnError = true

	result, err := s.Service.Run(context.Background(), Input{
		ChannelRef: CHANNEL_REF,
		ChatID:     CHAT_ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(ATTEMPT_ID, result.AttemptID)
	assert.Len(s.AttemptRepository.Created, 1)
}
