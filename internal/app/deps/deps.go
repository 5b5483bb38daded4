package deps

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"gatekeeper/internal/config"
	"gatekeeper/internal/core/domain/attempt"
	"gatekeeper/internal/core/domain/bot"
	"gatekeeper/internal/core/domain/channel"
	dl "gatekeeper/internal/core/domain/logging"
	dbattempt "gatekeeper/internal/db/attempt"
	dbchannel "gatekeeper/internal/db/channel"
	"gatekeeper/internal/implementations/identity"
	"gatekeeper/internal/implementations/logging"
	"gatekeeper/internal/implementations/telegram"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Redis *redis.Client
	Bot   *tgbotapi.BotAPI

	Now func() time.Time

	ChannelRepository channel.Repository
	AttemptRepository attempt.Repository

	IdentityGenerator attempt.IdentityGenerator
	Sender            bot.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closeRedisClient := deps.initRedisClient()
	deps.initBot()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.ChannelRepository = dbchannel.NewRedisRepository(deps.Redis, deps.Config.ConfigTTL)
	deps.AttemptRepository = dbattempt.NewRedisRepository(deps.Redis, deps.Config.AttemptTTL)
	deps.IdentityGenerator = identity.NewUUID()
	deps.Sender = telegram.New(deps.Bot)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initBot() {
	client := &http.Client{Timeout: deps.Config.TelegramRequestTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(deps.Config.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Telegram.", dl.Entry("err", err))
		panic(err)
	}
	deps.Bot = api
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDSN,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
	}
	return func() {
		sentry.Flush(time.Second * 3)
	}
}
