package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/internal/domain"
	"github.com/erickyeagle/notification-roles-bot/internal/repository"
	"github.com/erickyeagle/notification-roles-bot/pkg/api/discord"
	"github.com/erickyeagle/notification-roles-bot/pkg/gateway"
	"github.com/erickyeagle/notification-roles-bot/pkg/logger"
	"github.com/erickyeagle/notification-roles-bot/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

const tokenEnv = "NOTIFICATION_ROLES_BOT_TOKEN"

const tokenNotSetError = `The environment variable "NOTIFICATION_ROLES_BOT_TOKEN" is not set!`

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	endpoint discord.IEndpoint
	session  *gateway.Session

	directoryRepo repository.DirectoryRepository

	subscriptionDomain domain.SubscriptionDomain
	dispatcherDomain   domain.DispatcherDomain
}

func (s *srv) loadConfig() error {
	token := os.Getenv(tokenEnv)
	if token == "" {
		return errors.New(tokenNotSetError)
	}

	s.configs = &config.Configs{
		Env:      os.Getenv("ENV"),
		LogLevel: os.Getenv("LOG_LEVEL"),
		Discord: config.DiscordConfigs{
			BotToken:   token,
			GatewayURL: os.Getenv("DISCORD_GATEWAY_URL"),
		},
		Bot: config.BotConfigs{
			Prefix: "!",
			Group:  "nr",
		},
	}

	return nil
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
}

func (s *srv) loadEndpoint() {
	s.endpoint = discord.New(s.configs.Discord)
}

func (s *srv) loadGateway() {
	s.session = gateway.New(s.configs.Discord)
}

func (s *srv) loadRepos(botID string) {
	s.directoryRepo = repository.NewDirectoryRepository(s.endpoint, botID)
}

func (s *srv) loadDomains(botID string) {
	s.subscriptionDomain = domain.NewSubscriptionDomain(s.directoryRepo)
	s.dispatcherDomain = domain.NewDispatcherDomain(
		s.configs.Bot, botID, s.subscriptionDomain, s.endpoint)
}

func (s *srv) run(cliCtx *cli.Context) error {
	if err := s.loadConfig(); err != nil {
		return err
	}

	s.loadLogger()
	s.loadEndpoint()
	s.loadGateway()

	ctx := xcontext.WithLogger(cliCtx.Context, s.logger)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.session.Run(ctx)

	select {
	case <-ctx.Done():
		return nil
	case ready := <-s.session.Ready:
		s.logger.Infof("%s is online!", ready.User.Username)
		s.loadRepos(ready.User.ID)
		s.loadDomains(ready.User.ID)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-s.session.Messages:
			// Each inbound command is an independent invocation.
			go s.dispatcherDomain.ServeMessage(ctx, event)
		}
	}
}
