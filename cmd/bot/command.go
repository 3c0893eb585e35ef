package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "notification-roles-bot"
	app.Usage = "Self-service notification roles for Discord guilds"
	app.Commands = []*cli.Command{
		{
			Action:      s.run,
			Name:        "run",
			Usage:       "Start the bot",
			Category:    "Bot",
			Description: `Connects to the Discord gateway and serves notification role commands until interrupted.`,
		},
	}
	s.app = app
}
