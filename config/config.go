package config

type Configs struct {
	Env      string
	LogLevel string

	Discord DiscordConfigs
	Bot     BotConfigs
}

type DiscordConfigs struct {
	BotToken   string
	GatewayURL string
}

type BotConfigs struct {
	Prefix string
	Group  string
}
