package main

import (
	"log"

	"github.com/xbnstudios/furcast-nsfw-bot/bot"
	"github.com/xbnstudios/furcast-nsfw-bot/core/bootstrap"
	corecmd "github.com/xbnstudios/furcast-nsfw-bot/core/cmd"
	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar: "CONFIG_PATH",
		LoadConfig:   coreconfig.Load,
		Bootstrap: func(cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
			if err := bootstrap.Run(bootstrap.Options{Config: cfg}); err != nil {
				return nil, err
			}
			return bot.New(cfg), nil
		},
	})
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
