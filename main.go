package main

import (
	"remindbot/config"
	"remindbot/db"
	"remindbot/tgbot"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "err", err)
	}

	d, err := db.NewDatabase(cfg.DBConnStr)
	if err != nil {
		log.Fatalw("failed to connect to database", "err", err)
	}
	defer d.Close()

	b, err := tgbot.NewTBot(cfg, d, log)
	if err != nil {
		log.Fatalw("failed to start bot", "err", err)
	}

	b.Run()
}
