package main

import (
	"context"

	"musafir/config"
	"musafir/di"
	"musafir/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	go app.Notification.StartBookingConsumer(context.Background())

	app.HTTP.Serve()
}
