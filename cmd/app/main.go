package main

import (
	"parkspot/config"
	"parkspot/di"
	"parkspot/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
