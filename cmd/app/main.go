package main

import (
	"hostal/config"
	"hostal/di"
	"hostal/shared/logger"
)

// @title Hostal API
// @version 1.0
// @description Hotel management backend: rooms, reservations, payments, promotions and reviews.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
