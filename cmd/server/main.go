package main

import (
	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/server"

	log "github.com/sirupsen/logrus"
)

// @title           Task Board API
// @version         1.0
// @description     Boards, lists, cards, comments, labels and board membership.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	cfg.ApplyLogging()

	s, err := server.Init(cfg)
	if err != nil {
		log.WithError(err).Fatal("server initialization failed")
	}

	s.Run()
}
