package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bibliophile/config"
	"bibliophile/database"
	"bibliophile/logger"
	"bibliophile/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	if err := server.Stop(); err != nil {
		logger.Warning("shutdown error:", err)
	}
	if err := database.CloseDB(); err != nil {
		logger.Warning("error closing db:", err)
	}
	logger.CloseLogger()
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	runWebServer()
}
