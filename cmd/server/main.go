package main

import (
	"github.com/agentbridge/portal/internal/server"
	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
