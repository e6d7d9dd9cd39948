package main

import (
	"github.com/ryuzo-k/kokoro-graph/internal/server"
	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger/console"

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
