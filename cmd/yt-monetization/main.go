package main

import (
	"fmt"
	"os"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driven/config"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driving/cli"
	"github.com/everydayham/youtube-monetization-dashboard-go/pkg/console"
	"github.com/everydayham/youtube-monetization-dashboard-go/pkg/version"
)

func main() {
	// Inicializa os repositórios compartilhados entre os comandos
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, configRepo, consoleImpl)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
