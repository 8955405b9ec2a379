package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/everydayham/youtube-monetization-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
        __     __ _______   __  __
        \ \   / /|__   __| |  \/  |
         \ \_/ /    | |    | \  / | ___  _ __   ___ _   _
          \   /     | |    | |\/| |/ _ \| '_ \ / _ \ | | |
           | |      | |    | |  | | (_) | | | |  __/ |_| |
           |_|      |_|    |_|  |_|\___/|_| |_|\___|\__, |
                                                     __/ |
                                                    |___/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("YouTube Monetization Dashboard CLI (v%s)", formattedVersion)))
}
