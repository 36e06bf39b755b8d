// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/config"
	"github.com/weatherstation/api-server/internal/server"
)

// @title Weather Station API
// @version 1.0
// @description Stations, sensors and their measurements.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ClearConsole()
	DrawLogo()
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting Weather Station API v%s", nuts.GetVersion())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		" _       __           __  __             ",
		"| |     / /__  ____ _/ /_/ /_  ___  _____",
		"| | /| / / _ \\/ __ `/ __/ __ \\/ _ \\/ ___/",
		"| |/ |/ /  __/ /_/ / /_/ / / /  __/ /    ",
		"|__/|__/\\___/\\__,_/\\__/_/ /_/\\___/_/     ",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
