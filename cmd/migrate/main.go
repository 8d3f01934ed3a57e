package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/smilehub/clinic-booking/internal/config"
	"github.com/smilehub/clinic-booking/internal/infra/migrator"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

// Использование: migrate [-config config.toml] up|down|force <version>
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	m, err := migrator.New(cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	defer m.Close()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version")
		}
		version, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil {
			log.Fatal("Invalid version %q: %v", flag.Arg(1), convErr)
		}
		err = m.Force(version)
	default:
		log.Fatal("Unknown command %q (expected up, down or force)", command)
	}

	if err != nil {
		log.Error("Migration %s failed: %v", command, err)
		os.Exit(1)
	}
	log.Info("Migration %s complete", command)
}
