// Command server runs the site content API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/simp-lee/sitecms/internal/app"
	"github.com/simp-lee/sitecms/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "YAML configuration file")
	envPath := flag.String("env", ".env", "dotenv file with APP__ overrides, skipped when absent")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, envPath string) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	server, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return server.Run()
}
