package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/config"
)

func main() {
	var (
		dataDir = flag.String("data", "", "data directory (default $"+config.EnvDataDir+" or .)")
		cfgPath = flag.String("config", "", "config file (default <data>/config.yml)")
	)
	flag.Usage = printUsage
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env")
	}

	if *dataDir == "" {
		*dataDir = os.Getenv(config.EnvDataDir)
	}
	if *dataDir == "" {
		*dataDir = "."
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{dataDir: *dataDir, cfgPath: *cfgPath}

	cmd, args := "serve", flag.Args()
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = a.serve(ctx)
	case "import":
		err = a.importFiles(ctx, args)
	case "check":
		err = a.check(args)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `usage: iranconnect [-data DIR] [-config FILE] [command]

commands:
  serve          run the web server (default)
  import FILE... import YAML job files into the store
  check [FILE...] validate the config and seed files

flags:
`)
	flag.PrintDefaults()
}
