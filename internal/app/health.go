package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/minhon/internal/cli"
	"horse.fit/minhon/internal/config"
	"horse.fit/minhon/internal/db"
	"horse.fit/minhon/internal/logging"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Second, "Database ping timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	// Credentials are validated at point of use, so health only
	// reports on their presence instead of failing.
	var missing []string
	if strings.TrimSpace(cfg.APIKey) == "" {
		missing = append(missing, "TEXTRA_API_KEY")
	}
	if strings.TrimSpace(cfg.APISecret) == "" {
		missing = append(missing, "TEXTRA_API_SECRET")
	}
	if strings.TrimSpace(cfg.UserName) == "" {
		missing = append(missing, "TEXTRA_USER_NAME")
	}
	if len(missing) > 0 {
		fmt.Printf("config: missing %s (translation will fail at point of use)\n", strings.Join(missing, ", "))
	} else {
		fmt.Println("config: ok")
	}

	if !cfg.HistoryEnabled() {
		fmt.Println("history: disabled (DATABASE_URL not set)")
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("health check failed to connect to database")
		fmt.Fprintf(os.Stderr, "history: unreachable: %v\n", err)
		return 1
	}
	defer pool.Close()

	fmt.Println("history: ok")
	return 0
}
