package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"horse.fit/minhon/internal/cli"
	"horse.fit/minhon/internal/config"
	"horse.fit/minhon/internal/logging"
	"horse.fit/minhon/internal/textra"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		stdinText, err := readStdinText()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		text = strings.TrimSpace(stdinText)
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate requires text as arguments or on stdin")
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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := textra.NewClient(cfg, logger)
	translated, err := client.Translate(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed (%s): %v\n", textra.KindOf(err), err)
		return 1
	}

	fmt.Println(translated)
	return 0
}

func readStdinText() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	// Only consume stdin when something is piped in.
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
