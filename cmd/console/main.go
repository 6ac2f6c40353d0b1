package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"emsconsole/internal/app/server"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/config"
	"emsconsole/internal/platform/db"
	"emsconsole/internal/platform/download"
	"emsconsole/internal/platform/logger"
)

const usage = `usage: console <command> [flags]

commands:
  serve     run the console backend
  slip      download a salary slip to disk
  migrate   apply the session store migrations
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Setup(cfg.IsLocalDev())

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "serve":
		err = serve(ctx, cfg)
	case "slip":
		err = slip(ctx, cfg, os.Args[2:])
	case "migrate":
		err = migrate(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return server.Run(ctx, cfg)
}

// slip logs in as the given user and saves one salary slip under dir.
func slip(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("slip", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	id := fs.Int64("id", 0, "payroll record id")
	dir := fs.String("dir", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	password := os.Getenv("EMS_PASSWORD")
	if strings.TrimSpace(*email) == "" || password == "" || *id <= 0 {
		return errors.New("slip needs -email, -id and EMS_PASSWORD")
	}

	client := gateway.NewFromConfig(cfg, nil)
	res, err := client.Login(ctx, gateway.LoginRequest{Email: strings.TrimSpace(*email), Password: password})
	if err != nil {
		return fmt.Errorf("login: %s", gateway.Message(err, err.Error()))
	}

	doc, err := client.WithToken(res.Token).DownloadSlip(ctx, *id)
	if err != nil {
		return fmt.Errorf("download: %s", gateway.Message(err, "Failed to download salary slip."))
	}
	path, err := download.Save(ctx, *dir, doc.Name, download.Bytes(doc.Data))
	if err != nil {
		return fmt.Errorf("save slip: %w", err)
	}
	log.Info().Str("path", path).Int("bytes", len(doc.Data)).Msg("salary slip saved")
	return nil
}

func migrate(ctx context.Context, cfg config.Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	log.Info().Msg("migrations applied")
	return nil
}
