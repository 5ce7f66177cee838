package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/opendota-go/internal/app"
	"github.com/samvad-hq/opendota-go/internal/config"
	"github.com/samvad-hq/opendota-go/internal/logger"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

const usage = `usage: odota [flags] <endpoint> [path-arg...]

Calls one OpenDota endpoint and prints the JSON result.
Run "odota --list" to see the endpoint catalog.

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		var apiErr *opendota.Error
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "odota: %s: %v\n", apiErr.Kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "odota: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := pflag.NewFlagSet("odota", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	queries := fs.StringArrayP("query", "q", nil, "query parameter as key=value (repeat for sequences)")
	list := fs.Bool("list", false, "list the endpoint catalog and exit")
	fs.StringVar(&cfg.OpenDotaAPIKey, "api-key", cfg.OpenDotaAPIKey, "OpenDota API key (default from OPENDOTA_API_KEY)")
	fs.StringVar(&cfg.OpenDotaBaseURL, "base-url", cfg.OpenDotaBaseURL, "API root")
	timeout := fs.Duration("timeout", cfg.RequestTimeout(), "request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "log level for request tracing on stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *list {
		return app.ListEndpoints(os.Stdout)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing endpoint name")
	}

	params, err := app.ParseQuery(*queries)
	if err != nil {
		return err
	}
	if *timeout > 0 {
		cfg.OpenDotaTimeout = int64((*timeout + time.Second - 1) / time.Second)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := app.NewOpenDotaClient(cfg, log)
	return app.Query(ctx, client, rest[0], rest[1:], params, os.Stdout)
}
