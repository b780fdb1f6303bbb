package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"vrp-client/internal/api/dto"
	"vrp-client/internal/app"
	"vrp-client/internal/client"
	"vrp-client/internal/config"
	"vrp-client/internal/domain"
	"vrp-client/internal/platform/obs"
)

func main() {
	mode := flag.String("mode", "solve", "solve or fix")
	in := flag.String("in", "-", "problem document path, - for stdin")
	token := flag.String("token", "", "access token (overrides VRP_API_TOKEN)")
	configPath := flag.String("config", "", "YAML config file (overrides VRP_CONFIG_FILE)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("VRP_CONFIG_FILE", *configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = obs.WithRequestID(ctx, "")

	deps, err := app.Wire(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	if err := run(ctx, deps.NewClient(*token), *mode, *in, os.Stdout); err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) {
			fmt.Fprintf(os.Stderr, "routing service returned %d: %s\n", re.StatusCode, re.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		deps.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, mode, in string, out io.Writer) error {
	data, err := readInput(in)
	if err != nil {
		return err
	}
	if err := c.LoadJSON(data); err != nil {
		return err
	}

	var sched *domain.Schedule
	switch mode {
	case "solve":
		sched, err = c.Solve(ctx)
	case "fix":
		sched, err = c.Fix(ctx)
	default:
		return fmt.Errorf("unknown mode %q (want solve or fix)", mode)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewScheduleResponse(sched))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}
	return b, nil
}
