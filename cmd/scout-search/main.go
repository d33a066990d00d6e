// Command scout-search runs the extraction tasks from a terminal against a
// running relay and prints the results as JSON.
//
// Usage:
//
//	scout-search [flags] search <query>
//	scout-search [flags] insights <candidate-id> [criteria...]
//	scout-search [flags] ask <question>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/chat"
	"github.com/MikeSquared-Agency/scout/internal/config"
	"github.com/MikeSquared-Agency/scout/internal/search"
)

func main() {
	cfg := config.Load()

	flags := flag.NewFlagSet("scout-search", flag.ExitOnError)
	relayURL := flags.String("relay", cfg.RelayURL, "relay base URL")
	model := flags.String("model", "", "model override (relay default when empty)")
	verbose := flags.Bool("v", false, "log to stderr")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: scout-search [flags] search <query> | insights <candidate-id> [criteria...] | ask <question>")
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	lvl := slog.LevelError
	if *verbose {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	args := flags.Args()
	if len(args) < 2 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := chat.NewClient(*relayURL, cfg.ClientTimeout)
	svc := search.New(client, *model, logger)
	svc.SetConcurrency(cfg.EvalConcurrency)

	out, err := run(ctx, svc, candidate.NewStaticSource(candidate.Fixtures()), args[0], args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *search.Service, src candidate.Source, cmd string, args []string) (any, error) {
	switch cmd {
	case "search":
		pool, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		return svc.Search(ctx, strings.Join(args, " "), pool)
	case "insights":
		c, err := src.Get(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return svc.Insights(ctx, c, args[1:]), nil
	case "ask":
		reply := svc.Reply(ctx, []chat.Message{chat.UserMessage(strings.Join(args, " "))})
		return map[string]string{"reply": reply}, nil
	}
	return nil, fmt.Errorf("unknown command %q", cmd)
}
