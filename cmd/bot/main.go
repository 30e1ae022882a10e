package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/battle-relay/internal/client"
	"github.com/DoyleJ11/battle-relay/internal/logging"
)

func main() {
	url := flag.String("url", "http://localhost:3000", "relay base url")
	pairs := flag.Int("pairs", 4, "number of bot pairs")
	turns := flag.Int("turns", 5, "turns each bot plays before leaving")
	interval := flag.Duration("interval", 250*time.Millisecond, "poll interval")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logging.New(*level, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	relay := client.New(*url)
	results := make([]result, 2**pairs)

	g, gctx := errgroup.WithContext(ctx)
	for i := range results {
		b := &bot{
			name:     fmt.Sprintf("bot-%02d", i),
			team:     fmt.Sprintf("team-%02d", i),
			relay:    relay,
			turns:    *turns,
			interval: *interval,
			log:      log,
		}
		g.Go(func() error {
			r, err := b.run(gctx)
			results[i] = r
			if err != nil {
				return fmt.Errorf("%s: %w", b.name, err)
			}
			return nil
		})
	}
	err = g.Wait()

	ok := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	for _, r := range results {
		status := ok("done")
		if r.Ended {
			status = warn("ended early")
		}
		fmt.Printf("%-8s game=%s turns=%d %s\n", r.Name, r.GameID, r.Played, status)
	}
	if err != nil {
		color.Red("bots failed: %v", err)
		os.Exit(1)
	}
}
