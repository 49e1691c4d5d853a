// Command matchcore reads a line-based command stream from stdin, feeds
// it to a single matching engine instance, and writes fills and closed-id
// results to stdout. Parsing, process wiring, and startup are thin
// collaborators around the engine core.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	tomb "gopkg.in/tomb.v2"

	"matchcore/internal/codec"
	"matchcore/internal/engine"
)

func main() {
	logLevel := pflag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := pflag.String("log-format", "console", "log format: console, json")
	pflag.Parse()

	configureLogging(*logLevel, *logFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	t, ctx := tomb.WithContext(ctx)
	eng := engine.New()

	// The engine is single-threaded by design: this is the only goroutine
	// that ever calls eng.Call.
	t.Go(func() error {
		return runLoop(ctx, eng, os.Stdin, os.Stdout)
	})

	// A signal kills the tomb with context.Canceled; that is a clean
	// shutdown, not a failure.
	if err := t.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("matchcore exiting on error")
	}
}

func configureLogging(level, format string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// runLoop drains commands from r, applies each to eng, and writes the
// echoed input plus its results to w. It returns nil on clean EOF or on
// a shutdown requested through ctx between commands; any other error is
// fatal — local recovery is not attempted.
func runLoop(ctx context.Context, eng *engine.Engine, r *os.File, w *os.File) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	defer out.Flush()

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		fmt.Fprintln(out, codec.EchoPrefix+line)

		timed, err := codec.ParseLine(line)
		if err != nil {
			out.Flush()
			return err
		}

		result, err := eng.Call(timed.Now, timed.Cmd)
		if err != nil {
			out.Flush()
			return err
		}

		for _, l := range codec.FormatResult(timed.Now, result) {
			fmt.Fprintln(out, codec.ResultPrefix+l)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return out.Flush()
}
