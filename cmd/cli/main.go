package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/imgcodecs"
	"github.com/vk/imgcodecs/internal/cli"
)

// main is the entrypoint for the imgcodecs inspection tool.
func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the tool's logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	opts := []imgcodecs.Option{imgcodecs.WithLogger(logger)}
	if cfg.CodecsPath != "" {
		opts = append(opts, imgcodecs.WithCodecsPath(cfg.CodecsPath))
	}
	if cfg.MyCodecsPath != "" {
		opts = append(opts, imgcodecs.WithMyCodecsPath(cfg.MyCodecsPath))
	}

	var flags imgcodecs.InitFlags
	if cfg.Preload {
		flags |= imgcodecs.FlagPreloadCodecs
	}

	c := imgcodecs.NewContext(opts...)
	if err := c.EnsureInitialized(context.Background(), flags); err != nil {
		return fmt.Errorf("codec discovery failed: %w", err)
	}

	printCodecs(outW, c)
	return nil
}

// printCodecs writes the registry contents in discovery order, followed by
// any entries that were skipped during discovery.
func printCodecs(outW io.Writer, c *imgcodecs.Context) {
	codecs := c.Codecs()
	if len(codecs) == 0 {
		fmt.Fprintln(outW, "No codecs found.")
	}

	for i, entry := range codecs {
		status := "lazy"
		switch {
		case entry.Loaded():
			status = "loaded"
		case entry.LoadErr != nil:
			status = "load failed"
		}

		fmt.Fprintf(outW, "%d. %s %s [%s] extensions=%s mime=%s (%s)\n",
			i+1,
			entry.Info.Name,
			entry.Info.Version,
			entry.Info.Description,
			strings.Join(entry.Info.Extensions, ","),
			strings.Join(entry.Info.MimeTypes, ","),
			status,
		)
	}

	for _, diag := range c.Registry().Diagnostics() {
		fmt.Fprintf(outW, "skipped: %s: %v\n", diag.Path, diag.Err)
	}
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
