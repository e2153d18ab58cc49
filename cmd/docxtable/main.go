package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/docxtable"
	"github.com/tsawler/docxtable/internal/config"
	"github.com/tsawler/docxtable/internal/logging"
	"github.com/tsawler/docxtable/internal/server"
	"github.com/tsawler/docxtable/internal/wire"
)

const usage = `docxtable - read tables from DOCX files

Usage:
  docxtable extract [-top-level] [-pretty] <file.docx>...
  docxtable serve [-addr host:port]
  docxtable version
`

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg := config.Load()
	switch args[0] {
	case "extract":
		return runExtract(args[1:], cfg, stdout, stderr)
	case "serve":
		return runServe(args[1:], cfg, stderr)
	case "version":
		fmt.Fprintln(stdout, "docxtable", version)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n%s", args[0], usage)
		return 2
	}
}

func runExtract(args []string, cfg config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	topLevel := fs.Bool("top-level", false, "skip tables nested inside other tables")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	log := logging.Setup(stderr, *logLevel, *logFormat)

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	status := 0
	for _, path := range fs.Args() {
		ext := docxtable.Open(path).WithLogger(log)
		if *topLevel {
			ext = ext.TopLevelOnly()
		}

		tables, warnings, err := ext.Tables()
		if err != nil {
			log.Error("could not read document", "file", path, "error", err)
			status = 1
			continue
		}
		for _, w := range warnings {
			log.Warn(w.Message, "file", path, "severity", w.Severity)
		}
		for i, t := range tables {
			log.Debug("table", "file", path, "table", i, "rows", t.RowCount(), "columns", t.ColCount())
		}

		if err := enc.Encode(wire.NewResponse("", path, tables, warnings)); err != nil {
			log.Error("writing output", "file", path, "error", err)
			return 1
		}
	}
	return status
}

func runServe(args []string, cfg config.Config, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", cfg.MaxUploadBytes, "maximum upload size in bytes")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		return 1
	}
	return 0
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// within cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docxtable", "addr", cfg.Addr, "max_upload_bytes", cfg.MaxUploadBytes)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
