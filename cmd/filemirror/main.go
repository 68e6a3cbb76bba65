package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"filemirror/internal/config"
	"filemirror/internal/journal"
	"filemirror/internal/mirror"
	"filemirror/internal/util/logger/sl"
	"filemirror/internal/watcher"
)

var rootCmd = &cobra.Command{
	Use:   "filemirror",
	Short: "Mirror changed files from a watched folder onto one fixed file",
	Long: `filemirror watches a source folder recursively and copies every created or
modified file (optionally only those with a given extension) onto a single,
fixed destination file.

Settings are read from ` + config.DefaultPath + ` in the working directory. When
that file is missing, filemirror asks for them, saves them and exits; run it
again to start watching.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.DefaultPath)
	if errors.Is(err, config.ErrConfigNotFound) {
		return firstRun(cmd)
	}
	if err != nil {
		return err
	}

	log, logFile := setupLogger(cfg.Env, cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	log.Info("starting filemirror",
		slog.String("source", cfg.SourceFolder),
		slog.String("destination", cfg.DestinationFolder),
		slog.String("file_name", cfg.TargetFileName),
	)

	opts := []mirror.Option{mirror.WithLogger(log)}

	if cfg.JournalFile != "" {
		j, err := journal.NewJournal(journal.Config{Path: cfg.JournalFile})
		if err != nil {
			log.Error("journal disabled", slog.String("path", cfg.JournalFile), sl.Err(err))
		} else {
			defer j.Close()
			logJournalSummary(log, j)
			opts = append(opts, mirror.WithJournal(j))
		}
	}

	m := mirror.New(cfg, opts...)

	// failure is logged inside and never stops startup
	_ = m.StartupSync()

	fw, err := watcher.NewFileWatcher(watcher.Config{Logger: log})
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(cfg.SourceFolder); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.SourceFolder, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-signalChan:
			log.Info("shutdown signal received", slog.Any("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	err = m.Run(ctx, fw)

	stats := m.Stats()
	log.Info("stopped",
		slog.Int64("copied", stats.Copied),
		slog.Int64("failed", stats.Failed),
		slog.Int64("rejected", stats.Rejected),
		slog.Any("watcher", fw.Metrics().GetStats()),
	)

	return err
}

// logJournalSummary reports what earlier runs left in the journal.
func logJournalSummary(log *slog.Logger, j *journal.Journal) {
	n, err := j.Count()
	if err != nil {
		log.Warn("failed to read journal", sl.Err(err))
		return
	}

	last, err := j.Last()
	if errors.Is(err, journal.ErrEntryNotFound) {
		log.Info("journal is empty")
		return
	}
	if err != nil {
		log.Warn("failed to read journal", sl.Err(err))
		return
	}

	log.Info("journal loaded",
		slog.Int("entries", n),
		slog.String("last_source", last.Source),
		slog.Time("last_time", last.Time),
		slog.Bool("last_failed", last.Failed()),
	)
}

func firstRun(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(cmd.ErrOrStderr(), "No %s found.\n", config.DefaultPath)
	fmt.Fprintf(out, "Creating %s...\n", config.DefaultPath)

	var prompter config.Prompter
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		prompter = config.NewPrompter(f, out)
	} else {
		prompter = config.NewLinePrompter(cmd.InOrStdin(), out)
	}

	if _, err := config.Setup(prompter, config.DefaultPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s created successfully!\n", config.DefaultPath)
	fmt.Fprintln(out, "Please restart the program.")
	return nil
}
