package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/cycletimer/internal/headless"
	"github.com/sandeepkv93/cycletimer/internal/logging"
	"github.com/sandeepkv93/cycletimer/internal/poller"
	"github.com/sandeepkv93/cycletimer/internal/storage"
	"github.com/sandeepkv93/cycletimer/internal/store"
	"github.com/sandeepkv93/cycletimer/internal/update"
	"github.com/sandeepkv93/cycletimer/internal/views"
)

type rootFlags struct {
	configPath string
	historyDB  string
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "cycletimer",
		Short:         "Focus cycle countdown timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.historyDB, "history-db", "", "SQLite cycle journal path")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newStartCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	return root
}

// loadConfig layers defaults, the YAML file, CYCLETIMER_* env and flags.
func loadConfig(flags *rootFlags) (update.RuntimeConfig, error) {
	path := strings.TrimSpace(flags.configPath)
	if path == "" {
		if p, err := update.DefaultConfigPath(); err == nil {
			path = p
		}
	}
	cfg, err := update.RuntimeConfigFromFile(update.DefaultRuntimeConfig(), path)
	if err != nil {
		return cfg, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)
	if v := strings.TrimSpace(flags.historyDB); v != "" {
		cfg.HistoryDBPath = v
	}
	if v := strings.TrimSpace(flags.logFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(flags.logLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func openJournal(cfg update.RuntimeConfig) (*storage.SQLiteRepository, error) {
	if strings.TrimSpace(cfg.HistoryDBPath) == "" {
		return nil, nil
	}
	repo, err := storage.OpenSQLite(cfg.HistoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return repo, nil
}

func runTUI(cfg update.RuntimeConfig) error {
	logger, logCloser, err := logging.New(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logCloser.Close()

	repo, err := openJournal(cfg)
	if err != nil {
		return err
	}
	deps := update.Deps{
		Store:  store.New(),
		Poller: poller.New(poller.Config{Buffer: cfg.PollerBuffer}),
		Logger: logger,
	}
	defer deps.Poller.Close()
	if repo != nil {
		defer repo.Close()
		deps.Journal = repo
	}
	if cfg.DesktopNotifications {
		deps.Notifier = update.ExecDesktopNotifier{}
	}

	logger.Info("tui starting", "history_db", cfg.HistoryDBPath)
	program := tea.NewProgram(update.NewModelWithConfig(deps, cfg))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("cycletimer failed: %w", err)
	}
	return nil
}

func newStartCmd(flags *rootFlags) *cobra.Command {
	var task, minutes string
	cmd := &cobra.Command{
		Use:   "start --task <name> --minutes <n>",
		Short: "Run one cycle in the terminal without the TUI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, logCloser, err := logging.New(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer logCloser.Close()

			opts := headless.Options{Logger: logger, Interactive: isTerminal(cmd.OutOrStdout())}
			repo, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if repo != nil {
				defer repo.Close()
				opts.Journal = repo
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err = headless.Run(ctx, cmd.OutOrStdout(), task, minutes, opts)
			return err
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "task name")
	cmd.Flags().StringVar(&minutes, "minutes", "25", "cycle length in minutes (5-60)")
	return cmd
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var limit int
	var status string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled cycles, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			repo, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if repo == nil {
				return fmt.Errorf("--history-db is required")
			}
			defer repo.Close()

			records, err := repo.ListCycles(cmd.Context(), storage.CycleListFilter{Status: status, Limit: limit})
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum cycles to show")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: active|completed|interrupted")
	return cmd
}

func printHistory(out io.Writer, records []storage.CycleRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no cycles")
		return err
	}
	for _, r := range records {
		end := "-"
		switch {
		case r.FinishedAt != nil:
			end = r.FinishedAt.Local().Format("15:04:05")
		case r.InterruptedAt != nil:
			end = r.InterruptedAt.Local().Format("15:04:05")
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\t%dmin\t%s\t%s\t%s\n",
			r.StartTime.Local().Format("2006-01-02 15:04:05"),
			views.Truncate(r.Task, 40),
			r.MinutesAmount,
			r.Status,
			end,
			r.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
