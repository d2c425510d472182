package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"help-queue/config"
	"help-queue/handlers"
	"help-queue/models"
	"help-queue/security"
	"help-queue/services"
	"help-queue/storage"
)

var backupFile string

var rootCmd = &cobra.Command{
	Use:   "help-queue",
	Short: "Interactive office-hours help queue",
	Long: `help-queue manages a first-in-first-out help line for a course's
office hours: students join the queue, staff pop them off, and wait-time
statistics accumulate per student. State is kept in memory and mirrored to
a backup file after each mutating command.

Commands are read one per line from standard input; type "help" at the
prompt for the command summary.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&backupFile, "backup-file", "", "override the automatic backup file path")
}

func Execute() error {
	return rootCmd.Execute()
}

func run() error {
	cfg := config.LoadConfig()
	if backupFile != "" {
		cfg.BackupFile = backupFile
	}

	// The REPL and the password prompt share one reader so piped input
	// stays in order. Interactive terminals bypass the reader for no-echo
	// password reads.
	stdin := bufio.NewReader(os.Stdin)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}

	checker := security.PlainChecker(cfg.Secret)
	if cfg.SecretHash != "" {
		checker = security.BcryptChecker(cfg.SecretHash)
	}
	gate := security.NewGate(checker, os.Stdout, stdin, fd)

	state := models.NewQueueState()
	store := storage.NewStore(cfg.BackupFile)
	queueService := services.NewQueueService(state, store, gate.Authenticate)
	rosterService := services.NewRosterService(state, store, gate.Authenticate)

	if err := queueService.LoadBackup(); err != nil {
		slog.Warn("no backup restored", "file", cfg.BackupFile, "error", err)
	} else {
		fmt.Println("Loaded from backup.")
	}

	handler := handlers.NewCommandHandler(queueService, rosterService, gate, os.Stdout, cfg.ColorOutput)

	for {
		line, err := stdin.ReadString('\n')
		if line != "" {
			if handler.Handle(line) {
				return nil
			}
		}
		if err != nil {
			// Input closed; nothing left to process.
			return nil
		}
	}
}
